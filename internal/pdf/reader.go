package pdf

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader extracts plain text from PDF pages
type Reader struct {
	maxTextSize int
}

// NewReader creates a new PDF text reader
func NewReader() *Reader {
	return &Reader{
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ExtractText returns the text of the first half of the document's pages
// (at least one page), each page followed by a newline. The header of a
// timesheet sits on its first pages; the rest are attachments.
func (r *Reader) ExtractText(path string) (string, error) {
	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return "", &OpError{Op: "extract", Path: path, Err: fmt.Errorf("failed to open PDF: %w", err)}
	}
	defer f.Close()

	pages := pdfReader.NumPage() / 2
	if pages < 1 {
		pages = 1
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= pages && pageNum <= pdfReader.NumPage(); pageNum++ {
		content, ok := pageText(pdfReader, pageNum)
		if !ok || content == "" {
			continue
		}

		if builder.Len()+len(content) > r.maxTextSize {
			break
		}
		builder.WriteString(content)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// PagesContaining returns the 1-based numbers of the pages whose text
// contains marker, along with the document's page count. Matching ignores
// diacritics and case, since some producers encode accented capitals
// inconsistently.
func (r *Reader) PagesContaining(path, marker string) ([]int, int, error) {
	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, 0, &OpError{Op: "search", Path: path, Err: fmt.Errorf("failed to open PDF: %w", err)}
	}
	defer f.Close()

	needle := foldText(marker)
	var matches []int
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		content, ok := pageText(pdfReader, pageNum)
		if !ok {
			continue
		}
		if strings.Contains(content, marker) || strings.Contains(foldText(content), needle) {
			matches = append(matches, pageNum)
		}
	}

	return matches, pdfReader.NumPage(), nil
}

// pageText extracts the plain text of one page. Pages that cannot be
// decoded report ok=false so callers carry on with the rest.
func pageText(pdfReader *pdf.Reader, pageNum int) (content string, ok bool) {
	defer func() {
		// ledongthuc/pdf panics on some malformed content streams
		if recover() != nil {
			content, ok = "", false
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return "", false
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return text, true
}
