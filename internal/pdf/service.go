package pdf

import (
	"fmt"
)

// Service handles the PDF side of a batch run by orchestrating the
// discovery, editing and text extraction components
type Service struct {
	reader    *Reader
	validator *Validator
	search    *Search
	editor    *Editor
}

// Options configures a Service
type Options struct {
	MaxFileSize   int64
	UserPassword  string
	OwnerPassword string
}

// NewService creates a new PDF service with all components
func NewService(opts Options) *Service {
	return &Service{
		reader:    NewReader(),
		validator: NewValidator(opts.MaxFileSize),
		search:    NewSearch(opts.MaxFileSize),
		editor:    NewEditor(opts.UserPassword, opts.OwnerPassword),
	}
}

// FindPDFs lists the PDF files of a folder
func (s *Service) FindPDFs(directory string) ([]FileInfo, error) {
	return s.search.FindPDFs(directory)
}

// Unlock removes password and permission restrictions in place
func (s *Service) Unlock(path string) (*UnlockResult, error) {
	if err := s.validator.CheckFile(path); err != nil {
		return nil, &OpError{Op: "unlock", Path: path, Err: err}
	}
	return s.editor.Unlock(path)
}

// StripPages removes every page whose text contains marker. A document made
// only of marker pages is left untouched and reported as an error, since
// pdfcpu cannot write a PDF without pages.
func (s *Service) StripPages(path, marker string) (*StripResult, error) {
	if err := s.validator.CheckFile(path); err != nil {
		return nil, &OpError{Op: "strip", Path: path, Err: err}
	}

	pages, total, err := s.reader.PagesContaining(path, marker)
	if err != nil {
		return nil, err
	}

	result := &StripResult{Path: path, PageCount: total}
	if len(pages) == 0 {
		return result, nil
	}
	if len(pages) >= total {
		return nil, &OpError{
			Op:   "strip",
			Path: path,
			Err:  fmt.Errorf("all %d pages contain %q", total, marker),
		}
	}

	if err := s.editor.RemovePages(path, pages); err != nil {
		return nil, err
	}

	result.RemovedPages = pages
	result.PageCount = total - len(pages)
	return result, nil
}

// ExtractText returns the text of the first half of the document
func (s *Service) ExtractText(path string) (string, error) {
	if err := s.validator.CheckFile(path); err != nil {
		return "", &OpError{Op: "extract", Path: path, Err: err}
	}
	return s.reader.ExtractText(path)
}
