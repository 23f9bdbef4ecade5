package pdf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Search discovers the PDF files of a working folder
type Search struct {
	validator *Validator
}

// NewSearch creates a new PDF search handler with the specified constraints
func NewSearch(maxFileSize int64) *Search {
	return &Search{
		validator: NewValidator(maxFileSize),
	}
}

// FindPDFs lists the PDF files directly inside directory, sorted by name.
// Subdirectories are not descended into. Files that fail the quick
// validation (empty, too large) are skipped and logged.
func (s *Search) FindPDFs(directory string) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	entries, err := os.ReadDir(absDirectory)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}

	var pdfFiles []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !isPDFName(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(absDirectory, entry.Name())
		if err := s.validator.ValidateFileInfo(path, info); err != nil {
			slog.Warn("skipping PDF", "file", entry.Name(), "error", err)
			continue
		}

		pdfFiles = append(pdfFiles, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
	}

	sort.Slice(pdfFiles, func(i, j int) bool { return pdfFiles[i].Name < pdfFiles[j].Name })
	return pdfFiles, nil
}
