package pipeline

import (
	"fmt"
	"time"

	"github.com/a3tai/ekho-renamer/internal/naming"
	"github.com/a3tai/ekho-renamer/internal/pdf"
)

// Documents is the PDF collaborator the runner drives. *pdf.Service
// implements it.
type Documents interface {
	FindPDFs(directory string) ([]pdf.FileInfo, error)
	Unlock(path string) (*pdf.UnlockResult, error)
	StripPages(path, marker string) (*pdf.StripResult, error)
	ExtractText(path string) (string, error)
}

// Stage names the step a document failed in.
type Stage string

const (
	StageUnlock  Stage = "unlock"
	StageStrip   Stage = "strip"
	StageExtract Stage = "extract"
	StageDerive  Stage = "derive"
	StageRename  Stage = "rename"
)

// Status is the outcome of one document.
type Status string

const (
	StatusRenamed   Status = "renamed"
	StatusUnchanged Status = "unchanged" // already carries the derived name
	StatusDryRun    Status = "dry_run"
	StatusFailed    Status = "failed"
)

// DocumentError is the failure reason recorded for a document.
type DocumentError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Stage, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// Result is the outcome of processing one document.
type Result struct {
	Path         string             `json:"path"`
	Name         string             `json:"name"`
	NewName      string             `json:"new_name,omitempty"`
	Status       Status             `json:"status"`
	Encrypted    bool               `json:"encrypted"`
	PagesRemoved int                `json:"pages_removed"`
	Derivation   *naming.Derivation `json:"-"`
	Err          error              `json:"-"`
}

// Failed returns true if the document could not be processed.
func (r Result) Failed() bool {
	return r.Status == StatusFailed
}

// Summary aggregates the results of one batch run.
type Summary struct {
	RunID     string        `json:"run_id"`
	Directory string        `json:"directory"`
	DryRun    bool          `json:"dry_run"`
	Results   []Result      `json:"results"`
	Duration  time.Duration `json:"duration"`
}

// Count returns the number of results with the given status.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Failures returns the failed results.
func (s *Summary) Failures() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}
