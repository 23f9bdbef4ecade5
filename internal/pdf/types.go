package pdf

import "fmt"

// FileInfo describes a PDF file found in the working folder
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// UnlockResult reports what Unlock did to a file
type UnlockResult struct {
	Path      string `json:"path"`
	Encrypted bool   `json:"encrypted"`
	// Restrictions lists the operations the file's permissions denied
	// before it was unlocked
	Restrictions []string `json:"restrictions,omitempty"`
}

// StripResult reports which pages StripPages removed (1-based)
type StripResult struct {
	Path         string `json:"path"`
	RemovedPages []int  `json:"removed_pages,omitempty"`
	PageCount    int    `json:"page_count"`
}

// Removed returns true if at least one page was removed
func (r *StripResult) Removed() bool {
	return r != nil && len(r.RemovedPages) > 0
}

// OpError records a failed PDF operation and the file it ran on
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("pdf %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
