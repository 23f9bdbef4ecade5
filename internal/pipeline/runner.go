package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/a3tai/ekho-renamer/internal/logger"
	"github.com/a3tai/ekho-renamer/internal/naming"
	"github.com/a3tai/ekho-renamer/internal/pdf"
)

// DefaultMarker is the heading of the weekly certification page.
const DefaultMarker = "HETI TELJESÍTÉSI IGAZOLÁS"

// Options controls a Runner.
type Options struct {
	// Marker identifies the pages to strip. Defaults to DefaultMarker.
	Marker string
	// KeepCertification skips page stripping.
	KeepCertification bool
	// DryRun derives names from a scratch copy and leaves the folder untouched.
	DryRun bool
}

// Runner processes the PDFs of a folder one after another.
type Runner struct {
	docs Documents
	dict *naming.Dictionary
	opts Options
}

// NewRunner creates a runner. The dictionary is shared read-only by every
// document of every run.
func NewRunner(docs Documents, dict *naming.Dictionary, opts Options) (*Runner, error) {
	if docs == nil {
		return nil, fmt.Errorf("documents cannot be nil")
	}
	if dict == nil {
		return nil, fmt.Errorf("name dictionary cannot be nil")
	}
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}
	return &Runner{docs: docs, dict: dict, opts: opts}, nil
}

// Run processes every PDF directly inside directory. It stops early only
// when ctx is cancelled, and never in the middle of a document.
func (r *Runner) Run(ctx context.Context, directory string) (*Summary, error) {
	start := time.Now()

	runID, ok := logger.RunIDFromContext(ctx)
	if !ok {
		runID = logger.GenerateRunID()
		ctx = logger.WithRunID(ctx, runID)
	}
	log := logger.FromContext(ctx)

	files, err := r.docs.FindPDFs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to list PDF files: %w", err)
	}

	summary := &Summary{
		RunID:     runID,
		Directory: directory,
		DryRun:    r.opts.DryRun,
		Results:   make([]Result, 0, len(files)),
	}
	log.Info("processing folder", "dir", directory, "files", len(files), "dry_run", r.opts.DryRun)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}
		summary.Results = append(summary.Results, r.ProcessFile(ctx, file))
	}

	summary.Duration = time.Since(start)
	log.Info("folder done",
		"renamed", summary.Count(StatusRenamed),
		"unchanged", summary.Count(StatusUnchanged),
		"dry_run", summary.Count(StatusDryRun),
		"failed", summary.Count(StatusFailed),
		"duration", summary.Duration)

	return summary, nil
}

// ProcessFile runs one document through unlock, strip, extract, derive and
// rename. Failures are reported in the Result, never returned.
func (r *Runner) ProcessFile(ctx context.Context, file pdf.FileInfo) Result {
	log := logger.FromContext(ctx).With("file", file.Name)
	result := Result{Path: file.Path, Name: file.Name}

	fail := func(stage Stage, err error) Result {
		result.Status = StatusFailed
		result.Err = &DocumentError{Path: file.Path, Stage: stage, Err: err}
		log.Error("failed to process", "stage", stage, "error", err)
		return result
	}

	workPath := file.Path
	if r.opts.DryRun {
		scratch, err := scratchCopy(file.Path)
		if err != nil {
			return fail(StageUnlock, err)
		}
		defer os.Remove(scratch)
		workPath = scratch
	}

	unlocked, err := r.docs.Unlock(workPath)
	if err != nil {
		return fail(StageUnlock, err)
	}
	result.Encrypted = unlocked.Encrypted
	log.Info("unlocked PDF", "encrypted", unlocked.Encrypted, "restrictions", unlocked.Restrictions)

	if !r.opts.KeepCertification {
		stripped, err := r.docs.StripPages(workPath, r.opts.Marker)
		if err != nil {
			return fail(StageStrip, err)
		}
		if stripped.Removed() {
			result.PagesRemoved = len(stripped.RemovedPages)
			log.Info("certification page removed", "pages", stripped.RemovedPages)
		}
	}

	text, err := r.docs.ExtractText(workPath)
	if err != nil {
		return fail(StageExtract, err)
	}

	derivation, err := naming.Derive(text, r.dict)
	if err != nil {
		return fail(StageDerive, err)
	}
	result.Derivation = derivation
	result.NewName = derivation.Filename

	if r.opts.DryRun {
		result.Status = StatusDryRun
		log.Info("would rename", "new_name", derivation.Filename)
		return result
	}

	if derivation.Filename == file.Name {
		result.Status = StatusUnchanged
		log.Info("already named", "new_name", derivation.Filename)
		return result
	}

	target, err := targetPath(file.Path, derivation.Filename)
	if err != nil {
		return fail(StageRename, err)
	}
	if err := Rename(file.Path, target); err != nil {
		return fail(StageRename, err)
	}

	result.Status = StatusRenamed
	log.Info("renamed", "new_name", derivation.Filename)
	return result
}

// scratchCopy copies src to a temporary file so dry runs can unlock and
// strip without touching the original.
func scratchCopy(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("cannot open source: %w", err)
	}
	defer in.Close()

	out, err := os.CreateTemp("", "ekho-*"+filepath.Ext(src))
	if err != nil {
		return "", fmt.Errorf("cannot create scratch copy: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("cannot write scratch copy: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("cannot write scratch copy: %w", err)
	}
	return out.Name(), nil
}
