package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrTargetExists is returned when the derived name is already taken by
// another file.
var ErrTargetExists = errors.New("target file already exists")

// ErrInvalidTarget is returned for derived names that are not a plain file
// name inside the folder.
var ErrInvalidTarget = errors.New("invalid target file name")

// Swapped out by tests.
var (
	linkFunc   = os.Link
	renameFunc = os.Rename
)

// targetPath resolves name inside the directory of src. The name comes from
// document text, so separators or dot entries are refused rather than
// followed.
func targetPath(src, name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, name)
	}
	return filepath.Join(filepath.Dir(src), name), nil
}

// Rename moves src to dst without ever replacing an existing file.
//
// The move is a hard link followed by removing src, so a dst that appears
// concurrently makes the link fail instead of being overwritten. On file
// systems without hard links it falls back to checking dst and renaming,
// which leaves a window between the check and the rename. On
// case-insensitive file systems dst may resolve to src itself, which is
// allowed so a case-only rename goes through.
func Rename(src, dst string) error {
	err := linkFunc(src, dst)
	switch {
	case err == nil:
		if err := os.Remove(src); err != nil {
			os.Remove(dst)
			return fmt.Errorf("rename %s: %w", filepath.Base(src), err)
		}
		return nil
	case errors.Is(err, fs.ErrExist):
		if !sameFile(src, dst) {
			return fmt.Errorf("%w: %s", ErrTargetExists, dst)
		}
	}
	return checkedRename(src, dst)
}

// checkedRename renames after making sure dst is free or is src itself.
func checkedRename(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		if !sameFile(src, dst) {
			return fmt.Errorf("%w: %s", ErrTargetExists, dst)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access target: %w", err)
	}

	if err := renameFunc(src, dst); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(src), err)
	}
	return nil
}

func sameFile(a, b string) bool {
	aInfo, err := os.Lstat(a)
	if err != nil {
		return false
	}
	bInfo, err := os.Lstat(b)
	if err != nil {
		return false
	}
	return os.SameFile(aInfo, bInfo)
}
