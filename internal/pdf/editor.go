package pdf

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Editor rewrites PDF files in place using pdfcpu
type Editor struct {
	userPassword  string
	ownerPassword string
}

// NewEditor creates an editor. The passwords are only needed for files
// that do not open without one; most permission-locked exports open with
// empty passwords. Setting both to the same value lets one password serve
// either role.
func NewEditor(userPassword, ownerPassword string) *Editor {
	return &Editor{
		userPassword:  userPassword,
		ownerPassword: ownerPassword,
	}
}

func (e *Editor) configuration() *model.Configuration {
	return newConfiguration(e.userPassword, e.ownerPassword)
}

func newConfiguration(userPW, ownerPW string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.UserPW = userPW
	conf.OwnerPW = ownerPW
	return conf
}

// candidates returns the configurations to open a file with: no passwords
// first, since permission-locked exports need none, then the configured ones.
func (e *Editor) candidates() []*model.Configuration {
	confs := []*model.Configuration{newConfiguration("", "")}
	if e.userPassword != "" || e.ownerPassword != "" {
		confs = append(confs, e.configuration())
	}
	return confs
}

// readContext parses the file with the first configuration that opens it
// and returns that configuration for the rewrite.
func (e *Editor) readContext(path string) (*model.Context, *model.Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var lastErr error
	for _, conf := range e.candidates() {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, nil, err
		}
		ctx, err := api.ReadContext(f, conf)
		if err == nil {
			return ctx, conf, nil
		}
		lastErr = err
	}
	return nil, nil, lastErr
}

// Unlock removes password and permission restrictions from the file at
// path, overwriting it. Files that are not encrypted are rewritten as-is,
// which also drops incremental updates and broken cross references.
func (e *Editor) Unlock(path string) (*UnlockResult, error) {
	ctx, conf, err := e.readContext(path)
	if err != nil {
		return nil, &OpError{Op: "unlock", Path: path, Err: fmt.Errorf("failed to read PDF context: %w", err)}
	}

	result := &UnlockResult{Path: path, Encrypted: ctx.Encrypt != nil}
	if ctx.E != nil {
		result.Restrictions = deniedOperations(int32(ctx.E.P))
	}

	if result.Encrypted {
		err = api.DecryptFile(path, "", conf)
	} else {
		err = api.OptimizeFile(path, "", conf)
	}
	if err != nil {
		return nil, &OpError{Op: "unlock", Path: path, Err: err}
	}

	return result, nil
}

// RemovePages deletes the given 1-based pages from the file at path,
// overwriting it.
func (e *Editor) RemovePages(path string, pages []int) error {
	if len(pages) == 0 {
		return nil
	}

	selected := make([]string, 0, len(pages))
	for _, p := range pages {
		selected = append(selected, strconv.Itoa(p))
	}

	if err := api.RemovePagesFile(path, "", selected, e.configuration()); err != nil {
		return &OpError{Op: "remove_pages", Path: path, Err: err}
	}
	return nil
}

// PageCount returns the number of pages of the file at path
func (e *Editor) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, &OpError{Op: "page_count", Path: path, Err: err}
	}
	return n, nil
}
