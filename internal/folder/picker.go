// Package folder chooses the folder a batch run works on.
package folder

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// Picker resolves the input folder: the configured one if set, otherwise
// whatever the user types at an interactive prompt. Without a terminal and
// without configuration there is no selection.
type Picker struct {
	configured  string
	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewPicker creates a picker reading answers from stdin.
func NewPicker(configured string) *Picker {
	return &Picker{
		configured:  configured,
		in:          os.Stdin,
		out:         os.Stderr,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewPromptPicker creates a picker that always prompts on in/out.
func NewPromptPicker(in io.Reader, out io.Writer) *Picker {
	return &Picker{in: in, out: out, interactive: true}
}

// Pick returns the selected folder as an absolute path. ok is false when
// nothing was selected.
func (p *Picker) Pick() (dir string, ok bool, err error) {
	dir = strings.TrimSpace(p.configured)
	if dir == "" {
		if !p.interactive {
			return "", false, nil
		}
		dir, err = p.prompt()
		if err != nil {
			return "", false, err
		}
		if dir == "" {
			return "", false, nil
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve folder: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", false, fmt.Errorf("cannot access folder %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", false, fmt.Errorf("not a folder: %s", abs)
	}

	return abs, true, nil
}

func (p *Picker) prompt() (string, error) {
	fmt.Fprint(p.out, "Select input folder containing PDFs (empty to cancel): ")

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read folder: %w", err)
	}

	// Paths dragged into a terminal arrive quoted.
	return strings.Trim(strings.TrimSpace(line), `"'`), nil
}
