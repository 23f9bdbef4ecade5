package naming

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Dictionary is a read-only set of known first names. Lookups ignore case
// and diacritics. A Dictionary is never modified after construction, so it
// can be shared freely between goroutines.
type Dictionary struct {
	names map[string]struct{}
}

// NewDictionary builds a dictionary from the given names. Blank entries are skipped.
func NewDictionary(names ...string) *Dictionary {
	d := &Dictionary{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		d.add(name)
	}
	return d
}

// LoadDictionary reads one name per line from path.
// A missing file yields an error wrapping ErrResourceNotFound.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open name dictionary: %w", err)
	}
	defer f.Close()

	d, err := ReadDictionary(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read name dictionary %s: %w", path, err)
	}
	return d, nil
}

// ReadDictionary reads one name per line from r.
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	d := NewDictionary()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		d.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// Contains reports whether name is a known first name.
func (d *Dictionary) Contains(name string) bool {
	if d == nil {
		return false
	}
	key := dictionaryKey(name)
	if key == "" {
		return false
	}
	_, ok := d.names[key]
	return ok
}

// Len returns the number of distinct names.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

func (d *Dictionary) add(name string) {
	if key := dictionaryKey(name); key != "" {
		d.names[key] = struct{}{}
	}
}

func dictionaryKey(name string) string {
	return strings.ToLower(Normalize(strings.TrimSpace(name)))
}
