package savefile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chazu/paint/pkg/drawing"
)

// ParseReader parses a save file read from r.
func ParseReader(r io.Reader) (*drawing.Document, error) {
	return Parse(NewScannerSource(r))
}

// ParseString parses a save file held in memory.
func ParseString(s string) (*drawing.Document, error) {
	return ParseReader(strings.NewReader(s))
}

// ParseFile opens path, parses it and closes it on every exit path.
// Syntax errors are returned unwrapped so callers can type-assert them.
func ParseFile(path string) (*drawing.Document, error) {
	return ParseFileWithOptions(path, DefaultOptions())
}

// ParseFileWithOptions is ParseFile with explicit parser options.
func ParseFileWithOptions(path string, opts Options) (*drawing.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("savefile: open %s: %w", path, err)
	}
	defer f.Close()

	return ParseWithOptions(NewScannerSource(f), opts)
}

// WriteFile encodes doc into path, creating or truncating it. The file is
// closed on every exit path and a failed close is reported.
func WriteFile(path string, doc *drawing.Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("savefile: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("savefile: close %s: %w", path, cerr)
		}
	}()

	if err := NewEncoder(f).Encode(doc); err != nil {
		return fmt.Errorf("savefile: write %s: %w", path, err)
	}
	return nil
}
