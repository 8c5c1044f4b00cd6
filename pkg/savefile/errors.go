package savefile

import (
	"fmt"
	"strings"

	"github.com/chazu/paint/pkg/drawing"
)

// ErrorKind classifies a SyntaxError.
type ErrorKind int

const (
	// ErrUnexpectedLine: the line does not match what the parser expects next.
	ErrUnexpectedLine ErrorKind = iota
	// ErrShapeMismatch: an End sentinel closes a different shape than the open one.
	ErrShapeMismatch
	// ErrUnexpectedEOF: input ended before End Paint Save File.
	ErrUnexpectedEOF
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedLine:
		return "unexpected line"
	case ErrShapeMismatch:
		return "shape mismatch"
	case ErrUnexpectedEOF:
		return "unexpected end of file"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// SyntaxError reports the first line of a save file that could not be
// accepted. Line is 1-based and counts every line read, including the
// file start line. For ErrUnexpectedEOF it is the line after the last one.
type SyntaxError struct {
	Line     int
	Kind     ErrorKind
	Expected []Token
	Text     string // offending line, trimmed; empty at end of file

	// Open and Closed are set for ErrShapeMismatch.
	Open   drawing.Kind
	Closed drawing.Kind
}

func (e *SyntaxError) Error() string {
	want := e.expectation()
	switch e.Kind {
	case ErrUnexpectedEOF:
		return fmt.Sprintf("line %d: unexpected end of file, expected %s", e.Line, want)
	case ErrShapeMismatch:
		return fmt.Sprintf("line %d: expected %s, got %q: it closes a %s but a %s is open",
			e.Line, want, e.Text, e.Closed, e.Open)
	default:
		return fmt.Sprintf("line %d: expected %s, got %q", e.Line, want, e.Text)
	}
}

func (e *SyntaxError) expectation() string {
	parts := make([]string, len(e.Expected))
	for i, t := range e.Expected {
		parts[i] = t.String()
	}
	return strings.Join(parts, " or ")
}

// Expects reports whether t is among the tokens the parser would have accepted.
func (e *SyntaxError) Expects(t Token) bool {
	for _, x := range e.Expected {
		if x == t {
			return true
		}
	}
	return false
}
