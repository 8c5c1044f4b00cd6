package savefile

import (
	"bufio"
	"io"
)

// maxLineSize bounds a single line read by a ScannerSource.
const maxLineSize = 1 << 20

// LineSource produces the lines of a save file one at a time.
// ReadLine returns io.EOF once the input is exhausted; any other error is
// passed through Parse unchanged.
type LineSource interface {
	ReadLine() (string, error)
}

// ScannerSource reads lines from an io.Reader. Line terminators are
// stripped; a trailing "\r" is left for the parser to trim.
type ScannerSource struct {
	sc *bufio.Scanner
}

// NewScannerSource returns a LineSource over r.
func NewScannerSource(r io.Reader) *ScannerSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &ScannerSource{sc: sc}
}

func (s *ScannerSource) ReadLine() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// sliceSource serves lines from memory.
type sliceSource struct {
	lines []string
	next  int
}

// Lines returns a LineSource over an in-memory list of lines.
func Lines(lines []string) LineSource {
	return &sliceSource{lines: lines}
}

func (s *sliceSource) ReadLine() (string, error) {
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	l := s.lines[s.next]
	s.next++
	return l, nil
}
