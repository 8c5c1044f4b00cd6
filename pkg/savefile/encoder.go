package savefile

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/paint/pkg/drawing"
)

// LineSink consumes encoded lines. Errors are returned by Encode unchanged.
type LineSink interface {
	WriteLine(line string) error
}

// WriterSink writes newline-terminated lines through a buffer.
// Flush must be called once writing is complete.
type WriterSink struct {
	w *bufio.Writer
}

// NewWriterSink returns a LineSink over w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

func (s *WriterSink) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Flush writes any buffered data to the underlying writer.
func (s *WriterSink) Flush() error {
	return s.w.Flush()
}

// lineBuffer collects lines in memory.
type lineBuffer struct {
	lines []string
}

func (b *lineBuffer) WriteLine(line string) error {
	b.lines = append(b.lines, line)
	return nil
}

// EncodeOptions controls the layout of encoded files. Layout never affects
// what a file parses to.
type EncodeOptions struct {
	// Indent is repeated once per nesting level for attribute lines.
	Indent string
}

// DefaultEncodeOptions indents with one tab per level.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Indent: "\t"}
}

// Encoder writes documents in save file format.
type Encoder struct {
	sink *WriterSink
	opts EncodeOptions
}

// NewEncoder returns an Encoder writing to w with DefaultEncodeOptions.
func NewEncoder(w io.Writer) *Encoder {
	return NewEncoderWithOptions(w, DefaultEncodeOptions())
}

// NewEncoderWithOptions returns an Encoder writing to w.
func NewEncoderWithOptions(w io.Writer, opts EncodeOptions) *Encoder {
	return &Encoder{sink: NewWriterSink(w), opts: opts}
}

// Encode writes doc and flushes the underlying writer.
func (e *Encoder) Encode(doc *drawing.Document) error {
	if err := encode(doc, e.sink, e.opts); err != nil {
		return err
	}
	return e.sink.Flush()
}

// EncodeTo writes doc line by line to sink with DefaultEncodeOptions.
func EncodeTo(doc *drawing.Document, sink LineSink) error {
	return encode(doc, sink, DefaultEncodeOptions())
}

// EncodeLines returns the lines of doc's save file, without terminators.
func EncodeLines(doc *drawing.Document) []string {
	var b lineBuffer
	_ = encode(doc, &b, DefaultEncodeOptions()) // lineBuffer never fails
	return b.lines
}

// EncodeString returns doc's save file as a single newline-terminated string.
func EncodeString(doc *drawing.Document) string {
	var sb strings.Builder
	for _, l := range EncodeLines(doc) {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func encode(doc *drawing.Document, sink LineSink, opts EncodeOptions) error {
	w := lineWriter{sink: sink, indent: opts.Indent}
	w.line(0, TokFileStart.Syntax())
	for _, c := range doc.Commands() {
		encodeCommand(&w, c)
	}
	w.line(0, TokFileEnd.Syntax())
	return w.err
}

func encodeCommand(w *lineWriter, c drawing.Command) {
	s := c.Shape()
	st := s.Styling()

	w.line(0, c.Kind().String())
	w.line(1, "color:"+itoa(st.Color.R)+","+itoa(st.Color.G)+","+itoa(st.Color.B))
	w.line(1, "filled:"+strconv.FormatBool(st.Filled))

	switch v := s.(type) {
	case drawing.Circle:
		w.line(1, "center:"+pair(v.Centre))
		w.line(1, "radius:"+itoa(v.Radius))
	case drawing.Rectangle:
		w.line(1, "p1:"+pair(v.P1))
		w.line(1, "p2:"+pair(v.P2))
	case drawing.Squiggle:
		w.line(1, TokPointsStart.Syntax())
		for _, p := range v.Points {
			w.line(2, "point:"+pair(p))
		}
		w.line(1, TokPointsEnd.Syntax())
	}

	w.line(0, "End "+c.Kind().String())
}

// lineWriter remembers the first sink error and drops everything after it.
type lineWriter struct {
	sink   LineSink
	indent string
	err    error
}

func (w *lineWriter) line(depth int, s string) {
	if w.err != nil {
		return
	}
	w.err = w.sink.WriteLine(strings.Repeat(w.indent, depth) + s)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func pair(p drawing.Point) string {
	return "(" + itoa(p.X) + "," + itoa(p.Y) + ")"
}
