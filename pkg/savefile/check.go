package savefile

import (
	"errors"
	"fmt"

	"github.com/chazu/paint/pkg/drawing"
)

// wideMax is the largest number wideInt can match.
const wideMax = 999999999

// ErrUnrepresentable reports a document the encoder would write but the
// parser could not read back.
var ErrUnrepresentable = errors.New("savefile: value cannot be stored")

// MaxValue returns the largest integer the grammar selected by o accepts.
func (o Options) MaxValue() int {
	if o.WideIntegers {
		return wideMax
	}
	return drawing.MaxValue
}

// RangeError names the first number in a document outside 0..Max.
type RangeError struct {
	Index int // command index
	Kind  drawing.Kind
	Field string
	Value int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("savefile: command %d (%s): %s %d outside 0-%d", e.Index, e.Kind, e.Field, e.Value, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrUnrepresentable }

// Representable reports whether Encode output for doc parses back under
// opts. The encoder itself writes any document; callers that save files
// check first.
func Representable(doc *drawing.Document, opts Options) error {
	limit := opts.MaxValue()
	for i, c := range doc.Commands() {
		var fields []field
		col := c.Shape().Styling().Color
		fields = append(fields, field{"red", col.R}, field{"green", col.G}, field{"blue", col.B})
		switch s := c.Shape().(type) {
		case drawing.Circle:
			fields = append(fields, pointFields("center", s.Centre)...)
			fields = append(fields, field{"radius", s.Radius})
		case drawing.Rectangle:
			fields = append(fields, pointFields("p1", s.P1)...)
			fields = append(fields, pointFields("p2", s.P2)...)
		case drawing.Squiggle:
			for j, p := range s.Points {
				fields = append(fields, pointFields(fmt.Sprintf("point %d", j), p)...)
			}
		}
		for _, f := range fields {
			if f.value < 0 || f.value > limit {
				return &RangeError{Index: i, Kind: c.Kind(), Field: f.name, Value: f.value, Max: limit}
			}
		}
	}
	return nil
}

type field struct {
	name  string
	value int
}

func pointFields(name string, p drawing.Point) []field {
	return []field{{name + " x", p.X}, {name + " y", p.Y}}
}
