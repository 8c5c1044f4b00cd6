// Package outline walks a drawing through a geometry kernel and produces
// one region per command. The regions answer geometric questions about
// the drawing: its extent and which shape lies under a point.
package outline

import (
	"fmt"
	"math"

	"github.com/chazu/paint/pkg/drawing"
	"github.com/chazu/paint/pkg/kernel"
)

// Part is the traced geometry of one command.
type Part struct {
	Index  int // position in the document
	Kind   drawing.Kind
	Filled bool
	// Region is nil for commands that cover nothing, such as a squiggle
	// without points.
	Region kernel.Region
}

// Options controls tracing.
type Options struct {
	// StrokeWidth is the thickness of squiggle lines.
	StrokeWidth float64
	// OffsetX and OffsetY shift every region, e.g. to move from drawing
	// coordinates into a viewport.
	OffsetX, OffsetY float64
}

// DefaultOptions traces one-unit strokes with no offset, the way the
// paint panel draws.
func DefaultOptions() Options {
	return Options{StrokeWidth: 1}
}

// Trace walks doc and produces one part per command, in document order,
// using the provided geometry kernel. The document is never mutated.
func Trace(doc *drawing.Document, k kernel.Kernel) ([]Part, error) {
	return TraceWithOptions(doc, k, DefaultOptions())
}

// TraceWithOptions is Trace with explicit options.
func TraceWithOptions(doc *drawing.Document, k kernel.Kernel, opts Options) ([]Part, error) {
	cmds := doc.Commands()
	parts := make([]Part, 0, len(cmds))
	for i, c := range cmds {
		region, err := traceShape(k, c.Shape(), opts.StrokeWidth)
		if err != nil {
			return nil, fmt.Errorf("outline: command %d (%s): %w", i, c.Kind(), err)
		}
		if region != nil && (opts.OffsetX != 0 || opts.OffsetY != 0) {
			region = k.Translate(region, opts.OffsetX, opts.OffsetY)
		}
		parts = append(parts, Part{
			Index:  i,
			Kind:   c.Kind(),
			Filled: c.Shape().Styling().Filled,
			Region: region,
		})
	}
	return parts, nil
}

// traceShape creates the region for a single shape.
func traceShape(k kernel.Kernel, s drawing.Shape, width float64) (kernel.Region, error) {
	switch v := s.(type) {
	case drawing.Circle:
		return k.Circle(float64(v.Centre.X), float64(v.Centre.Y), float64(v.Radius))
	case drawing.Rectangle:
		return k.Box(float64(v.P1.X), float64(v.P1.Y), float64(v.P2.X), float64(v.P2.Y))
	case drawing.Squiggle:
		return traceSquiggle(k, v.Points, width)
	default:
		return nil, fmt.Errorf("unsupported shape %T", s)
	}
}

// traceSquiggle unions one stroke per segment. A single point becomes a
// dot of the stroke width.
func traceSquiggle(k kernel.Kernel, pts []drawing.Point, width float64) (kernel.Region, error) {
	switch len(pts) {
	case 0:
		return nil, nil
	case 1:
		p := pts[0]
		return k.Stroke(float64(p.X), float64(p.Y), float64(p.X), float64(p.Y), width)
	}
	strokes := make([]kernel.Region, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		s, err := k.Stroke(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y), width)
		if err != nil {
			return nil, err
		}
		strokes = append(strokes, s)
	}
	return k.Union(strokes...)
}

// Bounds returns the box holding every traced part. ok is false when no
// part covers anything.
func Bounds(parts []Part) (b kernel.Bounds, ok bool) {
	for _, p := range parts {
		if p.Region == nil {
			continue
		}
		if !ok {
			b, ok = p.Region.Bounds(), true
			continue
		}
		b = b.Union(p.Region.Bounds())
	}
	return b, ok
}

// Hit reports whether (x, y) is within tol of the part as drawn. Filled
// shapes are hit anywhere inside; outlined circles and rectangles only
// near their edge.
func (p Part) Hit(x, y, tol float64) bool {
	if p.Region == nil {
		return false
	}
	d := p.Region.Distance(x, y)
	if p.Filled || p.Kind == drawing.KindSquiggle {
		return d <= tol
	}
	return math.Abs(d) <= tol
}

// Pick returns the index of the topmost part hit at (x, y). Later commands
// are drawn over earlier ones, so the search runs from the top down.
func Pick(parts []Part, x, y, tol float64) (int, bool) {
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i].Hit(x, y, tol) {
			return parts[i].Index, true
		}
	}
	return -1, false
}
