// Package svg renders drawings as SVG documents using
// github.com/ajstarks/svgo.
package svg

import (
	"fmt"
	"io"

	svgo "github.com/ajstarks/svgo"

	"github.com/chazu/paint/pkg/drawing"
	"github.com/chazu/paint/pkg/render"
)

// Compile-time interface check.
var _ render.Renderer = (*Renderer)(nil)

// Options sets up the canvas.
type Options struct {
	Width, Height int
	// Background fills the canvas before any shape is drawn. Nil leaves it
	// transparent.
	Background *drawing.Color
	// StrokeWidth is used for outlines and squiggles.
	StrokeWidth int
}

// DefaultOptions matches the paint panel: a 300x300 white canvas.
func DefaultOptions() Options {
	white := drawing.RGB(255, 255, 255)
	return Options{Width: 300, Height: 300, Background: &white, StrokeWidth: 1}
}

// Renderer draws shapes onto an SVG canvas. Close must be called to finish
// the document.
type Renderer struct {
	w      *errWriter
	canvas *svgo.SVG
	opts   Options
}

// New starts an SVG document on w.
func New(w io.Writer, opts Options) *Renderer {
	ew := &errWriter{w: w}
	r := &Renderer{w: ew, canvas: svgo.New(ew), opts: opts}
	r.canvas.Start(opts.Width, opts.Height)
	if opts.Background != nil {
		r.canvas.Rect(0, 0, opts.Width, opts.Height, "fill:"+rgb(*opts.Background))
	}
	return r
}

// DrawCircle draws the circle's oval.
func (r *Renderer) DrawCircle(c drawing.Circle) error {
	r.canvas.Circle(c.Centre.X, c.Centre.Y, c.Radius, r.style(c.Style))
	return r.w.err
}

// DrawRectangle draws the rectangle spanned by its normalized corners.
func (r *Renderer) DrawRectangle(rc drawing.Rectangle) error {
	x, y, w, h := render.Rect(rc)
	r.canvas.Rect(x, y, w, h, r.style(rc.Style))
	return r.w.err
}

// DrawSquiggle draws the polyline through the squiggle's points. Squiggles
// are always stroked; the filled flag does not apply to open paths.
func (r *Renderer) DrawSquiggle(s drawing.Squiggle) error {
	if len(s.Points) == 0 {
		return r.w.err
	}
	xs := make([]int, len(s.Points))
	ys := make([]int, len(s.Points))
	for i, p := range s.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	r.canvas.Polyline(xs, ys, r.stroke(s.Color))
	return r.w.err
}

// Close ends the SVG document and reports the first write error.
func (r *Renderer) Close() error {
	r.canvas.End()
	return r.w.err
}

func (r *Renderer) style(st drawing.Style) string {
	if st.Filled {
		return "fill:" + rgb(st.Color)
	}
	return r.stroke(st.Color)
}

func (r *Renderer) stroke(c drawing.Color) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", rgb(c), r.opts.StrokeWidth)
}

func rgb(c drawing.Color) string {
	n := c.NRGBA()
	return fmt.Sprintf("rgb(%d,%d,%d)", n.R, n.G, n.B)
}

// Write renders doc as a complete SVG document on w.
func Write(w io.Writer, doc *drawing.Document, opts Options) error {
	r := New(w, opts)
	if err := render.Render(doc, r); err != nil {
		return fmt.Errorf("svg: %w", err)
	}
	if err := r.Close(); err != nil {
		return fmt.Errorf("svg: %w", err)
	}
	return nil
}

// errWriter remembers the first write error. svgo writes without
// reporting errors, so the renderer checks this after each shape.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
