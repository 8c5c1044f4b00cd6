// Package pdf renders drawings as single-page PDF documents using
// github.com/jung-kurt/gofpdf. Drawing units are points, so one drawing
// unit maps to one PDF point with the origin at the top-left corner.
package pdf

import (
	"errors"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/chazu/paint/pkg/drawing"
	"github.com/chazu/paint/pkg/render"
)

// Compile-time interface check.
var _ render.Renderer = (*Renderer)(nil)

// Options sets up the page.
type Options struct {
	Width, Height float64
	LineWidth     float64
	// Compress enables stream compression. Tests turn it off to inspect
	// the content stream.
	Compress bool
}

// DefaultOptions matches the paint panel: a 300x300 page.
func DefaultOptions() Options {
	return Options{Width: 300, Height: 300, LineWidth: 1, Compress: true}
}

// Renderer draws shapes onto a single PDF page.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// New creates a document with one blank page.
func New(opts Options) *Renderer {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: opts.Width, Ht: opts.Height},
	})
	p.SetCompression(opts.Compress)
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineWidth(opts.LineWidth)
	return &Renderer{pdf: p}
}

// DrawCircle draws the circle filled or outlined by its filled flag.
func (r *Renderer) DrawCircle(c drawing.Circle) error {
	r.setColor(c.Color)
	r.pdf.Circle(float64(c.Centre.X), float64(c.Centre.Y), float64(c.Radius), styleStr(c.Filled))
	return r.pdf.Error()
}

// DrawRectangle draws the rectangle spanned by its normalized corners.
func (r *Renderer) DrawRectangle(rc drawing.Rectangle) error {
	x, y, w, h := render.Rect(rc)
	r.setColor(rc.Color)
	r.pdf.Rect(float64(x), float64(y), float64(w), float64(h), styleStr(rc.Filled))
	return r.pdf.Error()
}

// DrawSquiggle strokes one line per consecutive pair of points.
func (r *Renderer) DrawSquiggle(s drawing.Squiggle) error {
	r.setColor(s.Color)
	for i := 1; i < len(s.Points); i++ {
		a, b := s.Points[i-1], s.Points[i]
		r.pdf.Line(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
	}
	return r.pdf.Error()
}

// Output writes the finished document to w. The renderer cannot be drawn
// on afterwards.
func (r *Renderer) Output(w io.Writer) error {
	if err := r.pdf.Output(w); err != nil {
		return err
	}
	if r.pdf.Err() {
		return r.pdf.Error()
	}
	return nil
}

func (r *Renderer) setColor(c drawing.Color) {
	n := c.NRGBA()
	r.pdf.SetDrawColor(int(n.R), int(n.G), int(n.B))
	r.pdf.SetFillColor(int(n.R), int(n.G), int(n.B))
}

func styleStr(filled bool) string {
	if filled {
		return "F"
	}
	return "D"
}

// ErrEmptyPage is returned for a page without area.
var ErrEmptyPage = errors.New("pdf: page width and height must be positive")

// Write renders doc as a PDF document on w.
func Write(w io.Writer, doc *drawing.Document, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return ErrEmptyPage
	}
	r := New(opts)
	if err := render.Render(doc, r); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	if err := r.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}
