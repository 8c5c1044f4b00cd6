// Package render turns a drawing.Document into drawing instructions for
// a Renderer. Each command produces exactly one instruction, in document
// order, so later commands paint over earlier ones.
package render

import (
	"errors"
	"fmt"

	"github.com/chazu/paint/pkg/drawing"
)

// Renderer receives one call per command. Implementations own the drawing
// surface; this package never inspects it.
type Renderer interface {
	DrawCircle(c drawing.Circle) error
	DrawRectangle(r drawing.Rectangle) error
	DrawSquiggle(s drawing.Squiggle) error
}

// Render dispatches every command of doc to r in order. It stops at the
// first renderer error, which is wrapped with the command index.
func Render(doc *drawing.Document, r Renderer) error {
	for i, c := range doc.Commands() {
		if err := Draw(c, r); err != nil {
			return fmt.Errorf("render: command %d (%s): %w", i, c.Kind(), err)
		}
	}
	return nil
}

// Draw issues the instruction for a single command.
func Draw(c drawing.Command, r Renderer) error {
	switch s := c.Shape().(type) {
	case drawing.Circle:
		return r.DrawCircle(s)
	case drawing.Rectangle:
		return r.DrawRectangle(s)
	case drawing.Squiggle:
		return r.DrawSquiggle(s)
	case nil:
		return errors.New("empty command")
	default:
		return fmt.Errorf("unsupported shape %T", s)
	}
}

// Oval returns the bounding box a circle is drawn in: the top-left corner
// and the width and height, matching the usual oval primitive of 2D canvases.
func Oval(c drawing.Circle) (x, y, w, h int) {
	return c.Centre.X - c.Radius, c.Centre.Y - c.Radius, 2 * c.Radius, 2 * c.Radius
}

// Rect returns the top-left corner and size of a rectangle with its corners
// normalized.
func Rect(r drawing.Rectangle) (x, y, w, h int) {
	lo, hi := r.Bounds()
	return lo.X, lo.Y, hi.X - lo.X, hi.Y - lo.Y
}
