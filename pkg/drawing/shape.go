package drawing

import "slices"

// Kind enumerates the shape variants a document can hold.
type Kind int

const (
	KindCircle Kind = iota
	KindRectangle
	KindSquiggle
)

// String returns the keyword the save file uses for the kind.
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "Circle"
	case KindRectangle:
		return "Rectangle"
	case KindSquiggle:
		return "Squiggle"
	default:
		return "unknown"
	}
}

// Shape is a drawable value. The set of implementations is closed:
// Circle, Rectangle and Squiggle.
type Shape interface {
	Kind() Kind
	Styling() Style
	shape() // marker method restricting implementations to this package
}

// Circle is a circle given by its centre and radius.
type Circle struct {
	Style
	Centre Point
	Radius int
}

func (Circle) Kind() Kind       { return KindCircle }
func (c Circle) Styling() Style { return c.Style }
func (Circle) shape()           {}

// Rectangle is an axis-aligned rectangle spanned by two opposite corners.
// P1 may be any corner relative to P2.
type Rectangle struct {
	Style
	P1, P2 Point
}

func (Rectangle) Kind() Kind       { return KindRectangle }
func (r Rectangle) Styling() Style { return r.Style }
func (Rectangle) shape()           {}

// Bounds returns the top-left and bottom-right corners.
func (r Rectangle) Bounds() (lo, hi Point) {
	lo = Point{X: min(r.P1.X, r.P2.X), Y: min(r.P1.Y, r.P2.Y)}
	hi = Point{X: max(r.P1.X, r.P2.X), Y: max(r.P1.Y, r.P2.Y)}
	return lo, hi
}

// Squiggle is a freehand polyline. Points are in drawing order.
type Squiggle struct {
	Style
	Points []Point
}

func (Squiggle) Kind() Kind       { return KindSquiggle }
func (s Squiggle) Styling() Style { return s.Style }
func (Squiggle) shape()           {}

func (s Squiggle) clone() Squiggle {
	s.Points = slices.Clone(s.Points)
	return s
}

// equalShapes compares two shapes structurally.
func equalShapes(a, b Shape) bool {
	switch av := a.(type) {
	case Circle:
		bv, ok := b.(Circle)
		return ok && av == bv
	case Rectangle:
		bv, ok := b.(Rectangle)
		return ok && av == bv
	case Squiggle:
		bv, ok := b.(Squiggle)
		return ok && av.Style == bv.Style && slices.Equal(av.Points, bv.Points)
	}
	return false
}
