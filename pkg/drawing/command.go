package drawing

import "fmt"

// Command pairs a shape with its kind. The shape is fixed at construction
// and never changes afterwards.
type Command struct {
	kind  Kind
	shape Shape
}

// NewCommand wraps s in a Command. Squiggle points are copied so later
// changes to the caller's slice do not leak into the command.
func NewCommand(s Shape) Command {
	if sq, ok := s.(Squiggle); ok {
		s = sq.clone()
	}
	return Command{kind: s.Kind(), shape: s}
}

// Kind returns the variant tag of the command's shape.
func (c Command) Kind() Kind {
	return c.kind
}

// Shape returns the command's shape. A Squiggle is returned as a copy.
func (c Command) Shape() Shape {
	if sq, ok := c.shape.(Squiggle); ok {
		return sq.clone()
	}
	return c.shape
}

// IsZero reports whether the command was never constructed.
func (c Command) IsZero() bool {
	return c.shape == nil
}

// Equal reports whether two commands hold structurally equal shapes.
func (c Command) Equal(o Command) bool {
	if c.IsZero() || o.IsZero() {
		return c.IsZero() == o.IsZero()
	}
	return c.kind == o.kind && equalShapes(c.shape, o.shape)
}

func (c Command) String() string {
	switch s := c.shape.(type) {
	case Circle:
		return fmt.Sprintf("Circle[color=%s filled=%t center=%s radius=%d]", s.Color, s.Filled, s.Centre, s.Radius)
	case Rectangle:
		return fmt.Sprintf("Rectangle[color=%s filled=%t p1=%s p2=%s]", s.Color, s.Filled, s.P1, s.P2)
	case Squiggle:
		return fmt.Sprintf("Squiggle[color=%s filled=%t points=%d]", s.Color, s.Filled, len(s.Points))
	}
	return "Command[]"
}
