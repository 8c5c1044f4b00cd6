package drawing

import "fmt"

// ValidationSeverity indicates whether a finding makes the document
// unrenderable or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // value outside what a renderer accepts
	SeverityWarning                           // drawable, but probably not intended
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Index    int // position of the command in the document
	Kind     Kind
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] command %d (%s): %s", e.Severity, e.Index, e.Kind, e.Message)
}

// MaxValue is the largest coordinate or radius a legacy save file can hold.
const MaxValue = 999

// Validate checks what the save file grammar cannot: color channel range,
// radius sign and degenerate geometry. Coordinates and radii outside
// 0..MaxValue are errors because a save file cannot hold them. It never
// mutates the document. An empty result means the document is clean.
func Validate(d *Document) []ValidationError {
	return ValidateWithLimit(d, MaxValue)
}

// ValidateWithLimit is Validate with limit as the largest storable number.
func ValidateWithLimit(d *Document, limit int) []ValidationError {
	var errs []ValidationError
	for i, c := range d.Commands() {
		errs = append(errs, validateCommand(i, c, limit)...)
	}
	return errs
}

// HasErrors reports whether any finding has SeverityError.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

func validateCommand(i int, c Command, limit int) []ValidationError {
	var errs []ValidationError
	add := func(sev ValidationSeverity, format string, args ...any) {
		errs = append(errs, ValidationError{
			Index:    i,
			Kind:     c.Kind(),
			Message:  fmt.Sprintf(format, args...),
			Severity: sev,
		})
	}

	s := c.Shape()
	if col := s.Styling().Color; !col.Valid() {
		add(SeverityError, "color %s has a channel outside 0-255", col)
	}

	inRange := func(p Point) bool { return p.X >= 0 && p.X <= limit && p.Y >= 0 && p.Y <= limit }
	checkPoint := func(name string, p Point) {
		if !inRange(p) {
			add(SeverityError, "%s %s outside 0-%d", name, p, limit)
		}
	}

	switch v := s.(type) {
	case Circle:
		checkPoint("center", v.Centre)
		switch {
		case v.Radius < 0:
			add(SeverityError, "negative radius %d", v.Radius)
		case v.Radius > limit:
			add(SeverityError, "radius %d outside 0-%d", v.Radius, limit)
		case v.Radius == 0:
			add(SeverityWarning, "zero radius")
		}
	case Rectangle:
		checkPoint("p1", v.P1)
		checkPoint("p2", v.P2)
		if v.P1.X == v.P2.X || v.P1.Y == v.P2.Y {
			add(SeverityWarning, "zero-area rectangle %s-%s", v.P1, v.P2)
		}
	case Squiggle:
		for j, p := range v.Points {
			checkPoint(fmt.Sprintf("point %d", j), p)
		}
		if len(v.Points) < 2 {
			add(SeverityWarning, "squiggle has %d point(s), nothing to draw", len(v.Points))
		}
	}
	return errs
}
