package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/paint/pkg/drawing"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms drawing scripts before passing them to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: clear-canvas -> clear_canvas
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpColor wraps a drawing.Color so it can be passed between builtins.
type sexpColor struct {
	c drawing.Color
}

func (c *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(rgb %d %d %d)", c.c.R, c.c.G, c.c.B)
}
func (c *sexpColor) Type() *zygo.RegisteredType { return nil }

// sexpPoint wraps a drawing.Point.
type sexpPoint struct {
	p drawing.Point
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point %d %d)", p.p.X, p.p.Y)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpCommandRef is returned by the shape builtins. It records where the
// command landed in the document.
type sexpCommandRef struct {
	index int
	kind  drawing.Kind
}

func (r *sexpCommandRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s #%d)", strings.ToLower(r.kind.String()), r.index)
}
func (r *sexpCommandRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// unknownKeywords reports the first keyword not in allowed. Misspelled
// keywords would otherwise silently fall back to defaults.
func (pa kwArgs) unknownKeywords(allowed ...string) error {
	for name := range pa.kw {
		known := false
		for _, a := range allowed {
			if name == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown keyword :%s", name)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toInt extracts an int from a Sexp. Floats are accepted only when they
// hold a whole number.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		if v.Val < math.MinInt32 || v.Val > math.MaxInt32 {
			return 0, fmt.Errorf("integer %d out of range", v.Val)
		}
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val != math.Trunc(v.Val) || math.Abs(v.Val) > math.MaxInt32 {
			return 0, fmt.Errorf("expected whole number, got %v", v.Val)
		}
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toColor extracts a Color from a sexpColor.
func toColor(s zygo.Sexp) (drawing.Color, error) {
	if c, ok := s.(*sexpColor); ok {
		return c.c, nil
	}
	return drawing.Color{}, fmt.Errorf("expected color, got %T (%s)", s, s.SexpString(nil))
}

// toPoint extracts a Point from a sexpPoint.
func toPoint(s zygo.Sexp) (drawing.Point, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.p, nil
	}
	return drawing.Point{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// styleArgs reads the :color and :filled keywords shared by every shape.
// Shapes default to black and unfilled.
func styleArgs(fn string, pa kwArgs) (drawing.Style, error) {
	var st drawing.Style
	if v, ok := pa.kw["color"]; ok {
		c, err := toColor(v)
		if err != nil {
			return st, fmt.Errorf("%s: color: %w", fn, err)
		}
		st.Color = c
	}
	if v, ok := pa.kw["filled"]; ok {
		b, err := toBool(v)
		if err != nil {
			return st, fmt.Errorf("%s: filled: %w", fn, err)
		}
		st.Filled = b
	}
	return st, nil
}

// pointArg reads a required point keyword.
func pointArg(fn, key string, pa kwArgs) (drawing.Point, error) {
	v, ok := pa.kw[key]
	if !ok {
		return drawing.Point{}, fmt.Errorf("%s requires :%s", fn, key)
	}
	p, err := toPoint(v)
	if err != nil {
		return drawing.Point{}, fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	return p, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all drawing builtins into a zygomys environment.
// The builtins operate on the provided Document, appending one command per
// shape call in evaluation order.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, doc *drawing.Document) {

	add := func(s drawing.Shape) zygo.Sexp {
		doc.Add(s)
		return &sexpCommandRef{index: doc.Len() - 1, kind: s.Kind()}
	}

	// -----------------------------------------------------------------------
	// (rgb 255 0 0)
	// -----------------------------------------------------------------------
	env.AddFunction("rgb", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("rgb requires exactly 3 arguments, got %d", len(args))
		}
		var ch [3]int
		for i, label := range []string{"red", "green", "blue"} {
			v, err := toInt(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rgb: %s: %w", label, err)
			}
			if v < 0 || v > 255 {
				return zygo.SexpNull, fmt.Errorf("rgb: %s %d outside 0..255", label, v)
			}
			ch[i] = v
		}
		return &sexpColor{c: drawing.RGB(ch[0], ch[1], ch[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (point 10 20)
	// -----------------------------------------------------------------------
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("point requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: x: %w", err)
		}
		y, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: y: %w", err)
		}
		return &sexpPoint{p: drawing.Pt(x, y)}, nil
	})

	// -----------------------------------------------------------------------
	// (circle :color (rgb 255 0 0) :filled true :center (point 10 20) :radius 5)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.unknownKeywords("color", "filled", "center", "radius"); err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		st, err := styleArgs("circle", pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		centre, err := pointArg("circle", "center", pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		v, ok := pa.kw["radius"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("circle requires :radius")
		}
		r, err := toInt(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
		}
		if r < 0 {
			return zygo.SexpNull, fmt.Errorf("circle: radius %d is negative", r)
		}
		return add(drawing.Circle{Style: st, Centre: centre, Radius: r}), nil
	})

	// -----------------------------------------------------------------------
	// (rectangle :color (rgb 0 255 0) :p1 (point 0 0) :p2 (point 40 30))
	// -----------------------------------------------------------------------
	env.AddFunction("rectangle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.unknownKeywords("color", "filled", "p1", "p2"); err != nil {
			return zygo.SexpNull, fmt.Errorf("rectangle: %w", err)
		}
		st, err := styleArgs("rectangle", pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		p1, err := pointArg("rectangle", "p1", pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		p2, err := pointArg("rectangle", "p2", pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		return add(drawing.Rectangle{Style: st, P1: p1, P2: p2}), nil
	})

	// -----------------------------------------------------------------------
	// (squiggle :color (rgb 0 0 255) :points (list (point 1 2) (point 3 4)))
	// -----------------------------------------------------------------------
	env.AddFunction("squiggle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.unknownKeywords("color", "filled", "points"); err != nil {
			return zygo.SexpNull, fmt.Errorf("squiggle: %w", err)
		}
		st, err := styleArgs("squiggle", pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		pts := []drawing.Point{}
		if v, ok := pa.kw["points"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("squiggle: points: %w", err)
			}
			for i, item := range items {
				p, err := toPoint(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("squiggle: point %d: %w", i, err)
				}
				pts = append(pts, p)
			}
		}
		return add(drawing.Squiggle{Style: st, Points: pts}), nil
	})

	// -----------------------------------------------------------------------
	// (clear-canvas)
	//
	// Note: registered as "clear_canvas" because zygomys does not support
	// hyphens in identifiers. The preprocessor converts clear-canvas to
	// clear_canvas in the source.
	// -----------------------------------------------------------------------
	env.AddFunction("clear_canvas", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("clear-canvas takes no arguments")
		}
		doc.Reset()
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (shape-count)
	// -----------------------------------------------------------------------
	env.AddFunction("shape_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(doc.Len())}, nil
	})
}
