package savefile

import (
	"errors"
	"io"

	"github.com/chazu/paint/pkg/drawing"
)

// Options controls parsing.
type Options struct {
	// WideIntegers accepts numbers of up to nine digits instead of the
	// legacy three. Files relying on it are not readable by legacy tools.
	WideIntegers bool
}

// DefaultOptions returns the legacy-compatible settings.
func DefaultOptions() Options {
	return Options{}
}

// state names the token the parser expects on the next line.
type state int

const (
	expectFileStart state = iota
	expectShapeOrEnd
	expectColor
	expectFilled
	expectCenter
	expectRadius
	expectCircleEnd
	expectP1
	expectP2
	expectRectangleEnd
	expectPointsStart
	expectPointOrPointsEnd
	expectSquiggleEnd
)

// expects lists, in matching order, the tokens accepted in state s.
func (s state) expects() []Token {
	switch s {
	case expectFileStart:
		return []Token{TokFileStart}
	case expectShapeOrEnd:
		return []Token{TokCircleStart, TokRectangleStart, TokSquiggleStart, TokFileEnd}
	case expectColor:
		return []Token{TokColor}
	case expectFilled:
		return []Token{TokFilled}
	case expectCenter:
		return []Token{TokCenter}
	case expectRadius:
		return []Token{TokRadius}
	case expectCircleEnd:
		return []Token{TokCircleEnd}
	case expectP1:
		return []Token{TokP1}
	case expectP2:
		return []Token{TokP2}
	case expectRectangleEnd:
		return []Token{TokRectangleEnd}
	case expectPointsStart:
		return []Token{TokPointsStart}
	case expectPointOrPointsEnd:
		return []Token{TokPoint, TokPointsEnd}
	case expectSquiggleEnd:
		return []Token{TokSquiggleEnd}
	}
	return nil
}

// Parse reads a complete save file from src with DefaultOptions.
// It returns either the whole Document or the first error; a
// *SyntaxError for malformed input, or the source's own error unchanged.
func Parse(src LineSource) (*drawing.Document, error) {
	return ParseWithOptions(src, DefaultOptions())
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(src LineSource, opts Options) (*drawing.Document, error) {
	p := newParser(opts)
	for {
		raw, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil, p.fail(ErrUnexpectedEOF, p.line+1, "")
		}
		if err != nil {
			return nil, err
		}
		p.line++

		done, err := p.step(normalize(raw))
		if err != nil {
			return nil, err
		}
		if done {
			return p.doc, nil
		}
	}
}

// parser is the state of a single Parse call.
type parser struct {
	g     *grammar
	state state
	line  int
	doc   *drawing.Document
	cur   shapeBuilder // shape in progress; nil in expectShapeOrEnd
}

func newParser(opts Options) *parser {
	g := legacyGrammar
	if opts.WideIntegers {
		g = wideGrammar
	}
	return &parser{g: g, state: expectFileStart, doc: drawing.NewDocument()}
}

// step consumes one trimmed line. It reports done once End Paint Save File
// has been accepted.
func (p *parser) step(line string) (done bool, err error) {
	switch p.state {
	case expectFileStart:
		if !p.is(TokFileStart, line) {
			return false, p.unexpected(line)
		}
		p.state = expectShapeOrEnd

	case expectShapeOrEnd:
		switch {
		case p.is(TokCircleStart, line):
			p.begin(&circleBuilder{})
		case p.is(TokRectangleStart, line):
			p.begin(&rectangleBuilder{})
		case p.is(TokSquiggleStart, line):
			p.begin(&squiggleBuilder{})
		case p.is(TokFileEnd, line):
			return true, nil
		default:
			return false, p.unexpected(line)
		}

	case expectColor:
		m, ok := p.g.match(TokColor, line)
		if !ok {
			return false, p.unexpected(line)
		}
		v := ints(m)
		p.cur.style().Color = drawing.RGB(v[0], v[1], v[2])
		p.state = expectFilled

	case expectFilled:
		m, ok := p.g.match(TokFilled, line)
		if !ok {
			return false, p.unexpected(line)
		}
		p.cur.style().Filled = m[0] == "true"
		switch p.cur.kind() {
		case drawing.KindCircle:
			p.state = expectCenter
		case drawing.KindRectangle:
			p.state = expectP1
		case drawing.KindSquiggle:
			p.state = expectPointsStart
		}

	case expectCenter:
		m, ok := p.g.match(TokCenter, line)
		if !ok {
			return false, p.unexpected(line)
		}
		v := ints(m)
		p.cur.(*circleBuilder).centre = drawing.Pt(v[0], v[1])
		p.state = expectRadius

	case expectRadius:
		m, ok := p.g.match(TokRadius, line)
		if !ok {
			return false, p.unexpected(line)
		}
		p.cur.(*circleBuilder).radius = ints(m)[0]
		p.state = expectCircleEnd

	case expectCircleEnd:
		if !p.is(TokCircleEnd, line) {
			return false, p.badEnd(line)
		}
		p.finish()

	case expectP1:
		m, ok := p.g.match(TokP1, line)
		if !ok {
			return false, p.unexpected(line)
		}
		v := ints(m)
		p.cur.(*rectangleBuilder).p1 = drawing.Pt(v[0], v[1])
		p.state = expectP2

	case expectP2:
		m, ok := p.g.match(TokP2, line)
		if !ok {
			return false, p.unexpected(line)
		}
		v := ints(m)
		p.cur.(*rectangleBuilder).p2 = drawing.Pt(v[0], v[1])
		p.state = expectRectangleEnd

	case expectRectangleEnd:
		if !p.is(TokRectangleEnd, line) {
			return false, p.badEnd(line)
		}
		p.finish()

	case expectPointsStart:
		if !p.is(TokPointsStart, line) {
			return false, p.unexpected(line)
		}
		p.state = expectPointOrPointsEnd

	case expectPointOrPointsEnd:
		if m, ok := p.g.match(TokPoint, line); ok {
			v := ints(m)
			b := p.cur.(*squiggleBuilder)
			b.points = append(b.points, drawing.Pt(v[0], v[1]))
			p.state = expectPointOrPointsEnd
			break
		}
		if !p.is(TokPointsEnd, line) {
			return false, p.unexpected(line)
		}
		p.state = expectSquiggleEnd

	case expectSquiggleEnd:
		if !p.is(TokSquiggleEnd, line) {
			return false, p.badEnd(line)
		}
		p.finish()
	}
	return false, nil
}

func (p *parser) is(t Token, line string) bool {
	_, ok := p.g.match(t, line)
	return ok
}

func (p *parser) begin(b shapeBuilder) {
	p.cur = b
	p.state = expectColor
}

// finish converts the builder into an immutable command.
func (p *parser) finish() {
	p.doc.Add(p.cur.build())
	p.cur = nil
	p.state = expectShapeOrEnd
}

func (p *parser) unexpected(line string) error {
	return p.fail(ErrUnexpectedLine, p.line, line)
}

// badEnd reports a line that should have closed the open shape. An End
// sentinel of another shape kind is reported as a mismatch.
func (p *parser) badEnd(line string) error {
	for _, end := range shapeEnds {
		if end.kind != p.cur.kind() && p.is(end.tok, line) {
			e := p.fail(ErrShapeMismatch, p.line, line)
			e.Open, e.Closed = p.cur.kind(), end.kind
			return e
		}
	}
	return p.unexpected(line)
}

var shapeEnds = []struct {
	tok  Token
	kind drawing.Kind
}{
	{TokCircleEnd, drawing.KindCircle},
	{TokRectangleEnd, drawing.KindRectangle},
	{TokSquiggleEnd, drawing.KindSquiggle},
}

func (p *parser) fail(kind ErrorKind, line int, text string) *SyntaxError {
	return &SyntaxError{
		Line:     line,
		Kind:     kind,
		Expected: p.state.expects(),
		Text:     text,
	}
}

// shapeBuilder accumulates the fields of one shape until its End line.
type shapeBuilder interface {
	kind() drawing.Kind
	style() *drawing.Style
	build() drawing.Shape
}

type circleBuilder struct {
	st     drawing.Style
	centre drawing.Point
	radius int
}

func (b *circleBuilder) kind() drawing.Kind    { return drawing.KindCircle }
func (b *circleBuilder) style() *drawing.Style { return &b.st }
func (b *circleBuilder) build() drawing.Shape {
	return drawing.Circle{Style: b.st, Centre: b.centre, Radius: b.radius}
}

type rectangleBuilder struct {
	st     drawing.Style
	p1, p2 drawing.Point
}

func (b *rectangleBuilder) kind() drawing.Kind    { return drawing.KindRectangle }
func (b *rectangleBuilder) style() *drawing.Style { return &b.st }
func (b *rectangleBuilder) build() drawing.Shape {
	return drawing.Rectangle{Style: b.st, P1: b.p1, P2: b.p2}
}

type squiggleBuilder struct {
	st     drawing.Style
	points []drawing.Point
}

func (b *squiggleBuilder) kind() drawing.Kind    { return drawing.KindSquiggle }
func (b *squiggleBuilder) style() *drawing.Style { return &b.st }
func (b *squiggleBuilder) build() drawing.Shape {
	return drawing.Squiggle{Style: b.st, Points: b.points}
}
