package savefile

import (
	"regexp"
	"strconv"
	"strings"
)

// Version is the only format version this package reads and writes.
const Version = "1.0"

// Token identifies one line form of the save file grammar.
type Token int

const (
	TokFileStart Token = iota
	TokFileEnd
	TokCircleStart
	TokCircleEnd
	TokRectangleStart
	TokRectangleEnd
	TokSquiggleStart
	TokSquiggleEnd
	TokColor
	TokFilled
	TokCenter
	TokRadius
	TokP1
	TokP2
	TokPointsStart
	TokPoint
	TokPointsEnd
	numTokens
)

type tokenInfo struct {
	name   string // human-readable, used in error messages
	syntax string // canonical form as written by the encoder
}

var tokens = [numTokens]tokenInfo{
	TokFileStart:      {"start of Paint Save File", "Paint Save File Version " + Version},
	TokFileEnd:        {"end of Paint Save File", "End Paint Save File"},
	TokCircleStart:    {"circle start", "Circle"},
	TokCircleEnd:      {"circle end", "End Circle"},
	TokRectangleStart: {"rectangle start", "Rectangle"},
	TokRectangleEnd:   {"rectangle end", "End Rectangle"},
	TokSquiggleStart:  {"squiggle start", "Squiggle"},
	TokSquiggleEnd:    {"squiggle end", "End Squiggle"},
	TokColor:          {"color", "color:R,G,B"},
	TokFilled:         {"filled status", "filled:true|false"},
	TokCenter:         {"circle center", "center:(X,Y)"},
	TokRadius:         {"circle radius", "radius:R"},
	TokP1:             {"rectangle p1", "p1:(X,Y)"},
	TokP2:             {"rectangle p2", "p2:(X,Y)"},
	TokPointsStart:    {"squiggle points start", "points"},
	TokPoint:          {"squiggle point", "point:(X,Y)"},
	TokPointsEnd:      {"squiggle points end", "end points"},
}

// Name returns a short description such as "filled status".
func (t Token) Name() string {
	if t < 0 || t >= numTokens {
		return "unknown token"
	}
	return tokens[t].name
}

// Syntax returns the canonical line form, e.g. "filled:true|false".
func (t Token) Syntax() string {
	if t < 0 || t >= numTokens {
		return ""
	}
	return tokens[t].syntax
}

func (t Token) String() string {
	return t.Name() + ` "` + t.Syntax() + `"`
}

// Integer widths. The legacy format allows at most three digits per
// number; wide mode is an opt-in extension.
const (
	legacyInt = `([0-9]{1,3})`
	wideInt   = `([0-9]{1,9})`
)

// grammar holds one compiled, anchored pattern per token. Lines are trimmed
// before matching so the patterns never deal with indentation.
type grammar struct {
	patterns [numTokens]*regexp.Regexp
}

var (
	legacyGrammar = newGrammar(legacyInt)
	wideGrammar   = newGrammar(wideInt)
)

func newGrammar(num string) *grammar {
	pair := `\(\s*` + num + `\s*,\s*` + num + `\s*\)`
	src := [numTokens]string{
		TokFileStart:      `Paint\s*Save\s*File\s*Version\s*1\.0`,
		TokFileEnd:        `End\s*Paint\s*Save\s*File`,
		TokCircleStart:    `Circle`,
		TokCircleEnd:      `End\s*Circle`,
		TokRectangleStart: `Rectangle`,
		TokRectangleEnd:   `End\s*Rectangle`,
		TokSquiggleStart:  `Squiggle`,
		TokSquiggleEnd:    `End\s*Squiggle`,
		TokColor:          `color\s*:\s*` + num + `\s*,\s*` + num + `\s*,\s*` + num,
		TokFilled:         `filled\s*:\s*(true|false)`,
		TokCenter:         `center\s*:\s*` + pair,
		TokRadius:         `radius\s*:\s*` + num,
		TokP1:             `p1\s*:\s*` + pair,
		TokP2:             `p2\s*:\s*` + pair,
		TokPointsStart:    `points`,
		TokPoint:          `point\s*:\s*` + pair,
		TokPointsEnd:      `end\s*points`,
	}
	g := &grammar{}
	for t, s := range src {
		g.patterns[t] = regexp.MustCompile(`^` + s + `$`)
	}
	return g
}

// match reports whether line is an instance of t and returns its captures.
func (g *grammar) match(t Token, line string) ([]string, bool) {
	m := g.patterns[t].FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// ints converts captured digit groups. The patterns only capture 1 to 9
// digits, so conversion cannot overflow.
func ints(groups []string) []int {
	out := make([]int, len(groups))
	for i, g := range groups {
		out[i], _ = strconv.Atoi(g)
	}
	return out
}

// normalize strips the surrounding whitespace the format tolerates,
// including a trailing carriage return.
func normalize(line string) string {
	return strings.TrimSpace(line)
}
