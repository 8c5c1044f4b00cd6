package savefile_test

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/paint/pkg/drawing"
	"github.com/chazu/paint/pkg/savefile"
)

func threeShapes() *drawing.Document {
	d := drawing.NewDocument()
	d.Add(drawing.Circle{
		Style:  drawing.Style{Color: drawing.RGB(255, 0, 0), Filled: true},
		Centre: drawing.Pt(10, 20),
		Radius: 5,
	})
	d.Add(drawing.Rectangle{
		Style: drawing.Style{Color: drawing.RGB(0, 255, 0)},
		P1:    drawing.Pt(40, 40),
		P2:    drawing.Pt(5, 80),
	})
	d.Add(drawing.Squiggle{
		Style:  drawing.Style{Color: drawing.RGB(0, 0, 255)},
		Points: []drawing.Point{drawing.Pt(1, 1), drawing.Pt(2, 4), drawing.Pt(3, 9)},
	})
	return d
}

func TestEncodeEmptyDocument(t *testing.T) {
	lines := savefile.EncodeLines(drawing.NewDocument())
	want := []string{"Paint Save File Version 1.0", "End Paint Save File"}
	if len(lines) != len(want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], want[i])
		}
	}

	doc, err := savefile.Parse(savefile.Lines(lines))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Len() != 0 {
		t.Errorf("expected empty document")
	}
}

func TestEncodeGolden(t *testing.T) {
	golden, err := os.ReadFile("testdata/three_shapes.golden")
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}

	var buf bytes.Buffer
	if err := savefile.NewEncoder(&buf).Encode(threeShapes()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf.String() != string(golden) {
		t.Errorf("encoded output differs from golden:\n%s", buf.String())
	}
	if got := savefile.EncodeString(threeShapes()); got != string(golden) {
		t.Errorf("EncodeString differs from golden:\n%s", got)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	a := savefile.EncodeString(threeShapes())
	b := savefile.EncodeString(threeShapes())
	if a != b {
		t.Fatal("two encodings of the same document differ")
	}
}

func TestEncodePreservesOrder(t *testing.T) {
	doc, err := savefile.ParseString(savefile.EncodeString(threeShapes()))
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	want := []drawing.Kind{drawing.KindCircle, drawing.KindRectangle, drawing.KindSquiggle}
	for i, k := range want {
		if doc.At(i).Kind() != k {
			t.Errorf("command %d kind = %v, want %v", i, doc.At(i).Kind(), k)
		}
	}

	var starts []string
	for _, l := range savefile.EncodeLines(doc) {
		switch l {
		case "Circle", "Rectangle", "Squiggle":
			starts = append(starts, l)
		}
	}
	if strings.Join(starts, ",") != "Circle,Rectangle,Squiggle" {
		t.Errorf("re-encoded shape order = %v", starts)
	}
}

func TestEncodeCustomIndentRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	enc := savefile.NewEncoderWithOptions(&buf, savefile.EncodeOptions{Indent: "    "})
	if err := enc.Encode(threeShapes()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), "\n        point:(2,4)\n") {
		t.Errorf("expected two levels of four-space indent:\n%s", buf.String())
	}
	doc, err := savefile.ParseReader(&buf)
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if !doc.Equal(threeShapes()) {
		t.Error("indent changed the parsed document")
	}
}

func TestRoundTripEmptySquiggle(t *testing.T) {
	d := drawing.NewDocument()
	d.Add(drawing.Squiggle{Style: drawing.Style{Color: drawing.RGB(9, 9, 9), Filled: true}, Points: []drawing.Point{}})

	lines := savefile.EncodeLines(d)
	joined := strings.Join(lines, "|")
	if !strings.Contains(joined, "\tpoints|\tend points") {
		t.Errorf("points start should be followed directly by points end: %q", lines)
	}

	got, err := savefile.Parse(savefile.Lines(lines))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !got.Equal(d) {
		t.Errorf("got %v, want %v", got.Commands(), d.Commands())
	}
}

// randomDocument builds a document whose values stay inside the legacy
// three-digit grammar.
func randomDocument(r *rand.Rand) *drawing.Document {
	d := drawing.NewDocument()
	coord := func() drawing.Point { return drawing.Pt(r.Intn(1000), r.Intn(1000)) }
	for n := r.Intn(8); n > 0; n-- {
		st := drawing.Style{
			Color:  drawing.RGB(r.Intn(256), r.Intn(256), r.Intn(256)),
			Filled: r.Intn(2) == 0,
		}
		switch r.Intn(3) {
		case 0:
			d.Add(drawing.Circle{Style: st, Centre: coord(), Radius: r.Intn(1000)})
		case 1:
			d.Add(drawing.Rectangle{Style: st, P1: coord(), P2: coord()})
		default:
			pts := make([]drawing.Point, r.Intn(6))
			for i := range pts {
				pts[i] = coord()
			}
			d.Add(drawing.Squiggle{Style: st, Points: pts})
		}
	}
	return d
}

func TestRoundTripLaw(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		want := randomDocument(r)
		got, err := savefile.ParseString(savefile.EncodeString(want))
		if err != nil {
			t.Fatalf("iteration %d: %v\n%s", i, err, savefile.EncodeString(want))
		}
		if !got.Equal(want) {
			t.Fatalf("iteration %d: round trip mismatch\n got %v\nwant %v", i, got.Commands(), want.Commands())
		}
	}
}

func TestRoundTripConcreteScenario(t *testing.T) {
	doc, err := savefile.ParseFile("testdata/circle.paint")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	again, err := savefile.ParseString(savefile.EncodeString(doc))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !again.Equal(doc) {
		t.Errorf("re-encoded file parses differently")
	}
}

type failingSink struct {
	remaining int
	err       error
	written   []string
}

func (s *failingSink) WriteLine(line string) error {
	if s.remaining == 0 {
		return s.err
	}
	s.remaining--
	s.written = append(s.written, line)
	return nil
}

func TestEncodeSinkErrorPropagates(t *testing.T) {
	boom := errors.New("sink closed")
	sink := &failingSink{remaining: 3, err: boom}
	err := savefile.EncodeTo(threeShapes(), sink)
	if !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if len(sink.written) != 3 {
		t.Errorf("encoder kept writing after the failure: %d lines", len(sink.written))
	}
}

func TestWriteFileAndParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.paint")
	if err := savefile.WriteFile(path, threeShapes()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	doc, err := savefile.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if !doc.Equal(threeShapes()) {
		t.Error("file round trip changed the document")
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := savefile.ParseFile(filepath.Join(t.TempDir(), "nope.paint"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestRoundTripOutOfRangeValues(t *testing.T) {
	black := drawing.Style{Color: drawing.RGB(0, 0, 0)}
	tests := []struct {
		name     string
		shape    drawing.Shape
		badLine  int
		field    string
		wideSafe bool
	}{
		{"negative center", drawing.Circle{Style: black, Centre: drawing.Pt(-5, 10), Radius: 1}, 5, "center x", false},
		{"four digit corner", drawing.Rectangle{Style: black, P1: drawing.Pt(0, 0), P2: drawing.Pt(1000, 20)}, 6, "p2 x", true},
		{"four digit radius", drawing.Circle{Style: black, Centre: drawing.Pt(1, 1), Radius: 2000}, 6, "radius", true},
		{"negative point", drawing.Squiggle{Style: black, Points: []drawing.Point{drawing.Pt(1, -1)}}, 6, "point 0 y", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := drawing.NewDocument(drawing.NewCommand(tt.shape))

			err := savefile.Representable(doc, savefile.DefaultOptions())
			if !errors.Is(err, savefile.ErrUnrepresentable) {
				t.Fatalf("Representable = %v, want ErrUnrepresentable", err)
			}
			var re *savefile.RangeError
			if !errors.As(err, &re) || re.Field != tt.field || re.Index != 0 {
				t.Errorf("range error = %v, want field %q on command 0", err, tt.field)
			}

			// The encoder still writes it; the legacy parser refuses it.
			_, err = savefile.ParseString(savefile.EncodeString(doc))
			var se *savefile.SyntaxError
			if !errors.As(err, &se) || se.Line != tt.badLine {
				t.Fatalf("reparse error = %v, want a syntax error at line %d", err, tt.badLine)
			}

			wide := savefile.Options{WideIntegers: true}
			err = savefile.Representable(doc, wide)
			if tt.wideSafe != (err == nil) {
				t.Fatalf("wide Representable = %v, want representable %v", err, tt.wideSafe)
			}
			if !tt.wideSafe {
				return
			}
			got, err := savefile.ParseWithOptions(savefile.Lines(savefile.EncodeLines(doc)), wide)
			if err != nil {
				t.Fatalf("wide reparse: %v", err)
			}
			if !got.Equal(doc) {
				t.Error("wide round trip changed the document")
			}
		})
	}
}

func TestRepresentableAcceptsLegacyRange(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		if err := savefile.Representable(randomDocument(r), savefile.DefaultOptions()); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
	}
	if got := (savefile.Options{WideIntegers: true}).MaxValue(); got != 999999999 {
		t.Errorf("wide MaxValue = %d", got)
	}
}
