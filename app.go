package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/paint/pkg/drawing"
	"github.com/chazu/paint/pkg/engine"
	"github.com/chazu/paint/pkg/kernel"
	"github.com/chazu/paint/pkg/kernel/sdfx"
	"github.com/chazu/paint/pkg/outline"
	"github.com/chazu/paint/pkg/render/pdf"
	"github.com/chazu/paint/pkg/render/svg"
	"github.com/chazu/paint/pkg/savefile"
	"github.com/chazu/paint/pkg/session"
)

// scriptExt marks drawing scripts; every other file is read as a save file.
const scriptExt = ".lisp"

// App ties the packages together for the command line. Every method
// reports problems in its result or error and never exits.
type App struct {
	engine  *engine.Engine
	kernel  kernel.Kernel
	session *session.Session
	opts    savefile.Options
}

// CommandData is the JSON-serializable summary of one command.
type CommandData struct {
	Index   int    `json:"index"`
	Kind    string `json:"kind"`
	Color   string `json:"color"`
	Filled  bool   `json:"filled"`
	Summary string `json:"summary"`
}

// ErrorData is a JSON-serializable error or warning. Line is set for
// script and save file syntax errors. Col is only known for script errors
// and stays zero otherwise.
type ErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Index   int    `json:"index"` // command index, -1 when not tied to a command
	Message string `json:"message"`
}

// Result is returned by Check and Evaluate.
type Result struct {
	Commands []CommandData  `json:"commands"`
	Errors   []ErrorData    `json:"errors"`
	Warnings []ErrorData    `json:"warnings"`
	Bounds   *kernel.Bounds `json:"bounds,omitempty"`
}

// OK reports whether the result carries no errors.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// NewApp creates a new App with an engine, the sdfx kernel and an empty
// session.
func NewApp() *App {
	return &App{
		engine:  engine.NewEngine(),
		kernel:  sdfx.New(),
		session: session.New(),
		opts:    savefile.DefaultOptions(),
	}
}

// Session returns the panel state the app edits.
func (a *App) Session() *session.Session {
	return a.session
}

// SetWideIntegers switches the parser between the legacy three-digit
// integers and the wide extension. It also moves the range that
// validation and saving accept.
func (a *App) SetWideIntegers(wide bool) {
	a.opts.WideIntegers = wide
	a.session.SetOptions(a.opts)
	a.engine.MaxValue = a.opts.MaxValue()
}

// Load reads a save file or a drawing script, depending on the extension,
// into the session.
func (a *App) Load(path string) Result {
	if strings.EqualFold(filepath.Ext(path), scriptExt) {
		src, err := os.ReadFile(path)
		if err != nil {
			return errorResult(err)
		}
		return a.Evaluate(string(src))
	}
	return a.Check(path)
}

// Check opens a save file into the session, validates it and reports its
// extent. On success the file becomes the session's save target.
func (a *App) Check(path string) Result {
	if err := a.session.Open(path); err != nil {
		res := errorResult(err)
		var se *savefile.SyntaxError
		if errors.As(err, &se) {
			res.Errors[0].Line = se.Line
		}
		return res
	}
	return a.describe(a.session.Document(), nil)
}

// Evaluate runs a drawing script. On success the produced document
// replaces the session contents.
func (a *App) Evaluate(source string) Result {
	res, err := a.engine.Run(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		return errorResult(err)
	}
	if len(res.Errors) > 0 {
		out := emptyResult()
		for _, e := range res.Errors {
			out.Errors = append(out.Errors, ErrorData{Line: e.Line, Col: e.Col, Index: -1, Message: e.Message})
		}
		return out
	}
	a.session.SetDocument(res.Document)
	return a.describe(res.Document, res.Warnings)
}

// describe summarizes doc. Validation findings of error severity are
// reported as errors; the document is still summarized.
func (a *App) describe(doc *drawing.Document, warnings []engine.EvalWarning) Result {
	res := emptyResult()
	for i, c := range doc.Commands() {
		st := c.Shape().Styling()
		n := st.Color.NRGBA()
		res.Commands = append(res.Commands, CommandData{
			Index:   i,
			Kind:    c.Kind().String(),
			Color:   fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B),
			Filled:  st.Filled,
			Summary: c.String(),
		})
	}

	if warnings == nil {
		for _, v := range drawing.ValidateWithLimit(doc, a.opts.MaxValue()) {
			warnings = append(warnings, engine.EvalWarning{Index: v.Index, Message: v.Message, Severity: v.Severity})
		}
	}
	for _, w := range warnings {
		e := ErrorData{Index: w.Index, Message: w.Message}
		if w.Severity == drawing.SeverityError {
			res.Errors = append(res.Errors, e)
		} else {
			res.Warnings = append(res.Warnings, e)
		}
	}
	if len(res.Errors) > 0 {
		return res
	}

	parts, err := outline.Trace(doc, a.kernel)
	if err != nil {
		log.Printf("Trace error: %v", err)
		res.Errors = append(res.Errors, ErrorData{Index: -1, Message: "outline failed: " + err.Error()})
		return res
	}
	if b, ok := outline.Bounds(parts); ok {
		res.Bounds = &b
	}
	return res
}

// Format writes the session document in canonical save file form. It
// refuses documents whose numbers the parser could not read back.
func (a *App) Format(w io.Writer) error {
	doc := a.session.Document()
	if err := savefile.Representable(doc, a.opts); err != nil {
		return err
	}
	return savefile.NewEncoder(w).Encode(doc)
}

// ExportSVG renders the session document as SVG.
func (a *App) ExportSVG(w io.Writer, opts svg.Options) error {
	return svg.Write(w, a.session.Document(), opts)
}

// ExportPDF renders the session document as PDF.
func (a *App) ExportPDF(w io.Writer, opts pdf.Options) error {
	return pdf.Write(w, a.session.Document(), opts)
}

// Pick returns the index of the topmost command drawn at (x, y).
func (a *App) Pick(x, y, tol float64) (int, bool, error) {
	parts, err := outline.Trace(a.session.Document(), a.kernel)
	if err != nil {
		return -1, false, err
	}
	i, ok := outline.Pick(parts, x, y, tol)
	return i, ok, nil
}

// Save writes the session document to path and makes it the save target.
func (a *App) Save(path string) error {
	return a.session.SaveAs(path)
}

func emptyResult() Result {
	return Result{
		Commands: []CommandData{},
		Errors:   []ErrorData{},
		Warnings: []ErrorData{},
	}
}

func errorResult(err error) Result {
	res := emptyResult()
	res.Errors = append(res.Errors, ErrorData{Index: -1, Message: err.Error()})
	return res
}
