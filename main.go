// Command paint reads, checks, formats and exports Paint save files and
// drawing scripts.
//
// Usage:
//
//	paint check [-wide] FILE
//	paint fmt [-wide] [-w] FILE
//	paint svg [-o OUT] [-width W] [-height H] FILE
//	paint pdf -o OUT [-width W] [-height H] FILE
//	paint run [-wide] [-o OUT] SCRIPT
//	paint pick -x X -y Y [-tol T] FILE
//
// FILE may be a save file or a drawing script ending in .lisp.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/paint/pkg/render/pdf"
	"github.com/chazu/paint/pkg/render/svg"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("paint: ")
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	cmd, rest := args[0], args[1:]
	app := NewApp()

	var err error
	switch cmd {
	case "check":
		err = runCheck(app, rest, stdout, stderr)
	case "fmt":
		err = runFmt(app, rest, stdout, stderr)
	case "svg":
		err = runSVG(app, rest, stdout, stderr)
	case "pdf":
		err = runPDF(app, rest, stdout, stderr)
	case "run":
		err = runScript(app, rest, stdout, stderr)
	case "pick":
		err = runPick(app, rest, stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "paint: unknown command %q\n", cmd)
		usage(stderr)
		return 2
	}

	if errors.Is(err, errUsage) {
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "paint %s: %v\n", cmd, err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: paint <command> [flags] FILE

commands:
  check   parse and validate, print a JSON report
  fmt     rewrite in canonical form
  svg     export as SVG
  pdf     export as PDF
  run     evaluate a drawing script and print the save file
  pick    print the topmost command at a point
`)
}

// errUsage signals a flag error that the flag package already reported.
var errUsage = errors.New("usage")

func newFlags(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseOne parses flags and requires exactly one positional argument.
func parseOne(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(fs.Output(), "%s: expected one file argument\n", fs.Name())
		fs.Usage()
		return "", errUsage
	}
	return fs.Arg(0), nil
}

// load reads path into the app session and fails on any error finding.
func load(app *App, path string) (Result, error) {
	res := app.Load(path)
	if !res.OK() {
		return res, fmt.Errorf("%s: %s", path, res.Errors[0].Message)
	}
	return res, nil
}

func runCheck(app *App, args []string, stdout, stderr io.Writer) error {
	fs := newFlags("check", stderr)
	wide := fs.Bool("wide", false, "accept integers longer than three digits")
	path, err := parseOne(fs, args)
	if err != nil {
		return err
	}
	app.SetWideIntegers(*wide)

	res := app.Load(path)
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("%s: %d error(s)", path, len(res.Errors))
	}
	return nil
}

func runFmt(app *App, args []string, stdout, stderr io.Writer) error {
	fs := newFlags("fmt", stderr)
	wide := fs.Bool("wide", false, "accept integers longer than three digits")
	write := fs.Bool("w", false, "write result to the source file instead of stdout")
	path, err := parseOne(fs, args)
	if err != nil {
		return err
	}
	app.SetWideIntegers(*wide)

	if _, err := load(app, path); err != nil {
		return err
	}
	if *write {
		if strings.EqualFold(filepath.Ext(path), scriptExt) {
			return fmt.Errorf("%s: refusing to overwrite a script", path)
		}
		// Check made path the session's save target.
		return app.Session().Save()
	}
	return app.Format(stdout)
}

func runSVG(app *App, args []string, stdout, stderr io.Writer) error {
	fs := newFlags("svg", stderr)
	out := fs.String("o", "", "output file (default stdout)")
	opts := svg.DefaultOptions()
	fs.IntVar(&opts.Width, "width", opts.Width, "canvas width")
	fs.IntVar(&opts.Height, "height", opts.Height, "canvas height")
	path, err := parseOne(fs, args)
	if err != nil {
		return err
	}
	if _, err := load(app, path); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := app.ExportSVG(&buf, opts); err != nil {
		return err
	}
	return emit(*out, buf.Bytes(), stdout)
}

func runPDF(app *App, args []string, stdout, stderr io.Writer) error {
	fs := newFlags("pdf", stderr)
	out := fs.String("o", "", "output file (required)")
	opts := pdf.DefaultOptions()
	fs.Float64Var(&opts.Width, "width", opts.Width, "page width in points")
	fs.Float64Var(&opts.Height, "height", opts.Height, "page height in points")
	path, err := parseOne(fs, args)
	if err != nil {
		return err
	}
	if *out == "" {
		fmt.Fprintln(stderr, "pdf: -o is required")
		return errUsage
	}
	if _, err := load(app, path); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := app.ExportPDF(&buf, opts); err != nil {
		return err
	}
	return emit(*out, buf.Bytes(), stdout)
}

func runScript(app *App, args []string, stdout, stderr io.Writer) error {
	fs := newFlags("run", stderr)
	out := fs.String("o", "", "save file to write (default stdout)")
	wide := fs.Bool("wide", false, "allow coordinates longer than three digits")
	path, err := parseOne(fs, args)
	if err != nil {
		return err
	}
	app.SetWideIntegers(*wide)
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	res := app.Evaluate(string(src))
	for _, w := range res.Warnings {
		fmt.Fprintf(stderr, "warning: command %d: %s\n", w.Index, w.Message)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			if e.Line > 0 {
				fmt.Fprintf(stderr, "%s:%d: %s\n", path, e.Line, e.Message)
			} else {
				fmt.Fprintf(stderr, "%s: %s\n", path, e.Message)
			}
		}
		return fmt.Errorf("%s: evaluation failed", path)
	}
	if *out != "" {
		return app.Save(*out)
	}
	return app.Format(stdout)
}

func runPick(app *App, args []string, stdout, stderr io.Writer) error {
	fs := newFlags("pick", stderr)
	x := fs.Float64("x", 0, "x coordinate")
	y := fs.Float64("y", 0, "y coordinate")
	tol := fs.Float64("tol", 1, "hit tolerance in drawing units")
	path, err := parseOne(fs, args)
	if err != nil {
		return err
	}
	res, err := load(app, path)
	if err != nil {
		return err
	}

	i, ok, err := app.Pick(*x, *y, *tol)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(stdout, "none")
		return nil
	}
	fmt.Fprintf(stdout, "%d %s\n", i, res.Commands[i].Summary)
	return nil
}

// emit writes data to path, or to stdout when path is empty.
func emit(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
