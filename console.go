package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// progressPrinter writes one colored line per visited file.
// Colors are only emitted when out is a terminal.
type progressPrinter struct {
	out     io.Writer
	ok      *color.Color
	warn    *color.Color
	fail    *color.Color
	label   *color.Color
	results []FileResult
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	p := &progressPrinter{
		out:   out,
		ok:    color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		fail:  color.New(color.FgRed),
		label: color.New(color.FgCyan),
	}
	if !isTerminal(out) {
		for _, c := range []*color.Color{p.ok, p.warn, p.fail, p.label} {
			c.DisableColor()
		}
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Record keeps r for the report and tree output without printing it.
func (p *progressPrinter) Record(r FileResult) {
	p.results = append(p.results, r)
}

// Print records r and writes its progress line.
func (p *progressPrinter) Print(r FileResult) {
	p.Record(r)

	name := filepath.Base(r.SourcePath)
	outName := filepath.Base(r.OutputPath)
	switch r.Outcome {
	case OutcomeProcessed:
		fmt.Fprintf(p.out, "%s %s -> %s\n", p.ok.Sprint("✓ Processed:"), name, outName)
		fmt.Fprintf(p.out, "  %s %s bytes → %s bytes", p.label.Sprint("Size:"),
			formatBytes(r.OriginalSize), formatBytes(r.OutputSize))
		if r.TokenCount > 0 {
			fmt.Fprintf(p.out, " (%d tokens)", r.TokenCount)
		}
		fmt.Fprintln(p.out)
	case OutcomeEmpty:
		fmt.Fprintf(p.out, "%s %s -> %s (created empty file)\n", p.warn.Sprint("⚠ Empty ASCII:"), name, outName)
	case OutcomeSkipped:
		fmt.Fprintf(p.out, "%s %s -> %s\n", p.warn.Sprint("⚠ Skipping (already exists):"), name, outName)
	default:
		fmt.Fprintf(p.out, "%s %v\n", p.fail.Sprint("✗ Error:"), r.Err)
	}
}
