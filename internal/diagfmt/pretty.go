// Package diagfmt renders a diag.Bag as human-readable text (with an
// optional ANSI-colored caret underline) or as machine-readable JSON.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/source"
)

// PrettyOptions controls Pretty's rendering.
type PrettyOptions struct {
	Color bool
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func severityStyle(sev diag.Severity) lipgloss.Style {
	switch sev {
	case diag.SevError:
		return errorStyle
	case diag.SevWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// Pretty writes bag's diagnostics to w as:
//
//	<file>:<line>:<col>: <severity> [<code>]: <message>
//	  <source line>
//	  <caret underline>
//	  note: ...
//
// Callers should call bag.Sort() first for deterministic ordering.
func Pretty(w io.Writer, fs *source.FileSet, bag *diag.Bag, opts PrettyOptions) error {
	for _, d := range bag.Items() {
		if err := writeDiagnostic(w, fs, d, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeDiagnostic(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOptions) error {
	f := fs.Get(d.Primary.File)
	start := f.Resolve(d.Primary.Start)

	sevLabel := d.Severity.String()
	if opts.Color {
		sevLabel = severityStyle(d.Severity).Render(sevLabel)
	}

	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s [%d]: %s\n",
		f.Name, start.Line, start.Column, sevLabel, d.Code, d.Message); err != nil {
		return err
	}

	if err := writeExcerpt(w, f, d.Primary, opts); err != nil {
		return err
	}

	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		np := nf.Resolve(n.Span.Start)
		label := "note"
		if opts.Color {
			label = dimStyle.Render(label)
		}
		if _, err := fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", label, nf.Name, np.Line, np.Column, n.Msg); err != nil {
			return err
		}
	}

	if len(d.Fixes) > 0 {
		hint := "run with --fix"
		if opts.Color {
			hint = dimStyle.Render(hint)
		}
		if _, err := fmt.Fprintf(w, "  %s\n", hint); err != nil {
			return err
		}
	}

	return nil
}

// writeExcerpt prints the source line containing span's start and a caret
// underline spanning from its start column to its end column (clamped to
// the line's length).
func writeExcerpt(w io.Writer, f *source.File, span source.Span, opts PrettyOptions) error {
	start := f.Resolve(span.Start)
	line := f.GetLine(start.Line)
	if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
		return err
	}

	end := f.Resolve(span.End)
	width := 1
	if end.Line == start.Line && end.Column > start.Column {
		width = int(end.Column - start.Column)
	}
	underline := strings.Repeat(" ", int(start.Column)-1) + strings.Repeat("^", width)
	if opts.Color {
		underline = caretStyle.Render(underline)
	}
	_, err := fmt.Fprintf(w, "  %s\n", underline)
	return err
}

// Summary renders the one-line footer (§7): "N violation(s), M fix(es)
// applied", or "no violations found" when violations is 0.
func Summary(w io.Writer, violations, fixed int, opts PrettyOptions) error {
	if violations == 0 {
		label := "no violations found"
		if opts.Color {
			label = infoStyle.Render(label)
		}
		_, err := fmt.Fprintln(w, label)
		return err
	}
	_, err := fmt.Fprintf(w, "%d violation(s), %d fix(es) applied\n", violations, fixed)
	return err
}
