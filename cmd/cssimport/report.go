package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alnah/go-cssimport"
	"github.com/alnah/go-cssimport/internal/directive"
	"github.com/alnah/go-cssimport/internal/hints"
)

// reportStyles holds the styles for one report, bound to its writer so
// colors are dropped when the writer is not a terminal.
type reportStyles struct {
	title   lipgloss.Style
	path    lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

func newReportStyles(w io.Writer) reportStyles {
	r := lipgloss.NewRenderer(w)
	return reportStyles{
		title:   r.NewStyle().Bold(true),
		path:    r.NewStyle().Foreground(lipgloss.Color("12")),
		warning: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// printReport lists the diagnostics of every asset in the batch, followed
// by a summary line.
func printReport(w io.Writer, batch []*cssimport.Asset, rootSet bool) {
	s := newReportStyles(w)
	scanner := directive.NewRegexpScanner()

	fmt.Fprintln(w, s.title.Render("Import report"))

	var warnings, errs, absorbed int
	for _, a := range batch {
		if a == nil {
			continue
		}
		if len(a.Diagnostics) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\n", s.path.Render(a.Path))
		for _, d := range a.Diagnostics {
			label := s.warning.Render(d.Severity.String())
			if d.Severity == cssimport.SeverityError {
				label = s.err.Render(d.Severity.String())
				errs++
			} else {
				warnings++
			}
			fmt.Fprintf(w, "  %s %s %s\n", label, s.muted.Render("["+string(d.Code)+"]"), d.Message)
			if hint := diagnosticHint(scanner, d, rootSet); hint != "" {
				fmt.Fprintln(w, s.muted.Render(strings.TrimPrefix(hint, "\n")))
			}
		}
	}

	for _, a := range batch {
		if a != nil && absorbedBy(a, batch) {
			absorbed++
		}
	}

	fmt.Fprintf(w, "%d stylesheets, %d absorbed, %d warnings, %d errors\n",
		len(batch), absorbed, warnings, errs)
}

// diagnosticHint returns the hint for a diagnostic, or "".
func diagnosticHint(scanner directive.Scanner, d cssimport.Diagnostic, rootSet bool) string {
	switch d.Code {
	case cssimport.CodeUnresolvablePath, cssimport.CodeRemoteImport:
		ref := d.Path
		for m := range scanner.Scan(d.Directive) {
			ref = m.Path
			break
		}
		return hints.ForUnresolvedImport(ref, rootSet)
	case cssimport.CodeCyclicImport:
		return hints.ForCyclicImport()
	case cssimport.CodePassLimit:
		return hints.ForPassLimit()
	default:
		return ""
	}
}

// absorbedBy reports whether another asset of the batch includes a.
func absorbedBy(a *cssimport.Asset, batch []*cssimport.Asset) bool {
	for _, other := range batch {
		if other != nil && other != a && other.Includes(a) {
			return true
		}
	}
	return false
}
