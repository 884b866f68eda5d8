// Package formatter renders structuring results for the terminal.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/konchunas/rellic/refine"
)

var (
	headerStyle  = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	removedStyle = color.New(color.FgRed)
	addedStyle   = color.New(color.FgGreen)
	summaryStyle = color.New(color.FgWhite)
	stoppedStyle = color.New(color.FgHiYellow, color.Bold)
)

// FormatResult renders every changed declaration of r as a before/after
// block, followed by a one-line pipeline summary. Unchanged files yield
// only the summary.
func FormatResult(r *refine.FileResult) string {
	var builder strings.Builder
	for _, d := range r.Records {
		if d.Changed() {
			builder.WriteString(formatDecl("record", r.Filename, d))
		}
	}
	for _, d := range r.Functions {
		if d.Changed() {
			builder.WriteString(formatDecl("function", r.Filename, d))
		}
	}
	builder.WriteString(formatSummary(r))
	return builder.String()
}

// FormatResults renders results in order, separated by blank lines.
func FormatResults(results []*refine.FileResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = FormatResult(r)
	}
	return strings.Join(parts, "\n")
}

func formatDecl(kind, filename string, d refine.DeclResult) string {
	var builder strings.Builder
	builder.WriteString(headerStyle.Sprintf("refined %s %s\n", kind, d.Name))

	location := filename
	if d.Origin.Pos.IsValid() {
		location = fmt.Sprintf("%s:%d:%d", d.Origin.Pos.Filename, d.Origin.Pos.Line, d.Origin.Pos.Column)
	}
	builder.WriteString(lineStyle.Sprint(" --> "))
	builder.WriteString(fileStyle.Sprintf("%s\n", location))

	builder.WriteString(lineStyle.Sprint("  |\n"))
	for _, line := range strings.Split(d.Before, "\n") {
		builder.WriteString(lineStyle.Sprint("  | "))
		builder.WriteString(removedStyle.Sprintf("- %s\n", line))
	}
	for _, line := range strings.Split(d.After, "\n") {
		builder.WriteString(lineStyle.Sprint("  | "))
		builder.WriteString(addedStyle.Sprintf("+ %s\n", line))
	}
	builder.WriteString(lineStyle.Sprint("  |\n"))
	builder.WriteString("\n")
	return builder.String()
}

func formatSummary(r *refine.FileResult) string {
	p := r.Pipeline

	var state string
	switch {
	case p.Stopped:
		state = stoppedStyle.Sprint("stopped")
	case p.Converged:
		state = "converged"
	default:
		state = stoppedStyle.Sprint("iteration limit reached")
	}

	names := make([]string, 0, len(p.Progress))
	for name := range p.Progress {
		names = append(names, name)
	}
	sort.Strings(names)
	progress := make([]string, len(names))
	for i, name := range names {
		progress[i] = fmt.Sprintf("%s=%d", name, p.Progress[name])
	}

	line := fileStyle.Sprint(r.Filename) + summaryStyle.Sprintf(": %d iterations, ", p.Iterations) + state
	if len(progress) > 0 {
		line += summaryStyle.Sprintf(" (%s)", strings.Join(progress, ", "))
	}
	return line + "\n"
}
