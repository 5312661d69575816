package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdslice/pkg/parser"
	"github.com/yaklabco/mdslice/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "14 slices in 3 files, 2 issues (1 warning, 1 info) in 1 file".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("%s in %s",
			plural(stats.SlicesTotal, "slice", "slices"),
			plural(stats.FilesProcessed, "file", "files")),
	}

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("no issues"))
	} else {
		issues := plural(stats.DiagnosticsTotal, "issue", "issues")
		if breakdown := s.severityBreakdown(stats); breakdown != "" {
			issues += " (" + breakdown + ")"
		}
		parts = append(parts, issues+" in "+plural(stats.FilesWithIssues, "file", "files"))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "file", "files")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

func (s *Styles) severityBreakdown(stats runner.Stats) string {
	var parts []string
	if n := stats.DiagnosticsBySeverity[parser.SeverityWarning]; n > 0 {
		parts = append(parts, s.Warning.Render(plural(n, "warning", "warnings")))
	}
	if n := stats.DiagnosticsBySeverity[parser.SeverityInfo]; n > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return strings.Join(parts, ", ")
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Warning.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	builder.WriteString("  Slices:            " +
		s.SummaryValue.Render(strconv.Itoa(stats.SlicesTotal)) + "\n")

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")
	if n := stats.DiagnosticsBySeverity[parser.SeverityWarning]; n > 0 {
		builder.WriteString("    Warnings:        " + s.Warning.Render(strconv.Itoa(n)) + "\n")
	}
	if n := stats.DiagnosticsBySeverity[parser.SeverityInfo]; n > 0 {
		builder.WriteString("    Info:            " + s.Info.Render(strconv.Itoa(n)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Conversion failed"))
	case stats.DiagnosticsBySeverity[parser.SeverityWarning] > 0:
		builder.WriteString(s.Warning.Render("Converted with warnings"))
	default:
		builder.WriteString(s.Success.Render("Converted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
