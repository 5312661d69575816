package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdslice/pkg/parser"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// previewWidth bounds the slice preview text in listings.
const previewWidth = 60

// FormatDiagnostic formats a single diagnostic as
// "  path:line  severity  message  (code)".
func (s *Styles) FormatDiagnostic(path string, diag parser.Diagnostic) string {
	location := s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d", diag.Line))
	return fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.Code.Render("("+diag.Code+")"),
	)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev parser.Severity) string {
	switch sev {
	case parser.SeverityWarning:
		return s.Warning.Render("warning")
	case parser.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, sliceCount, issueCount int) string {
	header := s.FilePath.Render(path) + s.Dim.Render(fmt.Sprintf(" (%s", plural(sliceCount, "slice", "slices")))
	if issueCount > 0 {
		header += s.Dim.Render(", " + plural(issueCount, "issue", "issues"))
	}
	return header + s.Dim.Render(")")
}

// FormatSlice formats one slice of a document listing:
// "  3. pros_cons:default  Pros of tea..." truncated to width.
func (s *Styles) FormatSlice(index int, sl slice.Slice, width int) string {
	head := fmt.Sprintf("  %d. %s%s", index+1,
		s.SliceType.Render(string(sl.Type)),
		s.Variation.Render(":"+sl.Variation),
	)

	preview := strings.Join(strings.Fields(slice.Summary(sl.Fields)), " ")
	room := min(previewWidth, width-lipgloss.Width(head)-2)
	if preview == "" || room <= 3 {
		return head + "\n"
	}
	return head + "  " + s.Preview.Render(truncate(preview, room)) + "\n"
}

// truncate shortens text to at most width runes, marking the cut with "...".
func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width-3]) + "..."
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
