package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdslice/internal/ui/pretty"
	"github.com/yaklabco/mdslice/pkg/runner"
)

// SummaryReporter writes aggregate tables: slices by type, then
// diagnostics by code, then the summary block.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No markdown files found."))
		return 0, nil
	}

	stats := result.Stats

	if table := r.styles.FormatCountTable("SLICE TYPE", "COUNT",
		pretty.SortedCounts(stats.SlicesByType), r.width); table != "" {
		fmt.Fprint(r.bw, table)
	}

	if table := r.styles.FormatCountTable("DIAGNOSTIC", "COUNT",
		pretty.SortedCounts(stats.DiagnosticsByCode), r.width); table != "" {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, table)
	}

	fmt.Fprint(r.bw, r.styles.FormatSummary(stats))

	return stats.DiagnosticsTotal, nil
}
