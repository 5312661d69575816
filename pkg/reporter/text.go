package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdslice/internal/ui/pretty"
	"github.com/yaklabco/mdslice/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No markdown files found."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file block and returns its diagnostic count.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	diags := file.Diagnostics()
	if file.Document == nil || (!r.opts.ShowSlices && len(diags) == 0) {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Document.Slices), len(diags)))

	if r.opts.ShowSlices {
		for i, sl := range file.Document.Slices {
			fmt.Fprint(r.bw, r.styles.FormatSlice(i, sl, r.width))
		}
	}
	for _, d := range diags {
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, d))
	}

	fmt.Fprintln(r.bw)
	return len(diags)
}
