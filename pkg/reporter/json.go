package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/mdslice/pkg/parser"
	"github.com/yaklabco/mdslice/pkg/runner"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// outputVersion versions the machine-readable output envelope.
const outputVersion = "1.0.0"

// Output is the top-level structure of JSON and YAML output.
type Output struct {
	Version string        `json:"version" yaml:"version"`
	Files   []FileOutput  `json:"files" yaml:"files"`
	Summary SummaryOutput `json:"summary" yaml:"summary"`
}

// FileOutput is one parsed file.
type FileOutput struct {
	Path        string              `json:"path" yaml:"path"`
	ExternalID  string              `json:"externalId,omitempty" yaml:"externalId,omitempty"`
	Slices      []slice.Slice       `json:"slices" yaml:"slices"`
	Diagnostics []parser.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Error       string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// SummaryOutput contains aggregate statistics.
type SummaryOutput struct {
	FilesParsed     int            `json:"filesParsed" yaml:"filesParsed"`
	FilesWithIssues int            `json:"filesWithIssues" yaml:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored" yaml:"filesErrored"`
	Slices          int            `json:"slices" yaml:"slices"`
	SlicesByType    map[string]int `json:"slicesByType" yaml:"slicesByType"`
	Diagnostics     int            `json:"diagnostics" yaml:"diagnostics"`
	BySeverity      map[string]int `json:"bySeverity" yaml:"bySeverity"`
}

// BuildOutput converts a runner result into the output envelope.
func BuildOutput(result *runner.Result, opts Options) *Output {
	output := &Output{
		Version: outputVersion,
		Files:   make([]FileOutput, 0),
		Summary: SummaryOutput{
			SlicesByType: make(map[string]int),
			BySeverity:   make(map[string]int),
		},
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		out := FileOutput{
			Path:        opts.displayPath(file.Path),
			Slices:      make([]slice.Slice, 0),
			Diagnostics: file.Diagnostics(),
		}
		if id, err := file.ExternalID(); err == nil {
			out.ExternalID = id
		}
		if file.Document != nil {
			out.Slices = file.Document.WithOffsets(opts.Offsets).Slices
		}
		if file.Error != nil {
			out.Error = file.Error.Error()
		}
		if out.Diagnostics == nil {
			out.Diagnostics = make([]parser.Diagnostic, 0)
		}
		output.Files = append(output.Files, out)
	}

	stats := result.Stats
	output.Summary.FilesParsed = stats.FilesProcessed
	output.Summary.FilesWithIssues = stats.FilesWithIssues
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.Slices = stats.SlicesTotal
	output.Summary.Diagnostics = stats.DiagnosticsTotal
	for t, n := range stats.SlicesByType {
		output.Summary.SlicesByType[string(t)] = n
	}
	for sev, n := range stats.DiagnosticsBySeverity {
		output.Summary.BySeverity[string(sev)] = n
	}

	return output
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := BuildOutput(result, r.opts)

	encoder := json.NewEncoder(r.bw)
	if r.opts.Indent > 0 {
		encoder.SetIndent("", strings.Repeat(" ", r.opts.Indent))
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Diagnostics, nil
}
