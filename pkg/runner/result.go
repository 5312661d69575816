package runner

import (
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/mdslice/pkg/fsutil"
	"github.com/yaklabco/mdslice/pkg/parser"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// FileOutcome is the parse result for one file.
type FileOutcome struct {
	Source

	// Document is the parsed document. Nil if the file could not be read.
	Document *parser.Document

	// Advice holds advisory findings for the file's plain text.
	Advice []parser.Diagnostic

	// Duration is the time spent reading and parsing the file.
	Duration time.Duration

	// Error is set if the file could not be processed.
	Error error
}

// Diagnostics returns the parse diagnostics and advice ordered by line.
func (o FileOutcome) Diagnostics() []parser.Diagnostic {
	if o.Document == nil {
		return slices.Clone(o.Advice)
	}
	all := make([]parser.Diagnostic, 0, len(o.Document.Diagnostics)+len(o.Advice))
	all = append(all, o.Document.Diagnostics...)
	all = append(all, o.Advice...)
	parser.SortDiagnostics(all)
	return all
}

// ExternalID names the document for publication: the path relative to the
// directory argument, without extension, slash-separated.
func (o FileOutcome) ExternalID() (string, error) {
	rel, err := fsutil.OutputPath(o.Root, o.Path, "", "")
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully parsed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// SlicesTotal is the number of slices across all files.
	SlicesTotal int

	// SlicesByType maps slice types to counts.
	SlicesByType map[slice.Type]int

	// DiagnosticsTotal is the number of diagnostics, advice included.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severities to counts.
	DiagnosticsBySeverity map[parser.Severity]int

	// DiagnosticsByCode maps diagnostic codes to counts.
	DiagnosticsByCode map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasWarnings reports whether any warning diagnostics occurred.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[parser.SeverityWarning] > 0
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{
		SlicesByType:          make(map[slice.Type]int),
		DiagnosticsBySeverity: make(map[parser.Severity]int),
		DiagnosticsByCode:     make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Document == nil {
		return
	}

	r.Stats.FilesProcessed++

	for t, n := range outcome.Document.CountByType() {
		r.Stats.SlicesByType[t] += n
		r.Stats.SlicesTotal += n
	}

	diags := outcome.Diagnostics()
	if len(diags) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += len(diags)
	for _, d := range diags {
		r.Stats.DiagnosticsBySeverity[d.Severity]++
		r.Stats.DiagnosticsByCode[d.Code]++
	}
}
