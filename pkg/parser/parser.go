// Package parser turns slice-marked markdown into a Document of typed slices.
//
// Parse composes the segmenter, the field extractor and the rich-text
// converter. It is a pure function of its input: it never logs, never
// returns an error and never panics. Problems with the input are reported
// as Diagnostics next to the slices.
package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/mdslice/pkg/extract"
	"github.com/yaklabco/mdslice/pkg/segment"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// Severity indicates the importance of a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic codes produced by Parse.
const (
	CodeUnsupportedMarker = "unsupported-marker"
	CodeUnterminatedFence = "unterminated-fence"
	CodeMissingField      = "missing-field"
)

// Diagnostic describes a recoverable problem found while parsing.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`

	// Code is a stable identifier such as "unsupported-marker" or, for
	// advisory checks, a rule ID such as "MS001".
	Code string `json:"code" yaml:"code"`

	Message string `json:"message" yaml:"message"`

	// Line is the 1-based source line the diagnostic refers to.
	Line int `json:"line" yaml:"line"`
}

// String formats the diagnostic as "line N: [code] message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: [%s] %s", d.Line, d.Code, d.Message)
}

// Document is the result of parsing one markdown input.
type Document struct {
	Slices      []slice.Slice `json:"slices" yaml:"slices"`
	Diagnostics []Diagnostic  `json:"diagnostics" yaml:"diagnostics"`
}

// WithOffsets returns a copy of the document with span offsets counted in
// unit. Diagnostics are shared with d.
func (d *Document) WithOffsets(unit slice.OffsetUnit) *Document {
	if unit != slice.OffsetUTF16 {
		return d
	}
	out := &Document{
		Slices:      make([]slice.Slice, len(d.Slices)),
		Diagnostics: d.Diagnostics,
	}
	for i, s := range d.Slices {
		out.Slices[i] = s.WithOffsets(unit)
	}
	return out
}

// Parse converts markdown into a Document. Slices appear in source order.
// Blocks with an unsupported marker are dropped, unterminated fences are kept
// as plain text, and slices with unresolved fields are kept with empty
// defaults; each case adds a diagnostic.
func Parse(markdown string) *Document {
	seg := segment.Split(markdown)

	doc := &Document{
		Slices:      make([]slice.Slice, 0, len(seg.Blocks)),
		Diagnostics: []Diagnostic{},
	}

	for _, block := range seg.Blocks {
		s, diags := parseBlock(block)
		doc.Diagnostics = append(doc.Diagnostics, diags...)
		if s != nil {
			doc.Slices = append(doc.Slices, *s)
		}
	}

	for _, line := range seg.Unterminated {
		doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeUnterminatedFence,
			Message:  `slice fence has no closing ":::"; the rest of the document is kept as text`,
			Line:     line,
		})
	}

	SortDiagnostics(doc.Diagnostics)
	return doc
}

func parseBlock(block segment.Block) (*slice.Slice, []Diagnostic) {
	if block.Kind == segment.KindPlain {
		s := extract.Extract(slice.TypeTypography, "", block.Content)
		return &s, nil
	}

	sliceType, ok := slice.ParseType(block.Marker.Tag)
	if !ok {
		return nil, []Diagnostic{{
			Severity: SeverityWarning,
			Code:     CodeUnsupportedMarker,
			Message:  fmt.Sprintf("unsupported slice marker %q; block dropped", ":::"+block.Marker.String()),
			Line:     block.Line,
		}}
	}

	s := extract.Extract(sliceType, block.Marker.Variation, block.Content)

	var diags []Diagnostic
	if missing := extract.Missing(s.Fields); len(missing) > 0 {
		diags = append(diags, Diagnostic{
			Severity: SeverityInfo,
			Code:     CodeMissingField,
			Message:  fmt.Sprintf("%s slice has no %s; empty defaults used", sliceType, strings.Join(missing, ", ")),
			Line:     block.Line,
		})
	}
	return &s, diags
}

// SortDiagnostics orders diagnostics by line, keeping the relative order of
// diagnostics on the same line.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return a.Line - b.Line
	})
}

// CountByType returns the number of slices of each type in the document.
func (d *Document) CountByType() map[slice.Type]int {
	counts := make(map[slice.Type]int)
	for _, s := range d.Slices {
		counts[s.Type]++
	}
	return counts
}

// HasWarnings reports whether any diagnostic has warning severity.
func (d *Document) HasWarnings() bool {
	return slices.ContainsFunc(d.Diagnostics, func(diag Diagnostic) bool {
		return diag.Severity == SeverityWarning
	})
}
