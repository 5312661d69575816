package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdslice/internal/logging"
	"github.com/yaklabco/mdslice/pkg/parser"
	"github.com/yaklabco/mdslice/pkg/reporter"
	"github.com/yaklabco/mdslice/pkg/runner"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "text", want: reporter.FormatText},
		{input: "", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "yaml", want: reporter.FormatYAML},
		{input: "yml", want: reporter.FormatYAML},
		{input: "summary", want: reporter.FormatSummary},
		{input: "sarif", wantErr: true},
		{input: "TEXT", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, reporter.FormatJSON.IsValid())
	assert.False(t, reporter.Format("xml").IsValid())
	assert.Equal(t, "yaml", reporter.FormatYAML.String())
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{
		reporter.FormatText, reporter.FormatJSON, reporter.FormatYAML, reporter.FormatSummary, "",
	} {
		rep, err := reporter.New(reporter.Options{Writer: io.Discard, Format: format})
		require.NoError(t, err)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Writer: io.Discard, Format: "xml"})
	require.Error(t, err)
}

// sampleResult parses a small tree: one clean file and one with an
// unsupported marker.
func sampleResult(t *testing.T) (*runner.Result, string) {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"clean.md":     "Intro\n\n:::divider\n:::\n",
		"posts/one.md": ":::carousel\nx\n:::\n\n:::quote\n> Alleen een citaat\n:::\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(io.Discard, "error"))
	result, err := runner.New(nil).Run(ctx, runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	return result, dir
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	result, dir := sampleResult(t)

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Indent: 2, WorkingDir: dir})
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, result.Stats.DiagnosticsTotal, count)

	var out reporter.Output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0.0", out.Version)
	require.Len(t, out.Files, 2)
	assert.Equal(t, "clean.md", out.Files[0].Path)
	assert.Equal(t, "clean", out.Files[0].ExternalID)
	assert.Empty(t, out.Files[0].Diagnostics)
	assert.Equal(t, filepath.Join("posts", "one.md"), out.Files[1].Path)
	assert.Equal(t, "posts/one", out.Files[1].ExternalID)

	assert.Equal(t, 2, out.Summary.FilesParsed)
	assert.Equal(t, 1, out.Summary.FilesWithIssues)
	assert.Equal(t, 1, out.Summary.SlicesByType["divider"])
	assert.Equal(t, 1, out.Summary.SlicesByType["quote"])
	assert.Equal(t, 1, out.Summary.BySeverity[string(parser.SeverityWarning)])

	assert.Contains(t, buf.String(), `"sliceType": "divider"`)
	assert.Contains(t, buf.String(), `"code": "unsupported-marker"`)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	result, _ := sampleResult(t)

	var buf bytes.Buffer
	_, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf}).Report(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf}).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), `"files":[]`)
}

func TestYAMLReporter(t *testing.T) {
	t.Parallel()

	result, dir := sampleResult(t)

	var buf bytes.Buffer
	rep := reporter.NewYAMLReporter(reporter.Options{Writer: &buf, WorkingDir: dir})
	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "1.0.0", out["version"])
	assert.Contains(t, buf.String(), "sliceType: quote")
	assert.Contains(t, buf.String(), "externalId: posts/one")
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	result, dir := sampleResult(t)

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSlices:  true,
		ShowSummary: true,
		WorkingDir:  dir,
	})
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, result.Stats.DiagnosticsTotal, count)

	out := buf.String()
	assert.Contains(t, out, "clean.md (2 slices")
	assert.Contains(t, out, "divider")
	assert.Contains(t, out, filepath.Join("posts", "one.md")+":1")
	assert.Contains(t, out, "unsupported-marker")
	assert.Contains(t, out, "slices in 2 files")
}

func TestTextReporter_IssuesOnly(t *testing.T) {
	t.Parallel()

	result, dir := sampleResult(t)

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: dir})
	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "clean.md")
	assert.Contains(t, buf.String(), "one.md")
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})
	count, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "No markdown files found.")
}

func TestTextReporter_FileError(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{{
		Source: runner.Source{Path: "/tmp/gone.md"},
		Error:  errors.New("read failed"),
	}}}

	var buf bytes.Buffer
	_, err := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"}).
		Report(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/tmp/gone.md: error: read failed")
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	result, _ := sampleResult(t)

	var buf bytes.Buffer
	rep := reporter.NewSummaryReporter(reporter.Options{Writer: &buf, Color: "never"})
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, result.Stats.DiagnosticsTotal, count)

	out := buf.String()
	assert.Contains(t, out, "SLICE TYPE")
	assert.Contains(t, out, "typography")
	assert.Contains(t, out, "DIAGNOSTIC")
	assert.Contains(t, out, "unsupported-marker")
	assert.Contains(t, out, "Converted with warnings")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestReporter_WriteError(t *testing.T) {
	t.Parallel()

	result, _ := sampleResult(t)
	_, err := reporter.NewJSONReporter(reporter.Options{Writer: failingWriter{}}).
		Report(context.Background(), result)
	require.Error(t, err)
}
