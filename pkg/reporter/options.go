package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdslice/pkg/slice"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Indent is the JSON indentation width; 0 writes compact JSON.
	Indent int

	// Offsets is the unit span offsets are written in by the json and yaml
	// formats. The zero value keeps code points.
	Offsets slice.OffsetUnit

	// ShowSlices lists each document's slices in text output.
	ShowSlices bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		Indent:      2,
		Offsets:     slice.OffsetUTF16,
		ShowSlices:  true,
		ShowSummary: true,
	}
}

// displayPath returns path relative to the working directory when it lies
// beneath it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
