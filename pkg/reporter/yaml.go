package reporter

import (
	"bufio"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/runner"
)

// YAMLReporter formats results as YAML.
type YAMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewYAMLReporter creates a new YAML reporter.
func NewYAMLReporter(opts Options) *YAMLReporter {
	return &YAMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *YAMLReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := BuildOutput(result, r.opts)

	encoder := yaml.NewEncoder(r.bw)
	encoder.SetIndent(config.YAMLIndent())
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return 0, fmt.Errorf("close YAML encoder: %w", err)
	}

	return output.Summary.Diagnostics, nil
}
