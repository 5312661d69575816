package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdslice/internal/logging"
	"github.com/yaklabco/mdslice/pkg/advise"
	"github.com/yaklabco/mdslice/pkg/fsutil"
	"github.com/yaklabco/mdslice/pkg/parser"
)

// Runner parses discovered files with a bounded worker pool.
type Runner struct {
	// Advisor runs advisory checks on each file. Nil disables them.
	Advisor *advise.Advisor
}

// New creates a Runner. advisor may be nil.
func New(advisor *advise.Advisor) *Runner {
	return &Runner{Advisor: advisor}
}

// Run discovers files under opts.Paths and parses them concurrently.
// Outcomes are returned in path order regardless of completion order.
// Cancellation is checked between files.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	sources, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(sources))

	result := &Result{
		Files: make([]FileOutcome, 0, len(sources)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(sources)

	if len(sources) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(sources))

	workCh := make(chan Source)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, src := range sources {
			select {
			case <-ctx.Done():
				return
			case workCh <- src:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(sources))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, src := range sources {
		if outcome, ok := outcomes[src.Path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan Source, outCh chan<- FileOutcome) {
	for src := range workCh {
		if ctx.Err() != nil {
			return
		}

		fileCtx := logging.WithFile(ctx, src.Path)
		outcome := r.process(fileCtx, src)
		logOutcome(logging.FromContext(fileCtx), outcome)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// process reads, parses and advises a single file.
func (r *Runner) process(ctx context.Context, src Source) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Source: src}

	content, _, err := fsutil.ReadFile(ctx, src.Path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	markdown := string(content)
	outcome.Document = parser.Parse(markdown)

	if r.Advisor != nil {
		advice, err := r.Advisor.Check(ctx, markdown)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Advice = advice
	}

	outcome.Duration = time.Since(start)
	return outcome
}

// logOutcome reports warnings at warn level and everything else at debug.
// The logger is expected to carry the file path.
func logOutcome(logger *log.Logger, outcome FileOutcome) {
	if outcome.Error != nil {
		logger.Error("process file", logging.FieldError, outcome.Error)
		return
	}

	for _, d := range outcome.Diagnostics() {
		keyvals := []any{
			logging.FieldLine, d.Line,
			logging.FieldCode, d.Code,
		}
		if d.Severity == parser.SeverityWarning {
			logger.Warn(d.Message, keyvals...)
		} else {
			logger.Debug(d.Message, keyvals...)
		}
	}

	logger.Debug("parsed file",
		logging.FieldSlicesTotal, len(outcome.Document.Slices),
		logging.FieldDuration, outcome.Duration,
	)
}
