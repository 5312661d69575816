package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdslice/internal/logging"
	"github.com/yaklabco/mdslice/pkg/advise"
	"github.com/yaklabco/mdslice/pkg/collab"
	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/reporter"
	"github.com/yaklabco/mdslice/pkg/runner"
	"github.com/yaklabco/mdslice/pkg/slice"
)

type convertFlags struct {
	format   string
	outDir   string
	indent   int
	jobs     int
	ignore   []string
	strict   bool
	dryRun   bool
	noAdvise bool
	quiet    bool
	diff     bool
	offsets  string
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert markdown files into slice documents",
		Long:  convertLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, yaml, summary")
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "write one JSON document per file to this directory")
	cmd.Flags().IntVar(&flags.indent, "indent", config.DefaultIndent, "JSON indentation (0 = compact)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when warnings are reported")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "parse and report without writing documents")
	cmd.Flags().BoolVar(&flags.noAdvise, "no-advise", false, "skip advisory checks on plain markdown")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "list only files with diagnostics in text output")
	cmd.Flags().StringVar(&flags.offsets, "offsets", "", "span offset unit: utf16 (default) or codepoint")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "with --dry-run and --out-dir, show changes to written documents")

	return cmd
}

const convertLongDescription = `Parse slice-marked markdown files and report the resulting documents.

By default, converts all .md and .markdown files in the current directory
and subdirectories. Specify paths to convert specific files or directories.

With --out-dir each document is written as <out-dir>/<id>.json, where the
id is the file's path relative to the directory argument without its
extension. Unchanged documents are not rewritten.

Examples:
  mdslice convert                      # Convert current directory
  mdslice convert posts/               # Convert posts directory
  mdslice convert post.md --format json
  mdslice convert posts/ -o build/     # Write documents to build/
  mdslice convert posts/ -o build/ --dry-run --diff
  mdslice convert --strict             # Fail on warnings`

// cliConfig maps explicitly set flags onto a config layer.
func (f *convertFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		Jobs:   f.jobs,
		Strict: f.strict,
		DryRun: f.dryRun,
		Ignore: f.ignore,
	}
	cfg.Output.Dir = f.outDir
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("indent") {
		indent := f.indent
		cfg.Output.Indent = &indent
	}
	if cmd.Flags().Changed("offsets") {
		cfg.Output.Offsets = slice.OffsetUnit(f.offsets)
	}
	if f.noAdvise {
		enabled := false
		cfg.Advise.Enabled = &enabled
	}
	return cfg
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	env, err := loadEnv(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}
	cfg := env.cfg
	logger := env.logger

	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.EffectiveFormat(),
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldStrict, cfg.Strict,
		logging.FieldJobs, cfg.Jobs,
	)

	var advisor *advise.Advisor
	if cfg.Advise.IsEnabled() {
		advisor = advise.New(advise.DefaultRegistry, cfg.Advise)
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   env.workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
	}

	logger.Debug("starting conversion",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := runner.New(advisor).Run(env.ctx, runOpts)
	if err != nil {
		return fmt.Errorf("conversion run failed: %w", err)
	}

	logger.Debug("conversion finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldSlicesTotal, result.Stats.SlicesTotal,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	format, err := reporter.ParseFormat(string(cfg.EffectiveFormat()))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       env.color,
		Indent:      cfg.Output.IndentWidth(),
		Offsets:     cfg.Output.OffsetUnit(),
		ShowSlices:  !flags.quiet,
		ShowSummary: true,
		WorkingDir:  env.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(env.ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.Output.Dir != "" {
		var diffOut io.Writer
		if flags.diff {
			diffOut = cmd.OutOrStdout()
		}
		if err := publishResult(env, result, diffOut); err != nil {
			return err
		}
	}

	if code := ExitCodeFromResult(result, cfg.Strict); code != ExitSuccess {
		return &exitError{code: code}
	}

	return nil
}

// publishResult writes every converted document to the output directory.
// In dry-run mode the target paths are only logged, and changes are written
// to diffOut as unified diffs when it is set.
func publishResult(env *commandEnv, result *runner.Result, diffOut io.Writer) error {
	dir := env.cfg.Output.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(env.workDir, dir)
	}

	pub := collab.DirPublisher{
		Dir:     dir,
		Indent:  env.cfg.Output.IndentWidth(),
		Offsets: env.cfg.Output.OffsetUnit(),
	}

	var published int
	for _, file := range result.Files {
		if file.Error != nil || file.Document == nil {
			continue
		}

		id, err := file.ExternalID()
		if err != nil {
			return fmt.Errorf("name document for %s: %w", file.Path, err)
		}

		if env.cfg.DryRun {
			if err := previewPublish(env, pub, id, file, diffOut); err != nil {
				return err
			}
			continue
		}

		if err := pub.Publish(env.ctx, id, file.Document); err != nil {
			return err
		}
		published++
	}

	if !env.cfg.DryRun {
		env.logger.Info("documents written",
			logging.FieldFilesPublished, published,
			logging.FieldOutput, dir,
		)
	}
	return nil
}

// previewPublish logs the file a document would be written to and prints
// its diff against the published version.
func previewPublish(env *commandEnv, pub collab.DirPublisher, id string, file runner.FileOutcome, diffOut io.Writer) error {
	target, err := pub.Path(id)
	if err != nil {
		return err
	}

	if diffOut == nil {
		env.logger.Info("dry run: would write", logging.FieldPath, target)
		return nil
	}

	diff, err := pub.Diff(env.ctx, id, file.Document)
	if err != nil {
		return err
	}
	if diff == nil {
		env.logger.Debug("dry run: unchanged", logging.FieldPath, target)
		return nil
	}

	env.logger.Info("dry run: would write", logging.FieldPath, target)
	if _, err := io.WriteString(diffOut, diff.String()); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	return nil
}
