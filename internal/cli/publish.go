package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdslice/internal/logging"
	"github.com/yaklabco/mdslice/pkg/collab"
	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/fsutil"
	"github.com/yaklabco/mdslice/pkg/parser"
	"github.com/yaklabco/mdslice/pkg/prompt"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// errNoOutputDir is returned when publish has nowhere to write.
var errNoOutputDir = errors.New("no output directory; set --out-dir or output.dir")

type publishFlags struct {
	outDir string
	dryRun bool
}

func newPublishCommand() *cobra.Command {
	flags := &publishFlags{}

	cmd := &cobra.Command{
		Use:   "publish <file> [external-id]",
		Short: "Convert generated markdown and publish the document",
		Long: `Run one generation round trip with a generated markdown file: build the
marker instructions, take the markdown from <file>, parse it and publish
the document as <out-dir>/<external-id>.json.

The external id defaults to the file name without its extension. Nested
ids such as "blog/tea" create subdirectories. With --dry-run the document
is written to stdout instead.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "directory documents are published to")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the document instead of writing it")

	return cmd
}

func runPublish(cmd *cobra.Command, args []string, flags *publishFlags) error {
	cliCfg := &config.Config{DryRun: flags.dryRun}
	cliCfg.Output.Dir = flags.outDir

	env, err := loadEnv(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := env.cfg

	source := args[0]
	externalID := ""
	if len(args) > 1 {
		externalID = args[1]
	} else {
		base, err := fsutil.OutputPath("", source, "", "")
		if err != nil {
			return fmt.Errorf("derive external id: %w", err)
		}
		externalID = filepath.ToSlash(base)
	}
	if err := collab.ValidateExternalID(externalID); err != nil {
		return err
	}

	var pub collab.Publisher
	switch {
	case cfg.DryRun:
		pub = writerPublisher{w: cmd.OutOrStdout(), indent: cfg.Output.IndentWidth(), offsets: cfg.Output.OffsetUnit()}
	case cfg.Output.Dir == "":
		return errNoOutputDir
	default:
		dir := cfg.Output.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(env.workDir, dir)
		}
		pub = collab.DirPublisher{Dir: dir, Indent: cfg.Output.IndentWidth(), Offsets: cfg.Output.OffsetUnit()}
	}

	instructions := prompt.Build(cfg.Slices)
	gen := collab.FileGenerator{Path: source}

	doc, err := collab.Convert(env.ctx, gen, pub, instructions, externalID)
	if err != nil {
		return fmt.Errorf("publish %s: %w", source, err)
	}

	for _, d := range doc.Diagnostics {
		if d.Severity == parser.SeverityWarning {
			env.logger.Warn(d.Message, logging.FieldLine, d.Line, logging.FieldCode, d.Code)
		} else {
			env.logger.Debug(d.Message, logging.FieldLine, d.Line, logging.FieldCode, d.Code)
		}
	}

	if dirPub, ok := pub.(collab.DirPublisher); ok {
		target, err := dirPub.Path(externalID)
		if err != nil {
			return err
		}
		env.logger.Info("published document",
			logging.FieldPath, target,
			logging.FieldSlicesTotal, len(doc.Slices),
		)
	}

	if cfg.Strict && doc.HasWarnings() {
		return &exitError{code: ExitWarnings}
	}
	return nil
}

// writerPublisher prints documents instead of storing them.
type writerPublisher struct {
	w       io.Writer
	indent  int
	offsets slice.OffsetUnit
}

func (p writerPublisher) Publish(_ context.Context, _ string, doc *parser.Document) error {
	data, err := collab.Encode(doc.WithOffsets(p.offsets), p.indent)
	if err != nil {
		return err
	}
	if _, err := p.w.Write(data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
