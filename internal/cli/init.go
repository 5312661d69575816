package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdslice/internal/logging"
	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdslice configuration file",
		Long: `Create a new .mdslice.yml configuration file in the current directory
with the default slice enablement. Edit the file to offer more slice types
to content generation, ignore files or tune advisory checks.

Examples:
  mdslice init                      Create minimal .mdslice.yml
  mdslice init --full               Document every slice type and setting
  mdslice init --format json        Create .mdslice.json (load it with --config)
  mdslice init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .mdslice.yml or .mdslice.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive("info")

	// Validate format
	if flags.format != "yaml" && flags.format != formatJSON {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		if flags.format == formatJSON {
			outputPath = ".mdslice.json"
		} else {
			outputPath = ".mdslice.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'mdslice slices' to see the effective enablement")

	return nil
}
