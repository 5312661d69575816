// Package cli provides the Cobra command structure for mdslice.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdslice/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdslice command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdslice",
		Short: "Convert slice-marked markdown into structured content",
		Long: `mdslice converts markdown with ":::type" slice markers into typed content
slices: notifications, accordions, pros and cons, tables and more. Text
outside markers becomes typography slices with rich-text spans.

Problems in the input never stop a conversion. Unsupported markers,
unterminated fences and missing fields are reported as diagnostics next
to the converted slices.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddGroup(commandGroups()...)

	grouped := []struct {
		group string
		cmd   *cobra.Command
	}{
		{groupConvert, newConvertCommand()},
		{groupConvert, newPublishCommand()},
		{groupConvert, newPromptCommand()},
		{groupInspect, newBlocksCommand()},
		{groupInspect, newSlicesCommand()},
		{groupInspect, newRulesCommand()},
	}
	for _, g := range grouped {
		g.cmd.GroupID = g.group
		rootCmd.AddCommand(g.cmd)
	}
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
