package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdslice/internal/logging"
	"github.com/yaklabco/mdslice/pkg/prompt"
)

// sectionInfo represents a prompt section in JSON output.
type sectionInfo struct {
	Type       string   `json:"type,omitempty"`
	Marker     string   `json:"marker"`
	Title      string   `json:"title"`
	Example    string   `json:"example"`
	Variations []string `json:"variations"`
}

func newPromptCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print marker instructions for content generation",
		Long: `Print the slice marker instructions handed to a text generator. Only
enabled slice types are listed; image, divider and blog links are always
included. Enable more types with the "slices" section of the config file
or MDSLICE_SLICES_<TYPE>=true.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv(cmd, nil)
			if err != nil {
				return err
			}

			instructions := prompt.Build(env.cfg.Slices)
			env.logger.Debug("built instructions", logging.FieldSlices, instructions.Markers())

			if format == formatJSON {
				return writePromptJSON(cmd.OutOrStdout(), instructions)
			}

			if _, err := io.WriteString(cmd.OutOrStdout(), instructions.String()); err != nil {
				return fmt.Errorf("write instructions: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func writePromptJSON(w io.Writer, instructions prompt.Instructions) error {
	infos := make([]sectionInfo, 0, len(instructions.Sections))
	for _, section := range instructions.Sections {
		variations := section.Variations
		if variations == nil {
			variations = []string{}
		}
		infos = append(infos, sectionInfo{
			Type:       string(section.Type),
			Marker:     section.Marker,
			Title:      section.Title,
			Example:    section.Example,
			Variations: variations,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding instructions: %w", err)
	}
	return nil
}
