package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdslice/internal/ui/pretty"
	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// sliceInfo represents a slice type in JSON output.
type sliceInfo struct {
	Type        string `json:"type"`
	Marker      string `json:"marker,omitempty"`
	Enabled     bool   `json:"enabled"`
	Core        bool   `json:"core"`
	Description string `json:"description"`
}

func newSlicesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "slices",
		Short: "List slice types and whether they are enabled",
		Long: `List the slice vocabulary with the marker used for each type and its
enablement in the effective configuration. Typography, image and divider
are always enabled.

Enablement only controls which markers are offered to content generation
(see "mdslice prompt"). Conversion accepts every known marker.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv(cmd, nil)
			if err != nil {
				return err
			}

			infos := sliceInfos(env.cfg.Slices)
			if format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding slices: %w", err)
				}
				return nil
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(env.color, cmd.OutOrStdout()))
			return writeSlicesText(cmd.OutOrStdout(), styles, infos)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func sliceInfos(enabled config.Enablement) []sliceInfo {
	types := slice.Types()
	infos := make([]sliceInfo, 0, len(types))
	for _, t := range types {
		info := sliceInfo{
			Type:        string(t),
			Enabled:     enabled.Enabled(t),
			Core:        config.IsCore(t),
			Description: t.Description(),
		}
		if t != slice.TypeTypography {
			info.Marker = ":::" + t.Marker()
		}
		infos = append(infos, info)
	}
	return infos
}

func writeSlicesText(w io.Writer, styles *pretty.Styles, infos []sliceInfo) error {
	for _, info := range infos {
		state := styles.Dim.Render(fmt.Sprintf("%-9s", "disabled"))
		switch {
		case info.Core:
			state = styles.Success.Render(fmt.Sprintf("%-9s", "core"))
		case info.Enabled:
			state = styles.Success.Render(fmt.Sprintf("%-9s", "enabled"))
		}

		marker := info.Marker
		if marker == "" {
			marker = "(plain text)"
		}

		if _, err := fmt.Fprintf(w, "%s %s %s %s\n",
			styles.SliceType.Render(fmt.Sprintf("%-15s", info.Type)),
			styles.Code.Render(fmt.Sprintf("%-19s", marker)),
			state,
			styles.Message.Render(info.Description),
		); err != nil {
			return fmt.Errorf("write slices: %w", err)
		}
	}
	return nil
}
