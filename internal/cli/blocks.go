package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdslice/internal/ui/pretty"
	"github.com/yaklabco/mdslice/pkg/fsutil"
	"github.com/yaklabco/mdslice/pkg/segment"
	"github.com/yaklabco/mdslice/pkg/slice"
)

const formatJSON = "json"

// blockPreviewWidth bounds the content preview of each block.
const blockPreviewWidth = 60

// blockInfo represents a block in JSON output.
type blockInfo struct {
	Line      int    `json:"line"`
	Kind      string `json:"kind"`
	Tag       string `json:"tag,omitempty"`
	Variation string `json:"variation,omitempty"`
	SliceType string `json:"sliceType,omitempty"`
	Content   string `json:"content"`
}

// blocksOutput is the JSON document written by the blocks command.
type blocksOutput struct {
	Blocks       []blockInfo `json:"blocks"`
	Unterminated []int       `json:"unterminated"`
}

func newBlocksCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "blocks <file>",
		Short: "Show how a file is split into plain and marked blocks",
		Long: `Show the segmentation of a markdown file: the plain runs and the
":::type" marked blocks in source order, with their start lines. Opening
fences without a closing ":::" are listed as unterminated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, _, err := fsutil.ReadFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("read markdown: %w", err)
			}

			seg := segment.Split(string(content))

			if format == formatJSON {
				return writeBlocksJSON(cmd.OutOrStdout(), seg)
			}

			colorMode, _ := cmd.Flags().GetString("color") //nolint:errcheck // Falls back to auto
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
			return writeBlocksText(cmd.OutOrStdout(), styles, seg)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func blockInfoFor(block segment.Block) blockInfo {
	info := blockInfo{
		Line:    block.Line,
		Kind:    block.Kind.String(),
		Content: block.Content,
	}
	if block.Kind == segment.KindMarked {
		info.Tag = block.Marker.Tag
		info.Variation = block.Marker.Variation
		if t, ok := slice.ParseType(block.Marker.Tag); ok {
			info.SliceType = string(t)
		}
	} else {
		info.SliceType = string(slice.TypeTypography)
	}
	return info
}

func writeBlocksJSON(w io.Writer, seg segment.Segmentation) error {
	out := blocksOutput{
		Blocks:       make([]blockInfo, 0, len(seg.Blocks)),
		Unterminated: make([]int, 0, len(seg.Unterminated)),
	}
	for _, block := range seg.Blocks {
		out.Blocks = append(out.Blocks, blockInfoFor(block))
	}
	out.Unterminated = append(out.Unterminated, seg.Unterminated...)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding blocks: %w", err)
	}
	return nil
}

func writeBlocksText(w io.Writer, styles *pretty.Styles, seg segment.Segmentation) error {
	var builder strings.Builder

	for _, block := range seg.Blocks {
		info := blockInfoFor(block)

		label := info.SliceType
		if block.Kind == segment.KindMarked {
			label = block.Marker.String()
			if info.SliceType == "" {
				label += " " + styles.Warning.Render("(unsupported)")
			}
		}

		preview := strings.Join(strings.Fields(block.Content), " ")
		if runes := []rune(preview); len(runes) > blockPreviewWidth {
			preview = string(runes[:blockPreviewWidth-3]) + "..."
		}

		fmt.Fprintf(&builder, "%s  %s  %s  %s\n",
			styles.Location.Render(fmt.Sprintf("%4d", block.Line)),
			styles.Dim.Render(fmt.Sprintf("%-6s", info.Kind)),
			styles.SliceType.Render(label),
			styles.Preview.Render(preview),
		)
	}

	for _, line := range seg.Unterminated {
		fmt.Fprintf(&builder, "%s  %s\n",
			styles.Location.Render(fmt.Sprintf("%4d", line)),
			styles.Warning.Render("unterminated fence; text kept as plain markdown"),
		)
	}

	if _, err := io.WriteString(w, builder.String()); err != nil {
		return fmt.Errorf("write blocks: %w", err)
	}
	return nil
}
