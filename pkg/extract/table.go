package extract

import (
	"strings"

	"github.com/yaklabco/mdslice/pkg/richtext"
	"github.com/yaklabco/mdslice/pkg/slice"
)

func extractTable(content string) slice.Table {
	fields := slice.Table{Title: firstBold(content)}
	headerSeen := false

	for _, line := range lines(content) {
		if len(line) < 2 || !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
			continue
		}
		if strings.Contains(line, "---") {
			continue
		}

		cells := tableCells(line)
		if !headerSeen {
			fields.Headers = cells
			headerSeen = true
			continue
		}
		if len(cells) > 0 {
			fields.Rows = append(fields.Rows, cells)
		}
	}

	return fields
}

// tableCells splits a "| a | b |" row into its non-empty trimmed cells,
// with inline markdown removed.
func tableCells(line string) []string {
	var cells []string
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(richtext.Clean(strings.TrimSpace(cell)))
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}
