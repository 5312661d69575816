package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	tablePadding   = 2
	minNameWidth   = 12
	heavySeparator = "="
	lightSeparator = "-"
)

// CountRow is one row of a count table.
type CountRow struct {
	Name  string
	Count int
}

// SortedCounts turns a count map into rows ordered by descending count, then
// name. Zero counts are dropped.
func SortedCounts[K ~string](counts map[K]int) []CountRow {
	rows := make([]CountRow, 0, len(counts))
	for name, count := range counts {
		if count > 0 {
			rows = append(rows, CountRow{Name: string(name), Count: count})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// FormatCountTable renders rows under a two-column header, fitting the name
// column into width.
func (s *Styles) FormatCountTable(title, countTitle string, rows []CountRow, width int) string {
	if len(rows) == 0 {
		return ""
	}

	countWidth := len(countTitle)
	nameWidth := max(len(title), minNameWidth)
	for _, row := range rows {
		countWidth = max(countWidth, len(strconv.Itoa(row.Count)))
		nameWidth = max(nameWidth, lipgloss.Width(row.Name))
	}
	nameWidth = min(nameWidth, max(minNameWidth, width-countWidth-tablePadding))
	total := nameWidth + tablePadding + countWidth

	var builder strings.Builder
	builder.WriteString(s.TableHeader.Render(fmt.Sprintf("%-*s%*s%*s",
		nameWidth, title, tablePadding, "", countWidth, countTitle)))
	builder.WriteString("\n")
	builder.WriteString(s.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	sum := 0
	for _, row := range rows {
		sum += row.Count
		fmt.Fprintf(&builder, "%-*s%*s%*d\n",
			nameWidth, truncate(row.Name, nameWidth), tablePadding, "", countWidth, row.Count)
	}

	builder.WriteString(s.TableSeparator.Render(strings.Repeat(lightSeparator, total)))
	builder.WriteString("\n")
	builder.WriteString(s.Bold.Render(fmt.Sprintf("%-*s%*s%*d",
		nameWidth, "total", tablePadding, "", countWidth, sum)))
	builder.WriteString("\n")

	return builder.String()
}
