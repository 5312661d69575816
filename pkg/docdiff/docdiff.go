// Package docdiff renders line-based unified diffs between two versions of a
// published document.
package docdiff

import (
	"fmt"
	"strings"
)

// Op marks a diff line as kept, added or removed.
type Op byte

const (
	OpKeep   Op = ' '
	OpAdd    Op = '+'
	OpRemove Op = '-'
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a run of changes with surrounding context.
// Start positions are 1-based.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []Line
}

// Diff is the difference between the old and new version of a document.
type Diff struct {
	// Name labels both sides in the header, e.g. "blog/tea.json".
	Name string

	Hunks   []Hunk
	Added   int
	Removed int
}

// Compare diffs two versions line by line. It returns nil when they are
// equal. A missing old version is passed as nil.
func Compare(name string, before, after []byte) *Diff {
	oldLines := splitLines(before)
	newLines := splitLines(after)

	ops := editScript(oldLines, newLines)

	diff := &Diff{Name: name}
	for _, line := range ops {
		switch line.Op {
		case OpAdd:
			diff.Added++
		case OpRemove:
			diff.Removed++
		case OpKeep:
		}
	}
	if diff.Added == 0 && diff.Removed == 0 {
		return nil
	}

	diff.Hunks = hunks(ops)
	return diff
}

// String renders the diff in unified format. A nil diff renders as "".
func (d *Diff) String() string {
	if d == nil {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", d.Name, d.Name)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OldStart, hunk.OldLines, hunk.NewStart, hunk.NewLines)
		for _, line := range hunk.Lines {
			builder.WriteByte(byte(line.Op))
			builder.WriteString(line.Text)
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

// splitLines splits content into lines without their terminators.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// editScript returns the lines of both versions interleaved into keep,
// remove and add operations along a longest common subsequence.
func editScript(oldLines, newLines []string) []Line {
	rows, cols := len(oldLines), len(newLines)

	// lcs[i][j] is the LCS length of oldLines[i:] and newLines[j:].
	lcs := make([][]int, rows+1)
	for i := range lcs {
		lcs[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, rows+cols)
	i, j := 0, 0
	for i < rows && j < cols {
		switch {
		case oldLines[i] == newLines[j]:
			ops = append(ops, Line{Op: OpKeep, Text: oldLines[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, Line{Op: OpRemove, Text: oldLines[i]})
			i++
		default:
			ops = append(ops, Line{Op: OpAdd, Text: newLines[j]})
			j++
		}
	}
	for ; i < rows; i++ {
		ops = append(ops, Line{Op: OpRemove, Text: oldLines[i]})
	}
	for ; j < cols; j++ {
		ops = append(ops, Line{Op: OpAdd, Text: newLines[j]})
	}

	return ops
}

// hunks groups an edit script into hunks. Changes separated by at most
// twice the context share a hunk.
func hunks(ops []Line) []Hunk {
	var (
		out        []Hunk
		start, end = -1, -1
	)

	flush := func() {
		if start < 0 {
			return
		}
		out = append(out, buildHunk(ops, max(start-contextLines, 0), min(end+contextLines, len(ops))))
		start, end = -1, -1
	}

	for idx, line := range ops {
		if line.Op == OpKeep {
			continue
		}
		if start >= 0 && idx-end > 2*contextLines {
			flush()
		}
		if start < 0 {
			start = idx
		}
		end = idx + 1
	}
	flush()

	return out
}

// buildHunk builds the hunk covering ops[from:to].
func buildHunk(ops []Line, from, to int) Hunk {
	hunk := Hunk{OldStart: 1, NewStart: 1}
	for _, line := range ops[:from] {
		if line.Op != OpAdd {
			hunk.OldStart++
		}
		if line.Op != OpRemove {
			hunk.NewStart++
		}
	}

	hunk.Lines = append(hunk.Lines, ops[from:to]...)
	for _, line := range hunk.Lines {
		if line.Op != OpAdd {
			hunk.OldLines++
		}
		if line.Op != OpRemove {
			hunk.NewLines++
		}
	}

	// An empty side starts at line 0 in unified diffs.
	if hunk.OldLines == 0 {
		hunk.OldStart--
	}
	if hunk.NewLines == 0 {
		hunk.NewStart--
	}
	return hunk
}
