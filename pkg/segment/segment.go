// Package segment splits slice-marked markdown into plain and marked blocks.
//
// A marked block is fenced by an opening line ":::tag" or ":::tag:variation"
// and a closing line ":::". Everything outside fences is plain markdown.
package segment

import (
	"regexp"
	"strings"
)

// Kind distinguishes plain markdown runs from fenced slice blocks.
type Kind uint8

const (
	// KindPlain is a run of ordinary markdown.
	KindPlain Kind = iota
	// KindMarked is a fenced slice block.
	KindMarked
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	if k == KindMarked {
		return "marked"
	}
	return "plain"
}

// Marker is the tag of a fenced block.
type Marker struct {
	// Tag is the slice type token as written (e.g. "pros-cons").
	Tag string

	// Variation is the optional token after ':'; empty when absent.
	Variation string
}

// String renders the marker the way it appears after the opening ":::".
func (m Marker) String() string {
	if m.Variation == "" {
		return m.Tag
	}
	return m.Tag + ":" + m.Variation
}

// Block is one segment of a document.
type Block struct {
	Kind Kind

	// Marker is set only for KindMarked.
	Marker Marker

	// Content is the trimmed text of the block. For marked blocks the fence
	// lines are excluded.
	Content string

	// Line is the 1-based line where the block starts, counted after line
	// endings are normalised.
	Line int

	// ContentLine is the 1-based line of the first character of Content.
	// For plain blocks it equals Line; for marked blocks it is the first
	// non-blank line after the opening fence.
	ContentLine int
}

// Segmentation is the result of splitting a document.
type Segmentation struct {
	Blocks []Block

	// Unterminated lists the lines of opening fences that had no closing
	// fence. Their text is part of the trailing plain block.
	Unterminated []int
}

const fence = ":::"

var (
	openFencePattern = regexp.MustCompile(`^:::([A-Za-z0-9_-]+)(?::(\S+))?$`)
	blogLinkPattern  = regexp.MustCompile(`(?s):::blog-link:([^\n]*)\n(.*?)\n:::`)
	rulePattern      = regexp.MustCompile(`^-{3,}$`)
)

// Split segments markdown into blocks in source order. Whitespace-only plain
// runs are dropped. Split never fails: malformed fences degrade to plain text.
func Split(markdown string) Segmentation {
	lines := strings.Split(Normalize(markdown), "\n")

	var (
		seg        Segmentation
		plainStart = 0
	)

	flushPlain := func(end int) {
		if end <= plainStart {
			return
		}
		addPlain(&seg, lines, plainStart, end)
	}

	for idx := 0; idx < len(lines); idx++ {
		marker, ok := parseOpenFence(lines[idx])
		if !ok {
			continue
		}

		// An opening fence must be followed by a newline.
		if idx == len(lines)-1 {
			seg.Unterminated = append(seg.Unterminated, idx+1)
			break
		}

		closing := findClosingFence(lines, idx+1)
		if closing < 0 {
			seg.Unterminated = append(seg.Unterminated, idx+1)
			break
		}

		flushPlain(idx)
		seg.Blocks = append(seg.Blocks, Block{
			Kind:        KindMarked,
			Marker:      marker,
			Content:     strings.TrimSpace(strings.Join(lines[idx+1:closing], "\n")),
			Line:        idx + 1,
			ContentLine: firstNonBlank(lines, idx+1, closing) + 1,
		})
		idx = closing
		plainStart = closing + 1
	}

	flushPlain(len(lines))
	return seg
}

// Normalize applies the preprocessing that runs before segmentation:
// line endings become "\n", blog-link blocks become inline markdown links,
// and stand-alone horizontal rules are blanked.
func Normalize(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = strings.ReplaceAll(markdown, "\r", "\n")

	markdown = blogLinkPattern.ReplaceAllStringFunc(markdown, func(match string) string {
		parts := blogLinkPattern.FindStringSubmatch(match)
		return "[" + strings.TrimSpace(parts[2]) + "](" + strings.TrimSpace(parts[1]) + ")"
	})

	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		if rulePattern.MatchString(strings.TrimSpace(line)) {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

func parseOpenFence(line string) (Marker, bool) {
	match := openFencePattern.FindStringSubmatch(strings.TrimRight(line, " \t"))
	if match == nil {
		return Marker{}, false
	}
	return Marker{Tag: match[1], Variation: match[2]}, true
}

func findClosingFence(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == fence {
			return i
		}
	}
	return -1
}

// addPlain appends lines[start:end] as a plain block unless it is blank.
// The block line points at the first non-blank line.
func addPlain(seg *Segmentation, lines []string, start, end int) {
	start = firstNonBlank(lines, start, end)
	content := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
	if content == "" {
		return
	}
	seg.Blocks = append(seg.Blocks, Block{
		Kind:        KindPlain,
		Content:     content,
		Line:        start + 1,
		ContentLine: start + 1,
	})
}

// firstNonBlank returns the index of the first non-blank line in
// lines[start:end], or start when all of them are blank.
func firstNonBlank(lines []string, start, end int) int {
	for i := start; i < end; i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return start
}
