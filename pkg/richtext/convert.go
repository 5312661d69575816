// Package richtext converts markdown prose into rich-text nodes.
//
// Block structure is recognised per blank-line separated chunk (headings,
// bullet lists, ordered lists, paragraphs); inline bold, italic and link
// markup becomes positional spans over the node text.
package richtext

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdslice/pkg/slice"
)

var (
	blankLinePattern = regexp.MustCompile(`\n[ \t]*\n`)
	headingPattern   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletPattern    = regexp.MustCompile(`^[-*+]\s+`)
	orderedPattern   = regexp.MustCompile(`^\d+\.\s+`)
)

// Convert turns markdown into rich-text nodes. It never fails; input without
// any markdown yields a single paragraph holding the input unchanged.
func Convert(markdown string) slice.RichText {
	nodes := slice.RichText{}

	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	for _, chunk := range blankLinePattern.Split(markdown, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		nodes = append(nodes, convertChunk(chunk)...)
	}

	return nodes
}

// IsBullet reports whether a trimmed line is a bullet list item.
func IsBullet(line string) bool {
	return bulletPattern.MatchString(line)
}

// TrimBullet removes the bullet marker from a trimmed line.
func TrimBullet(line string) string {
	return bulletPattern.ReplaceAllString(line, "")
}

func convertChunk(chunk string) []slice.RichTextNode {
	lines := strings.Split(chunk, "\n")

	if match := headingPattern.FindStringSubmatch(strings.TrimSpace(lines[0])); match != nil {
		nodes := appendNode(nil, slice.HeadingKind(len(match[1])), strings.TrimSpace(match[2]))
		if rest := strings.TrimSpace(strings.Join(lines[1:], "\n")); rest != "" {
			nodes = append(nodes, convertChunk(rest)...)
		}
		return nodes
	}

	// A chunk is a bullet list if any line is a bullet, else an ordered list
	// if any line is numbered. Other lines in a list chunk are paragraphs.
	itemKind, itemPattern := slice.NodeListItem, bulletPattern
	switch {
	case hasLine(lines, bulletPattern):
	case hasLine(lines, orderedPattern):
		itemKind, itemPattern = slice.NodeOrderedListItem, orderedPattern
	default:
		return appendNode(nil, slice.NodeParagraph, chunk)
	}

	var nodes []slice.RichTextNode
	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case itemPattern.MatchString(line):
			nodes = appendNode(nodes, itemKind, itemPattern.ReplaceAllString(line, ""))
		default:
			nodes = appendNode(nodes, slice.NodeParagraph, line)
		}
	}
	return nodes
}

func hasLine(lines []string, pattern *regexp.Regexp) bool {
	for _, line := range lines {
		if pattern.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

// appendNode converts the inline markdown of source and appends the node,
// skipping nodes whose visible text is empty.
func appendNode(nodes []slice.RichTextNode, kind slice.NodeKind, source string) []slice.RichTextNode {
	text, spans := Inline(source)
	if strings.TrimSpace(text) == "" {
		return nodes
	}
	return append(nodes, slice.NewNode(kind, text, spans))
}
