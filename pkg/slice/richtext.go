package slice

import (
	"fmt"
	"strings"
)

// NodeKind classifies a rich-text node.
type NodeKind string

// Rich-text node kinds.
const (
	NodeParagraph       NodeKind = "paragraph"
	NodeHeading1        NodeKind = "heading1"
	NodeHeading2        NodeKind = "heading2"
	NodeHeading3        NodeKind = "heading3"
	NodeHeading4        NodeKind = "heading4"
	NodeHeading5        NodeKind = "heading5"
	NodeHeading6        NodeKind = "heading6"
	NodeListItem        NodeKind = "list-item"
	NodeOrderedListItem NodeKind = "ordered-list-item"
)

// HeadingKind returns the node kind for a heading level between 1 and 6.
// Levels outside that range are clamped.
func HeadingKind(level int) NodeKind {
	level = max(1, min(level, 6))
	return NodeKind(fmt.Sprintf("heading%d", level))
}

// DirectionLTR is the only text direction the parser emits.
const DirectionLTR = "ltr"

// SpanType classifies a formatting span.
type SpanType string

// Span types.
const (
	SpanStrong    SpanType = "strong"
	SpanEm        SpanType = "em"
	SpanHyperlink SpanType = "hyperlink"
)

// Link constants carried in hyperlink span data.
const (
	LinkTypeWeb = "Web"
	TargetSelf  = "_self"
)

// LinkData is the payload of a hyperlink span.
type LinkData struct {
	LinkType string `json:"linkType" yaml:"linkType"`
	URL      string `json:"url" yaml:"url"`
	Target   string `json:"target" yaml:"target"`
}

// WebLink returns hyperlink data for a web URL opened in the same window.
func WebLink(url string) *LinkData {
	return &LinkData{LinkType: LinkTypeWeb, URL: url, Target: TargetSelf}
}

// Span marks a formatted range of a node's text.
// Start and End are code-point offsets unless converted with InUTF16; End is
// exclusive.
type Span struct {
	Start int       `json:"start" yaml:"start"`
	End   int       `json:"end" yaml:"end"`
	Type  SpanType  `json:"type" yaml:"type"`
	Data  *LinkData `json:"data,omitempty" yaml:"data,omitempty"`
}

// RichTextNode is one line-level unit of prose.
type RichTextNode struct {
	Kind      NodeKind `json:"type" yaml:"type"`
	Text      string   `json:"text" yaml:"text"`
	Spans     []Span   `json:"spans" yaml:"spans"`
	Direction string   `json:"direction" yaml:"direction"`
}

// NewNode builds a left-to-right node. Nil spans become an empty list.
func NewNode(kind NodeKind, text string, spans []Span) RichTextNode {
	if spans == nil {
		spans = []Span{}
	}
	return RichTextNode{
		Kind:      kind,
		Text:      text,
		Spans:     spans,
		Direction: DirectionLTR,
	}
}

// RichText is an ordered list of rich-text nodes.
type RichText []RichTextNode

// PlainText joins the text of all nodes with newlines.
func (r RichText) PlainText() string {
	lines := make([]string, len(r))
	for i, node := range r {
		lines[i] = node.Text
	}
	return strings.Join(lines, "\n")
}

func (r RichText) orEmpty() RichText {
	if r == nil {
		return RichText{}
	}
	return r
}
