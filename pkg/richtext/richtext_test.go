package richtext_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdslice/pkg/richtext"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// spanText returns the substring of text covered by span.
func spanText(text string, span slice.Span) string {
	runes := []rune(text)
	return string(runes[span.Start:span.End])
}

func requireSpanBounds(t *testing.T, nodes slice.RichText) {
	t.Helper()
	for _, node := range nodes {
		length := utf8.RuneCountInString(node.Text)
		for _, span := range node.Spans {
			require.GreaterOrEqual(t, span.Start, 0, "span start in %q", node.Text)
			require.Less(t, span.Start, span.End, "span range in %q", node.Text)
			require.LessOrEqual(t, span.End, length, "span end in %q", node.Text)
		}
		for i := 1; i < len(node.Spans); i++ {
			require.LessOrEqual(t, node.Spans[i-1].Start, node.Spans[i].Start, "spans sorted in %q", node.Text)
		}
	}
}

func TestConvert_PlainParagraphUnchanged(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Just a plain sentence.",
		"Numbers 1, 2 and 3 are fine",
		"Ünïcödé text – with dashes",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			nodes := richtext.Convert(input)
			require.Len(t, nodes, 1)
			assert.Equal(t, slice.NodeParagraph, nodes[0].Kind)
			assert.Equal(t, input, nodes[0].Text)
			assert.Empty(t, nodes[0].Spans)
			assert.NotNil(t, nodes[0].Spans)
			assert.Equal(t, slice.DirectionLTR, nodes[0].Direction)
		})
	}
}

func TestConvert_BoldSpan(t *testing.T) {
	t.Parallel()

	nodes := richtext.Convert("This is **bold** text.")
	require.Len(t, nodes, 1)

	node := nodes[0]
	assert.Equal(t, slice.NodeParagraph, node.Kind)
	assert.Equal(t, "This is bold text.", node.Text)
	require.Len(t, node.Spans, 1)
	assert.Equal(t, slice.SpanStrong, node.Spans[0].Type)
	assert.Equal(t, "bold", spanText(node.Text, node.Spans[0]))
}

func TestInline_Spans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantText  string
		wantSpans []string // "type:covered"
	}{
		{
			name:      "bold and italic",
			input:     "This is **bold** and *italic* text.",
			wantText:  "This is bold and italic text.",
			wantSpans: []string{"strong:bold", "em:italic"},
		},
		{
			name:      "link after bold",
			input:     "**Tip:** read [the guide](https://example.com/guide) first",
			wantText:  "Tip: read the guide first",
			wantSpans: []string{"strong:Tip:", "hyperlink:the guide"},
		},
		{
			name:      "italic before bold",
			input:     "*one* and **two**",
			wantText:  "one and two",
			wantSpans: []string{"em:one", "strong:two"},
		},
		{
			name:      "bold wrapping link stacks spans",
			input:     "see **[docs](/docs)** now",
			wantText:  "see docs now",
			wantSpans: []string{"strong:docs", "hyperlink:docs"},
		},
		{
			name:      "link wrapping bold stacks spans",
			input:     "[**docs**](/docs)",
			wantText:  "docs",
			wantSpans: []string{"strong:docs", "hyperlink:docs"},
		},
		{
			name:      "italic inside bold",
			input:     "**very *much* so**",
			wantText:  "very much so",
			wantSpans: []string{"strong:very much so", "em:much"},
		},
		{
			name:      "unicode offsets count code points",
			input:     "Café **crème** [brûlée](/b)",
			wantText:  "Café crème brûlée",
			wantSpans: []string{"strong:crème", "hyperlink:brûlée"},
		},
		{
			name:      "unmatched markers stay literal",
			input:     "2 ** 3 and a [dangling link",
			wantText:  "2 ** 3 and a [dangling link",
			wantSpans: nil,
		},
		{
			name:      "spaced asterisks are not emphasis",
			input:     "5 * 3 * 2",
			wantText:  "5 * 3 * 2",
			wantSpans: nil,
		},
		{
			name:      "bold does not cross lines",
			input:     "**open\nclose**",
			wantText:  "**open\nclose**",
			wantSpans: nil,
		},
		{
			name:      "link title is dropped from url",
			input:     `[home](/ "Home page")`,
			wantText:  "home",
			wantSpans: []string{"hyperlink:home"},
		},
		{
			name:      "inline image keeps alt text",
			input:     "before ![a chart](/chart.png) after",
			wantText:  "before a chart after",
			wantSpans: nil,
		},
		{
			name:      "empty bold is literal",
			input:     "****",
			wantText:  "****",
			wantSpans: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, spans := richtext.Inline(tt.input)
			assert.Equal(t, tt.wantText, text)

			got := make([]string, 0, len(spans))
			for _, span := range spans {
				got = append(got, string(span.Type)+":"+spanText(text, span))
			}
			if tt.wantSpans == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.wantSpans, got)
			}

			requireSpanBounds(t, slice.RichText{slice.NewNode(slice.NodeParagraph, text, spans)})
		})
	}
}

func TestInline_HyperlinkData(t *testing.T) {
	t.Parallel()

	_, spans := richtext.Inline("go [here](https://example.com)")
	require.Len(t, spans, 1)
	require.NotNil(t, spans[0].Data)
	assert.Equal(t, slice.LinkTypeWeb, spans[0].Data.LinkType)
	assert.Equal(t, "https://example.com", spans[0].Data.URL)
	assert.Equal(t, slice.TargetSelf, spans[0].Data.Target)
}

func TestConvert_Blocks(t *testing.T) {
	t.Parallel()

	input := "# Title\n\nIntro with **bold**.\n\n## Section\nText right under the heading.\n\n" +
		"- first\n- second *item*\nafter list\n\n1. one\n2. two\n\n###### Deep"

	nodes := richtext.Convert(input)

	kinds := make([]slice.NodeKind, 0, len(nodes))
	texts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		kinds = append(kinds, node.Kind)
		texts = append(texts, node.Text)
	}

	assert.Equal(t, []slice.NodeKind{
		slice.NodeHeading1,
		slice.NodeParagraph,
		slice.NodeHeading2,
		slice.NodeParagraph,
		slice.NodeListItem,
		slice.NodeListItem,
		slice.NodeParagraph,
		slice.NodeOrderedListItem,
		slice.NodeOrderedListItem,
		slice.NodeHeading6,
	}, kinds)
	assert.Equal(t, []string{
		"Title",
		"Intro with bold.",
		"Section",
		"Text right under the heading.",
		"first",
		"second item",
		"after list",
		"one",
		"two",
		"Deep",
	}, texts)

	requireSpanBounds(t, nodes)
}

func TestConvert_AlternativeBullets(t *testing.T) {
	t.Parallel()

	nodes := richtext.Convert("* star\n+ plus\n- dash")
	require.Len(t, nodes, 3)
	for _, node := range nodes {
		assert.Equal(t, slice.NodeListItem, node.Kind)
	}
	assert.Equal(t, "star", nodes[0].Text)
	assert.Equal(t, "plus", nodes[1].Text)
}

func TestConvert_MixedListChunk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		kinds []slice.NodeKind
		texts []string
	}{
		{
			name:  "numbered line in bullet list",
			input: "- a\n1. b",
			kinds: []slice.NodeKind{slice.NodeListItem, slice.NodeParagraph},
			texts: []string{"a", "1. b"},
		},
		{
			name:  "text in numbered list",
			input: "Stappen:\n1. een\n2. twee",
			kinds: []slice.NodeKind{slice.NodeParagraph, slice.NodeOrderedListItem, slice.NodeOrderedListItem},
			texts: []string{"Stappen:", "een", "twee"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nodes := richtext.Convert(tt.input)
			require.Len(t, nodes, len(tt.kinds))
			for i, node := range nodes {
				assert.Equal(t, tt.kinds[i], node.Kind, i)
				assert.Equal(t, tt.texts[i], node.Text, i)
			}
		})
	}
}

func TestConvert_MultilineParagraphKeepsNewlines(t *testing.T) {
	t.Parallel()

	nodes := richtext.Convert("line one\nline **two**")
	require.Len(t, nodes, 1)
	assert.Equal(t, "line one\nline two", nodes[0].Text)
	require.Len(t, nodes[0].Spans, 1)
	assert.Equal(t, "two", spanText(nodes[0].Text, nodes[0].Spans[0]))
}

func TestConvert_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, richtext.Convert(""))
	assert.Empty(t, richtext.Convert("  \n\n \t\n"))
	assert.NotNil(t, richtext.Convert(""))
}

func TestClean(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Why choose X?", richtext.Clean("Why **choose** *X*?"))
	assert.Equal(t, "read more", richtext.Clean("[read more](/more)"))
}

func TestConvert_SpanBoundsOnMessyInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"***triple*** stars",
		"**[x](y)** *[a](b)* [*c*](d)",
		"[a](b)(c) [d]e](f) **g*h*i**",
		"* ** * ** *",
		"- **unterminated\n- [link](u) **ok**",
	}

	for _, input := range inputs {
		requireSpanBounds(t, richtext.Convert(input))
	}
}
