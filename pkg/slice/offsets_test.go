package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdslice/pkg/slice"
)

func TestRichTextNode_InUTF16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		span  slice.Span
		start int
		end   int
	}{
		{name: "ascii", text: "a bold b", span: slice.Span{Start: 2, End: 6}, start: 2, end: 6},
		{name: "bmp accents", text: "één vet", span: slice.Span{Start: 4, End: 7}, start: 4, end: 7},
		{name: "emoji before span", text: "😀 bold", span: slice.Span{Start: 2, End: 6}, start: 3, end: 7},
		{name: "emoji inside span", text: "x 😀😀 y", span: slice.Span{Start: 2, End: 4}, start: 2, end: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.span.Type = slice.SpanStrong
			node := slice.NewNode(slice.NodeParagraph, tt.text, []slice.Span{tt.span})

			got := node.InUTF16()
			require.Len(t, got.Spans, 1)
			assert.Equal(t, tt.start, got.Spans[0].Start)
			assert.Equal(t, tt.end, got.Spans[0].End)
			assert.Equal(t, tt.span.Start, node.Spans[0].Start, "original is not mutated")
		})
	}
}

func TestSlice_WithOffsets(t *testing.T) {
	t.Parallel()

	content := slice.RichText{slice.NewNode(slice.NodeParagraph, "😀 b",
		[]slice.Span{{Start: 2, End: 3, Type: slice.SpanEm}})}
	s := slice.New(slice.Accordion{Items: []slice.AccordionItem{{Title: "Q", Content: content}}}, "")

	same := s.WithOffsets(slice.OffsetCodePoints)
	assert.Equal(t, s, same)

	converted := s.WithOffsets(slice.OffsetUTF16)
	items := converted.Fields.(slice.Accordion).Items
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Content[0].Spans[0].Start)
	assert.Equal(t, 4, items[0].Content[0].Spans[0].End)
	assert.Equal(t, 2, s.Fields.(slice.Accordion).Items[0].Content[0].Spans[0].Start)

	divider := slice.New(slice.Divider{}, "")
	assert.Equal(t, divider, divider.WithOffsets(slice.OffsetUTF16))
}

func TestOffsetUnit_IsValid(t *testing.T) {
	t.Parallel()

	for _, unit := range slice.OffsetUnits() {
		assert.True(t, unit.IsValid(), unit)
	}
	assert.False(t, slice.OffsetUnit("bytes").IsValid())
	assert.False(t, slice.OffsetUnit("").IsValid())
}
