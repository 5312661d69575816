package collab_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdslice/pkg/collab"
	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/fsutil"
	"github.com/yaklabco/mdslice/pkg/parser"
	"github.com/yaklabco/mdslice/pkg/prompt"
	"github.com/yaklabco/mdslice/pkg/slice"
)

type stubGenerator struct {
	markdown string
	err      error
	got      prompt.Instructions
}

func (g *stubGenerator) Generate(_ context.Context, in prompt.Instructions) (string, error) {
	g.got = in
	return g.markdown, g.err
}

type memoryPublisher struct {
	docs map[string]*parser.Document
}

func (p *memoryPublisher) Publish(_ context.Context, id string, doc *parser.Document) error {
	if p.docs == nil {
		p.docs = make(map[string]*parser.Document)
	}
	p.docs[id] = doc
	return nil
}

func TestConvert(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{markdown: "Intro\n:::divider\n:::\nOutro"}
	pub := &memoryPublisher{}
	in := prompt.Build(config.DefaultEnablement())

	doc, err := collab.Convert(context.Background(), gen, pub, in, "blog/post")
	require.NoError(t, err)

	assert.Equal(t, in, gen.got)
	require.Len(t, doc.Slices, 3)
	assert.Equal(t, slice.TypeDivider, doc.Slices[1].Type)
	assert.Same(t, doc, pub.docs["blog/post"])
}

func TestConvert_GeneratorError(t *testing.T) {
	t.Parallel()

	boom := errors.New("quota exceeded")
	pub := &memoryPublisher{}

	_, err := collab.Convert(context.Background(), &stubGenerator{err: boom}, pub, prompt.Instructions{}, "x")
	require.ErrorIs(t, err, boom)
	assert.Empty(t, pub.docs)
}

func TestFileGenerator(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(path, []byte(":::divider\n:::"), 0o600))

	got, err := collab.FileGenerator{Path: path}.Generate(context.Background(), prompt.Instructions{})
	require.NoError(t, err)
	assert.Equal(t, ":::divider\n:::", got)

	_, err = collab.FileGenerator{Path: path + ".missing"}.Generate(context.Background(), prompt.Instructions{})
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestDirPublisher(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pub := collab.DirPublisher{Dir: dir, Indent: 2}
	doc := parser.Parse(":::divider\n:::")

	require.NoError(t, pub.Publish(context.Background(), "2024/launch", doc))

	data, err := os.ReadFile(filepath.Join(dir, "2024", "launch.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"slices\": [")

	var decoded struct {
		Slices []struct {
			SliceType string `json:"sliceType"`
		} `json:"slices"`
		Diagnostics []any `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Slices, 1)
	assert.Equal(t, "divider", decoded.Slices[0].SliceType)
	assert.NotNil(t, decoded.Diagnostics)
}

func TestEncode_Compact(t *testing.T) {
	t.Parallel()

	data, err := collab.Encode(parser.Parse(""), 0)
	require.NoError(t, err)
	assert.Equal(t, "{\"slices\":[],\"diagnostics\":[]}\n", string(data))
}

func TestValidateExternalID(t *testing.T) {
	t.Parallel()

	valid := []string{"post", "blog/post", "2024/06/launch-day"}
	for _, id := range valid {
		assert.NoError(t, collab.ValidateExternalID(id), id)
	}

	invalid := []string{"", "  ", "/etc/passwd", "../up", "a/../b", "a//b", "a/", `a\b`, "./a"}
	for _, id := range invalid {
		err := collab.ValidateExternalID(id)
		assert.ErrorIs(t, err, collab.ErrInvalidExternalID, id)
	}

	_, err := collab.DirPublisher{Dir: t.TempDir()}.Path("../escape")
	assert.ErrorIs(t, err, collab.ErrInvalidExternalID)
}

func TestDirPublisher_Diff(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pub := collab.DirPublisher{Dir: t.TempDir(), Indent: 2}
	first := parser.Parse(":::divider\n:::")

	diff, err := pub.Diff(ctx, "post", first)
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Zero(t, diff.Removed)
	assert.Contains(t, diff.String(), "+++ b/post.json")

	require.NoError(t, pub.Publish(ctx, "post", first))

	diff, err = pub.Diff(ctx, "post", first)
	require.NoError(t, err)
	assert.Nil(t, diff)

	diff, err = pub.Diff(ctx, "post", parser.Parse("Intro\n:::divider\n:::"))
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Positive(t, diff.Added)
	assert.Contains(t, diff.String(), `+      "sliceType": "typography",`)

	_, err = pub.Diff(ctx, "../x", first)
	require.ErrorIs(t, err, collab.ErrInvalidExternalID)
}

func TestDirPublisher_Offsets(t *testing.T) {
	t.Parallel()

	doc := parser.Parse("😀 **b**")

	spanStart := func(pub collab.DirPublisher) int {
		t.Helper()
		require.NoError(t, pub.Publish(context.Background(), "post", doc))
		data, err := os.ReadFile(filepath.Join(pub.Dir, "post.json"))
		require.NoError(t, err)

		var decoded struct {
			Slices []struct {
				Fields struct {
					Content []struct {
						Spans []slice.Span `json:"spans"`
					} `json:"content"`
				} `json:"fields"`
			} `json:"slices"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded.Slices, 1)
		require.Len(t, decoded.Slices[0].Fields.Content, 1)
		require.Len(t, decoded.Slices[0].Fields.Content[0].Spans, 1)
		return decoded.Slices[0].Fields.Content[0].Spans[0].Start
	}

	assert.Equal(t, 2, spanStart(collab.DirPublisher{Dir: t.TempDir()}))
	assert.Equal(t, 3, spanStart(collab.DirPublisher{Dir: t.TempDir(), Offsets: slice.OffsetUTF16}))
	assert.Equal(t, 2, doc.Slices[0].Fields.(slice.Typography).Content[0].Spans[0].Start)
}
