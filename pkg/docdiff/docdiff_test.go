package docdiff_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdslice/pkg/docdiff"
)

func TestCompare_Equal(t *testing.T) {
	t.Parallel()

	assert.Nil(t, docdiff.Compare("a.json", nil, nil))
	assert.Nil(t, docdiff.Compare("a.json", []byte("x\ny\n"), []byte("x\ny\n")))
	assert.Empty(t, docdiff.Compare("a.json", nil, nil).String())
}

func TestCompare_Change(t *testing.T) {
	t.Parallel()

	diff := docdiff.Compare("blog/tea.json", []byte("a\nb\nc\n"), []byte("a\nB\nc\n"))
	require.NotNil(t, diff)
	assert.Equal(t, 1, diff.Added)
	assert.Equal(t, 1, diff.Removed)
	require.Len(t, diff.Hunks, 1)

	want := "--- a/blog/tea.json\n" +
		"+++ b/blog/tea.json\n" +
		"@@ -1,3 +1,3 @@\n" +
		" a\n" +
		"-b\n" +
		"+B\n" +
		" c\n"
	assert.Equal(t, want, diff.String())
}

func TestCompare_NewDocument(t *testing.T) {
	t.Parallel()

	diff := docdiff.Compare("new.json", nil, []byte("x\ny\n"))
	require.NotNil(t, diff)
	assert.Equal(t, 2, diff.Added)
	assert.Zero(t, diff.Removed)
	assert.Contains(t, diff.String(), "@@ -0,0 +1,2 @@\n+x\n+y\n")
}

func TestCompare_RemovedDocument(t *testing.T) {
	t.Parallel()

	diff := docdiff.Compare("old.json", []byte("x\n"), nil)
	require.NotNil(t, diff)
	assert.Contains(t, diff.String(), "@@ -1,1 +0,0 @@\n-x\n")
}

func TestCompare_SeparateHunks(t *testing.T) {
	t.Parallel()

	var before, after []string
	for i := 1; i <= 20; i++ {
		line := fmt.Sprintf("l%d", i)
		before = append(before, line)
		if i == 2 || i == 18 {
			line = strings.ToUpper(line)
		}
		after = append(after, line)
	}

	diff := docdiff.Compare("x.json",
		[]byte(strings.Join(before, "\n")+"\n"),
		[]byte(strings.Join(after, "\n")+"\n"))
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 2)

	out := diff.String()
	assert.Contains(t, out, "@@ -1,5 +1,5 @@")
	assert.Contains(t, out, "@@ -15,6 +15,6 @@")
	assert.NotContains(t, out, " l10\n")
}

func TestCompare_NearbyChangesShareHunk(t *testing.T) {
	t.Parallel()

	before := "a\nb\nc\nd\ne\nf\ng\n"
	after := "A\nb\nc\nd\ne\nf\nG\n"

	diff := docdiff.Compare("x.json", []byte(before), []byte(after))
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 1)
	assert.Equal(t, 7, diff.Hunks[0].OldLines)
	assert.Equal(t, 7, diff.Hunks[0].NewLines)
}
