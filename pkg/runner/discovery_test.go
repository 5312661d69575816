package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdslice/pkg/runner"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func paths(sources []runner.Source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.Path
	}
	return out
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"readme.md":              "",
		"blog/post.md":           "",
		"blog/old.markdown":      "",
		"blog/cover.png":         "",
		".hidden/secret.md":      "",
		"blog/.draft.md":         "",
		"drafts/idea.md":         "",
		"vendor/theme/README.MD": "",
	})

	sources, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"drafts/**", "**/theme/**"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "blog", "old.markdown"),
		filepath.Join(dir, "blog", "post.md"),
		filepath.Join(dir, "readme.md"),
	}, paths(sources))
	for _, s := range sources {
		assert.Equal(t, dir, s.Root)
	}
}

func TestDiscover_SingleFileAndDedup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"blog/post.md": "",
		"notes.txt":    "",
	})

	sources, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"blog/post.md", "blog", "notes.txt"},
	})
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, filepath.Join(dir, "blog", "post.md"), sources[0].Path)
	assert.Empty(t, sources[0].Root, "first argument naming the file wins")
}

func TestDiscover_BaseNameGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a/CHANGELOG.md": "",
		"a/keep.md":      "",
	})

	sources, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"CHANGELOG.md"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a", "keep.md")}, paths(sources))
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"missing"},
	})
	require.ErrorContains(t, err, "stat missing")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}
