package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdslice/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, style := range []string{
		styles.Bold.Render("test"),
		styles.Error.Render("test"),
		styles.SliceType.Render("test"),
	} {
		assert.Equal(t, "test", style, "no-color styles add no formatting")
	}
}

func TestStyles_ColorRendersText(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	for _, rendered := range []string{
		styles.Error.Render("x"),
		styles.Warning.Render("x"),
		styles.Info.Render("x"),
		styles.SliceType.Render("x"),
		styles.Variation.Render("x"),
		styles.TableHeader.Render("x"),
	} {
		assert.Contains(t, rendered, "x")
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "buffers are not terminals")
	assert.False(t, pretty.IsColorEnabled("", &buf))
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, 100, pretty.TerminalWidth(&buf))
}
