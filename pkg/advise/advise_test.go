package advise_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdslice/pkg/advise"
	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/parser"
)

const kitchenSink = "Intro\n" + // 1
	"\n" +
	"```go\n" + // 3
	"fmt.Println()\n" +
	"```\n" +
	"\n" +
	"| a | b |\n" + // 7
	"|---|---|\n" +
	"| 1 | 2 |\n" +
	"\n" +
	"> quote\n" + // 11
	"\n" +
	"<div>x</div>\n" + // 13
	"\n" +
	"Text ![alt](/img.png) and <b>bold</b>\n" + // 15
	"\n" +
	"- a\n" +
	"  - b\n" // 18

type finding struct {
	Code string
	Line int
}

func findings(diags []parser.Diagnostic) []finding {
	out := make([]finding, len(diags))
	for i, d := range diags {
		out[i] = finding{Code: d.Code, Line: d.Line}
	}
	return out
}

func newAdvisor(cfg config.AdviseConfig) *advise.Advisor {
	return advise.New(advise.DefaultRegistry, cfg)
}

func TestAdvisor_Check(t *testing.T) {
	t.Parallel()

	diags, err := newAdvisor(config.AdviseConfig{}).Check(context.Background(), kitchenSink)
	require.NoError(t, err)

	assert.Equal(t, []finding{
		{Code: "MS001", Line: 3},
		{Code: "MS002", Line: 7},
		{Code: "MS003", Line: 11},
		{Code: "MS004", Line: 13},
		{Code: "MS004", Line: 15},
		{Code: "MS004", Line: 15},
		{Code: "MS005", Line: 15},
		{Code: "MS006", Line: 18},
	}, findings(diags))

	assert.Contains(t, diags[0].Message, "go code block")
	assert.Equal(t, parser.SeverityInfo, diags[0].Severity)
	assert.Equal(t, parser.SeverityWarning, diags[1].Severity)
	assert.Contains(t, diags[6].Message, "/img.png")
}

func TestAdvisor_DetectsUnlabelledCode(t *testing.T) {
	t.Parallel()

	input := "```\npackage main\n\nfunc main() {}\n```"
	diags, err := newAdvisor(config.AdviseConfig{}).Check(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].Line)
	assert.True(t, strings.HasPrefix(diags[0].Message, "go "), diags[0].Message)
}

func TestAdvisor_MarkedBlocks(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		":::notification", // 1
		"**Let op**",
		"<div>x</div>", // 3
		":::",
		":::table",
		"| a |",
		"|---|",
		"| 1 |",
		":::",
		":::quote",
		"> wijs",
		":::",
		":::unknown",
		"<div>y</div>",
		":::",
	}, "\n")

	diags, err := newAdvisor(config.AdviseConfig{}).Check(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, []finding{{Code: "MS004", Line: 3}}, findings(diags))
}

func TestAdvisor_Config(t *testing.T) {
	t.Parallel()

	disabled := false
	off := newAdvisor(config.AdviseConfig{Enabled: &disabled})
	assert.Empty(t, off.Rules())

	diags, err := off.Check(context.Background(), kitchenSink)
	require.NoError(t, err)
	assert.Empty(t, diags)

	partial := newAdvisor(config.AdviseConfig{Rules: map[string]bool{"raw-html": false, "MS001": false}})
	require.Len(t, partial.Rules(), 4)

	diags, err = partial.Check(context.Background(), kitchenSink)
	require.NoError(t, err)
	for _, d := range diags {
		assert.NotEqual(t, "MS001", d.Code)
		assert.NotEqual(t, "MS004", d.Code)
	}
}

func TestAdvisor_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newAdvisor(config.AdviseConfig{}).Check(ctx, kitchenSink)
	require.ErrorIs(t, err, context.Canceled)
}

func TestAdvisor_CleanInput(t *testing.T) {
	t.Parallel()

	input := "# Titel\n\nGewone tekst met **vet** en [link](/x).\n\n- een\n- twee\n\n1. drie"
	diags, err := newAdvisor(config.AdviseConfig{}).Check(context.Background(), input)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	rules := advise.DefaultRegistry.Rules()
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID()
		assert.NotEmpty(t, r.Name())
		assert.NotEmpty(t, r.Description())
	}
	assert.Equal(t, []string{"MS001", "MS002", "MS003", "MS004", "MS005", "MS006"}, ids)

	id, rule, ok := advise.DefaultRegistry.Resolve("nested-list")
	require.True(t, ok)
	assert.Equal(t, "MS006", id)
	assert.Equal(t, "nested-list", rule.Name())

	_, _, ok = advise.DefaultRegistry.Resolve("MD001")
	assert.False(t, ok)
}
