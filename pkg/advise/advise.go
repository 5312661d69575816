// Package advise reports markdown constructs that the rich-text converter
// flattens or drops.
//
// The converter understands a deliberately small dialect. Advise parses the
// same text with goldmark (GFM) and walks the AST, so authors learn that a
// code block, a table outside a :::table marker or raw HTML will not survive
// conversion. It never changes parse output.
package advise

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/parser"
	"github.com/yaklabco/mdslice/pkg/segment"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// Rule is one advisory check.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "MS001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns what the rule reports.
	Description() string

	// Severity returns the severity of the diagnostics the rule produces.
	Severity() parser.Severity

	// Check inspects one block and returns its findings.
	Check(ctx *Context) []parser.Diagnostic
}

// Context is the per-block input to a rule.
type Context struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// Block is the block being checked.
	Block segment.Block

	// Source is the block content the AST was built from.
	Source []byte

	// Root is the goldmark document node.
	Root ast.Node
}

// Cancelled returns true if the context has been cancelled.
func (c *Context) Cancelled() bool {
	select {
	case <-c.Ctx.Done():
		return true
	default:
		return false
	}
}

// Line converts a byte offset into Source to a 1-based document line.
func (c *Context) Line(offset int) int {
	offset = max(0, min(offset, len(c.Source)))
	return c.Block.ContentLine + bytes.Count(c.Source[:offset], []byte("\n"))
}

// NodeLine returns the document line where n starts.
func (c *Context) NodeLine(n ast.Node) int {
	if offset, ok := nodeOffset(n); ok {
		line := c.Line(offset)
		if n.Kind() == ast.KindFencedCodeBlock {
			// Lines of a fenced block start after the opening fence.
			line--
		}
		return max(line, c.Block.ContentLine)
	}
	return c.Block.ContentLine
}

// Report builds a diagnostic for rule at node n.
func (c *Context) Report(rule Rule, n ast.Node, format string, args ...any) parser.Diagnostic {
	return parser.Diagnostic{
		Severity: rule.Severity(),
		Code:     rule.ID(),
		Message:  fmt.Sprintf(format, args...),
		Line:     c.NodeLine(n),
	}
}

// Walk calls fn for every node under Root in document order.
func (c *Context) Walk(fn func(n ast.Node)) {
	_ = ast.Walk(c.Root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			fn(n)
		}
		return ast.WalkContinue, nil
	})
}

// Advisor runs a set of rules over the blocks of a document.
type Advisor struct {
	md    goldmark.Markdown
	rules []Rule
}

// New creates an Advisor running the rules of registry that cfg enables.
func New(registry *Registry, cfg config.AdviseConfig) *Advisor {
	var rules []Rule
	if cfg.IsEnabled() {
		for _, rule := range registry.Rules() {
			if cfg.RuleEnabled(rule.ID(), rule.Name()) {
				rules = append(rules, rule)
			}
		}
	}

	return &Advisor{
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
		rules: rules,
	}
}

// Rules returns the rules the advisor runs, sorted by ID.
func (a *Advisor) Rules() []Rule {
	return a.rules
}

// Check segments markdown and runs every rule over the blocks whose content
// ends up as rich text. Diagnostics are sorted by line.
func (a *Advisor) Check(ctx context.Context, markdown string) ([]parser.Diagnostic, error) {
	if len(a.rules) == 0 {
		return nil, nil
	}

	var diags []parser.Diagnostic
	for _, block := range segment.Split(markdown).Blocks {
		if err := ctx.Err(); err != nil {
			return diags, fmt.Errorf("advise cancelled: %w", err)
		}
		if !carriesRichText(block) {
			continue
		}
		diags = append(diags, a.CheckBlock(ctx, block)...)
	}

	parser.SortDiagnostics(diags)
	return diags, nil
}

// CheckBlock runs every rule over one block.
func (a *Advisor) CheckBlock(ctx context.Context, block segment.Block) []parser.Diagnostic {
	source := []byte(block.Content)
	rctx := &Context{
		Ctx:    ctx,
		Block:  block,
		Source: source,
		Root:   a.md.Parser().Parse(text.NewReader(source)),
	}

	var diags []parser.Diagnostic
	for _, rule := range a.rules {
		if rctx.Cancelled() {
			break
		}
		diags = append(diags, rule.Check(rctx)...)
	}
	return diags
}

// carriesRichText reports whether a block's content is converted to rich
// text as a whole: plain runs and the marked types whose bodies are prose.
func carriesRichText(block segment.Block) bool {
	if block.Kind == segment.KindPlain {
		return true
	}
	t, ok := slice.ParseType(block.Marker.Tag)
	if !ok {
		return false
	}
	switch t {
	case slice.TypeNotification, slice.TypeAccordion, slice.TypeTips:
		return true
	default:
		return false
	}
}

// nodeOffset returns the byte offset where n starts in the source.
func nodeOffset(n ast.Node) (int, bool) {
	switch node := n.(type) {
	case *ast.Text:
		return node.Segment.Start, true
	case *ast.RawHTML:
		if node.Segments.Len() > 0 {
			return node.Segments.At(0).Start, true
		}
	}

	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start, true
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if offset, ok := nodeOffset(child); ok {
			return offset, true
		}
	}
	return 0, false
}
