package advise

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdslice/pkg/langdetect"
	"github.com/yaklabco/mdslice/pkg/parser"
)

// CodeBlockRule reports fenced and indented code blocks.
type CodeBlockRule struct {
	BaseRule
}

// NewCodeBlockRule creates the code block rule.
func NewCodeBlockRule() *CodeBlockRule {
	return &CodeBlockRule{
		BaseRule: NewBaseRule("MS001", "code-block",
			"Code blocks are flattened into plain paragraphs", parser.SeverityInfo),
	}
}

// Check reports every code block with its (detected) language.
func (r *CodeBlockRule) Check(ctx *Context) []parser.Diagnostic {
	var diags []parser.Diagnostic
	ctx.Walk(func(n ast.Node) {
		var lang string
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			lang = langdetect.Label(string(node.Language(ctx.Source)), blockText(node, ctx.Source))
		case *ast.CodeBlock:
			lang = langdetect.Detect(blockText(node, ctx.Source))
		default:
			return
		}
		diags = append(diags, ctx.Report(r, n,
			"%s code block is flattened into plain paragraphs", lang))
	})
	return diags
}

// TableRule reports GFM tables outside a :::table marker.
type TableRule struct {
	BaseRule
}

// NewTableRule creates the table rule.
func NewTableRule() *TableRule {
	return &TableRule{
		BaseRule: NewBaseRule("MS002", "gfm-table",
			"Tables outside a :::table marker are kept as raw text", parser.SeverityWarning),
	}
}

// Check reports every table.
func (r *TableRule) Check(ctx *Context) []parser.Diagnostic {
	var diags []parser.Diagnostic
	ctx.Walk(func(n ast.Node) {
		if n.Kind() == extast.KindTable {
			diags = append(diags, ctx.Report(r, n,
				"table is kept as raw text; wrap it in a :::table marker"))
		}
	})
	return diags
}

// BlockquoteRule reports block quotes outside a :::quote marker.
type BlockquoteRule struct {
	BaseRule
}

// NewBlockquoteRule creates the block quote rule.
func NewBlockquoteRule() *BlockquoteRule {
	return &BlockquoteRule{
		BaseRule: NewBaseRule("MS003", "blockquote",
			"Block quotes outside a :::quote marker keep their '>' markers", parser.SeverityInfo),
	}
}

// Check reports top-level block quotes.
func (r *BlockquoteRule) Check(ctx *Context) []parser.Diagnostic {
	var diags []parser.Diagnostic
	ctx.Walk(func(n ast.Node) {
		if n.Kind() != ast.KindBlockquote || n.Parent().Kind() == ast.KindBlockquote {
			return
		}
		diags = append(diags, ctx.Report(r, n,
			`block quote keeps its ">" markers; use a :::quote marker`))
	})
	return diags
}

// RawHTMLRule reports HTML blocks and inline HTML.
type RawHTMLRule struct {
	BaseRule
}

// NewRawHTMLRule creates the raw HTML rule.
func NewRawHTMLRule() *RawHTMLRule {
	return &RawHTMLRule{
		BaseRule: NewBaseRule("MS004", "raw-html",
			"Raw HTML is published as literal text", parser.SeverityWarning),
	}
}

// Check reports every HTML block and inline HTML tag.
func (r *RawHTMLRule) Check(ctx *Context) []parser.Diagnostic {
	var diags []parser.Diagnostic
	ctx.Walk(func(n ast.Node) {
		switch n.Kind() {
		case ast.KindHTMLBlock:
			diags = append(diags, ctx.Report(r, n, "HTML block is published as literal text"))
		case ast.KindRawHTML:
			diags = append(diags, ctx.Report(r, n, "inline HTML is published as literal text"))
		}
	})
	return diags
}

// InlineImageRule reports images inside prose.
type InlineImageRule struct {
	BaseRule
}

// NewInlineImageRule creates the inline image rule.
func NewInlineImageRule() *InlineImageRule {
	return &InlineImageRule{
		BaseRule: NewBaseRule("MS005", "inline-image",
			"Images inside prose are reduced to their alt text", parser.SeverityInfo),
	}
}

// Check reports every inline image.
func (r *InlineImageRule) Check(ctx *Context) []parser.Diagnostic {
	var diags []parser.Diagnostic
	ctx.Walk(func(n ast.Node) {
		image, ok := n.(*ast.Image)
		if !ok {
			return
		}
		diags = append(diags, ctx.Report(r, n,
			"image %s is reduced to its alt text; use an :::image marker", image.Destination))
	})
	return diags
}

// NestedListRule reports lists nested inside list items.
type NestedListRule struct {
	BaseRule
}

// NewNestedListRule creates the nested list rule.
func NewNestedListRule() *NestedListRule {
	return &NestedListRule{
		BaseRule: NewBaseRule("MS006", "nested-list",
			"Nested lists are flattened to a single level", parser.SeverityInfo),
	}
}

// Check reports every list whose parent is a list item.
func (r *NestedListRule) Check(ctx *Context) []parser.Diagnostic {
	var diags []parser.Diagnostic
	ctx.Walk(func(n ast.Node) {
		if n.Kind() == ast.KindList && n.Parent() != nil && n.Parent().Kind() == ast.KindListItem {
			diags = append(diags, ctx.Report(r, n, "nested list is flattened to a single level"))
		}
	})
	return diags
}

// RegisterAll registers every built-in rule with registry.
func RegisterAll(registry *Registry) {
	registry.Register(NewCodeBlockRule())
	registry.Register(NewTableRule())
	registry.Register(NewBlockquoteRule())
	registry.Register(NewRawHTMLRule())
	registry.Register(NewInlineImageRule())
	registry.Register(NewNestedListRule())
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(DefaultRegistry)
}

// blockText joins the raw lines of a block node.
func blockText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.Bytes()
}
