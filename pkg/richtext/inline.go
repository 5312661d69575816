package richtext

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/mdslice/pkg/slice"
)

// tokenKind classifies an inline token.
type tokenKind uint8

const (
	tokenText tokenKind = iota
	tokenStrong
	tokenEm
	tokenLink
)

// token is one inline run. Formatting tokens carry their visible content as
// children; text tokens carry the literal text.
type token struct {
	kind     tokenKind
	text     string
	url      string
	children []token
}

// scope tracks which formatting kinds enclose the current run, so a kind
// never nests inside itself.
type scope struct {
	inStrong bool
	inEm     bool
	inLink   bool
}

// tokenize splits inline markdown into tokens in a single left-to-right pass.
// Markers without a matching closer are kept as literal text.
func tokenize(src string, sc scope) []token {
	var (
		tokens []token
		text   strings.Builder
	)

	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, token{kind: tokenText, text: text.String()})
			text.Reset()
		}
	}

	for pos := 0; pos < len(src); {
		if !sc.inStrong && strings.HasPrefix(src[pos:], "**") {
			if end := strongClose(src, pos+2); end >= 0 {
				flush()
				inner := sc
				inner.inStrong = true
				tokens = append(tokens, token{kind: tokenStrong, children: tokenize(src[pos+2:end], inner)})
				pos = end + 2
				continue
			}
		}

		if !sc.inEm && src[pos] == '*' {
			if end := emClose(src, pos); end >= 0 {
				flush()
				inner := sc
				inner.inEm = true
				tokens = append(tokens, token{kind: tokenEm, children: tokenize(src[pos+1:end], inner)})
				pos = end + 1
				continue
			}
		}

		if src[pos] == '!' && strings.HasPrefix(src[pos+1:], "[") {
			// Inline images keep their alt text only.
			if label, _, next, ok := matchLink(src, pos+1); ok {
				flush()
				text.WriteString(label)
				pos = next
				continue
			}
		}

		if !sc.inLink && src[pos] == '[' {
			if label, url, next, ok := matchLink(src, pos); ok {
				flush()
				inner := sc
				inner.inLink = true
				tokens = append(tokens, token{kind: tokenLink, url: url, children: tokenize(label, inner)})
				pos = next
				continue
			}
		}

		text.WriteByte(src[pos])
		pos++
	}

	flush()
	return tokens
}

// strongClose returns the offset of the "**" closing a strong run whose
// content starts at from, or -1. Strong runs are non-empty and stay on one line.
func strongClose(src string, from int) int {
	idx := strings.Index(src[from:], "**")
	if idx <= 0 {
		return -1
	}
	if nl := strings.IndexByte(src[from:], '\n'); nl >= 0 && nl < idx {
		return -1
	}
	return from + idx
}

// emClose returns the offset of the '*' closing an emphasis run opened at
// open, or -1. Neither delimiter may touch another '*', and the content may
// not start or end with whitespace.
func emClose(src string, open int) int {
	if open > 0 && src[open-1] == '*' {
		return -1
	}
	if open+1 >= len(src) || src[open+1] == '*' {
		return -1
	}

	idx := strings.IndexByte(src[open+1:], '*')
	if idx <= 0 {
		return -1
	}
	end := open + 1 + idx
	if end+1 < len(src) && src[end+1] == '*' {
		return -1
	}

	content := src[open+1 : end]
	first, _ := utf8.DecodeRuneInString(content)
	last, _ := utf8.DecodeLastRuneInString(content)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return -1
	}
	return end
}

// matchLink matches "[label](url)" starting at the '[' at open. It returns
// the label, the URL (without any quoted title), and the offset after ')'.
func matchLink(src string, open int) (string, string, int, bool) {
	rest := src[open+1:]

	closeLabel := strings.IndexByte(rest, ']')
	if closeLabel <= 0 {
		return "", "", 0, false
	}
	label := rest[:closeLabel]

	rest = rest[closeLabel+1:]
	if !strings.HasPrefix(rest, "(") {
		return "", "", 0, false
	}

	closeURL := strings.IndexByte(rest, ')')
	if closeURL <= 1 {
		return "", "", 0, false
	}

	target := strings.Fields(rest[1:closeURL])
	if len(target) == 0 {
		return "", "", 0, false
	}

	next := open + 1 + closeLabel + 1 + closeURL + 1
	return label, target[0], next, true
}

// renderer flattens tokens into visible text and spans.
type renderer struct {
	text  strings.Builder
	pos   int
	spans []slice.Span
}

func (r *renderer) render(tokens []token) {
	for _, tok := range tokens {
		if tok.kind == tokenText {
			r.text.WriteString(tok.text)
			r.pos += utf8.RuneCountInString(tok.text)
			continue
		}

		start := r.pos
		r.render(tok.children)
		if r.pos == start {
			continue
		}

		span := slice.Span{Start: start, End: r.pos}
		switch tok.kind {
		case tokenStrong:
			span.Type = slice.SpanStrong
		case tokenEm:
			span.Type = slice.SpanEm
		case tokenLink:
			span.Type = slice.SpanHyperlink
			span.Data = slice.WebLink(tok.url)
		case tokenText:
		}
		r.spans = append(r.spans, span)
	}
}

// spanRank orders stacked spans over the same range.
func spanRank(t slice.SpanType) int {
	switch t {
	case slice.SpanStrong:
		return 0
	case slice.SpanEm:
		return 1
	default:
		return 2
	}
}

// Inline strips inline markdown from text and returns the visible text with
// its formatting spans. Spans are sorted by start; an enclosing span comes
// before the spans it contains.
func Inline(text string) (string, []slice.Span) {
	var r renderer
	r.render(tokenize(text, scope{}))

	spans := r.spans
	if spans == nil {
		spans = []slice.Span{}
	}
	slices.SortStableFunc(spans, func(a, b slice.Span) int {
		return cmp.Or(
			cmp.Compare(a.Start, b.Start),
			cmp.Compare(b.End, a.End),
			cmp.Compare(spanRank(a.Type), spanRank(b.Type)),
		)
	})
	return r.text.String(), spans
}

// Clean strips inline markdown and returns only the visible text.
func Clean(text string) string {
	plain, _ := Inline(text)
	return plain
}
