package slice

import "unicode/utf16"

// OffsetUnit names the unit span offsets are counted in.
type OffsetUnit string

const (
	// OffsetCodePoints counts Unicode code points. Spans are built in this
	// unit.
	OffsetCodePoints OffsetUnit = "codepoint"

	// OffsetUTF16 counts UTF-16 code units, the unit of JavaScript string
	// lengths. Characters outside the Basic Multilingual Plane count twice.
	OffsetUTF16 OffsetUnit = "utf16"
)

// OffsetUnits returns every supported offset unit.
func OffsetUnits() []OffsetUnit {
	return []OffsetUnit{OffsetUTF16, OffsetCodePoints}
}

// IsValid returns true if the unit is supported.
func (u OffsetUnit) IsValid() bool {
	return u == OffsetCodePoints || u == OffsetUTF16
}

// InUTF16 returns a copy of the node with span offsets counted in UTF-16
// code units.
func (n RichTextNode) InUTF16() RichTextNode {
	if len(n.Spans) == 0 {
		return n
	}

	// offsets[i] is the UTF-16 offset of the i-th code point.
	offsets := make([]int, 0, len(n.Text)+1)
	units := 0
	for _, r := range n.Text {
		offsets = append(offsets, units)
		units += max(utf16.RuneLen(r), 1)
	}
	offsets = append(offsets, units)

	at := func(i int) int {
		return offsets[max(0, min(i, len(offsets)-1))]
	}

	spans := make([]Span, len(n.Spans))
	for i, span := range n.Spans {
		span.Start = at(span.Start)
		span.End = at(span.End)
		spans[i] = span
	}
	n.Spans = spans
	return n
}

// InUTF16 returns a copy of r with span offsets counted in UTF-16 code units.
func (r RichText) InUTF16() RichText {
	if r == nil {
		return nil
	}
	out := make(RichText, len(r))
	for i, node := range r {
		out[i] = node.InUTF16()
	}
	return out
}

// WithOffsets returns s with every span counted in unit. Slices are built
// with code-point offsets, so OffsetCodePoints returns s unchanged.
func (s Slice) WithOffsets(unit OffsetUnit) Slice {
	if unit != OffsetUTF16 || s.Fields == nil {
		return s
	}
	s.Fields = s.Fields.mapRichText(RichText.InUTF16)
	return s
}

func (f Typography) mapRichText(fn func(RichText) RichText) Fields {
	f.Content = fn(f.Content)
	return f
}

func (f Notification) mapRichText(fn func(RichText) RichText) Fields {
	f.Content = fn(f.Content)
	return f
}

func (f Accordion) mapRichText(fn func(RichText) RichText) Fields {
	items := make([]AccordionItem, len(f.Items))
	for i, item := range f.Items {
		item.Content = fn(item.Content)
		items[i] = item
	}
	f.Items = items
	return f
}

func (f Checklist) mapRichText(fn func(RichText) RichText) Fields {
	f.Description = fn(f.Description)
	return f
}

func (f Tips) mapRichText(fn func(RichText) RichText) Fields {
	tips := make([]Tip, len(f.Tips))
	for i, tip := range f.Tips {
		tip.TipContent = fn(tip.TipContent)
		tips[i] = tip
	}
	f.Tips = tips
	return f
}

func (f Quote) mapRichText(fn func(RichText) RichText) Fields {
	f.Author = fn(f.Author)
	return f
}

func (f ProsCons) mapRichText(func(RichText) RichText) Fields     { return f }
func (f Table) mapRichText(func(RichText) RichText) Fields        { return f }
func (f DosDonts) mapRichText(func(RichText) RichText) Fields     { return f }
func (f CallToAction) mapRichText(func(RichText) RichText) Fields { return f }
func (f Image) mapRichText(func(RichText) RichText) Fields        { return f }
func (f Divider) mapRichText(func(RichText) RichText) Fields      { return f }
