// Package slice defines the typed content blocks produced by the markdown parser.
//
// A Slice is the unit the downstream structured-content system renders. Each
// slice carries a Type from a closed vocabulary, a presentational Variation and
// a Fields value whose concrete type is fixed by the slice type.
package slice

import "strings"

// Type identifies the kind of a slice.
type Type string

// Slice types understood by the parser.
const (
	TypeTypography   Type = "typography"
	TypeNotification Type = "notification"
	TypeAccordion    Type = "accordion"
	TypeProsCons     Type = "pros_cons"
	TypeChecklist    Type = "checklist"
	TypeTips         Type = "tips"
	TypeTable        Type = "table"
	TypeDosDonts     Type = "dos_donts"
	TypeQuote        Type = "quote"
	TypeCallToAction Type = "call_to_action"
	TypeImage        Type = "image"
	TypeDivider      Type = "divider"
)

// DefaultVariation is used when a marker carries no variation.
const DefaultVariation = "default"

// Types returns every slice type in vocabulary order.
func Types() []Type {
	return []Type{
		TypeTypography,
		TypeNotification,
		TypeAccordion,
		TypeProsCons,
		TypeChecklist,
		TypeTips,
		TypeTable,
		TypeDosDonts,
		TypeQuote,
		TypeCallToAction,
		TypeImage,
		TypeDivider,
	}
}

// MarkerTypes returns the slice types that may appear as a fence tag.
// Typography is the type of plain runs and has no marker.
func MarkerTypes() []Type {
	return Types()[1:]
}

// String returns the type tag.
func (t Type) String() string {
	return string(t)
}

// Marker returns the fence tag used for the type in generated markdown
// (underscores written as hyphens, e.g. "pros-cons").
func (t Type) Marker() string {
	return strings.ReplaceAll(string(t), "_", "-")
}

// Description returns a short human-readable summary of the type.
func (t Type) Description() string {
	switch t {
	case TypeTypography:
		return "Plain markdown prose outside any slice marker"
	case TypeNotification:
		return "Highlighted call-out with a bold lead (tips, warnings)"
	case TypeAccordion:
		return "Collapsible question and answer sections"
	case TypeProsCons:
		return "Advantages and disadvantages of a subject"
	case TypeChecklist:
		return "Titled list of practical steps"
	case TypeTips:
		return "Titled list of tips, each with its own heading"
	case TypeTable:
		return "Titled table for comparisons and data"
	case TypeDosDonts:
		return "Recommended and discouraged practices"
	case TypeQuote:
		return "Pull quote with attribution"
	case TypeCallToAction:
		return "Prominent link or button"
	case TypeImage:
		return "Single image with alt text"
	case TypeDivider:
		return "Visual separator"
	}
	return ""
}

// IsValid reports whether t is part of the vocabulary.
func (t Type) IsValid() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType resolves a fence tag to a marker slice type.
// Matching is case-insensitive and treats '-' and '_' as equivalent, so
// "pros-cons", "pros_cons" and "Pros-Cons" all resolve to TypeProsCons.
func ParseType(tag string) (Type, bool) {
	normalized := Type(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), "-", "_"))
	for _, known := range MarkerTypes() {
		if normalized == known {
			return known, true
		}
	}
	return "", false
}

// Slice is one typed content block of a parsed document.
type Slice struct {
	Type      Type   `json:"sliceType" yaml:"sliceType"`
	Variation string `json:"variation" yaml:"variation"`
	Fields    Fields `json:"fields" yaml:"fields"`
}

// New builds a slice for the given fields. An empty variation becomes
// DefaultVariation and nil lists inside fields become empty lists.
func New(fields Fields, variation string) Slice {
	if variation == "" {
		variation = DefaultVariation
	}
	return Slice{
		Type:      fields.SliceType(),
		Variation: variation,
		Fields:    fields.normalize(),
	}
}
