// Package prompt builds the marker instructions handed to a text generator.
// The instructions list, for every enabled slice type, the fence syntax the
// parser understands, so generated markdown round-trips into slices.
package prompt

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// BlogLinkMarker is the fence tag for related-post links. It is rewritten to
// an inline link before segmentation and is always available.
const BlogLinkMarker = "blog-link"

// Section describes one marker the generator may use.
type Section struct {
	// Type is the slice type produced by the marker. Empty for blog links.
	Type slice.Type

	// Marker is the fence tag, e.g. "pros-cons".
	Marker string

	// Title is a short heading for the section.
	Title string

	// Example is a complete marked block.
	Example string

	// Variations lists the accepted variation suffixes besides the default.
	Variations []string
}

// Instructions is the ordered set of marker sections for a run.
type Instructions struct {
	Sections []Section
}

// template holds the example block and variations for one marker.
type template struct {
	title      string
	example    string
	variations []string
}

// templates maps each marker type to its example.
//
//nolint:gochecknoglobals // Read-only lookup table.
var templates = map[slice.Type]template{
	slice.TypeNotification: {
		title:      "Notification (important information, tips, warnings)",
		example:    ":::notification:default\n**Important tip:** [short punchy title]\n\n[Content in markdown with paragraphs and lists]\n:::",
		variations: []string{"base100", "purple", "orange"},
	},
	slice.TypeAccordion: {
		title:   "Accordion / FAQ",
		example: ":::accordion\n## [Question or title 1]\n[Answer in markdown]\n\n## [Question or title 2]\n[Answer in markdown]\n:::",
	},
	slice.TypeProsCons: {
		title:   "Pros and cons",
		example: ":::pros-cons\n**Pros of [subject]:**\n- [Pro 1]\n- [Pro 2]\n\n**Cons of [subject]:**\n- [Con 1]\n- [Con 2]\n:::",
	},
	slice.TypeChecklist: {
		title:   "Checklist (practical steps and overviews)",
		example: ":::checklist\n**[Checklist title]**\n\n[Optional description]\n\n- [Item 1]\n- [Item 2]\n- [Item 3]\n:::",
	},
	slice.TypeTips: {
		title:      "Tips",
		example:    ":::tips:numbered\n**[Tips section title]**\n\n## [Tip title 1]\n[Tip explanation]\n\n## [Tip title 2]\n[Tip explanation]\n:::",
		variations: []string{"numbered", "bulleted"},
	},
	slice.TypeDosDonts: {
		title:   "Do's and don'ts",
		example: ":::dos-donts\n**SEO Do's:**\n- [Do 1]\n- [Do 2]\n\n**SEO Don'ts:**\n- [Don't 1]\n- [Don't 2]\n:::",
	},
	slice.TypeTable: {
		title:   "Table (comparisons and data)",
		example: ":::table\n**[Table title]**\n\n| Header 1 | Header 2 | Header 3 |\n|----------|----------|----------|\n| Cell 1   | Cell 2   | Cell 3   |\n:::",
	},
	slice.TypeQuote: {
		title:      "Quote",
		example:    ":::quote:highlight\n> [Quote text]\n\n**[Author name]**, [Role or title]\n:::",
		variations: []string{"highlight", "testimonial"},
	},
	slice.TypeCallToAction: {
		title:      "Call to action",
		example:    ":::call-to-action:primary\n**[CTA title]**\n\n[CTA description]\n\n[Button: Text|/link]\n:::",
		variations: []string{"primary", "secondary"},
	},
	slice.TypeImage: {
		title:      "Image",
		example:    ":::image:default\n![Alt text describing the image](https://example.com/image.png)\n:::",
		variations: []string{"imageWithBorder"},
	},
	slice.TypeDivider: {
		title:   "Divider (visual separation)",
		example: ":::divider\n:::",
	},
}

// blogLink is the section for related-post references.
//
//nolint:gochecknoglobals // Read-only lookup table.
var blogLink = Section{
	Marker:  BlogLinkMarker,
	Title:   "Blog link references",
	Example: ":::blog-link:/blog/related-post-slug\n[Link text shown to the reader]\n:::",
}

// Build returns the instructions for the enabled slice types in vocabulary
// order. Core types and blog links are always included; typography has no
// marker and is never listed.
func Build(enabled config.Enablement) Instructions {
	var sections []Section
	for _, t := range slice.MarkerTypes() {
		if !enabled.Enabled(t) {
			continue
		}
		tmpl := templates[t]
		sections = append(sections, Section{
			Type:       t,
			Marker:     t.Marker(),
			Title:      tmpl.title,
			Example:    tmpl.example,
			Variations: tmpl.variations,
		})
	}
	sections = append(sections, blogLink)
	return Instructions{Sections: sections}
}

// Types returns the slice types covered by the instructions.
func (in Instructions) Types() []slice.Type {
	types := make([]slice.Type, 0, len(in.Sections))
	for _, s := range in.Sections {
		if s.Type != "" {
			types = append(types, s.Type)
		}
	}
	return types
}

// Markers returns the fence tags covered by the instructions.
func (in Instructions) Markers() []string {
	markers := make([]string, len(in.Sections))
	for i, s := range in.Sections {
		markers[i] = s.Marker
	}
	return markers
}

// String renders the instructions as markdown for a generation prompt.
func (in Instructions) String() string {
	var b strings.Builder
	b.WriteString("**Available slice markers:**\n")

	for i, s := range in.Sections {
		fmt.Fprintf(&b, "\n**%d. %s:**\n", i+1, s.Title)
		b.WriteString("\"\"\"\n")
		b.WriteString(s.Example)
		b.WriteString("\n\"\"\"\n")

		if len(s.Variations) > 0 {
			quoted := make([]string, 0, len(s.Variations)+1)
			quoted = append(quoted, `":default"`)
			for _, v := range s.Variations {
				quoted = append(quoted, `":`+v+`"`)
			}
			fmt.Fprintf(&b, "\nVariations: %s\n", strings.Join(quoted, ", "))
		}
	}

	return b.String()
}
