// Package extract turns the content of a fenced slice block into typed fields.
//
// Each slice type has its own small grammar. Extraction never fails: fields
// that cannot be resolved keep empty defaults, and Missing reports them.
package extract

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdslice/pkg/richtext"
	"github.com/yaklabco/mdslice/pkg/slice"
)

var (
	boldRunPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	boldRunTrailPattern = regexp.MustCompile(`\*\*(.*?)\*\*\s*`)
	sectionPattern      = regexp.MustCompile(`(?m)^## `)
)

// Extract builds the slice for a block of the given type. Content is the
// trimmed text between the fences; an empty variation becomes the default.
func Extract(sliceType slice.Type, variation, content string) slice.Slice {
	return slice.New(extractFields(sliceType, content), variation)
}

//nolint:ireturn // Fields is a closed sum type.
func extractFields(sliceType slice.Type, content string) slice.Fields {
	switch sliceType {
	case slice.TypeTypography:
		return slice.Typography{Content: richtext.Convert(content)}
	case slice.TypeNotification:
		return extractNotification(content)
	case slice.TypeAccordion:
		return extractAccordion(content)
	case slice.TypeProsCons:
		return extractProsCons(content)
	case slice.TypeChecklist:
		return extractChecklist(content)
	case slice.TypeTips:
		return extractTips(content)
	case slice.TypeTable:
		return extractTable(content)
	case slice.TypeDosDonts:
		return extractDosDonts(content)
	case slice.TypeQuote:
		return extractQuote(content)
	case slice.TypeCallToAction:
		return extractCallToAction(content)
	case slice.TypeImage:
		return extractImage(content)
	case slice.TypeDivider:
		return slice.Divider{}
	}

	// Unreachable for types from slice.ParseType; keep the content visible.
	return slice.Typography{Content: richtext.Convert(content)}
}

// Missing names the fields of f that resolved to empty defaults. Optional
// fields (descriptions, titles of links and images, quote authors) are
// never reported.
func Missing(fields slice.Fields) []string {
	var missing []string
	check := func(name string, empty bool) {
		if empty {
			missing = append(missing, name)
		}
	}

	switch f := fields.(type) {
	case slice.Typography:
		check("content", len(f.Content) == 0)
	case slice.Notification:
		check("boldText", f.BoldText == "")
		check("content", len(f.Content) == 0)
	case slice.Accordion:
		check("items", len(f.Items) == 0)
	case slice.ProsCons:
		check("prosTitle", f.ProsTitle == "")
		check("pros", len(f.Pros) == 0)
		check("consTitle", f.ConsTitle == "")
		check("cons", len(f.Cons) == 0)
	case slice.Checklist:
		check("title", f.Title == "")
		check("items", len(f.Items) == 0)
	case slice.Tips:
		check("title", f.Title == "")
		check("tips", len(f.Tips) == 0)
	case slice.Table:
		check("title", f.Title == "")
		check("headers", len(f.Headers) == 0)
		check("rows", len(f.Rows) == 0)
	case slice.DosDonts:
		check("dosTitle", f.DosTitle == "")
		check("dos", len(f.Dos) == 0)
		check("dontsTitle", f.DontsTitle == "")
		check("donts", len(f.Donts) == 0)
	case slice.Quote:
		check("quote", f.Quote == "")
	case slice.CallToAction:
		check("linkText", f.LinkText == "")
		check("url", f.URL == "")
	case slice.Image:
		check("altText", f.AltText == "")
		check("url", f.URL == "")
	case slice.Divider:
	}

	return missing
}

// firstBold returns the visible text of the first **bold** run in content.
func firstBold(content string) string {
	match := boldRunPattern.FindStringSubmatch(content)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(richtext.Clean(match[1]))
}

// lines splits content into trimmed lines.
func lines(content string) []string {
	out := strings.Split(content, "\n")
	for i, line := range out {
		out[i] = strings.TrimSpace(line)
	}
	return out
}

// splitSections splits content on lines starting with "## ". Text before the
// first header is kept as a leading section when it is not blank.
func splitSections(content string) []string {
	locs := sectionPattern.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return []string{content}
	}

	sections := make([]string, 0, len(locs)+1)
	if preface := content[:locs[0][0]]; strings.TrimSpace(preface) != "" {
		sections = append(sections, preface)
	}
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, content[loc[1]:end])
	}
	return sections
}

// splitTitle splits a section into its first line and the trimmed rest.
func splitTitle(section string) (string, string) {
	title, rest, _ := strings.Cut(section, "\n")
	return strings.TrimSpace(title), strings.TrimSpace(rest)
}
