package extract

import (
	"strings"

	"github.com/yaklabco/mdslice/pkg/richtext"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// section is the list currently receiving bullet items in a two-list scan.
type section uint8

const (
	sectionNone section = iota
	sectionFirst
	sectionSecond
)

// twoLists is the shared shape of pros/cons and do's/don'ts blocks.
type twoLists struct {
	firstTitle  string
	first       []string
	secondTitle string
	second      []string
}

// scanTwoLists walks content line by line. A bold heading line selects a
// section through classify; bullet lines append plain text to the selected
// section. Headings that classify selects no section for are ignored.
func scanTwoLists(content string, classify func(title string) section) twoLists {
	var (
		out     twoLists
		current = sectionNone
	)

	for _, line := range lines(content) {
		if title, ok := headingTitle(line); ok {
			switch classify(title) {
			case sectionFirst:
				out.firstTitle = title
				current = sectionFirst
			case sectionSecond:
				out.secondTitle = title
				current = sectionSecond
			case sectionNone:
			}
			continue
		}

		if !richtext.IsBullet(line) {
			continue
		}
		item := strings.TrimSpace(richtext.Clean(richtext.TrimBullet(line)))
		if item == "" {
			continue
		}

		switch current {
		case sectionFirst:
			out.first = append(out.first, item)
		case sectionSecond:
			out.second = append(out.second, item)
		case sectionNone:
		}
	}

	return out
}

// headingTitle recognises a bold section heading such as "**Pros:**",
// "**Pros**:" or "**Pros**" and returns its visible title without the colon.
func headingTitle(line string) (string, bool) {
	if !strings.HasPrefix(line, "**") {
		return "", false
	}

	var raw string
	switch {
	case strings.Contains(line, ":**"):
		idx := strings.Index(line, ":**")
		raw = line[2:idx] + line[idx+3:]
	case strings.HasSuffix(line, "**:") && len(line) > 5:
		raw = line[2 : len(line)-3]
	case strings.HasSuffix(line, "**") && len(line) > 4 && !strings.Contains(line[2:len(line)-2], "**"):
		raw = line[2 : len(line)-2]
	default:
		return "", false
	}

	title := strings.TrimSpace(richtext.Clean(raw))
	return title, title != ""
}

func classifyProsCons(title string) section {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "voordel") || strings.Contains(lower, "pro"):
		return sectionFirst
	case strings.Contains(lower, "nadel") || strings.Contains(lower, "con"):
		return sectionSecond
	default:
		return sectionNone
	}
}

// apostrophes maps typographic apostrophes to ASCII.
//
//nolint:gochecknoglobals // Read-only lookup table.
var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "`", "'")

func classifyDosDonts(title string) section {
	lower := apostrophes.Replace(strings.ToLower(title))
	switch {
	case strings.Contains(lower, "don'ts"), strings.Contains(lower, "don't's"),
		strings.Contains(lower, "dont's"), strings.Contains(lower, "donts"):
		return sectionSecond
	case strings.Contains(lower, "do's"):
		return sectionFirst
	default:
		return sectionNone
	}
}

func extractProsCons(content string) slice.ProsCons {
	lists := scanTwoLists(content, classifyProsCons)
	return slice.ProsCons{
		ProsTitle: lists.firstTitle,
		Pros:      lists.first,
		ConsTitle: lists.secondTitle,
		Cons:      lists.second,
	}
}

func extractDosDonts(content string) slice.DosDonts {
	lists := scanTwoLists(content, classifyDosDonts)
	return slice.DosDonts{
		DosTitle:   lists.firstTitle,
		Dos:        lists.first,
		DontsTitle: lists.secondTitle,
		Donts:      lists.second,
	}
}

func extractChecklist(content string) slice.Checklist {
	var (
		fields           slice.Checklist
		foundTitle       bool
		foundDescription bool
	)

	for _, line := range lines(content) {
		switch {
		case line == "":
		case !foundTitle && isBoldLine(line):
			fields.Title = strings.TrimSpace(richtext.Clean(line))
			foundTitle = true
		case richtext.IsBullet(line):
			if item := strings.TrimSpace(richtext.Clean(richtext.TrimBullet(line))); item != "" {
				fields.Items = append(fields.Items, item)
			}
		case foundTitle && !foundDescription && !strings.HasPrefix(line, "**"):
			fields.Description = richtext.Convert(line)
			foundDescription = true
		}
	}

	return fields
}

// isBoldLine reports whether a trimmed line is wrapped in "**".
func isBoldLine(line string) bool {
	return len(line) > 4 && strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**")
}
