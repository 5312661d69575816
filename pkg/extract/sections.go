package extract

import (
	"strings"

	"github.com/yaklabco/mdslice/pkg/richtext"
	"github.com/yaklabco/mdslice/pkg/slice"
)

func extractNotification(content string) slice.Notification {
	fields := slice.Notification{BoldText: firstBold(content)}

	rest := content
	if loc := boldRunTrailPattern.FindStringIndex(content); loc != nil {
		rest = content[:loc[0]] + content[loc[1]:]
	}
	fields.Content = richtext.Convert(strings.TrimSpace(rest))

	return fields
}

func extractAccordion(content string) slice.Accordion {
	var fields slice.Accordion

	for _, section := range splitSections(content) {
		title, body := splitTitle(section)
		title = strings.TrimSpace(richtext.Clean(title))
		if title == "" || body == "" {
			continue
		}
		fields.Items = append(fields.Items, slice.AccordionItem{
			Title:   title,
			Content: richtext.Convert(body),
		})
	}

	return fields
}

func extractTips(content string) slice.Tips {
	fields := slice.Tips{Title: firstBold(content)}

	for _, section := range splitSections(content) {
		if strings.Contains(section, "**") {
			continue
		}
		title, body := splitTitle(section)
		title = strings.TrimSpace(richtext.Clean(title))
		if title == "" || body == "" {
			continue
		}
		fields.Tips = append(fields.Tips, slice.Tip{
			TipTitle:   title,
			TipContent: richtext.Convert(body),
		})
	}

	return fields
}

func extractQuote(content string) slice.Quote {
	var (
		fields slice.Quote
		quote  []string
		rest   []string
		inside bool
		done   bool
	)

	// The first run of consecutive "> " lines is the quote.
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		isQuote := strings.HasPrefix(trimmed, ">")

		switch {
		case !done && isQuote:
			inside = true
			quote = append(quote, strings.TrimSpace(strings.TrimPrefix(trimmed, ">")))
		case inside && !done:
			done = true
			rest = append(rest, line)
		default:
			rest = append(rest, line)
		}
	}

	fields.Quote = strings.TrimSpace(richtext.Clean(strings.Join(quote, " ")))
	fields.Author = richtext.Convert(strings.TrimSpace(strings.Join(rest, "\n")))

	return fields
}
