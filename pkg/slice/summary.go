package slice

import "strings"

// Summary returns a one-line plain-text preview of the fields, used in
// listings. It is empty for dividers and slices without text.
func Summary(f Fields) string {
	switch f := f.(type) {
	case Typography:
		return firstLine(f.Content.PlainText())
	case Notification:
		return joinNonEmpty(f.BoldText, firstLine(f.Content.PlainText()))
	case Accordion:
		titles := make([]string, len(f.Items))
		for i, item := range f.Items {
			titles[i] = item.Title
		}
		return joinNonEmpty(titles...)
	case ProsCons:
		return joinNonEmpty(f.ProsTitle, f.ConsTitle)
	case Checklist:
		return joinNonEmpty(f.Title, strings.Join(f.Items, ", "))
	case Tips:
		return f.Title
	case Table:
		return joinNonEmpty(f.Title, strings.Join(f.Headers, ", "))
	case DosDonts:
		return joinNonEmpty(f.DosTitle, f.DontsTitle)
	case Quote:
		return joinNonEmpty(f.Quote, firstLine(f.Author.PlainText()))
	case CallToAction:
		return joinNonEmpty(f.Title, f.LinkText, f.URL)
	case Image:
		return joinNonEmpty(f.AltText, f.URL)
	default:
		return ""
	}
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " | ")
}
