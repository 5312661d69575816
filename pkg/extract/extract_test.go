package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdslice/pkg/extract"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// fieldsAs asserts the extracted fields have type T and returns them.
func fieldsAs[T slice.Fields](t *testing.T, s slice.Slice) T {
	t.Helper()
	fields, ok := s.Fields.(T)
	require.True(t, ok, "fields have type %T", s.Fields)
	return fields
}

func TestExtract_ProsCons(t *testing.T) {
	t.Parallel()

	content := "**Voordelen van X:**\n- A\n- B\n\n**Nadelen van X:**\n- C"
	s := extract.Extract(slice.TypeProsCons, "", content)

	assert.Equal(t, slice.TypeProsCons, s.Type)
	assert.Equal(t, slice.DefaultVariation, s.Variation)

	fields := fieldsAs[slice.ProsCons](t, s)
	assert.Equal(t, "Voordelen van X", fields.ProsTitle)
	assert.Equal(t, []string{"A", "B"}, fields.Pros)
	assert.Equal(t, "Nadelen van X", fields.ConsTitle)
	assert.Equal(t, []string{"C"}, fields.Cons)
}

func TestExtract_ProsConsHeadingForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "colon inside", content: "**Pros:**\n- Fast\n**Cons:**\n- Loud"},
		{name: "colon outside", content: "**Pros**:\n* Fast\n**Cons**:\n* Loud"},
		{name: "no colon", content: "**Pros**\n+ Fast\n**Cons**\n+ Loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields := fieldsAs[slice.ProsCons](t, extract.Extract(slice.TypeProsCons, "", tt.content))
			assert.Equal(t, "Pros", fields.ProsTitle)
			assert.Equal(t, []string{"Fast"}, fields.Pros)
			assert.Equal(t, "Cons", fields.ConsTitle)
			assert.Equal(t, []string{"Loud"}, fields.Cons)
		})
	}
}

func TestExtract_ProsConsIgnoresBulletsOutsideSections(t *testing.T) {
	t.Parallel()

	content := "- stray\n**Pros:**\n- **Fast** and [cheap](https://x.nl)"
	fields := fieldsAs[slice.ProsCons](t, extract.Extract(slice.TypeProsCons, "", content))

	assert.Equal(t, []string{"Fast and cheap"}, fields.Pros)
	assert.Empty(t, fields.Cons)
	assert.NotNil(t, fields.Cons)
}

func TestExtract_DosDonts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		content    string
		dontsTitle string
	}{
		{name: "donts", content: "**Do's:**\n- Wel\n\n**Don'ts:**\n- Niet", dontsTitle: "Don'ts"},
		{name: "dont's", content: "**Do's:**\n- Wel\n\n**Don't's:**\n- Niet", dontsTitle: "Don't's"},
		{name: "curly apostrophe", content: "**Do’s:**\n- Wel\n\n**Don’ts:**\n- Niet", dontsTitle: "Don’ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields := fieldsAs[slice.DosDonts](t, extract.Extract(slice.TypeDosDonts, "", tt.content))
			assert.NotEmpty(t, fields.DosTitle)
			assert.Equal(t, []string{"Wel"}, fields.Dos)
			assert.Equal(t, tt.dontsTitle, fields.DontsTitle)
			assert.Equal(t, []string{"Niet"}, fields.Donts)
		})
	}
}

func TestExtract_Notification(t *testing.T) {
	t.Parallel()

	s := extract.Extract(slice.TypeNotification, "purple", "**Let op**\nDit is **belangrijk**.")
	assert.Equal(t, "purple", s.Variation)

	fields := fieldsAs[slice.Notification](t, s)
	assert.Equal(t, "Let op", fields.BoldText)
	require.Len(t, fields.Content, 1)
	assert.Equal(t, "Dit is belangrijk.", fields.Content[0].Text)
	require.Len(t, fields.Content[0].Spans, 1)
	assert.Equal(t, slice.SpanStrong, fields.Content[0].Spans[0].Type)
}

func TestExtract_Accordion(t *testing.T) {
	t.Parallel()

	content := "Intro text\n\n## Vraag 1\nAntwoord 1\n\n## Vraag **2**\nAntwoord twee\n\nMeer uitleg\n\n## Leeg"
	fields := fieldsAs[slice.Accordion](t, extract.Extract(slice.TypeAccordion, "", content))

	require.Len(t, fields.Items, 2)
	assert.Equal(t, "Vraag 1", fields.Items[0].Title)
	assert.Equal(t, "Antwoord 1", fields.Items[0].Content.PlainText())
	assert.Equal(t, "Vraag 2", fields.Items[1].Title)
	require.Len(t, fields.Items[1].Content, 2)
	assert.Equal(t, "Meer uitleg", fields.Items[1].Content[1].Text)
}

func TestExtract_AccordionLeadingSection(t *testing.T) {
	t.Parallel()

	content := "Intro vraag\nIntro antwoord\n## Vraag 1\nAntwoord 1"
	fields := fieldsAs[slice.Accordion](t, extract.Extract(slice.TypeAccordion, "", content))

	require.Len(t, fields.Items, 2)
	assert.Equal(t, "Intro vraag", fields.Items[0].Title)
	assert.Equal(t, "Intro antwoord", fields.Items[0].Content.PlainText())
	assert.Equal(t, "Vraag 1", fields.Items[1].Title)
	assert.Equal(t, "Antwoord 1", fields.Items[1].Content.PlainText())
}

func TestExtract_Checklist(t *testing.T) {
	t.Parallel()

	content := "**Voor je vertrekt**\nLoop deze lijst na.\n- Paspoort\n- Tickets\n* Oplader"
	fields := fieldsAs[slice.Checklist](t, extract.Extract(slice.TypeChecklist, "", content))

	assert.Equal(t, "Voor je vertrekt", fields.Title)
	require.Len(t, fields.Description, 1)
	assert.Equal(t, "Loop deze lijst na.", fields.Description[0].Text)
	assert.Equal(t, []string{"Paspoort", "Tickets", "Oplader"}, fields.Items)
}

func TestExtract_Tips(t *testing.T) {
	t.Parallel()

	content := "**Handige tips**\n\n## Tip 1\nDoe dit\n\n## Tip 2\nDoe *dat*"
	s := extract.Extract(slice.TypeTips, "numbered", content)
	fields := fieldsAs[slice.Tips](t, s)

	assert.Equal(t, "numbered", s.Variation)
	assert.Equal(t, "Handige tips", fields.Title)
	require.Len(t, fields.Tips, 2)
	assert.Equal(t, "Tip 1", fields.Tips[0].TipTitle)
	assert.Equal(t, "Doe dit", fields.Tips[0].TipContent.PlainText())
	assert.Equal(t, "Tip 2", fields.Tips[1].TipTitle)
	require.Len(t, fields.Tips[1].TipContent, 1)
	assert.Equal(t, "Doe dat", fields.Tips[1].TipContent[0].Text)
	require.Len(t, fields.Tips[1].TipContent[0].Spans, 1)
	assert.Equal(t, slice.SpanEm, fields.Tips[1].TipContent[0].Spans[0].Type)
}

func TestExtract_Table(t *testing.T) {
	t.Parallel()

	content := "**Prijzen**\n\n| Plan | Prijs |\n|------|-------|\n| Basis | €5 |\n| **Pro** | €10 |\n\nnot a row"
	fields := fieldsAs[slice.Table](t, extract.Extract(slice.TypeTable, "", content))

	assert.Equal(t, "Prijzen", fields.Title)
	assert.Equal(t, []string{"Plan", "Prijs"}, fields.Headers)
	assert.Equal(t, [][]string{{"Basis", "€5"}, {"Pro", "€10"}}, fields.Rows)
}

func TestExtract_Quote(t *testing.T) {
	t.Parallel()

	content := "> Mooi gezegd\n> echt waar\n\n*Jan Jansen*, schrijver"
	s := extract.Extract(slice.TypeQuote, "testimonial", content)
	fields := fieldsAs[slice.Quote](t, s)

	assert.Equal(t, "Mooi gezegd echt waar", fields.Quote)
	require.Len(t, fields.Author, 1)
	assert.Equal(t, "Jan Jansen, schrijver", fields.Author[0].Text)
}

func TestExtract_QuoteWithoutAuthor(t *testing.T) {
	t.Parallel()

	fields := fieldsAs[slice.Quote](t, extract.Extract(slice.TypeQuote, "", "> Alleen een citaat"))
	assert.Equal(t, "Alleen een citaat", fields.Quote)
	assert.Empty(t, fields.Author)
	assert.NotNil(t, fields.Author)
}

func TestExtract_CallToAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    slice.CallToAction
	}{
		{
			name:    "link with title",
			content: "[Start nu](https://example.com/start \"Begin vandaag\")",
			want:    slice.CallToAction{LinkText: "Start nu", URL: "https://example.com/start", Title: "Begin vandaag"},
		},
		{
			name:    "title from bold text",
			content: "**Klaar om te beginnen?**\n[Start nu](/start)",
			want:    slice.CallToAction{LinkText: "Start nu", URL: "/start", Title: "Klaar om te beginnen?"},
		},
		{
			name:    "button form",
			content: "[Button: Meer info|/contact]",
			want:    slice.CallToAction{LinkText: "Meer info", URL: "/contact"},
		},
		{
			name:    "no link",
			content: "Nothing to click",
			want:    slice.CallToAction{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields := fieldsAs[slice.CallToAction](t, extract.Extract(slice.TypeCallToAction, "primary", tt.content))
			assert.Equal(t, tt.want, fields)
		})
	}
}

func TestExtract_Image(t *testing.T) {
	t.Parallel()

	s := extract.Extract(slice.TypeImage, "imageWithBorder", "![Een strand](https://img.example.com/beach.jpg \"Zomer\")")
	fields := fieldsAs[slice.Image](t, s)

	assert.Equal(t, "imageWithBorder", s.Variation)
	assert.Equal(t, slice.Image{
		AltText: "Een strand",
		URL:     "https://img.example.com/beach.jpg",
		Title:   "Zomer",
	}, fields)
}

func TestExtract_DividerIgnoresContent(t *testing.T) {
	t.Parallel()

	s := extract.Extract(slice.TypeDivider, "", "anything at all")
	assert.Equal(t, slice.TypeDivider, s.Type)
	assert.Equal(t, slice.Divider{}, s.Fields)
}

func TestExtract_EmptyContentKeepsListsNonNil(t *testing.T) {
	t.Parallel()

	for _, typ := range slice.Types() {
		t.Run(typ.String(), func(t *testing.T) {
			t.Parallel()

			s := extract.Extract(typ, "", "")
			assert.Equal(t, typ, s.Type)
			assert.Equal(t, typ, s.Fields.SliceType())

			switch fields := s.Fields.(type) {
			case slice.Typography:
				assert.NotNil(t, fields.Content)
			case slice.Notification:
				assert.NotNil(t, fields.Content)
			case slice.Accordion:
				assert.NotNil(t, fields.Items)
			case slice.ProsCons:
				assert.NotNil(t, fields.Pros)
				assert.NotNil(t, fields.Cons)
			case slice.Checklist:
				assert.NotNil(t, fields.Description)
				assert.NotNil(t, fields.Items)
			case slice.Tips:
				assert.NotNil(t, fields.Tips)
			case slice.Table:
				assert.NotNil(t, fields.Headers)
				assert.NotNil(t, fields.Rows)
			case slice.DosDonts:
				assert.NotNil(t, fields.Dos)
				assert.NotNil(t, fields.Donts)
			case slice.Quote:
				assert.NotNil(t, fields.Author)
			case slice.CallToAction, slice.Image, slice.Divider:
			}
		})
	}
}

func TestMissing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  slice.Type
		want []string
	}{
		{typ: slice.TypeTypography, want: []string{"content"}},
		{typ: slice.TypeNotification, want: []string{"boldText", "content"}},
		{typ: slice.TypeAccordion, want: []string{"items"}},
		{typ: slice.TypeProsCons, want: []string{"prosTitle", "pros", "consTitle", "cons"}},
		{typ: slice.TypeChecklist, want: []string{"title", "items"}},
		{typ: slice.TypeTips, want: []string{"title", "tips"}},
		{typ: slice.TypeTable, want: []string{"title", "headers", "rows"}},
		{typ: slice.TypeDosDonts, want: []string{"dosTitle", "dos", "dontsTitle", "donts"}},
		{typ: slice.TypeQuote, want: []string{"quote"}},
		{typ: slice.TypeCallToAction, want: []string{"linkText", "url"}},
		{typ: slice.TypeImage, want: []string{"altText", "url"}},
		{typ: slice.TypeDivider, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			t.Parallel()

			s := extract.Extract(tt.typ, "", "")
			assert.Equal(t, tt.want, extract.Missing(s.Fields))
		})
	}
}

func TestMissing_CompleteSlice(t *testing.T) {
	t.Parallel()

	s := extract.Extract(slice.TypeImage, "", "![Alt](/a.png)")
	assert.Empty(t, extract.Missing(s.Fields))
}
