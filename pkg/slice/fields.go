package slice

// Fields holds the type-specific content of a slice.
//
// The set of implementations is closed: every slice type has exactly one
// Fields struct in this package, and the unexported normalize method keeps
// other packages from adding more.
type Fields interface {
	// SliceType returns the slice type the fields belong to.
	SliceType() Type

	// normalize returns a copy with nil lists replaced by empty ones so that
	// encoders emit [] instead of null.
	normalize() Fields

	// mapRichText returns a copy with fn applied to every rich-text field.
	mapRichText(fn func(RichText) RichText) Fields
}

// Typography is the slice for plain markdown runs.
type Typography struct {
	Content RichText `json:"content" yaml:"content"`
}

// Notification is a highlighted call-out with a bold lead.
type Notification struct {
	BoldText string   `json:"boldText" yaml:"boldText"`
	Content  RichText `json:"content" yaml:"content"`
}

// AccordionItem is one collapsible section.
type AccordionItem struct {
	Title   string   `json:"title" yaml:"title"`
	Content RichText `json:"content" yaml:"content"`
}

// Accordion is a list of collapsible sections.
type Accordion struct {
	Items []AccordionItem `json:"items" yaml:"items"`
}

// ProsCons lists advantages and disadvantages.
type ProsCons struct {
	ProsTitle string   `json:"prosTitle" yaml:"prosTitle"`
	Pros      []string `json:"pros" yaml:"pros"`
	ConsTitle string   `json:"consTitle" yaml:"consTitle"`
	Cons      []string `json:"cons" yaml:"cons"`
}

// Checklist is a titled list of check items.
type Checklist struct {
	Title       string   `json:"title" yaml:"title"`
	Description RichText `json:"description" yaml:"description"`
	Items       []string `json:"items" yaml:"items"`
}

// Tip is one entry of a Tips slice.
type Tip struct {
	TipTitle   string   `json:"tipTitle" yaml:"tipTitle"`
	TipContent RichText `json:"tipContent" yaml:"tipContent"`
}

// Tips is a titled list of tips.
type Tips struct {
	Title string `json:"title" yaml:"title"`
	Tips  []Tip  `json:"tips" yaml:"tips"`
}

// Table is a titled table with one header row.
type Table struct {
	Title   string     `json:"title" yaml:"title"`
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// DosDonts lists recommended and discouraged practices.
type DosDonts struct {
	DosTitle   string   `json:"dosTitle" yaml:"dosTitle"`
	Dos        []string `json:"dos" yaml:"dos"`
	DontsTitle string   `json:"dontsTitle" yaml:"dontsTitle"`
	Donts      []string `json:"donts" yaml:"donts"`
}

// Quote is a pull quote with attribution.
type Quote struct {
	Quote  string   `json:"quote" yaml:"quote"`
	Author RichText `json:"author" yaml:"author"`
}

// CallToAction is a single prominent link.
type CallToAction struct {
	LinkText string `json:"linkText" yaml:"linkText"`
	URL      string `json:"url" yaml:"url"`
	Title    string `json:"title" yaml:"title"`
}

// Image is a single image reference.
type Image struct {
	AltText string `json:"altText" yaml:"altText"`
	URL     string `json:"url" yaml:"url"`
	Title   string `json:"title" yaml:"title"`
}

// Divider is a visual separator without content.
type Divider struct{}

func (Typography) SliceType() Type   { return TypeTypography }
func (Notification) SliceType() Type { return TypeNotification }
func (Accordion) SliceType() Type    { return TypeAccordion }
func (ProsCons) SliceType() Type     { return TypeProsCons }
func (Checklist) SliceType() Type    { return TypeChecklist }
func (Tips) SliceType() Type         { return TypeTips }
func (Table) SliceType() Type        { return TypeTable }
func (DosDonts) SliceType() Type     { return TypeDosDonts }
func (Quote) SliceType() Type        { return TypeQuote }
func (CallToAction) SliceType() Type { return TypeCallToAction }
func (Image) SliceType() Type        { return TypeImage }
func (Divider) SliceType() Type      { return TypeDivider }

func (f Typography) normalize() Fields {
	f.Content = f.Content.orEmpty()
	return f
}

func (f Notification) normalize() Fields {
	f.Content = f.Content.orEmpty()
	return f
}

func (f Accordion) normalize() Fields {
	items := make([]AccordionItem, len(f.Items))
	for i, item := range f.Items {
		item.Content = item.Content.orEmpty()
		items[i] = item
	}
	f.Items = items
	return f
}

func (f ProsCons) normalize() Fields {
	f.Pros = orEmpty(f.Pros)
	f.Cons = orEmpty(f.Cons)
	return f
}

func (f Checklist) normalize() Fields {
	f.Description = f.Description.orEmpty()
	f.Items = orEmpty(f.Items)
	return f
}

func (f Tips) normalize() Fields {
	tips := make([]Tip, len(f.Tips))
	for i, tip := range f.Tips {
		tip.TipContent = tip.TipContent.orEmpty()
		tips[i] = tip
	}
	f.Tips = tips
	return f
}

func (f Table) normalize() Fields {
	f.Headers = orEmpty(f.Headers)
	rows := make([][]string, len(f.Rows))
	for i, row := range f.Rows {
		rows[i] = orEmpty(row)
	}
	f.Rows = rows
	return f
}

func (f DosDonts) normalize() Fields {
	f.Dos = orEmpty(f.Dos)
	f.Donts = orEmpty(f.Donts)
	return f
}

func (f Quote) normalize() Fields {
	f.Author = f.Author.orEmpty()
	return f
}

func (f CallToAction) normalize() Fields { return f }
func (f Image) normalize() Fields        { return f }
func (f Divider) normalize() Fields      { return f }

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
