package models

// Image is one <img> element; both attributes are nil when absent.
type Image struct {
	Src *string `json:"src"`
	Alt *string `json:"alt"`
}

// PageSignals is the structured extraction of one successfully fetched page.
type PageSignals struct {
	URL         string            `json:"url"`
	StatusCode  *int              `json:"status_code"`
	Title       *string           `json:"title"`
	Meta        map[string]string `json:"meta"`
	Description *string           `json:"description"`
	Keywords    *string           `json:"keywords"`
	Images      []Image           `json:"images"`
	Links       []string          `json:"-"`

	HTMLVersion   string         `json:"html_version,omitempty"`
	Headings      map[string]int `json:"headings,omitempty"`
	InternalLinks int            `json:"internal_links"`
	ExternalLinks int            `json:"external_links"`
}

// H1Count returns the number of level-1 headings on the page.
func (s PageSignals) H1Count() int {
	return s.Headings["h1"]
}
