package models

// PageReport is the per-page output of the pipeline. It is not modified
// after being appended to a crawl's reports.
type PageReport struct {
	PageSignals
	BrokenLinks   []LinkCheck `json:"broken_links"`
	Suggestions   []string    `json:"suggestions"`
	AISuggestions *string     `json:"ai_suggestions,omitempty"`
}

// Report is either a single page report or an ordered crawl result.
type Report interface {
	isReport()
}

type SinglePageReport struct {
	Page PageReport
}

type MultiPageReport struct {
	Pages []PageReport
}

func (SinglePageReport) isReport() {}
func (MultiPageReport) isReport()  {}
