package models

// CrawlResult is what one crawl returns: the reports in completion order
// and whatever was still queued when the crawl stopped.
type CrawlResult struct {
	Reports  []PageReport
	Frontier []string
	Failed   map[string]int
}

// CrawlProgress is a point-in-time view of a running crawl.
type CrawlProgress struct {
	RunID    string `json:"run_id"`
	StartURL string `json:"start_url"`
	MaxPages int    `json:"max_pages"`
	Visited  int    `json:"visited"`
	Queued   int    `json:"queued"`
	Reports  int    `json:"reports"`
	Failed   int    `json:"failed"`
	Done     bool   `json:"done"`
}
