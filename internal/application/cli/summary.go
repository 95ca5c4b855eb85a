package cli

import (
	"io"

	"seo_checker/internal/domain/models"

	"github.com/rodaine/table"
)

// printSummary writes one row per analyzed page: status, broken link
// count and how many rules warned or failed.
func printSummary(w io.Writer, reports []models.PageReport) {
	tbl := table.New("Page", "Status", "Broken Links", "Warnings", "Failures").WithWriter(w)
	for _, r := range reports {
		var warn, fail int
		for _, s := range r.Suggestions {
			switch models.SeverityOf(s) {
			case models.SeverityWarn:
				warn++
			case models.SeverityFail:
				fail++
			}
		}
		status := 0
		if r.StatusCode != nil {
			status = *r.StatusCode
		}
		tbl.AddRow(r.URL, status, len(r.BrokenLinks), warn, fail)
	}
	tbl.Print()
}
