package adaptors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"seo_checker/internal/domain/models"
	"seo_checker/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

const reportTemplate = `{{define "page"}}
<p><strong>Status Code:</strong> {{deref .StatusCode}}</p>
<p><strong>Page Title:</strong> {{with str .Title}}{{.}}{{else}}No title found{{end}}</p>
<h3>Meta Tags</h3>
<ul>{{range $k, $v := .Meta}}<li><strong>{{$k}}:</strong> {{$v}}</li>{{end}}</ul>
<h3>Images and Alt Attributes</h3>
{{if .Images}}<ul>{{range .Images}}{{if hasAlt .Alt}}<li class="ok"><strong>src:</strong> {{str .Src}} | <strong>alt:</strong> {{str .Alt}}</li>{{else}}<li class="error"><strong>src:</strong> {{str .Src}} | <strong>alt:</strong> MISSING</li>{{end}}{{end}}</ul>
{{else}}<p class="warn">⚠️ No images found on this page.</p>{{end}}
<h3>Broken Links</h3>
{{if .BrokenLinks}}<ul>{{range .BrokenLinks}}<li class="error">{{.URL}} → {{.Outcome}}</li>{{end}}</ul>
{{else}}<p class="ok">✅ No broken links found.</p>{{end}}
<h3>Local Analysis Suggestions</h3>
<ul>{{range .Suggestions}}<li class="{{severity .}}">{{.}}</li>{{end}}</ul>
<h3>AI-Powered SEO Suggestions</h3>
{{with str .AISuggestions}}<pre>{{.}}</pre>{{else}}<p class="warn">⚠️ No AI suggestions generated.</p>{{end}}
{{end}}<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Heading}}</title>
<style>body{font-family:sans-serif;line-height:1.6;padding:20px;} h1,h2,h3{color:#2c3e50;} ul{list-style:disc;margin-left:20px;} .error{color:red;} .ok{color:green;} .warn{color:orange;} pre{background:#f4f4f4;padding:10px;}</style>
</head><body>
{{if .Single}}<h1>SEO Report for <a href="{{.Single.URL}}">{{.Single.URL}}</a></h1>
{{template "page" .Single}}{{else}}<h1>{{.Heading}}</h1>
{{range .Pages}}<hr>
<h2>Page: <a href="{{.URL}}">{{.URL}}</a></h2>
{{template "page" .}}{{end}}{{end}}
</body></html>
`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"deref": func(p *int) string {
		if p == nil {
			return "None"
		}
		return fmt.Sprint(*p)
	},
	"str": func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	},
	"hasAlt": func(p *string) bool {
		return p != nil && strings.TrimSpace(*p) != ""
	},
	"severity": func(verdict string) string {
		switch models.SeverityOf(verdict) {
		case models.SeverityPass:
			return "ok"
		case models.SeverityWarn:
			return "warn"
		default:
			return "error"
		}
	},
}).Parse(reportTemplate))

type htmlView struct {
	Heading string
	Single  *models.PageReport
	Pages   []models.PageReport
}

// ReportWriter persists a report as JSON and as a human readable HTML page.
type ReportWriter struct {
	log *log.Logger
}

func NewReportWriter(log *log.Logger) *ReportWriter {
	return &ReportWriter{log: log}
}

// EncodeJSON writes a single report object or an array of them. Non-ASCII
// text and HTML characters are kept literal.
func EncodeJSON(w io.Writer, report models.Report) error {
	var payload any
	switch r := report.(type) {
	case models.SinglePageReport:
		payload = r.Page
	case models.MultiPageReport:
		pages := r.Pages
		if pages == nil {
			pages = []models.PageReport{}
		}
		payload = pages
	default:
		return errors.Errorf(`unsupported report type %T`, report)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// RenderHTML renders the report page.
func RenderHTML(w io.Writer, report models.Report) error {
	var view htmlView
	switch r := report.(type) {
	case models.SinglePageReport:
		page := r.Page
		view = htmlView{Heading: "SEO Report", Single: &page}
	case models.MultiPageReport:
		view = htmlView{Heading: "SEO Site Crawl Report", Pages: r.Pages}
	default:
		return errors.Errorf(`unsupported report type %T`, report)
	}
	return reportTmpl.Execute(w, view)
}

func (rw *ReportWriter) WriteJSON(path string, report models.Report) error {
	return rw.write(path, report, EncodeJSON)
}

func (rw *ReportWriter) WriteHTML(path string, report models.Report) error {
	return rw.write(path, report, RenderHTML)
}

func (rw *ReportWriter) write(path string, report models.Report, render func(io.Writer, models.Report) error) error {
	var buf bytes.Buffer
	if err := render(&buf, report); err != nil {
		return errors.Wrap(err, `failed to render report`)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, `failed to write report`)
	}
	rw.log.WithField(`path`, path).Info(`report written`)
	return nil
}
