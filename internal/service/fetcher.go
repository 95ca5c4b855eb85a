package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"seo_checker/internal/domain/adaptors"
	"seo_checker/internal/domain/models"
	"seo_checker/internal/pkg/errors"
	"seo_checker/internal/pkg/metrics"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// PageContent is a successfully fetched page. Every accessor is read only
// and returns the same value on repeated calls.
type PageContent struct {
	URL        string
	StatusCode int
	Body       []byte
	root       *html.Node
	doc        *goquery.Document
}

type Fetcher struct {
	log       *log.Logger
	webClient adaptors.WebClient
	timeout   time.Duration
}

func NewFetcher(log *log.Logger, webClient adaptors.WebClient, timeout time.Duration) *Fetcher {
	return &Fetcher{
		log:       log,
		webClient: webClient,
		timeout:   timeout,
	}
}

// Fetch retrieves pageURL. Anything but a 200 response is a FetchError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*PageContent, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	resp, err := f.webClient.Do(ctx, pageURL, http.MethodGet)
	if err != nil {
		metrics.FetchFailuresTotal.WithLabelValues(`transport`).Inc()
		return nil, &errors.FetchError{URL: pageURL, Err: errors.Cause(err)}
	}

	if resp.StatusCode != http.StatusOK {
		metrics.FetchFailuresTotal.WithLabelValues(`status`).Inc()
		return nil, &errors.FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	content, err := parsePage(pageURL, resp)
	if err != nil {
		metrics.FetchFailuresTotal.WithLabelValues(`parse`).Inc()
		return nil, &errors.FetchError{URL: pageURL, StatusCode: resp.StatusCode, Err: err}
	}
	return content, nil
}

func parsePage(pageURL string, resp *adaptors.WebResponse) (*PageContent, error) {
	reader, err := charset.NewReader(bytes.NewReader(resp.Body), resp.ContentType)
	if err != nil {
		return nil, errors.Wrap(err, `failed to detect charset`)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, `failed to decode body`)
	}

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, `failed to parse html`)
	}

	return &PageContent{
		URL:        pageURL,
		StatusCode: resp.StatusCode,
		Body:       body,
		root:       root,
		doc:        goquery.NewDocumentFromNode(root),
	}, nil
}

// Title is the trimmed text of the first <title>, or nil.
func (p *PageContent) Title() *string {
	sel := p.doc.Find("title").First()
	if sel.Length() == 0 {
		return nil
	}
	title := strings.TrimSpace(sel.Text())
	return &title
}

// Links returns every anchor href in document order, empty ones included.
func (p *PageContent) Links() []string {
	links := make([]string, 0)
	p.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, href)
	})
	return links
}

func (p *PageContent) ImagesWithAlt() []models.Image {
	images := make([]models.Image, 0)
	p.doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		images = append(images, models.Image{
			Src: attrPtr(s, "src"),
			Alt: attrPtr(s, "alt"),
		})
	})
	return images
}

// MetaTags maps the lower-cased name (or property) of every meta element
// that has both a name and content. Later duplicates win.
func (p *PageContent) MetaTags() map[string]string {
	meta := make(map[string]string)
	p.doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if name == "" {
			name = s.AttrOr("property", "")
		}
		content := s.AttrOr("content", "")
		if name != "" && content != "" {
			meta[strings.ToLower(name)] = content
		}
	})
	return meta
}

// Description looks up <meta name="description"> by exact, case-sensitive
// name. A tag named "Description" shows up in MetaTags but not here.
func (p *PageContent) Description() *string {
	return p.namedMeta("description")
}

// Keywords follows the same exact-name rule as Description.
func (p *PageContent) Keywords() *string {
	return p.namedMeta("keywords")
}

func (p *PageContent) namedMeta(name string) *string {
	var found *goquery.Selection
	p.doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr("name"); ok && v == name {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	content := found.AttrOr("content", "")
	if content == "" {
		return nil
	}
	return &content
}

// Headings counts h1..h6 elements.
func (p *PageContent) Headings() map[string]int {
	counts := map[string]int{"h1": 0, "h2": 0, "h3": 0, "h4": 0, "h5": 0, "h6": 0}
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, ok := counts[n.Data]; ok {
				counts[n.Data]++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(p.root)
	return counts
}

// HTMLVersion classifies the doctype declaration.
func (p *PageContent) HTMLVersion() string {
	tokenizer := html.NewTokenizer(bytes.NewReader(p.Body))
	var doctype string
loop:
	for {
		switch tokenizer.Next() {
		case html.DoctypeToken:
			doctype = tokenizer.Token().String()
			break loop
		case html.StartTagToken, html.ErrorToken:
			break loop
		}
	}

	doctypeLower := strings.ToLower(doctype)
	switch {
	case strings.Contains(doctypeLower, "html 4.01 strict"):
		return "HTML 4.01 Strict"
	case strings.Contains(doctypeLower, "html 4.01 transitional"):
		return "HTML 4.01 Transitional"
	case strings.Contains(doctypeLower, "xhtml 1.0 strict"):
		return "XHTML 1.0 Strict"
	case strings.Contains(doctypeLower, "xhtml 1.0 transitional"):
		return "XHTML 1.0 Transitional"
	case strings.Contains(doctypeLower, "html 5") || strings.TrimSpace(doctypeLower) == "<!doctype html>":
		return "HTML5"
	default:
		return doctype
	}
}

// Signals assembles the page's PageSignals.
func (p *PageContent) Signals() models.PageSignals {
	status := p.StatusCode
	links := p.Links()

	internal, external := 0, 0
	if base, err := url.Parse(p.URL); err == nil {
		for _, href := range links {
			u, err := resolve(base, href)
			if err != nil {
				continue
			}
			if isInternal(u, base.Host) {
				internal++
			} else {
				external++
			}
		}
	}

	return models.PageSignals{
		URL:           p.URL,
		StatusCode:    &status,
		Title:         p.Title(),
		Meta:          p.MetaTags(),
		Description:   p.Description(),
		Keywords:      p.Keywords(),
		Images:        p.ImagesWithAlt(),
		Links:         links,
		HTMLVersion:   p.HTMLVersion(),
		Headings:      p.Headings(),
		InternalLinks: internal,
		ExternalLinks: external,
	}
}

func attrPtr(s *goquery.Selection, name string) *string {
	v, ok := s.Attr(name)
	if !ok {
		return nil
	}
	return &v
}
