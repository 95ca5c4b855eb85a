package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"seo_checker/internal/domain/adaptors"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// MockWebClient is a mock implementation of the WebClient interface
type MockWebClient struct {
	mock.Mock
}

func (m *MockWebClient) Do(ctx context.Context, url string, method string) (*adaptors.WebResponse, error) {
	args := m.Called(ctx, url, method)
	resp, _ := args.Get(0).(*adaptors.WebResponse)
	return resp, args.Error(1)
}

// fakeSite serves an in-memory site: pages answer GET with their markup
// and HEAD with 200, unknown URLs answer 404.
type fakeSite struct {
	mu      sync.Mutex
	pages   map[string]string
	status  map[string]int
	failing map[string]error
	gets    map[string]int
}

func newFakeSite(pages map[string]string) *fakeSite {
	return &fakeSite{
		pages:   pages,
		status:  make(map[string]int),
		failing: make(map[string]error),
		gets:    make(map[string]int),
	}
}

func (f *fakeSite) Do(ctx context.Context, url string, method string) (*adaptors.WebResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url, _, _ = strings.Cut(url, "#")

	f.mu.Lock()
	defer f.mu.Unlock()
	if method == http.MethodGet {
		f.gets[url]++
	}
	if err, ok := f.failing[url]; ok {
		return nil, err
	}
	if code, ok := f.status[url]; ok {
		return &adaptors.WebResponse{StatusCode: code}, nil
	}
	body, ok := f.pages[url]
	if !ok {
		return &adaptors.WebResponse{StatusCode: http.StatusNotFound}, nil
	}
	if method == http.MethodHead {
		return &adaptors.WebResponse{StatusCode: http.StatusOK}, nil
	}
	return &adaptors.WebResponse{
		Body:        []byte(body),
		StatusCode:  http.StatusOK,
		ContentType: "text/html; charset=utf-8",
	}, nil
}

func (f *fakeSite) getCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets[url]
}

type stubAIClient struct {
	text string
	err  error
}

func (s stubAIClient) Complete(_ context.Context, _ []adaptors.ChatMessage) (string, error) {
	return s.text, s.err
}

func testLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestCrawler(t *testing.T, client adaptors.WebClient, cfg CrawlerConfig, ai adaptors.AIClient) *Crawler {
	t.Helper()
	logger := testLogger()
	var suggester *AISuggester
	if ai != nil {
		suggester = NewAISuggester(logger, ai)
	}
	return NewCrawler(
		logger,
		NewFetcher(logger, client, time.Second),
		NewLinkAuditor(logger, client, time.Second, 4),
		NewPageAnalyzer(),
		suggester,
		cfg,
	)
}

func page(title string, hrefs ...string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>" + title + "</title></head><body><h1>" + title + "</h1>")
	for _, h := range hrefs {
		b.WriteString(`<a href="` + h + `">link</a>`)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func ptr[T any](v T) *T { return &v }
