package service

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"seo_checker/internal/domain/models"
	"seo_checker/internal/pkg/errors"
	"seo_checker/internal/pkg/metrics"
	"seo_checker/internal/pkg/worker_pool"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type CrawlerConfig struct {
	MaxPages int
	// Workers is the number of page pipelines run at once. 1 gives the
	// plain sequential breadth-first crawl.
	Workers int
	// RetryLimit caps fetch attempts for a URL that keeps failing when it
	// is rediscovered. 0 retries on every rediscovery.
	RetryLimit int
}

// Crawler drives the fetch, audit, analyze and suggest pipeline over a
// site, breadth first, within the start URL's host.
type Crawler struct {
	log       *log.Logger
	fetcher   *Fetcher
	auditor   *LinkAuditor
	analyzer  *PageAnalyzer
	suggester *AISuggester
	cfg       CrawlerConfig

	mu       sync.Mutex
	progress models.CrawlProgress
}

// NewCrawler builds a crawler. A nil suggester disables AI suggestions.
func NewCrawler(log *log.Logger, fetcher *Fetcher, auditor *LinkAuditor, analyzer *PageAnalyzer, suggester *AISuggester, cfg CrawlerConfig) *Crawler {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Crawler{
		log:       log,
		fetcher:   fetcher,
		auditor:   auditor,
		analyzer:  analyzer,
		suggester: suggester,
		cfg:       cfg,
	}
}

// crawlState is owned by a single Crawl call and only touched from the
// goroutine running it.
type crawlState struct {
	startHost string
	visited   map[string]struct{}
	frontier  []string
	head      int
	reports   []models.PageReport
	failed    map[string]int
}

func (s *crawlState) pending() int {
	return len(s.frontier) - s.head
}

func (s *crawlState) dequeue() string {
	u := s.frontier[s.head]
	s.frontier[s.head] = ""
	s.head++
	return u
}

type pageOutcome struct {
	report     models.PageReport
	discovered []string
}

// Check runs the pipeline on a single page without following links.
func (c *Crawler) Check(ctx context.Context, pageURL string) (*models.PageReport, error) {
	start, err := parseUrl(pageURL)
	if err != nil {
		return nil, err
	}

	content, err := c.fetcher.Fetch(ctx, canonical(start))
	if err != nil {
		return nil, err
	}

	report := c.buildReport(ctx, content.Signals())
	return &report, nil
}

// Crawl visits at most cfg.MaxPages pages reachable from startURL. Reports
// come back in breadth-first completion order whatever the worker count.
// On cancellation the reports gathered so far are returned with ctx's error.
func (c *Crawler) Crawl(ctx context.Context, startURL string) (*models.CrawlResult, error) {
	start, err := parseUrl(startURL)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := c.log.WithFields(log.Fields{`run_id`: runID, `start_url`: startURL})

	state := &crawlState{
		startHost: start.Host,
		visited:   make(map[string]struct{}),
		frontier:  []string{canonical(start)},
		failed:    make(map[string]int),
	}
	c.setProgress(models.CrawlProgress{RunID: runID, StartURL: startURL, MaxPages: c.cfg.MaxPages, Queued: 1})

	pool := worker_pool.NewWorkerPool(ctx, c.cfg.Workers, false, c.log)
	defer pool.Stop()

	logger.WithField(`max_pages`, c.cfg.MaxPages).Info(`crawl started`)
	for state.pending() > 0 && len(state.visited) < c.cfg.MaxPages {
		if err := ctx.Err(); err != nil {
			logger.WithError(err).Warn(`crawl canceled`)
			return c.finish(state), err
		}

		wave := c.nextWave(state)
		if len(wave) == 0 {
			continue
		}

		outcomes, errs := c.runWave(ctx, pool, wave, state.startHost)
		for i, pageURL := range wave {
			c.commit(logger, state, pageURL, outcomes[i], errs[i])
		}
		metrics.FrontierSize.Set(float64(state.pending()))
	}

	logger.WithFields(log.Fields{`pages`: len(state.reports), `queued`: state.pending()}).Info(`crawl finished`)
	return c.finish(state), ctx.Err()
}

// nextWave dequeues the next URLs to process: never more than the
// remaining page budget, so committing the whole wave keeps visited within
// MaxPages, and every URL appended while it runs sits behind it. A URL
// already in the wave ends it and stays queued: whether it is skipped as
// visited or fetched again depends on the first attempt's outcome.
func (c *Crawler) nextWave(state *crawlState) []string {
	size := c.cfg.Workers
	if budget := c.cfg.MaxPages - len(state.visited); budget < size {
		size = budget
	}

	wave := make([]string, 0, size)
	seen := make(map[string]struct{}, size)
	for len(wave) < size && state.pending() > 0 {
		if _, ok := seen[state.frontier[state.head]]; ok {
			break
		}
		u := state.dequeue()
		if _, ok := state.visited[u]; ok {
			continue
		}
		if c.cfg.RetryLimit > 0 && state.failed[u] >= c.cfg.RetryLimit {
			c.log.WithField(`url`, u).Debug(`skipping url, retry limit reached`)
			continue
		}
		seen[u] = struct{}{}
		wave = append(wave, u)
	}
	return wave
}

func (c *Crawler) runWave(ctx context.Context, pool *worker_pool.WorkerPool, wave []string, startHost string) ([]*pageOutcome, []error) {
	outcomes := make([]*pageOutcome, len(wave))
	errs := make([]error, len(wave))

	go func() {
		for i, pageURL := range wave {
			pageURL := pageURL
			err := pool.Submit(strconv.Itoa(i), func(ctx context.Context) (any, error) {
				return c.processPage(ctx, pageURL, startHost)
			})
			if err != nil {
				return
			}
		}
	}()

	received := make([]bool, len(wave))
	for n := 0; n < len(wave); n++ {
		res, ok := <-pool.ResultsCh
		if !ok {
			break
		}
		i, err := strconv.Atoi(res.ID)
		if err != nil || i < 0 || i >= len(wave) {
			continue
		}
		received[i] = true
		outcomes[i], _ = res.Result.(*pageOutcome)
		errs[i] = res.Err
	}

	for i := range wave {
		if !received[i] {
			errs[i] = context.Canceled
			if err := ctx.Err(); err != nil {
				errs[i] = err
			}
		}
	}
	return outcomes, errs
}

func (c *Crawler) commit(logger *log.Entry, state *crawlState, pageURL string, outcome *pageOutcome, err error) {
	if err == nil && outcome == nil {
		err = errors.New(`page pipeline returned no result`)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		state.failed[pageURL]++
		logger.WithError(err).WithField(`url`, pageURL).Warn(`failed to crawl page`)
		c.updateProgress(state)
		return
	}

	state.visited[pageURL] = struct{}{}
	state.frontier = append(state.frontier, outcome.discovered...)
	state.reports = append(state.reports, outcome.report)
	metrics.PagesCrawledTotal.Inc()
	c.updateProgress(state)
}

func (c *Crawler) processPage(ctx context.Context, pageURL string, startHost string) (*pageOutcome, error) {
	c.log.WithField(`url`, pageURL).Info(`crawling page`)

	content, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	signals := content.Signals()
	return &pageOutcome{
		discovered: discover(pageURL, signals.Links, startHost),
		report:     c.buildReport(ctx, signals),
	}, nil
}

// discover resolves hrefs against pageURL and keeps the in-domain ones,
// visited or not. Duplicates are dropped when dequeued.
func discover(pageURL string, hrefs []string, startHost string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	found := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		u, err := resolve(base, href)
		if err != nil {
			continue
		}
		if isInternal(u, startHost) {
			found = append(found, canonical(u))
		}
	}
	return found
}

// buildReport audits, analyzes and optionally asks for AI suggestions.
func (c *Crawler) buildReport(ctx context.Context, signals models.PageSignals) models.PageReport {
	checks := c.auditor.Check(ctx, signals.URL, signals.Links)
	broken := checks.Broken()

	report := models.PageReport{
		PageSignals: signals,
		BrokenLinks: broken,
		Suggestions: c.analyzer.Analyze(signals, len(broken)),
	}

	if c.suggester != nil {
		text, err := c.suggester.Suggest(ctx, report)
		if err != nil {
			c.log.WithError(err).WithField(`url`, signals.URL).Warn(`could not get AI suggestions`)
		} else {
			report.AISuggestions = &text
		}
	}
	return report
}

func (c *Crawler) finish(state *crawlState) *models.CrawlResult {
	c.mu.Lock()
	c.progress.Done = true
	c.mu.Unlock()
	metrics.FrontierSize.Set(0)

	frontier := make([]string, state.pending())
	copy(frontier, state.frontier[state.head:])
	return &models.CrawlResult{
		Reports:  state.reports,
		Frontier: frontier,
		Failed:   state.failed,
	}
}

func (c *Crawler) setProgress(p models.CrawlProgress) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress = p
}

func (c *Crawler) updateProgress(state *crawlState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress.Visited = len(state.visited)
	c.progress.Queued = state.pending()
	c.progress.Reports = len(state.reports)
	c.progress.Failed = len(state.failed)
}

// Progress returns a snapshot of the current or last crawl.
func (c *Crawler) Progress() models.CrawlProgress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}
