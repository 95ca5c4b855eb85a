package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"seo_checker/internal/adaptors"
	"seo_checker/internal/application/config"
	"seo_checker/internal/domain/models"
	diagnostics "seo_checker/internal/http"
	"seo_checker/internal/pkg/errors"
	"seo_checker/internal/service"

	log "github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"
)

const exitFailure = 1

// Runner holds what every command needs: the logger, the loaded config and
// where to print progress for the user.
type Runner struct {
	log *log.Logger
	out io.Writer
	cfg *config.AppConfig
}

// NewApp builds the command line application. Human readable output goes
// to out, structured logs to logger.
func NewApp(logger *log.Logger, out io.Writer) *cli.App {
	r := &Runner{log: logger, out: out}

	app := cli.NewApp()
	app.Name = "seo-checker"
	app.Usage = "crawl a site and audit its on-page SEO"
	app.Version = "0.1.0"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config,c",
			Usage: "optional config file (yaml, json or toml)",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "trace, debug, info, warn or error; overrides the config",
		},
	}
	app.Before = r.before
	app.Commands = []cli.Command{
		{
			Name:      "check",
			Usage:     "analyze a single page",
			ArgsUsage: "<url>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "output-json", Value: "report.json", Usage: "path of the JSON report"},
				cli.StringFlag{Name: "output-html", Value: "report.html", Usage: "path of the HTML report"},
				cli.BoolFlag{Name: "no-ai", Usage: "skip AI suggestions"},
			},
			Action: r.check,
		},
		{
			Name:      "crawl",
			Usage:     "crawl a site breadth first and analyze every page",
			ArgsUsage: "<url>",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "max-pages", Usage: "maximum number of pages to analyze (default from config, 10)"},
				cli.IntFlag{Name: "workers", Usage: "pages processed concurrently (default from config)"},
				cli.StringFlag{Name: "output-json", Value: "site-report.json", Usage: "path of the JSON report"},
				cli.StringFlag{Name: "output-html", Value: "site-report.html", Usage: "path of the HTML report"},
				cli.BoolFlag{Name: "no-ai", Usage: "skip AI suggestions"},
			},
			Action: r.crawl,
		},
	}
	return app
}

func (r *Runner) before(c *cli.Context) error {
	cfg, err := config.NewAppConfig(c.GlobalString("config"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("failed to load config: %v", err), exitFailure)
	}
	if lvl := c.GlobalString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("failed to parse log level: %v", err), exitFailure)
	}
	r.log.SetLevel(level)
	r.cfg = cfg
	return nil
}

func (r *Runner) check(c *cli.Context) error {
	pageURL := c.Args().First()
	if pageURL == "" {
		return cli.NewExitError("check: missing <url> argument", exitFailure)
	}

	crawler, err := r.newCrawler(service.CrawlerConfig{MaxPages: 1, Workers: 1, RetryLimit: r.cfg.Crawl.RetryLimit}, c.Bool("no-ai"))
	if err != nil {
		return exitError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(r.out, "🔎 Checking site: %s\n", pageURL)
	report, err := crawler.Check(ctx, pageURL)
	if err != nil {
		r.log.WithError(err).WithField(`url`, pageURL).Error(`failed to check page`)
		return cli.NewExitError(fmt.Sprintf("[ERROR] Failed to fetch the site: %v", errors.Cause(err)), exitFailure)
	}

	if report.AISuggestions != nil {
		fmt.Fprintf(r.out, "\n✨ AI-Powered SEO Suggestions ✨\n%s\n", *report.AISuggestions)
	}

	jsonPath, htmlPath := c.String("output-json"), c.String("output-html")
	if err := r.writeReports(models.SinglePageReport{Page: *report}, jsonPath, htmlPath); err != nil {
		return exitError(err)
	}

	fmt.Fprintf(r.out, "\n✅ Reports generated:\n- %s\n- %s\n", jsonPath, htmlPath)
	return nil
}

func (r *Runner) crawl(c *cli.Context) error {
	startURL := c.Args().First()
	if startURL == "" {
		return cli.NewExitError("crawl: missing <url> argument", exitFailure)
	}

	crawlCfg := service.CrawlerConfig{
		MaxPages:   r.cfg.Crawl.MaxPages,
		Workers:    r.cfg.Crawl.Workers,
		RetryLimit: r.cfg.Crawl.RetryLimit,
	}
	if c.IsSet("max-pages") {
		crawlCfg.MaxPages = c.Int("max-pages")
	}
	if c.IsSet("workers") {
		crawlCfg.Workers = c.Int("workers")
	}
	if crawlCfg.MaxPages < 1 {
		return cli.NewExitError("crawl: --max-pages must be at least 1", exitFailure)
	}

	crawler, err := r.newCrawler(crawlCfg, c.Bool("no-ai"))
	if err != nil {
		return exitError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if r.cfg.Diagnostics.Host != "" {
		server, err := diagnostics.Init(r.log, r.cfg, crawler.Progress)
		if err != nil {
			r.log.WithError(err).Warn(`diagnostics server not started`)
		} else {
			defer func() {
				if err := server.Stop(); err != nil {
					r.log.WithError(err).Warn(`failed to stop diagnostics server`)
				}
			}()
		}
	}

	fmt.Fprintf(r.out, "🌐 Starting crawl at %s (max %d pages)\n", startURL, crawlCfg.MaxPages)
	result, err := crawler.Crawl(ctx, startURL)
	switch {
	case result == nil:
		// an unusable start url is a crawl with no pages, not a failure
		r.log.WithError(err).WithField(`url`, startURL).Error(`failed to start crawl`)
		fmt.Fprintf(r.out, "[ERROR] Cannot crawl %s: %v\n", startURL, errors.Cause(err))
		result = &models.CrawlResult{}
	case err != nil:
		r.log.WithError(err).Warn(`crawl interrupted, writing partial report`)
	}

	jsonPath, htmlPath := c.String("output-json"), c.String("output-html")
	if err := r.writeReports(models.MultiPageReport{Pages: result.Reports}, jsonPath, htmlPath); err != nil {
		return exitError(err)
	}

	fmt.Fprintln(r.out)
	printSummary(r.out, result.Reports)
	fmt.Fprintf(r.out, "\n✅ Site crawl complete! %d pages analyzed.\n- JSON report: %s\n- HTML report: %s\n", len(result.Reports), jsonPath, htmlPath)
	return nil
}

// newCrawler wires the pipeline. With AI requested a missing credential is
// fatal; with noAI it is only worth a warning.
func (r *Runner) newCrawler(crawlCfg service.CrawlerConfig, noAI bool) (*service.Crawler, error) {
	webClient := adaptors.NewWebClient(r.cfg.Fetch.Timeout, r.cfg.Fetch.UserAgent, r.log)

	var suggester *service.AISuggester
	if noAI {
		if r.cfg.AI.APIKey == "" {
			r.log.Warn(`OPENROUTER_API_KEY is not set, AI suggestions are unavailable`)
		}
	} else {
		aiClient, err := adaptors.NewOpenRouterClient(adaptors.AIClientConfig{
			APIKey:  r.cfg.AI.APIKey,
			BaseURL: r.cfg.AI.BaseURL,
			Model:   r.cfg.AI.Model,
			Timeout: r.cfg.AI.Timeout,
		}, r.log)
		if err != nil {
			return nil, err
		}
		suggester = service.NewAISuggester(r.log, aiClient)
	}

	return service.NewCrawler(
		r.log,
		service.NewFetcher(r.log, webClient, r.cfg.Fetch.Timeout),
		service.NewLinkAuditor(r.log, webClient, r.cfg.Probe.Timeout, r.cfg.Probe.Concurrency),
		service.NewPageAnalyzer(),
		suggester,
		crawlCfg,
	), nil
}

func (r *Runner) writeReports(report models.Report, jsonPath, htmlPath string) error {
	writer := adaptors.NewReportWriter(r.log)
	if err := writer.WriteJSON(jsonPath, report); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "[INFO] JSON report written to %s\n", jsonPath)

	if err := writer.WriteHTML(htmlPath, report); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "[INFO] HTML report written to %s\n", htmlPath)
	return nil
}

func exitError(err error) error {
	var cfgErr *errors.ConfigurationError
	if errors.As(err, &cfgErr) {
		return cli.NewExitError(cfgErr.Error(), exitFailure)
	}
	return cli.NewExitError(errors.Cause(err).Error(), exitFailure)
}
