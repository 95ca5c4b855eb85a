package service

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"seo_checker/internal/domain/adaptors"
	"seo_checker/internal/domain/models"
	"seo_checker/internal/pkg/errors"
	"seo_checker/internal/pkg/metrics"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type LinkAuditor struct {
	log         *log.Logger
	webClient   adaptors.WebClient
	timeout     time.Duration
	concurrency int
}

func NewLinkAuditor(log *log.Logger, webClient adaptors.WebClient, timeout time.Duration, concurrency int) *LinkAuditor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &LinkAuditor{
		log:         log,
		webClient:   webClient,
		timeout:     timeout,
		concurrency: concurrency,
	}
}

// Check probes every href once with a HEAD request, resolved against
// baseURL. The result has one entry per href in href order. Failures are
// recorded, never returned.
func (a *LinkAuditor) Check(ctx context.Context, baseURL string, hrefs []string) models.LinkCheckResult {
	results := make(models.LinkCheckResult, len(hrefs))

	base, err := url.Parse(baseURL)
	if err != nil {
		a.log.WithError(err).WithField(`base`, baseURL).Warn(`cannot resolve links against base url`)
		for i, href := range hrefs {
			results[i] = models.LinkCheck{URL: href, Error: errors.Cause(err).Error()}
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, href := range hrefs {
		i, href := i, href
		g.Go(func() error {
			results[i] = a.probe(ctx, base, href)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (a *LinkAuditor) probe(ctx context.Context, base *url.URL, href string) models.LinkCheck {
	target, err := resolve(base, href)
	if err != nil {
		metrics.LinkProbesTotal.WithLabelValues(`broken`).Inc()
		return models.LinkCheck{URL: href, Error: errors.Cause(err).Error()}
	}
	absolute := target.String()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	resp, err := a.webClient.Do(ctx, absolute, http.MethodHead)
	if err != nil {
		probeErr := &errors.ProbeError{URL: absolute, Err: err}
		a.log.WithError(probeErr).Debug(`link probe failed`)
		metrics.LinkProbesTotal.WithLabelValues(`broken`).Inc()
		return models.LinkCheck{URL: absolute, Error: describe(err)}
	}

	check := models.LinkCheck{URL: absolute, StatusCode: resp.StatusCode}
	if check.Broken() {
		metrics.LinkProbesTotal.WithLabelValues(`broken`).Inc()
	} else {
		metrics.LinkProbesTotal.WithLabelValues(`ok`).Inc()
	}
	return check
}

// describe prefers the transport's own url.Error text, which names the
// method and target, over the innermost cause.
func describe(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Error()
	}
	return errors.Cause(err).Error()
}
