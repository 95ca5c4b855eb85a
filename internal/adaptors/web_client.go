package adaptors

import (
	"context"
	"io"
	"net/http"
	"time"

	"seo_checker/internal/domain/adaptors"
	"seo_checker/internal/pkg/errors"
	"seo_checker/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxBodyBytes     = 6 * 1024 * 1024
)

type WebClient struct {
	client    *http.Client
	userAgent string
	log       *log.Logger
}

// InstrumentedTransport wraps the default transport with the outbound
// request counter and latency histogram.
func InstrumentedTransport() http.RoundTripper {
	return promhttp.InstrumentRoundTripperDuration(
		metrics.HTTPClientRequestDuration,
		promhttp.InstrumentRoundTripperCounter(metrics.HTTPClientRequestsTotal, http.DefaultTransport))
}

func NewWebClient(timeout time.Duration, userAgent string, log *log.Logger) *WebClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &WebClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: InstrumentedTransport(),
		},
		userAgent: userAgent,
		log:       log,
	}
}

// Do performs the request and reads the whole body. Redirects are followed.
func (w *WebClient) Do(ctx context.Context, url string, method string) (*adaptors.WebResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		w.log.WithError(err).WithField(`url`, url).Debug(`failed to create request`)
		return nil, errors.Wrap(err, `failed to create request`)
	}

	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := w.client.Do(req)
	if err != nil {
		w.log.WithError(err).WithField(`url`, url).Debug(`request failed`)
		return nil, errors.Wrap(err, `request failed`)
	}
	defer resp.Body.Close()

	bodyByte, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		w.log.WithField(`url`, url).Debugf(`failed to read response body. error: %v`, err)
		return nil, errors.Wrap(err, `failed to read response body`)
	}

	return &adaptors.WebResponse{
		Body:        bodyByte,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
