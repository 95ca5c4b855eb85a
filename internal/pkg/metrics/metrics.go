package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// --- Diagnostics server metrics ---
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_requests_total",
			Help: "Total number of HTTP requests processed by the diagnostics server.",
		},
		[]string{"method", "route", "code"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "Latency of diagnostics server requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_errors_total",
			Help: "Total number of diagnostics requests resulting in client or server errors.",
		},
		[]string{"method", "route", "code"},
	)

	// --- Outbound (client) metrics ---
	HTTPClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_client_requests_total",
			Help: "Total number of outbound HTTP requests (page fetches, link probes, AI calls).",
		},
		[]string{"method", "code"},
	)
	HTTPClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_client_request_duration_seconds",
			Help:    "Latency of outbound HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "code"},
	)

	// --- Crawl metrics ---
	PagesCrawledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seo_pages_crawled_total",
			Help: "Pages fetched and analyzed successfully.",
		},
	)
	FetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seo_fetch_failures_total",
			Help: "Page fetches that failed, by reason (status or transport).",
		},
		[]string{"reason"},
	)
	LinkProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seo_link_probes_total",
			Help: "Link reachability probes, by outcome (ok or broken).",
		},
		[]string{"outcome"},
	)
	AISuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seo_ai_suggestions_total",
			Help: "AI suggestion requests, by outcome (ok or failed).",
		},
		[]string{"outcome"},
	)
	FrontierSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seo_crawl_frontier_size",
			Help: "URLs currently waiting in the crawl frontier.",
		},
	)

	// --- Runtime metrics ---
	CPUCount = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "process_cpu_count",
			Help: "Number of CPU cores available.",
		},
		func() float64 { return float64(runtime.NumCPU()) },
	)
)

func MetricsRegister() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestErrorsTotal,
		HTTPClientRequestsTotal,
		HTTPClientRequestDuration,
		PagesCrawledTotal,
		FetchFailuresTotal,
		LinkProbesTotal,
		AISuggestionsTotal,
		FrontierSize,
		CPUCount,
	)

	return reg
}
