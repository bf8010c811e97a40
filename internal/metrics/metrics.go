// Package metrics defines the Prometheus collectors for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, chi route pattern, and
	// response status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stocknews",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stocknews",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// SearchesTotal counts news searches by terminal state of the request
	// pipeline (success, invalid_ticker, rate_limited, timeout, upstream_error,
	// empty_content, parse_error, internal_error).
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stocknews",
		Name:      "searches_total",
		Help:      "News searches by outcome.",
	}, []string{"outcome"})

	// UpstreamRequestDuration observes the latency of Perplexity calls,
	// including timed-out ones.
	UpstreamRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stocknews",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of upstream search-provider calls.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 45},
	})

	// PanicsTotal counts panics caught by the recovery middleware.
	PanicsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stocknews",
		Name:      "panics_recovered_total",
		Help:      "Panics recovered by HTTP middleware.",
	})
)

// RecordSearch records one finished search pipeline run.
func RecordSearch(outcome string) {
	SearchesTotal.WithLabelValues(outcome).Inc()
}

// ObserveUpstream records the wall-clock duration of one provider call.
func ObserveUpstream(d time.Duration) {
	UpstreamRequestDuration.Observe(d.Seconds())
}
