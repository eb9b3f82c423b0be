package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request metrics shared by the HTTP middleware.
//
//nolint:gochecknoglobals // promauto registration is a standard pattern
var (
	// RequestsTotal counts handled HTTP requests by path and status class.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cloudcompare_http_requests_total",
			Help: "Total HTTP requests handled, by path and status code.",
		},
		[]string{"path", "status"},
	)

	// RequestDuration observes request latency by path. Upstream pricing
	// calls dominate, so buckets stretch well past typical API latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cloudcompare_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by path.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"path"},
	)

	// UpstreamPriceFallbacks counts times a route substituted its fallback
	// constant because the pricing query returned nothing.
	UpstreamPriceFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cloudcompare_price_fallbacks_total",
			Help: "Price lookups that fell back to a static default, by route.",
		},
		[]string{"route"},
	)
)
