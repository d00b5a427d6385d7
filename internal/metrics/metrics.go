// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyyur_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fyyur_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// Listings
	ListingWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyyur_listing_writes_total",
			Help: "Venue, artist and show writes by outcome",
		},
		[]string{"type", "op", "outcome"},
	)

	// Events
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyyur_events_published_total",
			Help: "Domain events handed to the broker by outcome",
		},
		[]string{"kind", "outcome"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyyur_events_consumed_total",
			Help: "Domain events read from the broker by outcome",
		},
		[]string{"outcome"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fyyur_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Cache and rate limiting
	CacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyyur_cache_results_total",
			Help: "Response cache lookups by result (hit, miss, bypass)",
		},
		[]string{"result"},
	)

	CachePurges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fyyur_cache_purged_keys_total",
			Help: "Cached responses removed after a successful write",
		},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyyur_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
)
