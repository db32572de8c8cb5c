package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpBuckets = prometheus.ExponentialBuckets(0.01, 2, 12)

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "meetup",
		Name:      "operation_duration_seconds",
		Help:      "Duration of timed internal operations and provider calls.",
		Buckets:   httpBuckets,
	}, []string{"op", "outcome"})

	// HTTPRequests counts served requests by route template and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "meetup",
		Name:      "http_requests_total",
		Help:      "HTTP requests served.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "meetup",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   httpBuckets,
	}, []string{"method", "route"})

	// CacheLookups counts cache hits and misses per cache.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "meetup",
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by cache and result.",
	}, []string{"cache", "result"})

	SupersededActions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "meetup",
		Name:      "superseded_actions_total",
		Help:      "Update actions discarded because a newer one started.",
	})
)

// CacheHit records a lookup result for the named cache.
func CacheHit(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(cache, result).Inc()
}
