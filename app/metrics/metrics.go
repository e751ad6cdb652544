// Package metrics provides Prometheus metrics for the blog server.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pressroom"

var (
	// RequestsTotal counts HTTP requests by route template, method and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// RequestDuration measures HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// CommentsTotal counts comment submissions by outcome.
	CommentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_total",
			Help:      "Total number of comment submissions",
		},
		[]string{"result"},
	)

	// SharesTotal counts share-by-email attempts by outcome.
	SharesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shares_total",
			Help:      "Total number of share-by-email attempts",
		},
		[]string{"result"},
	)

	// SearchesTotal counts search queries.
	SearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of search queries",
		},
	)
)

// RecordRequest records a served HTTP request.
func RecordRequest(route, method string, status int, seconds float64) {
	RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(route, method).Observe(seconds)
}

// RecordComment records the outcome of a comment submission.
func RecordComment(result string) {
	CommentsTotal.WithLabelValues(result).Inc()
}

// RecordShare records the outcome of a share attempt.
func RecordShare(result string) {
	SharesTotal.WithLabelValues(result).Inc()
}

// RecordSearch records a search query.
func RecordSearch() {
	SearchesTotal.Inc()
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
