// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CollabRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collab_requests_total",
			Help: "Collaboration request lifecycle events by outcome",
		},
		[]string{"outcome"},
	)

	MatchScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collab_match_score",
			Help:    "Distribution of computed match scores",
			Buckets: []float64{20, 40, 60, 80, 100},
		},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Calls to external providers by result",
		},
		[]string{"provider", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	AlertNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trend_alert_notifications_total",
			Help: "Trend alert notifications by channel and result",
		},
		[]string{"channel", "result"},
	)

	TopicVirality = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trend_topic_virality",
			Help:    "Virality scores computed for watched topics",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)
