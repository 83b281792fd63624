package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apex_generation_requests_total",
			Help: "Total number of content generation requests",
		},
		[]string{"kind", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "apex_upstream_duration_seconds",
			Help: "Duration of upstream generation calls in seconds",
		},
		[]string{"kind"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apex_http_requests_total",
			Help: "Total number of HTTP requests by path and status",
		},
		[]string{"path", "status"},
	)
)

// Outcome labels for GenerationRequests.
const (
	OutcomeLive     = "live"
	OutcomeFallback = "fallback"
	OutcomeRejected = "rejected"
)
