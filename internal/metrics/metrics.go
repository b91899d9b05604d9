// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExtractionOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_extractions_total",
			Help: "Skill extractions by outcome source (classified, fallback) and degrade reason",
		},
		[]string{"source", "reason"},
	)

	ClassifierDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skill_classifier_duration_seconds",
			Help:    "Latency of classifier calls, including abandoned ones",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	ClassifierCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_classifier_cache_lookups_total",
			Help: "Classifier cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	Analyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Analysis runs by result (ok, invalid_input, persistence_error)",
		},
		[]string{"result"},
	)

	MatchPercentage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_match_percentage",
			Help:    "Distribution of computed match percentages",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
