// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsRequested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_recommendations_requested_total",
			Help: "Total number of recommendation requests received",
		},
	)

	RecommendationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_recommendations_failed_total",
			Help: "Total number of recommendation requests that did not produce text",
		},
		[]string{"reason"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "advisor_recommendation_duration_seconds",
			Help: "Duration of completion service calls in seconds",
		},
	)

	CoverCropsMatched = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advisor_cover_crops_matched",
			Help:    "Number of cover crop rows surviving the filter per request",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		},
	)
)

// Failure reasons.
const (
	ReasonBadSelection = "bad_selection"
	ReasonNoMatch      = "no_match"
	ReasonService      = "service_error"
)
