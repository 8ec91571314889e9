// Package metrics holds the prometheus collectors for the quest engines and
// the HTTP layer.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationRequests counts Generate calls by outcome:
	// "ok", "no_profile", "invalid_profile", "empty".
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sparks_recommendation_requests_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sparks_recommendation_candidates",
			Help:    "Unclaimed catalog quests scored per request",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 250},
		},
	)

	// ScoringFailures counts candidates that fell back to the base score.
	ScoringFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sparks_scoring_failures_total",
			Help: "Candidates that could not be scored and received the base score",
		},
	)

	RecommendationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sparks_recommendation_cache_total",
			Help: "Recommendation cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	ProgressSummaries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sparks_progress_summaries_total",
			Help: "Progress summaries computed",
		},
	)

	QuestCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sparks_quest_completions_total",
			Help: "Quests completed by category",
		},
		[]string{"category"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sparks_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// GinMiddleware records request latency per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
