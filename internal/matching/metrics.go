// internal/matching/metrics.go

package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_recommendation_requests_total",
			Help: "Total recommendation requests by outcome",
		},
		[]string{"status"},
	)

	recommendationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_recommendation_cache_hits_total",
			Help: "Recommendation pages served from the Redis cache",
		},
	)

	candidatePoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_candidate_pool_size",
			Help:    "Candidate pool sizes fetched per request",
			Buckets: prometheus.LinearBuckets(0, 50, 11),
		},
	)

	matchScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_match_scores",
			Help:    "Distribution of computed match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	recommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "matching_recommendation_duration_seconds",
			Help: "Time spent computing a recommendation page",
		},
	)
)
