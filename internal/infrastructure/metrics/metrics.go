package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Like outcomes recorded under the "result" label.
const (
	LikeSent         = "sent"
	LikeAlreadyLiked = "already_liked"
	LikeMatched      = "matched"
	LikeAlreadyMatch = "already_matched"
)

var (
	likesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "covenant_likes_total",
			Help: "Total number of like calls by outcome",
		},
		[]string{"result"},
	)

	matchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "covenant_matches_created_total",
			Help: "Total number of match records created",
		},
	)

	matchConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "covenant_match_insert_conflicts_total",
			Help: "Match inserts that lost a race to an existing record",
		},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "covenant_compatibility_scores",
			Help:    "Distribution of covenant scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	responseTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "covenant_operation_duration_seconds",
			Help: "Duration of core operations",
		},
		[]string{"operation"},
	)
)

func RecordLike(result string) {
	likesTotal.WithLabelValues(result).Inc()
}

func RecordMatch() {
	matchesTotal.Inc()
}

func RecordMatchConflict() {
	matchConflicts.Inc()
}

func RecordCompatibilityScore(score int) {
	compatibilityScores.Observe(float64(score))
}

func RecordDuration(operation string, started time.Time) {
	responseTime.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
