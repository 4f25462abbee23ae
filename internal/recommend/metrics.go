package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	interactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recsys_interactions_total",
			Help: "Total number of tracked interactions",
		},
		[]string{"kind"},
	)

	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recsys_recommendations_total",
			Help: "Total number of recommendations served",
		},
		[]string{"method"},
	)

	recommendationScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recsys_recommendation_scores",
			Help:    "Distribution of hybrid recommendation scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	degradedResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recsys_degraded_responses_total",
			Help: "Recommendation responses served in a degraded mode",
		},
		[]string{"level"},
	)

	pipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "recsys_pipeline_duration_seconds",
			Help: "Wall time of the full recommendation pipeline",
		},
	)
)

func RecordInteraction(kind string) {
	interactionsTotal.WithLabelValues(kind).Inc()
}

func RecordRecommendation(method string, score float64) {
	recommendationsTotal.WithLabelValues(method).Inc()
	recommendationScores.Observe(score)
}

func RecordDegradedResponse(level string) {
	degradedResponsesTotal.WithLabelValues(level).Inc()
}

func ObservePipelineDuration(seconds float64) {
	pipelineDuration.Observe(seconds)
}
