package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	retrievalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nomoresql_retrievals_total",
			Help: "Total number of example retrievals by outcome.",
		},
		[]string{"outcome"},
	)
	retrievalDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nomoresql_retrieval_duration_seconds",
			Help:    "Latency of embedding a question and searching the index.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
	retrievedExamples = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nomoresql_retrieved_examples",
			Help:    "Number of examples surviving the question filter per retrieval.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nomoresql_generations_total",
			Help: "Total number of SQL generations by outcome.",
		},
		[]string{"outcome"},
	)
	generationDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nomoresql_generation_duration_seconds",
			Help:    "Latency of the generation call, stream fully drained.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)
	indexVectors = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nomoresql_index_vectors",
			Help: "Number of vectors in the similarity index (twice the example count).",
		},
	)
	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nomoresql_active_sessions",
			Help: "Number of live chat sessions.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		retrievalsTotal,
		retrievalDurationSeconds,
		retrievedExamples,
		generationsTotal,
		generationDurationSeconds,
		indexVectors,
		activeSessions,
	)
}

const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeUnbuilt  = "unbuilt"
	OutcomeFallback = "fallback"
)

func ObserveRetrieval(outcome string, results int, elapsed time.Duration) {
	retrievalsTotal.WithLabelValues(outcome).Inc()
	retrievalDurationSeconds.Observe(elapsed.Seconds())

	if outcome == OutcomeOK {
		retrievedExamples.Observe(float64(results))
	}
}

func ObserveGeneration(outcome string, elapsed time.Duration) {
	generationsTotal.WithLabelValues(outcome).Inc()
	generationDurationSeconds.Observe(elapsed.Seconds())
}

func SetIndexVectors(n int) {
	indexVectors.Set(float64(n))
}

func SetActiveSessions(n int) {
	if n < 0 {
		n = 0
	}

	activeSessions.Set(float64(n))
}
