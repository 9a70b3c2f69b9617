package services

import "github.com/prometheus/client_golang/prometheus"

// Engine-level counters, alongside the HTTP metrics the middleware exports.
// Batch endpoints are coarse, so per-outcome counts are what the dashboards
// actually need.
var (
	predictionsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "engine",
		Name:      "predictions_generated_total",
		Help:      "Weekly prediction records generated or refreshed.",
	})

	actualCellsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "engine",
		Name:      "actual_cells_recorded_total",
		Help:      "Prediction-matrix cells filled with an observed actual mood.",
	})

	feedbackScored = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "engine",
		Name:      "feedback_scored_total",
		Help:      "Recommendation feedback submissions scored, by effectiveness outcome.",
	}, []string{"effective"})

	batchRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "engine",
		Name:      "batch_runs_total",
		Help:      "Admin-triggered batch runs, by kind.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(
		predictionsGenerated,
		actualCellsRecorded,
		feedbackScored,
		batchRuns,
	)
}
