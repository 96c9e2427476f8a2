package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recommendation outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeInvalidAnswer = "invalid_answer"
	OutcomeEmptyCatalog  = "empty_catalog"
	OutcomeUnavailable   = "catalog_unavailable"
	OutcomeDataIntegrity = "data_integrity"
	OutcomeError         = "error"
)

var (
	recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	recommendationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Time to fetch, normalize and score the catalog",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	catalogTracks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_tracks",
			Help:      "Tracks scored by the most recent recommendation",
		},
	)
)

func init() {
	prometheus.MustRegister(recommendationsTotal, recommendationDuration, catalogTracks)
}

// Recorder receives recommendation events. The zero value records into the
// default registry.
type Recorder struct{}

// ObserveRecommendation records one request outcome and its latency.
func (Recorder) ObserveRecommendation(outcome string, elapsed time.Duration) {
	recommendationsTotal.WithLabelValues(outcome).Inc()
	recommendationDuration.Observe(elapsed.Seconds())
}

// SetCatalogSize records how many tracks the last request scored.
func (Recorder) SetCatalogSize(n int) {
	catalogTracks.Set(float64(n))
}
