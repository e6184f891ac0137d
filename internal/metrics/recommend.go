package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation pipeline Prometheus metrics.
var (
	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huematch",
			Name:      "recommend_requests_total",
			Help:      "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"}, // ok / no_match / invalid_target / error
	)

	RecordsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huematch",
			Name:      "records_dropped_total",
			Help:      "Catalog rows rejected by the normalizer",
		},
		[]string{"field"},
	)

	CatalogLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "huematch",
			Name:      "catalog_load_duration_seconds",
			Help:      "Catalog fetch duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"driver", "status"},
	)

	CandidateCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "huematch",
			Name:      "candidates",
			Help:      "Number of normalized products per query before top-K selection",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
	)
)

// Recommend outcome label values.
const (
	OutcomeOK            = "ok"
	OutcomeNoMatch       = "no_match"
	OutcomeInvalidTarget = "invalid_target"
	OutcomeError         = "error"
)

var recommendMetricsRegistered bool

// RegisterRecommendMetrics registers the pipeline metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recommendMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendRequestsTotal)
	prometheus.MustRegister(RecordsDroppedTotal)
	prometheus.MustRegister(CatalogLoadDuration)
	prometheus.MustRegister(CandidateCount)
	recommendMetricsRegistered = true
}
