package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// content read path.
type Metrics struct {
	DocumentFetches *prometheus.CounterVec   // labels: doc_type={index,briefing,climate,news}, outcome={success,missing,error}
	FetchDuration   *prometheus.HistogramVec // labels: doc_type
	FallbackDepth   prometheus.Histogram     // candidates tried before a briefing resolved
	CacheLookups    *prometheus.CounterVec   // labels: result={hit,miss}
	StoreReady      prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DocumentFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_briefing",
			Name:      "document_fetches_total",
			Help:      "Content store fetches by document type and outcome.",
		}, []string{"doc_type", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climate_briefing",
			Name:      "fetch_duration_seconds",
			Help:      "Content store fetch duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"doc_type"}),
		FallbackDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_briefing",
			Name:      "fallback_depth",
			Help:      "Number of candidate paths tried before a briefing resolved.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_briefing",
			Name:      "cache_lookups_total",
			Help:      "Document cache lookups by result.",
		}, []string{"result"}),
		StoreReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_briefing",
			Name:      "store_ready",
			Help:      "1 once the briefing index has been fetched successfully.",
		}),
	}

	prometheus.MustRegister(
		m.DocumentFetches,
		m.FetchDuration,
		m.FallbackDepth,
		m.CacheLookups,
		m.StoreReady,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DocumentFetches: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_briefing", Name: "document_fetches_total"}, []string{"doc_type", "outcome"}),
		FetchDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "climate_briefing", Name: "fetch_duration_seconds"}, []string{"doc_type"}),
		FallbackDepth:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate_briefing", Name: "fallback_depth"}),
		CacheLookups:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_briefing", Name: "cache_lookups_total"}, []string{"result"}),
		StoreReady:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "climate_briefing", Name: "store_ready"}),
	}
}
