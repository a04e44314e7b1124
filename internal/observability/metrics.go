package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// resolver, dataset store, and render pipeline.
type Metrics struct {
	// Resolution metrics.
	Resolutions    *prometheus.CounterVec // labels: outcome={exact,nearest,local,invalid,miss,error}
	CacheLookups   *prometheus.CounterVec // labels: result={hit,miss}
	LookupDuration prometheus.Histogram

	// Dataset metrics.
	DatasetLoaded  prometheus.Gauge
	DatasetEntries prometheus.Gauge

	// Render pipeline metrics.
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zip_time",
			Name:      "resolutions_total",
			Help:      "ZIP resolutions by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zip_time",
			Name:      "profile_cache_total",
			Help:      "Profile cache lookups by result.",
		}, []string{"result"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zip_time",
			Name:      "lookup_duration_seconds",
			Help:      "Duration of dataset lookups, including the nearest-code search.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "zip_time",
			Name:      "dataset_loaded",
			Help:      "1 when the offset dataset has been loaded, 0 otherwise.",
		}),
		DatasetEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "zip_time",
			Name:      "dataset_entries",
			Help:      "Number of ZIP codes in the loaded dataset.",
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zip_time",
			Name:      "messages_consumed_total",
			Help:      "Total render requests read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zip_time",
			Name:      "messages_produced_total",
			Help:      "Total rendered times written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zip_time",
			Name:      "transform_errors_total",
			Help:      "Total render request failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "zip_time",
			Name:      "pipeline_running",
			Help:      "1 when the render pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zip_time",
			Name:      "batch_size",
			Help:      "Number of render requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zip_time",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-render-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.Resolutions,
		m.CacheLookups,
		m.LookupDuration,
		m.DatasetLoaded,
		m.DatasetEntries,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Resolutions:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "zip_time", Name: "resolutions_total"}, []string{"outcome"}),
		CacheLookups:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "zip_time", Name: "profile_cache_total"}, []string{"result"}),
		LookupDuration:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "zip_time", Name: "lookup_duration_seconds"}),
		DatasetLoaded:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "zip_time", Name: "dataset_loaded"}),
		DatasetEntries:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "zip_time", Name: "dataset_entries"}),
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "zip_time", Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "zip_time", Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "zip_time", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "zip_time", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "zip_time", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "zip_time", Name: "batch_processing_duration_seconds"}),
	}
}
