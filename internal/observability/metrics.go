package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "reservoir_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for render passes.
type Metrics struct {
	Passes        *prometheus.CounterVec // labels: outcome={success,transport_error,format_error,empty_input,error}
	PassDuration  prometheus.Histogram
	PassesShared  prometheus.Counter
	RecordsLoaded prometheus.Counter
	RecordsKept   prometheus.Counter
	RowsDropped   *prometheus.CounterVec // labels: reason={reserved,missing,blank,not_integer}
	LastPassRows  prometheus.Gauge

	// Data quality and sink metrics.
	UnparseableValues *prometheus.CounterVec // labels: field={storage,storage_percent}
	SinkErrors        *prometheus.CounterVec // labels: sink
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Passes,
		m.PassDuration,
		m.PassesShared,
		m.RecordsLoaded,
		m.RecordsKept,
		m.RowsDropped,
		m.LastPassRows,
		m.UnparseableValues,
		m.SinkErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// NewUnregisteredMetrics creates Metrics nothing scrapes, for one-shot
// commands that run the pipeline outside the service.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Render passes by outcome.",
		}, []string{"outcome"}),
		PassDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Duration of a complete load-sanitize-aggregate-present pass.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PassesShared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_shared_total",
			Help:      "Requests served by joining a pass already in flight.",
		}),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "Raw rows read from the source.",
		}),
		RecordsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_kept_total",
			Help:      "Rows that passed sanitization.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Rows dropped by the sanitizer, by reason.",
		}, []string{"reason"}),
		LastPassRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_pass_records",
			Help:      "Clean records in the most recent successful pass.",
		}),
		UnparseableValues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unparseable_values_total",
			Help:      "Non-numeric cells counted as zero, by field role.",
		}, []string{"field"}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Failures delivering a dashboard to a sink.",
		}, []string{"sink"}),
	}
}
