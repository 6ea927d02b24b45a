package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// simulation pipeline.
type Metrics struct {
	StepsProcessed prometheus.Counter
	StepsSkipped   prometheus.Counter
	StepErrors     prometheus.Counter
	PipelineRunning prometheus.Gauge

	// Data-quality metrics.
	MetCorrections     prometheus.Counter
	TimestepAdvisories *prometheus.CounterVec // labels: class={duplicate,negative,large,moderate}

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		StepsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamtemp",
			Name:      "steps_processed_total",
			Help:      "Total simulation steps integrated and published.",
		}),
		StepsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamtemp",
			Name:      "steps_skipped_total",
			Help:      "Total steps where the temperature update was skipped on a duplicate timestep.",
		}),
		StepErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamtemp",
			Name:      "step_errors_total",
			Help:      "Total unparseable or failed simulation steps.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "streamtemp",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		MetCorrections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamtemp",
			Name:      "met_corrections_total",
			Help:      "Total meteorological data-quality substitutions applied.",
		}),
		TimestepAdvisories: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamtemp",
			Name:      "timestep_advisories_total",
			Help:      "Timestep advisories by class.",
		}, []string{"class"}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "streamtemp",
			Name:      "batch_size",
			Help:      "Number of step messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "streamtemp",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-simulate-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.StepsProcessed,
		m.StepsSkipped,
		m.StepErrors,
		m.PipelineRunning,
		m.MetCorrections,
		m.TimestepAdvisories,
		m.BatchSize,
		m.BatchProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		StepsProcessed:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "streamtemp", Name: "steps_processed_total"}),
		StepsSkipped:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "streamtemp", Name: "steps_skipped_total"}),
		StepErrors:              prometheus.NewCounter(prometheus.CounterOpts{Namespace: "streamtemp", Name: "step_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "streamtemp", Name: "pipeline_running"}),
		MetCorrections:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "streamtemp", Name: "met_corrections_total"}),
		TimestepAdvisories:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "streamtemp", Name: "timestep_advisories_total"}, []string{"class"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "streamtemp", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "streamtemp", Name: "batch_processing_duration_seconds"}),
	}
}
