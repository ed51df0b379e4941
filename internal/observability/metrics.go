package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the TAF
// validation service.
type Metrics struct {
	Validations         *prometheus.CounterVec // labels: outcome={accepted,rejected,error}
	ValidationDuration  prometheus.Histogram
	EnrichmentDuration  prometheus.Histogram
	SchemaCompileErrors prometheus.Counter

	// Kafka intake metrics.
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taf_validator",
			Name:      "validations_total",
			Help:      "TAF validations by outcome.",
		}, []string{"outcome"}),
		ValidationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "taf_validator",
			Name:      "validation_duration_seconds",
			Help:      "Duration of a complete two-pass validation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		EnrichmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "taf_validator",
			Name:      "enrichment_duration_seconds",
			Help:      "Duration of the enrichment rule pass.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		SchemaCompileErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "taf_validator",
			Name:      "schema_compile_errors_total",
			Help:      "Total failures to compile a schema from the store.",
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "taf_validator",
			Name:      "messages_consumed_total",
			Help:      "Total TAF documents read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "taf_validator",
			Name:      "messages_produced_total",
			Help:      "Total validation reports written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "taf_validator",
			Name:      "transform_errors_total",
			Help:      "Total messages that could not be validated.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "taf_validator",
			Name:      "pipeline_running",
			Help:      "1 when the intake pipeline is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.Validations,
		m.ValidationDuration,
		m.EnrichmentDuration,
		m.SchemaCompileErrors,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics that are not registered with any
// registry, avoiding "already registered" panics when called from multiple
// tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Validations:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "taf_validator", Name: "validations_total"}, []string{"outcome"}),
		ValidationDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "taf_validator", Name: "validation_duration_seconds"}),
		EnrichmentDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "taf_validator", Name: "enrichment_duration_seconds"}),
		SchemaCompileErrors: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "taf_validator", Name: "schema_compile_errors_total"}),
		MessagesConsumed:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "taf_validator", Name: "messages_consumed_total"}),
		MessagesProduced:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "taf_validator", Name: "messages_produced_total"}),
		TransformErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "taf_validator", Name: "transform_errors_total"}),
		PipelineRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "taf_validator", Name: "pipeline_running"}),
	}
}
