package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "predict_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment flows.
type Metrics struct {
	Assessments         *prometheus.CounterVec // labels: kind, origin={live,fallback}
	ValidationFailures  *prometheus.CounterVec // labels: kind
	TransportErrors     *prometheus.CounterVec // labels: kind, reason
	NormalizationErrors *prometheus.CounterVec // labels: kind
	Superseded          *prometheus.CounterVec // labels: kind

	// Inference API metrics.
	UpstreamDuration *prometheus.HistogramVec // labels: kind
	UpstreamReady    prometheus.Gauge

	// Event stream metrics.
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Assessments,
		m.ValidationFailures,
		m.TransportErrors,
		m.NormalizationErrors,
		m.Superseded,
		m.UpstreamDuration,
		m.UpstreamReady,
		m.EventsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Assessments produced, by kind and origin.",
		}, []string{"kind", "origin"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Submissions rejected before any network call.",
		}, []string{"kind"}),
		TransportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_errors_total",
			Help:      "Failed inference calls by kind and reason.",
		}, []string{"kind", "reason"}),
		NormalizationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalization_errors_total",
			Help:      "Live responses with no recognizable primary metric.",
		}, []string{"kind"}),
		Superseded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "superseded_total",
			Help:      "Completed assessments discarded because a newer submission was issued.",
		}, []string{"kind"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Inference API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
		UpstreamReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "upstream_ready",
			Help:      "1 when the last inference API health probe succeeded, 0 otherwise.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Assessment events written to the event topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Assessment events that failed to publish.",
		}),
	}
}
