package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the counters a site build reports.
type Metrics struct {
	PagesBuilt       *prometheus.CounterVec
	Failures         *prometheus.CounterVec
	BuildDuration    prometheus.Histogram
	Axioms           prometheus.Gauge
	DocumentsWritten prometheus.Counter
	BytesWritten     prometheus.Counter
}

// NewMetrics creates the build metrics. They are not registered anywhere yet.
func NewMetrics() *Metrics {
	return &Metrics{
		PagesBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hyppo",
				Subsystem: "build",
				Name:      "pages_total",
				Help:      "Pages rendered, by entity kind",
			},
			[]string{"kind"},
		),

		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hyppo",
				Subsystem: "build",
				Name:      "failures_total",
				Help:      "Pages that failed to build, by error class",
			},
			[]string{"class"},
		),

		BuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "hyppo",
				Subsystem: "build",
				Name:      "duration_seconds",
				Help:      "Wall time of a full site build",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),

		Axioms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "hyppo",
				Subsystem: "build",
				Name:      "axioms",
				Help:      "Axioms in the most recently built ontology",
			},
		),

		DocumentsWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "hyppo",
				Subsystem: "output",
				Name:      "documents_total",
				Help:      "Documents written to the output directory",
			},
		),

		BytesWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "hyppo",
				Subsystem: "output",
				Name:      "bytes_total",
				Help:      "Bytes written to the output directory",
			},
		),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.PagesBuilt, m.Failures, m.BuildDuration, m.Axioms, m.DocumentsWritten, m.BytesWritten,
	}
}

// RecordPage counts one rendered page of the given kind.
func (m *Metrics) RecordPage(kind string) {
	m.PagesBuilt.WithLabelValues(kind).Inc()
}

// RecordFailure counts one failed page.
func (m *Metrics) RecordFailure(class string) {
	m.Failures.WithLabelValues(class).Inc()
}

// RecordBuild observes a finished build.
func (m *Metrics) RecordBuild(duration time.Duration, axioms int) {
	m.BuildDuration.Observe(duration.Seconds())
	m.Axioms.Set(float64(axioms))
}

// RecordDocument counts one written document of size bytes.
func (m *Metrics) RecordDocument(size int) {
	m.DocumentsWritten.Inc()
	m.BytesWritten.Add(float64(size))
}
