// Package metric exposes Prometheus metrics for site builds.
//
// A MetricsRegistry wraps its own prometheus.Registry (never the global one)
// and pre-registers the build metrics:
//
//	hyppo_build_pages_total{kind}
//	hyppo_build_failures_total{class}
//	hyppo_build_duration_seconds
//	hyppo_build_axioms
//	hyppo_output_documents_total
//	hyppo_output_bytes_total
//
// Components such as the render worker pool register their own collectors
// through the MetricsRegistrar interface. A one-shot build writes the
// registry to a textfile with WriteTextfile; the preview server mounts
// Handler at /metrics.
//
//	registry := metric.NewMetricsRegistry(false)
//	registry.Metrics.RecordPage("class")
//	_ = registry.WriteTextfile("build.prom")
package metric
