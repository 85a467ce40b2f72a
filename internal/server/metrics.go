// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
// It implements pipeline.Observer, and SourceFailed fits source.Guard's
// OnFailure hook.
type Metrics struct {
	registry       *prometheus.Registry
	runs           *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
	sourceFailures *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "repurpose",
			Name:      "pipeline_runs_total",
			Help:      "Completed pipeline runs by mode.",
		}, []string{"mode"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "repurpose",
			Name:      "demo_fallbacks_total",
			Help:      "Runs answered from curated demo data by mode.",
		}, []string{"mode"}),
		sourceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "repurpose",
			Name:      "source_failures_total",
			Help:      "Record fetches that failed and were replaced by an empty result.",
		}, []string{"source"}),
	}
	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.runs, m.fallbacks, m.sourceFailures,
	)
	return m
}

// ObserveRun counts a completed run.
func (m *Metrics) ObserveRun(mode string, usedDemo bool) {
	m.runs.WithLabelValues(mode).Inc()
	if usedDemo {
		m.fallbacks.WithLabelValues(mode).Inc()
	}
}

// SourceFailed counts a failed fetch from source.
func (m *Metrics) SourceFailed(source string) {
	m.sourceFailures.WithLabelValues(source).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry:          m.registry,
		EnableOpenMetrics: false,
	})
}
