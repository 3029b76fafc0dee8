// Package metrics defines the Prometheus metrics the builder emits.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BuilderMetrics tracks builder activity.
//
// Metrics:
//   - forge_builder_generations_total: Rego generations performed
//   - forge_builder_analyses_total: complexity analyses by resulting level
//   - forge_builder_leaf_limit_rejections_total: mutations refused by the tier cap
//   - forge_builder_autosaves_total: autosave snapshots by outcome
//   - forge_builder_lint_requests_total: advisory lint calls by outcome
type BuilderMetrics struct {
	generationsTotal     prometheus.Counter
	analysesTotal        *prometheus.CounterVec
	limitRejectionsTotal prometheus.Counter
	autosavesTotal       *prometheus.CounterVec
	lintRequestsTotal    *prometheus.CounterVec
}

// New creates and registers builder metrics with the provided registry.
func New(namespace, subsystem string, registry *prometheus.Registry) *BuilderMetrics {
	m := &BuilderMetrics{
		generationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "generations_total",
			Help:      "Total number of Rego generations",
		}),
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "analyses_total",
			Help:      "Total number of complexity analyses by level",
		}, []string{"level"}),
		limitRejectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "leaf_limit_rejections_total",
			Help:      "Total number of tree mutations refused by the leaf cap",
		}),
		autosavesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "autosaves_total",
			Help:      "Total number of autosave snapshots by outcome",
		}, []string{"outcome"}),
		lintRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "lint_requests_total",
			Help:      "Total number of advisory lint requests by outcome",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		m.generationsTotal,
		m.analysesTotal,
		m.limitRejectionsTotal,
		m.autosavesTotal,
		m.lintRequestsTotal,
	)

	return m
}

// RecordGeneration records one Rego generation.
func (m *BuilderMetrics) RecordGeneration() {
	m.generationsTotal.Inc()
}

// RecordAnalysis records one complexity analysis with its resulting level.
func (m *BuilderMetrics) RecordAnalysis(level string) {
	m.analysesTotal.WithLabelValues(level).Inc()
}

// RecordLimitRejection records a mutation refused by the leaf cap.
func (m *BuilderMetrics) RecordLimitRejection() {
	m.limitRejectionsTotal.Inc()
}

// RecordAutosave records an autosave attempt ("ok" or "error").
func (m *BuilderMetrics) RecordAutosave(outcome string) {
	m.autosavesTotal.WithLabelValues(outcome).Inc()
}

// RecordLint records an advisory lint call ("ok", "error", or "skipped").
func (m *BuilderMetrics) RecordLint(outcome string) {
	m.lintRequestsTotal.WithLabelValues(outcome).Inc()
}
