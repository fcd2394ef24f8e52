// Package metrics exposes prometheus instrumentation for the analysis
// pipeline. The pure algorithms record nothing themselves; the pipeline
// reports one observation per completed analysis.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the analysis pipeline
type Registry struct {
	AnalysesTotal    prometheus.Counter
	AnalysisDuration prometheus.Histogram
	GraphNodes       prometheus.Gauge
	GraphEdges       prometheus.Gauge
	LoopsDetected    *prometheus.CounterVec
	SkippedRefsTotal prometheus.Counter

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// NewRegistry creates a metrics registry backed by its own prometheus
// registry.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.AnalysesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "causaloop_analyses_total",
			Help: "Total number of causal graph analyses run",
		},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "causaloop_analysis_duration_seconds",
			Help:    "Full build-detect-classify pipeline duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "causaloop_graph_nodes",
			Help: "Node count of the most recently built causal graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "causaloop_graph_edges",
			Help: "Edge count of the most recently built causal graph",
		},
	)

	r.LoopsDetected = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "causaloop_loops_detected_total",
			Help: "Feedback loops detected, by classification",
		},
		[]string{"type"},
	)

	r.SkippedRefsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "causaloop_skipped_refs_total",
			Help: "Malformed or dangling references dropped during graph derivation",
		},
	)

	return r
}

// DefaultRegistry returns the global registry instance
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Prometheus returns the underlying prometheus registry for exposition.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// RecordAnalysis records one completed pipeline run.
func (r *Registry) RecordAnalysis(nodes, edges, skipped int, loopsByType map[string]int, duration time.Duration) {
	r.AnalysesTotal.Inc()
	r.AnalysisDuration.Observe(duration.Seconds())
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.SkippedRefsTotal.Add(float64(skipped))
	for loopType, count := range loopsByType {
		r.LoopsDetected.WithLabelValues(loopType).Add(float64(count))
	}
}
