// Package analysis wires graph derivation, cycle detection, and loop
// classification into a single synchronous pipeline. Each call is
// stateless and idempotent: identical ordered inputs produce
// structurally identical reports.
package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/causaloop/pkg/config"
	"github.com/dd0wney/causaloop/pkg/graph"
	"github.com/dd0wney/causaloop/pkg/logging"
	"github.com/dd0wney/causaloop/pkg/loops"
	"github.com/dd0wney/causaloop/pkg/metrics"
)

// Report is the full output of one analysis run, handed to the
// rendering and summary UI.
type Report struct {
	// BuildID identifies this run for UI correlation; it is the only
	// field that differs between runs on identical input.
	BuildID string             `json:"buildId"`
	Graph   *graph.Graph       `json:"graph"`
	Loops   []loops.Loop       `json:"loops"`
	Skipped []graph.SkippedRef `json:"skipped,omitempty"`
	Stats   loops.LoopStats    `json:"stats"`
	Elapsed time.Duration      `json:"elapsed"`
}

// Option configures an analysis run.
type Option func(*pipeline)

type pipeline struct {
	logger   logging.Logger
	registry *metrics.Registry
	builder  graph.BuilderOptions
	detect   loops.DetectOptions
}

// WithLogger sets the structured logger for pipeline phases.
func WithLogger(logger logging.Logger) Option {
	return func(p *pipeline) { p.logger = logger }
}

// WithMetrics sets the registry that records the run.
func WithMetrics(registry *metrics.Registry) Option {
	return func(p *pipeline) { p.registry = registry }
}

// WithBuilderOptions overrides graph derivation options.
func WithBuilderOptions(opts graph.BuilderOptions) Option {
	return func(p *pipeline) { p.builder = opts }
}

// WithDetectOptions overrides cycle detection options.
func WithDetectOptions(opts loops.DetectOptions) Option {
	return func(p *pipeline) { p.detect = opts }
}

// Analyze runs build -> detect -> classify on the calling goroutine and
// returns the report. It never fails: malformed configuration degrades
// to dropped references, listed in Report.Skipped.
func Analyze(w *config.World, opts ...Option) *Report {
	p := &pipeline{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(p)
	}

	buildID := uuid.NewString()
	log := p.logger.With(logging.BuildID(buildID))
	start := time.Now()

	g, skipped := graph.BuildWithOptions(w, p.builder)
	log.Debug("causal graph built",
		logging.NodeCount(len(g.Nodes)),
		logging.EdgeCount(len(g.Edges)),
		logging.SkippedCount(len(skipped)),
	)

	cycles := loops.DetectWithOptions(g, p.detect)
	classified := loops.ClassifyAll(cycles, g.Edges)
	stats := loops.AnalyzeLoops(classified)

	elapsed := time.Since(start)
	log.Info("analysis complete",
		logging.NodeCount(len(g.Nodes)),
		logging.EdgeCount(len(g.Edges)),
		logging.LoopCount(len(classified)),
		logging.SkippedCount(len(skipped)),
		logging.Elapsed(elapsed),
	)

	if p.registry != nil {
		p.registry.RecordAnalysis(len(g.Nodes), len(g.Edges), len(skipped), loopCounts(classified), elapsed)
	}

	return &Report{
		BuildID: buildID,
		Graph:   g,
		Loops:   classified,
		Skipped: skipped,
		Stats:   stats,
		Elapsed: elapsed,
	}
}

func loopCounts(classified []loops.Loop) map[string]int {
	counts := make(map[string]int, 2)
	for _, loop := range classified {
		counts[string(loop.Type)]++
	}
	return counts
}
