// Command causaloop derives the causal dependency graph from a world
// configuration file and reports the feedback loops it contains.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dd0wney/causaloop/pkg/analysis"
	"github.com/dd0wney/causaloop/pkg/config"
	"github.com/dd0wney/causaloop/pkg/graph"
	"github.com/dd0wney/causaloop/pkg/layout"
	"github.com/dd0wney/causaloop/pkg/logging"
	"github.com/dd0wney/causaloop/pkg/metrics"
)

func main() {
	var (
		configFile  = flag.String("config", "world.yaml", "World configuration file")
		jsonOutput  = flag.Bool("json", false, "Emit the full report as JSON")
		layoutName  = flag.String("layout", "", "Also compute node positions: circular or force")
		layoutSeed  = flag.Int64("seed", 1, "RNG seed for the force layout")
		zeroNeutral = flag.Bool("zero-neutral", false, "Treat a pressure delta of exactly 0 as neutral instead of positive")
		skipCheck   = flag.Bool("no-validate", false, "Skip configuration validation before analysis")
	)
	flag.Parse()

	world, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load world config: %v", err)
	}

	if !*skipCheck {
		if err := config.ValidateWorld(world); err != nil {
			log.Fatalf("Invalid world config: %v", err)
		}
	}

	logger := logging.NewDefaultLogger()
	report := analysis.Analyze(world,
		analysis.WithLogger(logger),
		analysis.WithMetrics(metrics.DefaultRegistry()),
		analysis.WithBuilderOptions(graphOptions(*zeroNeutral)),
	)

	if *jsonOutput {
		printJSON(report, *layoutName, *layoutSeed)
		return
	}
	printText(report)
}

func graphOptions(zeroNeutral bool) graph.BuilderOptions {
	return graph.BuilderOptions{ZeroDeltaNeutral: zeroNeutral}
}

func printText(report *analysis.Report) {
	fmt.Printf("Causal graph: %d nodes, %d edges\n", len(report.Graph.Nodes), len(report.Graph.Edges))

	for _, edge := range report.Graph.Edges {
		fmt.Printf("  %s -> %s  [%s, %s] %s\n", edge.Source, edge.Target, edge.EdgeType, edge.Polarity, edge.Label)
	}

	fmt.Printf("\nFeedback loops: %d (%d reinforcing, %d balancing)\n",
		report.Stats.TotalLoops, report.Stats.Reinforcing, report.Stats.Balancing)
	for i, loop := range report.Loops {
		fmt.Printf("  Loop %d (%s):", i+1, loop.Type)
		for j, id := range loop.Nodes {
			if j > 0 {
				fmt.Print(" ->")
			}
			fmt.Printf(" %s", id)
		}
		fmt.Println()
	}

	if len(report.Skipped) > 0 {
		fmt.Printf("\nSkipped references: %d\n", len(report.Skipped))
		for _, skip := range report.Skipped {
			fmt.Printf("  %s[%s] %s: %s\n", skip.Collection, skip.SourceID, skip.Ref, skip.Reason)
		}
	}
}

func printJSON(report *analysis.Report, layoutName string, seed int64) {
	out := struct {
		*analysis.Report
		Positions map[string]layout.Position `json:"positions,omitempty"`
	}{Report: report}

	switch layoutName {
	case "circular":
		l := layout.NewCircularLayout(&layout.Config{Width: 1200, Height: 800})
		out.Positions = l.ComputeLayout(report.Graph)
	case "force":
		l := layout.NewForceDirectedLayout(&layout.Config{Width: 1200, Height: 800, Seed: seed})
		out.Positions = l.ComputeLayout(report.Graph)
	case "":
	default:
		log.Fatalf("Unknown layout %q (want circular or force)", layoutName)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
}
