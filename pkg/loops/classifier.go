package loops

import (
	"github.com/dd0wney/causaloop/pkg/graph"
)

// LoopType labels a feedback loop's systems-dynamics behavior.
type LoopType string

const (
	// LoopReinforcing loops amplify themselves: an even number of sign
	// inversions around the loop preserves direction.
	LoopReinforcing LoopType = "reinforcing"
	// LoopBalancing loops self-correct: an odd number of sign
	// inversions flips direction.
	LoopBalancing LoopType = "balancing"
)

// Loop is a classified feedback cycle. Nodes is the closed walk from
// detection, closing id included.
type Loop struct {
	Nodes []string `json:"nodes"`
	Type  LoopType `json:"type"`
}

// Classify labels a cycle by counting negative-polarity edges along it.
// For each consecutive pair the first edge in declaration order whose
// endpoints match is used; when parallel edges of different polarity
// connect the same pair this tie-break is arbitrary but deterministic.
// An even negative count (including zero) is reinforcing, odd is
// balancing.
func Classify(cycle []string, edges []*graph.Edge) LoopType {
	negatives := 0
	for i := 0; i+1 < len(cycle); i++ {
		edge := firstEdge(edges, cycle[i], cycle[i+1])
		if edge != nil && edge.Polarity == graph.PolarityNegative {
			negatives++
		}
	}
	if negatives%2 == 0 {
		return LoopReinforcing
	}
	return LoopBalancing
}

// ClassifyAll classifies every detected cycle.
func ClassifyAll(cycles [][]string, edges []*graph.Edge) []Loop {
	result := make([]Loop, 0, len(cycles))
	for _, cycle := range cycles {
		result = append(result, Loop{
			Nodes: cycle,
			Type:  Classify(cycle, edges),
		})
	}
	return result
}

func firstEdge(edges []*graph.Edge, source, target string) *graph.Edge {
	for _, edge := range edges {
		if edge.Source == source && edge.Target == target {
			return edge
		}
	}
	return nil
}

// LoopStats provides statistics about classified loops.
type LoopStats struct {
	TotalLoops    int
	Reinforcing   int
	Balancing     int
	SelfLoops     int
	ShortestLoop  int
	LongestLoop   int
	AverageLength float64
}

// AnalyzeLoops computes statistics over a set of classified loops.
// Lengths count distinct nodes, not the repeated closing id.
func AnalyzeLoops(loops []Loop) LoopStats {
	if len(loops) == 0 {
		return LoopStats{}
	}

	stats := LoopStats{
		TotalLoops:   len(loops),
		ShortestLoop: len(loops[0].Nodes) - 1,
		LongestLoop:  len(loops[0].Nodes) - 1,
	}

	totalLength := 0
	for _, loop := range loops {
		length := len(loop.Nodes) - 1
		totalLength += length

		if length == 1 {
			stats.SelfLoops++
		}
		switch loop.Type {
		case LoopReinforcing:
			stats.Reinforcing++
		case LoopBalancing:
			stats.Balancing++
		}

		if length < stats.ShortestLoop {
			stats.ShortestLoop = length
		}
		if length > stats.LongestLoop {
			stats.LongestLoop = length
		}
	}

	stats.AverageLength = float64(totalLength) / float64(len(loops))
	return stats
}
