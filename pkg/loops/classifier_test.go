package loops

import (
	"testing"

	"github.com/dd0wney/causaloop/pkg/graph"
)

func edge(source, target string, polarity graph.Polarity) *graph.Edge {
	return &graph.Edge{Source: source, Target: target, Polarity: polarity, EdgeType: graph.EdgeDirect}
}

// TestClassify_AllPositive tests that zero negatives is reinforcing
func TestClassify_AllPositive(t *testing.T) {
	edges := []*graph.Edge{
		edge("a", "b", graph.PolarityPositive),
		edge("b", "c", graph.PolarityPositive),
		edge("c", "a", graph.PolarityPositive),
	}

	if got := Classify([]string{"a", "b", "c", "a"}, edges); got != LoopReinforcing {
		t.Errorf("Expected reinforcing, got %s", got)
	}
}

// TestClassify_OneNegative tests that a single inversion balances
func TestClassify_OneNegative(t *testing.T) {
	edges := []*graph.Edge{
		edge("a", "b", graph.PolarityNegative),
		edge("b", "c", graph.PolarityPositive),
		edge("c", "a", graph.PolarityPositive),
	}

	if got := Classify([]string{"a", "b", "c", "a"}, edges); got != LoopBalancing {
		t.Errorf("Expected balancing, got %s", got)
	}
}

// TestClassify_TwoNegatives tests that two inversions cancel out
func TestClassify_TwoNegatives(t *testing.T) {
	edges := []*graph.Edge{
		edge("a", "b", graph.PolarityNegative),
		edge("b", "a", graph.PolarityNegative),
	}

	if got := Classify([]string{"a", "b", "a"}, edges); got != LoopReinforcing {
		t.Errorf("Expected reinforcing, got %s", got)
	}
}

// TestClassify_NeutralEdgesDoNotCount tests that neutral polarity never
// flips parity
func TestClassify_NeutralEdgesDoNotCount(t *testing.T) {
	edges := []*graph.Edge{
		edge("a", "b", graph.PolarityNeutral),
		edge("b", "a", graph.PolarityNegative),
	}

	if got := Classify([]string{"a", "b", "a"}, edges); got != LoopBalancing {
		t.Errorf("Expected balancing, got %s", got)
	}
}

// TestClassify_SelfLoop tests one-node cycles: negative balances,
// positive and neutral reinforce
func TestClassify_SelfLoop(t *testing.T) {
	cases := []struct {
		polarity graph.Polarity
		want     LoopType
	}{
		{graph.PolarityNegative, LoopBalancing},
		{graph.PolarityPositive, LoopReinforcing},
		{graph.PolarityNeutral, LoopReinforcing},
	}

	for _, tc := range cases {
		edges := []*graph.Edge{edge("a", "a", tc.polarity)}
		if got := Classify([]string{"a", "a"}, edges); got != tc.want {
			t.Errorf("Self-loop with %s polarity: expected %s, got %s", tc.polarity, tc.want, got)
		}
	}
}

// TestClassify_ParallelEdgesFirstMatchWins tests the documented
// declaration-order tie-break between parallel edges
func TestClassify_ParallelEdgesFirstMatchWins(t *testing.T) {
	edges := []*graph.Edge{
		edge("a", "b", graph.PolarityPositive),
		edge("a", "b", graph.PolarityNegative),
		edge("b", "a", graph.PolarityPositive),
	}

	// The positive a -> b edge is declared first, so the loop reads as
	// zero negatives even though a negative parallel edge exists.
	if got := Classify([]string{"a", "b", "a"}, edges); got != LoopReinforcing {
		t.Errorf("Expected first-declared edge to win, got %s", got)
	}
}

// TestClassifyAll tests classification of a detected batch
func TestClassifyAll(t *testing.T) {
	edges := []*graph.Edge{
		edge("a", "b", graph.PolarityPositive),
		edge("b", "a", graph.PolarityPositive),
		edge("c", "c", graph.PolarityNegative),
	}

	loops := ClassifyAll([][]string{{"a", "b", "a"}, {"c", "c"}}, edges)
	if len(loops) != 2 {
		t.Fatalf("Expected 2 loops, got %d", len(loops))
	}
	if loops[0].Type != LoopReinforcing {
		t.Errorf("Expected first loop reinforcing, got %s", loops[0].Type)
	}
	if loops[1].Type != LoopBalancing {
		t.Errorf("Expected second loop balancing, got %s", loops[1].Type)
	}
}

// TestAnalyzeLoops tests loop statistics
func TestAnalyzeLoops(t *testing.T) {
	loops := []Loop{
		{Nodes: []string{"a", "a"}, Type: LoopBalancing},
		{Nodes: []string{"b", "c", "b"}, Type: LoopReinforcing},
		{Nodes: []string{"d", "e", "f", "d"}, Type: LoopReinforcing},
	}

	stats := AnalyzeLoops(loops)

	if stats.TotalLoops != 3 {
		t.Errorf("Expected 3 total loops, got %d", stats.TotalLoops)
	}
	if stats.Reinforcing != 2 || stats.Balancing != 1 {
		t.Errorf("Expected 2 reinforcing and 1 balancing, got %d and %d", stats.Reinforcing, stats.Balancing)
	}
	if stats.SelfLoops != 1 {
		t.Errorf("Expected 1 self-loop, got %d", stats.SelfLoops)
	}
	if stats.ShortestLoop != 1 || stats.LongestLoop != 3 {
		t.Errorf("Expected lengths 1..3, got %d..%d", stats.ShortestLoop, stats.LongestLoop)
	}
	expectedAvg := (1.0 + 2.0 + 3.0) / 3.0
	if stats.AverageLength != expectedAvg {
		t.Errorf("Expected average length %.2f, got %.2f", expectedAvg, stats.AverageLength)
	}
}

// TestAnalyzeLoops_Empty tests statistics on an empty loop list
func TestAnalyzeLoops_Empty(t *testing.T) {
	stats := AnalyzeLoops(nil)
	if stats.TotalLoops != 0 || stats.AverageLength != 0 {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
}
