package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/causaloop/pkg/config"
	"github.com/dd0wney/causaloop/pkg/loops"
	"github.com/dd0wney/causaloop/pkg/metrics"
)

func delta(v float64) *float64 { return &v }

// spiralWorld is the recruitment fixture: recruitment raises fear by d,
// creates cultists, cultist count feeds fear, and high fear triggers
// recruitment again.
func spiralWorld(d float64) *config.World {
	return &config.World{
		Pressures: []config.Pressure{
			{
				ID: "fear",
				Growth: &config.Growth{
					PositiveFeedback: []config.Factor{
						{Type: config.FactorEntityCount, EntityKind: "cultist"},
					},
				},
				Triggers: []config.Trigger{{Activates: "recruit", Threshold: 50}},
			},
		},
		Generators: []config.Generator{
			{
				ID: "recruit",
				StateUpdates: []config.StateUpdate{
					{Type: config.UpdateModifyPressure, PressureID: "fear", Delta: delta(d)},
				},
				EntityKind: "cultist",
			},
		},
	}
}

func findLoop(report *Report, first, second string) *loops.Loop {
	for i := range report.Loops {
		nodes := report.Loops[i].Nodes
		if len(nodes) > 2 && nodes[0] == first && nodes[1] == second {
			return &report.Loops[i]
		}
	}
	return nil
}

func TestAnalyze_NoLoopWithoutTrigger(t *testing.T) {
	world := spiralWorld(5)
	world.Pressures[0].Triggers = nil

	report := Analyze(world)

	assert.Len(t, report.Graph.Nodes, 3)
	assert.Len(t, report.Graph.Edges, 3)
	assert.Empty(t, report.Loops, "nothing points back into the generator")
}

func TestAnalyze_ReinforcingSpiral(t *testing.T) {
	report := Analyze(spiralWorld(5))

	require.NotEmpty(t, report.Loops)
	// No edge in the spiral carries negative polarity, so every loop
	// through the pressure reinforces.
	loop := findLoop(report, "pressure:fear", "generator:recruit")
	require.NotNil(t, loop, "expected a loop starting at the pressure")
	assert.Equal(t, loops.LoopReinforcing, loop.Type)
	assert.Zero(t, report.Stats.Balancing)

	for _, loop := range report.Loops {
		assert.Equal(t, loop.Nodes[0], loop.Nodes[len(loop.Nodes)-1], "loops are closed walks")
	}
}

func TestAnalyze_BalancingWhenDeltaNegative(t *testing.T) {
	report := Analyze(spiralWorld(-5))

	require.NotEmpty(t, report.Loops)

	// The two-node loop fear -> recruit -> fear traverses the -5 edge:
	// one negative, balancing.
	var short *loops.Loop
	for i := range report.Loops {
		if len(report.Loops[i].Nodes) == 3 {
			short = &report.Loops[i]
		}
	}
	require.NotNil(t, short)
	assert.Equal(t, loops.LoopBalancing, short.Type)
	assert.Equal(t, 1, report.Stats.Balancing)
}

func TestAnalyze_EmptyWorld(t *testing.T) {
	report := Analyze(&config.World{})

	assert.Empty(t, report.Graph.Nodes)
	assert.Empty(t, report.Graph.Edges)
	assert.Empty(t, report.Loops)
	assert.NotEmpty(t, report.BuildID)
}

func TestAnalyze_IdempotentModuloBuildID(t *testing.T) {
	world := spiralWorld(5)

	first := Analyze(world)
	second := Analyze(world)

	assert.NotEqual(t, first.BuildID, second.BuildID)
	if diff := cmp.Diff(first.Graph, second.Graph); diff != "" {
		t.Errorf("Graph differs between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Loops, second.Loops); diff != "" {
		t.Errorf("Loops differ between runs (-first +second):\n%s", diff)
	}
}

func TestAnalyze_RecordsMetrics(t *testing.T) {
	registry := metrics.NewRegistry()

	Analyze(spiralWorld(5), WithMetrics(registry))

	families, err := registry.Prometheus().Gather()
	require.NoError(t, err)

	byName := make(map[string]bool, len(families))
	for _, family := range families {
		byName[family.GetName()] = true
	}
	assert.True(t, byName["causaloop_analyses_total"])
	assert.True(t, byName["causaloop_graph_nodes"])
	assert.True(t, byName["causaloop_loops_detected_total"])
}

func TestAnalyze_SkippedSurfaced(t *testing.T) {
	world := spiralWorld(5)
	world.Pressures[0].Triggers = append(world.Pressures[0].Triggers,
		config.Trigger{Activates: "ghost", Threshold: 1})

	report := Analyze(world)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "ghost", report.Skipped[0].Ref)
}
