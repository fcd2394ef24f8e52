package layout

import (
	"math"

	"github.com/dd0wney/causaloop/pkg/graph"
)

// CircularLayout arranges nodes evenly around a circle in node order.
// Deterministic, which makes it the default for snapshot-style output.
type CircularLayout struct {
	config *Config
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *Config) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout arranges nodes in a circle
func (cl *CircularLayout) ComputeLayout(g *graph.Graph) map[string]Position {
	positions := make(map[string]Position)

	if g == nil || len(g.Nodes) == 0 {
		return positions
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding

	angleStep := 2 * math.Pi / float64(len(g.Nodes))

	for i, node := range g.Nodes {
		angle := float64(i) * angleStep
		positions[node.ID] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions
}
