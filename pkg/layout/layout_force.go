package layout

import (
	"math"
	"math/rand"

	"github.com/dd0wney/causaloop/pkg/graph"
)

// ForceDirectedLayout implements Fruchterman-Reingold force-directed
// placement. With a fixed Config.Seed the result is reproducible for a
// given graph.
type ForceDirectedLayout struct {
	config *Config
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *Config) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using the force-directed algorithm
func (fdl *ForceDirectedLayout) ComputeLayout(g *graph.Graph) map[string]Position {
	if g == nil || len(g.Nodes) == 0 {
		return make(map[string]Position)
	}

	// Single node - center it
	if len(g.Nodes) == 1 {
		return map[string]Position{
			g.Nodes[0].ID: {
				X: fdl.config.Width / 2,
				Y: fdl.config.Height / 2,
			},
		}
	}

	rng := rand.New(rand.NewSource(fdl.config.Seed))

	ids := make([]string, 0, len(g.Nodes))
	positions := make(map[string]Position, len(g.Nodes))
	for _, node := range g.Nodes {
		ids = append(ids, node.ID)
		positions[node.ID] = Position{
			X: rng.Float64()*(fdl.config.Width-2*fdl.config.Padding) + fdl.config.Padding,
			Y: rng.Float64()*(fdl.config.Height-2*fdl.config.Padding) + fdl.config.Padding,
		}
	}

	// Undirected neighbor map; parallel edges collapse to one spring
	neighbors := make(map[string]map[string]bool, len(ids))
	for _, id := range ids {
		neighbors[id] = make(map[string]bool)
	}
	for _, edge := range g.Edges {
		if _, ok := neighbors[edge.Source]; !ok {
			continue
		}
		if _, ok := neighbors[edge.Target]; !ok {
			continue
		}
		neighbors[edge.Source][edge.Target] = true
		neighbors[edge.Target][edge.Source] = true
	}

	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(ids))) // Optimal distance
	temperature := fdl.config.Width / 10.0

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		forces := make(map[string]Position, len(ids))
		for _, id := range ids {
			forces[id] = Position{}
		}

		// Repulsion between all pairs
		for i, id1 := range ids {
			for j := i + 1; j < len(ids); j++ {
				id2 := ids[j]
				dx := positions[id1].X - positions[id2].X
				dy := positions[id1].Y - positions[id2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[id1] = Position{X: forces[id1].X + fx, Y: forces[id1].Y + fy}
				forces[id2] = Position{X: forces[id2].X - fx, Y: forces[id2].Y - fy}
			}
		}

		// Attraction along edges; iterate in node order so float
		// accumulation is reproducible
		for _, id1 := range ids {
			for _, id2 := range ids {
				if !neighbors[id1][id2] {
					continue
				}
				dx := positions[id1].X - positions[id2].X
				dy := positions[id1].Y - positions[id2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[id1] = Position{X: forces[id1].X - fx, Y: forces[id1].Y - fy}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, id := range ids {
			fx := forces[id].X
			fy := forces[id].Y
			force := math.Sqrt(fx*fx + fy*fy)

			if force > 0 {
				dx := (fx / force) * math.Min(force, temperature) * cool
				dy := (fy / force) * math.Min(force, temperature) * cool
				positions[id] = Position{X: positions[id].X + dx, Y: positions[id].Y + dy}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding)
}
