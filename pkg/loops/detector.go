package loops

import (
	"github.com/dd0wney/causaloop/pkg/graph"
)

// Detect finds feedback cycles in the causal graph using a single-pass
// depth-first traversal. Each returned cycle is a closed walk: the
// ordered node ids visited, with the opening id repeated at the end, so
// a self-loop comes back as [id, id].
//
// Nodes are marked globally visited on first descent and never
// re-entered, so this finds at least one cycle per feedback region but
// is not a complete elementary-cycle enumeration. Callers needing a
// bound on independent feedback regions can combine it with
// StronglyConnectedComponents.
func Detect(g *graph.Graph) [][]string {
	return DetectWithOptions(g, DetectOptions{})
}

// DetectOptions configures cycle detection behavior.
type DetectOptions struct {
	MinLength     int                    // Minimum node count to report (0 = all)
	MaxLength     int                    // Maximum node count to report (0 = unlimited)
	EdgeTypes     []graph.EdgeType       // Only follow edges of these types (empty = all)
	NodePredicate func(*graph.Node) bool // Only include cycles whose nodes all match
}

// DetectWithOptions finds cycles matching the given criteria.
func DetectWithOptions(g *graph.Graph, opts DetectOptions) [][]string {
	cycles := make([][]string, 0)
	if g == nil || len(g.Nodes) == 0 {
		return cycles
	}

	adj := adjacency(g, opts.EdgeTypes)

	visited := make(map[string]bool, len(g.Nodes))
	pathIndex := make(map[string]int)
	path := make([]string, 0)

	var walk func(id string)
	walk = func(id string) {
		visited[id] = true
		pathIndex[id] = len(path)
		path = append(path, id)

		for _, neighbor := range adj[id] {
			if at, onPath := pathIndex[neighbor]; onPath {
				// Back edge: the cycle is the path suffix from the
				// neighbor through the current node, closed by the
				// neighbor again.
				cycle := make([]string, 0, len(path)-at+1)
				cycle = append(cycle, path[at:]...)
				cycle = append(cycle, neighbor)
				cycles = append(cycles, cycle)
				continue
			}
			if !visited[neighbor] {
				walk(neighbor)
			}
		}

		path = path[:len(path)-1]
		delete(pathIndex, id)
	}

	for _, node := range g.Nodes {
		if !visited[node.ID] {
			walk(node.ID)
		}
	}

	return filterCycles(g, cycles, opts)
}

// adjacency builds source id -> target ids in edge declaration order,
// optionally restricted to a set of edge types.
func adjacency(g *graph.Graph, edgeTypes []graph.EdgeType) map[string][]string {
	allowed := make(map[graph.EdgeType]bool, len(edgeTypes))
	for _, t := range edgeTypes {
		allowed[t] = true
	}

	adj := make(map[string][]string, len(g.Nodes))
	for _, edge := range g.Edges {
		if len(edgeTypes) > 0 && !allowed[edge.EdgeType] {
			continue
		}
		adj[edge.Source] = append(adj[edge.Source], edge.Target)
	}
	return adj
}

func filterCycles(g *graph.Graph, cycles [][]string, opts DetectOptions) [][]string {
	if opts.MinLength == 0 && opts.MaxLength == 0 && opts.NodePredicate == nil {
		return cycles
	}

	filtered := make([][]string, 0, len(cycles))
	for _, cycle := range cycles {
		// The closing id repeats, so node count is one less.
		length := len(cycle) - 1
		if opts.MinLength > 0 && length < opts.MinLength {
			continue
		}
		if opts.MaxLength > 0 && length > opts.MaxLength {
			continue
		}

		if opts.NodePredicate != nil {
			allMatch := true
			for _, id := range cycle[:len(cycle)-1] {
				node := g.Node(id)
				if node == nil || !opts.NodePredicate(node) {
					allMatch = false
					break
				}
			}
			if !allMatch {
				continue
			}
		}

		filtered = append(filtered, cycle)
	}
	return filtered
}
