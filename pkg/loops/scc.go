package loops

import "github.com/dd0wney/causaloop/pkg/graph"

// SCCResult holds the strongly connected components of a causal graph.
// Every feedback loop lives inside exactly one component of size > 1
// (or a singleton with a self-loop), so the component count bounds how
// many independent feedback regions the configuration contains even
// though Detect does not enumerate every elementary cycle.
type SCCResult struct {
	Components     [][]string
	NodeComponent  map[string]int
	LargestSize    int
	SingletonCount int
}

// tarjanState holds per-node state during Tarjan's DFS.
type tarjanState struct {
	index   int
	lowlink int
	onStack bool
}

// StronglyConnectedComponents finds all SCCs using Tarjan's algorithm
// in O(V+E) time. Only outgoing edges are followed.
func StronglyConnectedComponents(g *graph.Graph) *SCCResult {
	result := &SCCResult{
		Components:    make([][]string, 0),
		NodeComponent: make(map[string]int),
	}
	if g == nil || len(g.Nodes) == 0 {
		return result
	}

	adj := adjacency(g, nil)

	state := make(map[string]*tarjanState, len(g.Nodes))
	var stack []string
	indexCounter := 0

	var strongconnect func(u string)
	strongconnect = func(u string) {
		state[u] = &tarjanState{
			index:   indexCounter,
			lowlink: indexCounter,
			onStack: true,
		}
		indexCounter++
		stack = append(stack, u)

		for _, v := range adj[u] {
			if _, exists := state[v]; !exists {
				strongconnect(v)
				if state[v].lowlink < state[u].lowlink {
					state[u].lowlink = state[v].lowlink
				}
			} else if state[v].onStack {
				if state[v].index < state[u].lowlink {
					state[u].lowlink = state[v].index
				}
			}
		}

		// u is a component root: pop the stack down to it.
		if state[u].lowlink == state[u].index {
			componentID := len(result.Components)
			var members []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				state[w].onStack = false
				members = append(members, w)
				result.NodeComponent[w] = componentID
				if w == u {
					break
				}
			}
			result.Components = append(result.Components, members)
		}
	}

	for _, node := range g.Nodes {
		if _, exists := state[node.ID]; !exists {
			strongconnect(node.ID)
		}
	}

	for _, component := range result.Components {
		if len(component) == 1 {
			result.SingletonCount++
		}
		if len(component) > result.LargestSize {
			result.LargestSize = len(component)
		}
	}

	return result
}
