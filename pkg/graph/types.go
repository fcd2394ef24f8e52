package graph

// Kind discriminates the node types of the causal graph.
type Kind string

const (
	KindPressure   Kind = "pressure"
	KindGenerator  Kind = "generator"
	KindSystem     Kind = "system"
	KindAction     Kind = "action"
	KindEntityKind Kind = "entityKind"
)

// Polarity tags whether a causal relation amplifies, dampens, or leaves
// its target's direction indeterminate.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
	PolarityNeutral  Polarity = "neutral"
)

// EdgeType records the provenance of an edge. It is carried for
// rendering and filtering only; cycle detection ignores it.
type EdgeType string

const (
	EdgeDirect   EdgeType = "direct"
	EdgeCreates  EdgeType = "creates"
	EdgeFeedback EdgeType = "feedback"
	EdgeTrigger  EdgeType = "trigger"
)

// Node is a vertex of the causal graph. IDs are namespaced by kind
// ("pressure:famine") so that loops can be expressed as plain id
// sequences; Kind carries the same discriminant explicitly.
type Node struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"kind"`
	Label string `json:"label"`
	// Data points back at the originating configuration record. It is
	// for UI consumption only and never read by graph algorithms.
	Data any `json:"-"`
}

// Edge is a directed, polarity-tagged relation between two nodes.
// Parallel edges between the same ordered pair are permitted; each
// represents a distinct causal relation.
type Edge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Polarity Polarity `json:"polarity"`
	EdgeType EdgeType `json:"edgeType"`
	Label    string   `json:"label"`
}

// Graph is the deduplicated node set and directed edge set derived from
// a world configuration. It is immutable after Build returns.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"links"`
}

// Node returns the node with the given namespaced id, or nil.
func (g *Graph) Node(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// NodeID builds the namespaced id for a kind and raw record id.
func NodeID(kind Kind, rawID string) string {
	return string(kind) + ":" + rawID
}

// SkippedRef describes a reference that graph derivation dropped
// instead of failing on. The builder never raises errors; this list is
// the only way a caller can tell "no relationships" from "malformed
// relationships silently omitted".
type SkippedRef struct {
	Collection string `json:"collection"`
	SourceID   string `json:"sourceId"`
	Ref        string `json:"ref"`
	Reason     string `json:"reason"`
}
