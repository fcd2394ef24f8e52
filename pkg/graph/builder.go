package graph

import (
	"fmt"
	"sort"

	"github.com/dd0wney/causaloop/pkg/config"
)

// BuilderOptions configures graph derivation.
type BuilderOptions struct {
	// ZeroDeltaNeutral makes a pressure delta of exactly zero produce a
	// neutral edge. The default follows the sign rule delta >= 0 =>
	// positive, so zero counts as positive.
	ZeroDeltaNeutral bool
}

// builder accumulates nodes and edges during a single Build call. All
// state is local to the call; nothing persists between builds.
type builder struct {
	opts    BuilderOptions
	nodes   []*Node
	byID    map[string]*Node
	edges   []*Edge
	skipped []SkippedRef
}

// Build derives the causal dependency graph from a world configuration.
// It is a pure function of the five collections in w: it never errors,
// never mutates its inputs, and drops malformed or dangling references
// one at a time, recording each drop in the returned skip list.
func Build(w *config.World) (*Graph, []SkippedRef) {
	return BuildWithOptions(w, BuilderOptions{})
}

// BuildWithOptions is Build with explicit polarity options.
func BuildWithOptions(w *config.World, opts BuilderOptions) (*Graph, []SkippedRef) {
	b := &builder{
		opts:  opts,
		nodes: make([]*Node, 0),
		byID:  make(map[string]*Node),
		edges: make([]*Edge, 0),
	}
	if w == nil {
		return &Graph{Nodes: b.nodes, Edges: b.edges}, b.skipped
	}

	// Collections are processed in a fixed order so that every build of
	// the same input yields the same node order, and so that trigger
	// targets naming real generators always exist by the time triggers
	// run. Triggers referencing generators absent from the
	// configuration are still dropped.
	b.addPressures(w.Pressures)
	b.addGenerators(w.Generators)
	b.addSystems(w.Systems)
	b.addActions(w.Actions)
	b.addFeedbackEdges(w.Pressures)
	b.addTriggerEdges(w.Pressures)

	return &Graph{Nodes: b.nodes, Edges: b.edges}, b.skipped
}

// addNode creates the node for (kind, rawID) or returns the existing
// one. The first creation wins: label and data of later references to
// the same logical entity are ignored.
func (b *builder) addNode(kind Kind, rawID, label string, data any) *Node {
	id := NodeID(kind, rawID)
	if existing, ok := b.byID[id]; ok {
		return existing
	}
	if label == "" {
		label = rawID
	}
	node := &Node{ID: id, Kind: kind, Label: label, Data: data}
	b.byID[id] = node
	b.nodes = append(b.nodes, node)
	return node
}

func (b *builder) addEdge(source, target string, polarity Polarity, edgeType EdgeType, label string) {
	b.edges = append(b.edges, &Edge{
		Source:   source,
		Target:   target,
		Polarity: polarity,
		EdgeType: edgeType,
		Label:    label,
	})
}

func (b *builder) skip(collection, sourceID, ref, reason string) {
	b.skipped = append(b.skipped, SkippedRef{
		Collection: collection,
		SourceID:   sourceID,
		Ref:        ref,
		Reason:     reason,
	})
}

// polarityForDelta applies the sign rule: delta >= 0 is positive unless
// ZeroDeltaNeutral demotes an exact zero to neutral.
func (b *builder) polarityForDelta(delta float64) Polarity {
	if delta == 0 && b.opts.ZeroDeltaNeutral {
		return PolarityNeutral
	}
	if delta >= 0 {
		return PolarityPositive
	}
	return PolarityNegative
}

func (b *builder) addPressures(pressures []config.Pressure) {
	for i := range pressures {
		p := &pressures[i]
		if p.ID == "" {
			b.skip("pressures", "", "", "missing id")
			continue
		}
		b.addNode(KindPressure, p.ID, p.Name, p)
	}
}

func (b *builder) addGenerators(generators []config.Generator) {
	for i := range generators {
		g := &generators[i]
		if g.ID == "" {
			b.skip("generators", "", "", "missing id")
			continue
		}
		gen := b.addNode(KindGenerator, g.ID, g.Name, g)

		for _, update := range g.StateUpdates {
			if update.Type != config.UpdateModifyPressure {
				continue
			}
			if update.PressureID == "" {
				b.skip("generators", g.ID, "", "state update missing pressure id")
				continue
			}
			if update.Delta == nil {
				b.skip("generators", g.ID, update.PressureID, "state update missing delta")
				continue
			}
			pressure := b.addNode(KindPressure, update.PressureID, "", nil)
			delta := *update.Delta
			b.addEdge(gen.ID, pressure.ID, b.polarityForDelta(delta), EdgeDirect, fmt.Sprintf("%+g", delta))
		}

		if g.EntityKind != "" {
			kind := b.addNode(KindEntityKind, g.EntityKind, "", nil)
			b.addEdge(gen.ID, kind.ID, PolarityPositive, EdgeCreates, "creates")
		}
	}
}

func (b *builder) addSystems(systems []config.System) {
	for i := range systems {
		s := &systems[i]
		if s.ID == "" {
			b.skip("systems", "", "", "missing id")
			continue
		}
		sys := b.addNode(KindSystem, s.ID, s.Name, s)

		for _, pressureID := range sortedKeys(s.PressureChanges) {
			delta := s.PressureChanges[pressureID]
			pressure := b.addNode(KindPressure, pressureID, "", nil)
			b.addEdge(sys.ID, pressure.ID, b.polarityForDelta(delta), EdgeDirect, fmt.Sprintf("%+g", delta))
		}
	}
}

func (b *builder) addActions(actions []config.Action) {
	for i := range actions {
		a := &actions[i]
		if a.ID == "" {
			b.skip("actions", "", "", "missing id")
			continue
		}
		act := b.addNode(KindAction, a.ID, a.Name, a)

		if a.Outcome == nil {
			continue
		}
		for _, pressureID := range sortedKeys(a.Outcome.PressureChanges) {
			delta := a.Outcome.PressureChanges[pressureID]
			pressure := b.addNode(KindPressure, pressureID, "", nil)
			b.addEdge(act.ID, pressure.ID, b.polarityForDelta(delta), EdgeDirect, fmt.Sprintf("%+g", delta))
		}
	}
}

// addFeedbackEdges emits entityKind -> pressure edges from growth
// factors. Polarity comes from which feedback list the factor sits in,
// never from a numeric sign.
func (b *builder) addFeedbackEdges(pressures []config.Pressure) {
	for i := range pressures {
		p := &pressures[i]
		if p.ID == "" || p.Growth == nil {
			continue
		}
		pressureID := NodeID(KindPressure, p.ID)
		b.addFactorEdges(p.ID, pressureID, p.Growth.PositiveFeedback, PolarityPositive)
		b.addFactorEdges(p.ID, pressureID, p.Growth.NegativeFeedback, PolarityNegative)
	}
}

func (b *builder) addFactorEdges(sourceID, pressureNodeID string, factors []config.Factor, polarity Polarity) {
	for _, factor := range factors {
		if factor.Type != config.FactorEntityCount {
			continue
		}
		if factor.EntityKind == "" {
			b.skip("pressures", sourceID, "", "entity count factor missing entity kind")
			continue
		}
		kind := b.addNode(KindEntityKind, factor.EntityKind, "", nil)
		b.addEdge(kind.ID, pressureNodeID, polarity, EdgeFeedback, "feedback")
	}
}

// addTriggerEdges runs last so that trigger targets naming any
// generator in the configuration already exist. A target is assumed to
// be a generator id unless it is already namespaced. Targets with no
// matching node are dropped and recorded, never auto-created.
func (b *builder) addTriggerEdges(pressures []config.Pressure) {
	for i := range pressures {
		p := &pressures[i]
		if p.ID == "" {
			continue
		}
		pressureID := NodeID(KindPressure, p.ID)
		for _, trigger := range p.Triggers {
			if trigger.Activates == "" {
				b.skip("pressures", p.ID, "", "trigger missing activates target")
				continue
			}
			targetID := trigger.Activates
			if !isNamespaced(targetID) {
				targetID = NodeID(KindGenerator, targetID)
			}
			if _, ok := b.byID[targetID]; !ok {
				b.skip("pressures", p.ID, trigger.Activates, "trigger target not found")
				continue
			}
			b.addEdge(pressureID, targetID, PolarityNeutral, EdgeTrigger, fmt.Sprintf(">%g", trigger.Threshold))
		}
	}
}

func isNamespaced(id string) bool {
	for _, r := range id {
		if r == ':' {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
