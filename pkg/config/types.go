package config

// Factor is one term of a pressure's growth model. Factors of type
// "entity_count" tie the pressure's growth to the population of an
// entity kind; other factor types are opaque to graph derivation.
type Factor struct {
	Type       string  `yaml:"type" json:"type"`
	EntityKind string  `yaml:"entityKind,omitempty" json:"entityKind,omitempty"`
	Weight     float64 `yaml:"weight,omitempty" json:"weight,omitempty"`
}

// FactorEntityCount is the factor type whose entity-kind reference
// produces a feedback edge in the causal graph.
const FactorEntityCount = "entity_count"

// Growth describes how a pressure evolves over time. The positive and
// negative lists carry the declared polarity of each factor; polarity is
// taken from list membership, never from a numeric sign.
type Growth struct {
	PositiveFeedback []Factor `yaml:"positiveFeedback,omitempty" json:"positiveFeedback,omitempty"`
	NegativeFeedback []Factor `yaml:"negativeFeedback,omitempty" json:"negativeFeedback,omitempty"`
}

// Trigger fires when a pressure crosses a threshold and activates a
// generator by id. The target may be written bare ("recruit") or already
// namespaced ("generator:recruit").
type Trigger struct {
	Activates string  `yaml:"activates" json:"activates"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// Pressure is a scalar world-state variable.
type Pressure struct {
	ID       string    `yaml:"id" json:"id" validate:"required"`
	Name     string    `yaml:"name,omitempty" json:"name,omitempty"`
	Growth   *Growth   `yaml:"growth,omitempty" json:"growth,omitempty"`
	Triggers []Trigger `yaml:"triggers,omitempty" json:"triggers,omitempty"`
}

// StateUpdate is one effect a generator applies when it runs.
type StateUpdate struct {
	Type       string   `yaml:"type" json:"type"`
	PressureID string   `yaml:"pressureId,omitempty" json:"pressureId,omitempty"`
	Delta      *float64 `yaml:"delta,omitempty" json:"delta,omitempty"`
}

// UpdateModifyPressure is the state-update type that raises or lowers a
// pressure by a signed delta.
const UpdateModifyPressure = "modify_pressure"

// Generator creates entities and pushes pressures when executed by the
// simulation engine.
type Generator struct {
	ID           string        `yaml:"id" json:"id" validate:"required"`
	Name         string        `yaml:"name,omitempty" json:"name,omitempty"`
	StateUpdates []StateUpdate `yaml:"stateUpdates,omitempty" json:"stateUpdates,omitempty"`
	EntityKind   string        `yaml:"entityKind,omitempty" json:"entityKind,omitempty"`
}

// System applies a standing set of pressure changes each tick.
type System struct {
	ID              string             `yaml:"id" json:"id" validate:"required"`
	Name            string             `yaml:"name,omitempty" json:"name,omitempty"`
	PressureChanges map[string]float64 `yaml:"pressureChanges,omitempty" json:"pressureChanges,omitempty"`
}

// Outcome holds the world-state effects of resolving an action.
type Outcome struct {
	PressureChanges map[string]float64 `yaml:"pressureChanges,omitempty" json:"pressureChanges,omitempty"`
}

// Action is a player- or narrative-initiated unit with an outcome.
type Action struct {
	ID      string   `yaml:"id" json:"id" validate:"required"`
	Name    string   `yaml:"name,omitempty" json:"name,omitempty"`
	Outcome *Outcome `yaml:"outcome,omitempty" json:"outcome,omitempty"`
}

// Schema carries entity-kind definitions. The graph derivation does not
// read it today; it is reserved for kind-based filtering.
type Schema map[string]any

// World bundles the five raw configuration collections that the causal
// graph is derived from.
type World struct {
	Pressures  []Pressure  `yaml:"pressures,omitempty" json:"pressures,omitempty"`
	Generators []Generator `yaml:"generators,omitempty" json:"generators,omitempty"`
	Systems    []System    `yaml:"systems,omitempty" json:"systems,omitempty"`
	Actions    []Action    `yaml:"actions,omitempty" json:"actions,omitempty"`
	Schema     Schema      `yaml:"schema,omitempty" json:"schema,omitempty"`
}
