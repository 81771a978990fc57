// Package state holds the mutable world model: typed state variables, the
// environment snapshot with its audit history, transition templates, and the
// manager that commits or simulates action transitions.
package state

import (
	"strings"
	"time"

	"github.com/kestrelworks/symbolic-planner/internal/predicate"
)

// #region var-type

// VarType classifies a state variable by its inferred value shape.
type VarType string

const (
	TypeBoolean   VarType = "boolean"
	TypeNumeric   VarType = "numeric"
	TypeLocation  VarType = "location"
	TypeInventory VarType = "inventory"
	TypeRelation  VarType = "relation"
	TypeTemporal  VarType = "temporal"
)

// locationMarkers are substrings that mark a string value or key as
// location-like.
var locationMarkers = []string{
	"location", "room", "position", "place", "zone", "at_", "_at",
}

// InferType guesses a variable's type from its value, and for strings from
// location-like substrings in the value or the variable name.
func InferType(name string, value any) VarType {
	switch v := value.(type) {
	case bool:
		return TypeBoolean
	case int, int32, int64, float32, float64:
		return TypeNumeric
	case time.Time:
		return TypeTemporal
	case string:
		if looksLocational(name) || looksLocational(v) {
			return TypeLocation
		}
		return TypeRelation
	case map[string]any:
		return TypeInventory
	case []any:
		return TypeLocation
	default:
		return TypeRelation
	}
}

func looksLocational(s string) bool {
	lower := strings.ToLower(s)
	for _, m := range locationMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// #endregion var-type

// #region variable

// Bounds restricts a numeric variable to [Min, Max].
type Bounds struct {
	Min float64
	Max float64
}

// Variable is a single named state entry with its inferred type and optional
// value restrictions.
type Variable struct {
	Name   string
	Value  any
	Type   VarType
	Bounds *Bounds  // numeric range, nil = unrestricted
	Domain []string // allowed string values, nil = unrestricted
}

// NewVariable builds a variable with its type inferred from the value.
func NewVariable(name string, value any) Variable {
	return Variable{Name: name, Value: value, Type: InferType(name, value)}
}

// #endregion variable

// #region transition

// Transition is a registered template describing how an action changes the
// environment: a precondition pattern over the current snapshot and a target
// pattern merged in on commit.
type Transition struct {
	ActionName    string
	From          map[string]any
	To            map[string]any
	Preconditions []predicate.Condition
	Effects       []predicate.Effect
	Probability   float64
	Cost          float64
}

// NewTransition compiles the given precondition/effect expressions into a
// transition template.
func NewTransition(actionName string, from, to map[string]any, preconds, effects []string) (*Transition, error) {
	pc, err := predicate.CompileAll(preconds)
	if err != nil {
		return nil, err
	}
	ef, err := predicate.CompileEffects(effects)
	if err != nil {
		return nil, err
	}
	return &Transition{
		ActionName:    actionName,
		From:          from,
		To:            to,
		Preconditions: pc,
		Effects:       ef,
		Probability:   1.0,
		Cost:          1.0,
	}, nil
}

// Applicable reports whether every transition precondition holds in state.
func (t *Transition) Applicable(state map[string]any) bool {
	return predicate.EvalAll(t.Preconditions, state)
}

// #endregion transition
