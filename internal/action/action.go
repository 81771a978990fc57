// Package action defines the planner's operators: parameterized actions
// with compiled precondition/effect predicates, and ordered sequences of
// them with derived execution statistics.
package action

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelworks/symbolic-planner/internal/predicate"
)

// #region type-tags

// Type tags an action by the capability it exercises.
type Type string

const (
	TypeNavigation    Type = "navigation"
	TypeManipulation  Type = "manipulation"
	TypePerception    Type = "perception"
	TypeCommunication Type = "communication"
	TypeWait          Type = "wait"
	TypeConditional   Type = "conditional"
	TypeObservation   Type = "observation"
)

// #endregion type-tags

// #region status

// Status tracks an action's execution lifecycle. Transitions only move
// forward: Pending → Executing → Completed | Failed. Skipped is assigned by
// sequence-level logic only, never by the action itself.
type Status string

const (
	StatusPending   Status = "pending"
	StatusExecuting Status = "executing"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// statusRank orders the lattice for forward-only enforcement.
var statusRank = map[Status]int{
	StatusPending:   0,
	StatusExecuting: 1,
	StatusCompleted: 2,
	StatusFailed:    2,
	StatusSkipped:   2,
}

// #endregion status

// #region errors

// ErrPreconditionViolation is returned when Execute is invoked on a state
// that fails the action's preconditions. Call sites gate with CanExecute, so
// seeing this error surface indicates a successor-generation bug.
var ErrPreconditionViolation = errors.New("precondition violation")

// ErrStatusRegression is returned when a status transition would move
// backward along the lattice.
var ErrStatusRegression = errors.New("status cannot move backward")

// #endregion errors

// #region action

// Action is a planning operator. Predicate lists are compiled once at
// construction and immutable afterwards.
type Action struct {
	ID          string
	Name        string
	Type        Type
	Params      map[string]any
	Duration    float64 // seconds
	SuccessProb float64

	Status       Status
	LastExecuted time.Time

	preconditions []predicate.Condition
	effects       []predicate.Effect
	precondSrc    []string
	effectSrc     []string
}

// New compiles an action from predicate strings. A blank id is replaced
// with a fresh uuid. Malformed predicates are rejected here, at load time.
func New(id, name string, typ Type, params map[string]any, preconds, effects []string, duration, successProb float64) (*Action, error) {
	pc, err := predicate.CompileAll(preconds)
	if err != nil {
		return nil, fmt.Errorf("action %q precondition: %w", name, err)
	}
	ef, err := predicate.CompileEffects(effects)
	if err != nil {
		return nil, fmt.Errorf("action %q effect: %w", name, err)
	}
	if id == "" {
		id = uuid.New().String()
	}
	if params == nil {
		params = make(map[string]any)
	}
	return &Action{
		ID:            id,
		Name:          name,
		Type:          typ,
		Params:        params,
		Duration:      duration,
		SuccessProb:   successProb,
		Status:        StatusPending,
		preconditions: pc,
		effects:       ef,
		precondSrc:    append([]string(nil), preconds...),
		effectSrc:     append([]string(nil), effects...),
	}, nil
}

// MustNew is New for static action tables; it panics on malformed
// predicates.
func MustNew(id, name string, typ Type, params map[string]any, preconds, effects []string, duration, successProb float64) *Action {
	a, err := New(id, name, typ, params, preconds, effects, duration, successProb)
	if err != nil {
		panic(err)
	}
	return a
}

// #endregion action

// #region execute

// CanExecute reports whether every precondition holds in state.
func (a *Action) CanExecute(state map[string]any) bool {
	return predicate.EvalAll(a.preconditions, state)
}

// Execute applies the action's effects to a copy of state and returns the
// new state. The input is never mutated. Fails with ErrPreconditionViolation
// when the preconditions do not hold.
func (a *Action) Execute(state map[string]any) (map[string]any, error) {
	if !a.CanExecute(state) {
		return nil, fmt.Errorf("action %q: %w", a.Name, ErrPreconditionViolation)
	}
	return predicate.ApplyAll(state, a.effects), nil
}

// #endregion execute

// #region status-transitions

// SetStatus advances the lifecycle status, enforcing forward-only movement.
// Moving into Completed or Failed stamps LastExecuted.
func (a *Action) SetStatus(s Status) error {
	if statusRank[s] < statusRank[a.Status] {
		return fmt.Errorf("%s → %s: %w", a.Status, s, ErrStatusRegression)
	}
	a.Status = s
	if s == StatusCompleted || s == StatusFailed {
		a.LastExecuted = time.Now().UTC()
	}
	return nil
}

// #endregion status-transitions

// #region accessors

// Preconditions returns the source expressions of the compiled
// preconditions.
func (a *Action) Preconditions() []string {
	return append([]string(nil), a.precondSrc...)
}

// Effects returns the source expressions of the compiled effects.
func (a *Action) Effects() []string {
	return append([]string(nil), a.effectSrc...)
}

// Clone returns a fresh Pending copy of the action with a shallow-copied
// parameter map. Used when a plan adopts catalog actions as its own.
func (a *Action) Clone() *Action {
	params := make(map[string]any, len(a.Params))
	for k, v := range a.Params {
		params[k] = v
	}
	return &Action{
		ID:            a.ID,
		Name:          a.Name,
		Type:          a.Type,
		Params:        params,
		Duration:      a.Duration,
		SuccessProb:   a.SuccessProb,
		Status:        StatusPending,
		preconditions: a.preconditions,
		effects:       a.effects,
		precondSrc:    a.precondSrc,
		effectSrc:     a.effectSrc,
	}
}

// #endregion accessors
