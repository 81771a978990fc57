package action

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// #region descriptor

// Descriptor is the JSON exchange form of an action.
type Descriptor struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Type          Type           `json:"type"`
	Params        map[string]any `json:"params,omitempty"`
	Preconditions []string       `json:"preconditions,omitempty"`
	Effects       []string       `json:"effects,omitempty"`
	Duration      float64        `json:"duration"`
	SuccessProb   float64        `json:"success_probability"`
}

// Descriptor returns the action's exchange form.
func (a *Action) Descriptor() Descriptor {
	return Descriptor{
		ID:            a.ID,
		Name:          a.Name,
		Type:          a.Type,
		Params:        a.Params,
		Preconditions: a.Preconditions(),
		Effects:       a.Effects(),
		Duration:      a.Duration,
		SuccessProb:   a.SuccessProb,
	}
}

// FromDescriptor reconstructs an action, recompiling its predicates.
func FromDescriptor(d Descriptor) (*Action, error) {
	return New(d.ID, d.Name, d.Type, d.Params, d.Preconditions, d.Effects, d.Duration, d.SuccessProb)
}

// #endregion descriptor

// #region sequence

// Sequence is an ordered plan of concrete actions together with the state
// snapshots it was planned against.
type Sequence struct {
	ID           string
	Actions      []*Action
	InitialState map[string]any
	GoalState    map[string]any
	Metadata     map[string]any
}

// NewSequence builds a sequence over the given actions. A blank id gets a
// fresh uuid.
func NewSequence(id string, actions []*Action, initial, goal map[string]any) *Sequence {
	if id == "" {
		id = uuid.New().String()
	}
	return &Sequence{
		ID:           id,
		Actions:      actions,
		InitialState: initial,
		GoalState:    goal,
		Metadata:     make(map[string]any),
	}
}

// Len returns the number of actions in the sequence.
func (s *Sequence) Len() int {
	return len(s.Actions)
}

// TotalDuration sums the per-action durations.
func (s *Sequence) TotalDuration() float64 {
	var total float64
	for _, a := range s.Actions {
		total += a.Duration
	}
	return total
}

// SuccessProbability multiplies the per-action success probabilities.
func (s *Sequence) SuccessProbability() float64 {
	p := 1.0
	for _, a := range s.Actions {
		p *= a.SuccessProb
	}
	return p
}

// CompletionRate is the fraction of actions marked Completed.
func (s *Sequence) CompletionRate() float64 {
	if len(s.Actions) == 0 {
		return 0
	}
	done := 0
	for _, a := range s.Actions {
		if a.Status == StatusCompleted {
			done++
		}
	}
	return float64(done) / float64(len(s.Actions))
}

// SkipRemaining marks every non-terminal action from index i onward as
// Skipped. Sequence-level logic owns this status.
func (s *Sequence) SkipRemaining(i int) {
	for ; i < len(s.Actions); i++ {
		if statusRank[s.Actions[i].Status] < statusRank[StatusSkipped] {
			s.Actions[i].Status = StatusSkipped
		}
	}
}

// #endregion sequence

// #region sequence-exchange

// sequenceExchange is the JSON wire shape of a Sequence.
type sequenceExchange struct {
	ID           string         `json:"id"`
	Actions      []Descriptor   `json:"actions"`
	InitialState map[string]any `json:"initial_state,omitempty"`
	GoalState    map[string]any `json:"goal_state,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// MarshalJSON renders the sequence in its exchange form.
func (s *Sequence) MarshalJSON() ([]byte, error) {
	ex := sequenceExchange{
		ID:           s.ID,
		Actions:      make([]Descriptor, len(s.Actions)),
		InitialState: s.InitialState,
		GoalState:    s.GoalState,
		Metadata:     s.Metadata,
	}
	for i, a := range s.Actions {
		ex.Actions[i] = a.Descriptor()
	}
	return json.Marshal(ex)
}

// UnmarshalJSON reconstructs a sequence from its exchange form, recompiling
// every action predicate.
func (s *Sequence) UnmarshalJSON(data []byte) error {
	var ex sequenceExchange
	if err := json.Unmarshal(data, &ex); err != nil {
		return err
	}
	actions := make([]*Action, len(ex.Actions))
	for i, d := range ex.Actions {
		a, err := FromDescriptor(d)
		if err != nil {
			return fmt.Errorf("sequence action %d: %w", i, err)
		}
		actions[i] = a
	}
	s.ID = ex.ID
	s.Actions = actions
	s.InitialState = ex.InitialState
	s.GoalState = ex.GoalState
	s.Metadata = ex.Metadata
	if s.Metadata == nil {
		s.Metadata = make(map[string]any)
	}
	return nil
}

// #endregion sequence-exchange
