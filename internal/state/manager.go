package state

import (
	"fmt"

	"github.com/kestrelworks/symbolic-planner/internal/journal"
)

// #region manager

// Manager owns one environment plus the registered transition templates and
// named state templates. Search strategies never touch the committed
// environment; they work on detached copies via SimulateAction.
type Manager struct {
	env         *Environment
	transitions []*Transition
	templates   map[string]map[string]any

	journal        *journal.Store // nil = in-memory only
	lastSnapshotID string
}

// NewManager creates a manager with an empty environment.
func NewManager() *Manager {
	return &Manager{
		env:       NewEnvironment(),
		templates: make(map[string]map[string]any),
	}
}

// AttachJournal enables persistent snapshot/transition recording. Journal
// write failures are reported by the mutating call that triggered them.
func (m *Manager) AttachJournal(j *journal.Store) {
	m.journal = j
}

// Environment exposes the managed environment.
func (m *Manager) Environment() *Environment {
	return m.env
}

// #endregion manager

// #region registration

// RegisterTransition appends a transition template. Templates with the same
// action name are kept in registration order; ApplyAction commits the first
// applicable match.
func (m *Manager) RegisterTransition(t *Transition) {
	m.transitions = append(m.transitions, t)
}

// RegisterTemplate stores a named state template for later loading.
func (m *Manager) RegisterTemplate(name string, snapshot map[string]any) {
	m.templates[name] = Clone(snapshot)
}

// LoadTemplate loads a previously registered named template into the
// environment.
func (m *Manager) LoadTemplate(name string) error {
	tpl, ok := m.templates[name]
	if !ok {
		return fmt.Errorf("template %q not registered", name)
	}
	m.Load(tpl)
	return nil
}

// Transitions returns the registered templates in registration order.
func (m *Manager) Transitions() []*Transition {
	return m.transitions
}

// #endregion registration

// #region load

// Load replaces the committed snapshot wholesale and records it in the
// journal when one is attached.
func (m *Manager) Load(snapshot map[string]any) error {
	m.env.Load(snapshot)
	if m.journal == nil {
		return nil
	}
	id, err := m.journal.RecordSnapshot(m.lastSnapshotID, m.env.Snapshot())
	if err != nil {
		return fmt.Errorf("journal snapshot: %w", err)
	}
	m.lastSnapshotID = id
	return nil
}

// Snapshot returns a deep copy of the committed state.
func (m *Manager) Snapshot() map[string]any {
	return m.env.Snapshot()
}

// #endregion load

// #region apply

// ApplyAction commits the first registered transition whose action name
// matches and whose preconditions hold against the current snapshot.
// First-match selection is deliberate: when several templates share a name,
// registration order decides. MatchingTransitions surfaces all candidates.
func (m *Manager) ApplyAction(name string, params map[string]any) (*Transition, error) {
	for _, t := range m.transitions {
		if t.ActionName != name {
			continue
		}
		if !t.Applicable(m.env.Snapshot()) {
			continue
		}
		if err := m.env.ApplyTransition(t); err != nil {
			return nil, err
		}
		if m.journal != nil {
			if err := m.journal.RecordTransition(m.lastSnapshotID, name, t.To); err != nil {
				return nil, fmt.Errorf("journal transition: %w", err)
			}
		}
		return t, nil
	}
	return nil, fmt.Errorf("no applicable transition for action %q", name)
}

// SimulateAction runs the same match-and-apply logic against a deep copy,
// leaving the committed state untouched. Returns the resulting state.
func (m *Manager) SimulateAction(name string, params map[string]any) (map[string]any, *Transition, error) {
	snap := m.env.Snapshot()
	for _, t := range m.transitions {
		if t.ActionName != name {
			continue
		}
		if !t.Applicable(snap) {
			continue
		}
		next := Clone(snap)
		for k, v := range t.To {
			next[k] = cloneValue(v)
		}
		return next, t, nil
	}
	return nil, nil, fmt.Errorf("no applicable transition for action %q", name)
}

// MatchingTransitions returns every registered transition with the given
// action name whose preconditions currently hold, in registration order.
func (m *Manager) MatchingTransitions(name string) []*Transition {
	snap := m.env.Snapshot()
	var out []*Transition
	for _, t := range m.transitions {
		if t.ActionName == name && t.Applicable(snap) {
			out = append(out, t)
		}
	}
	return out
}

// Reset clears the environment. Registered transitions and templates
// survive; the journal lineage restarts.
func (m *Manager) Reset() {
	m.env.Reset()
	m.lastSnapshotID = ""
}

// #endregion apply
