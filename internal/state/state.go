package state

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// #region clone

// Clone deep-copies a state map, recursing into nested maps and slices.
func Clone(state map[string]any) map[string]any {
	out := make(map[string]any, len(state))
	for k, v := range state {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return Clone(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// #endregion clone

// #region canonical

// Canonical renders a state map as a deterministic sorted-key string, used
// as the deduplication key in visited/closed sets.
func Canonical(state map[string]any) string {
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		writeCanonicalValue(&b, state[k])
	}
	b.WriteByte('}')
	return b.String()
}

func writeCanonicalValue(b *strings.Builder, v any) {
	switch x := v.(type) {
	case map[string]any:
		b.WriteString(Canonical(x))
	case []any:
		b.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonicalValue(b, e)
		}
		b.WriteByte(']')
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

// #endregion canonical

// #region transition-record

// TransitionRecord is one append-only entry in the environment's transition
// log.
type TransitionRecord struct {
	ActionName string
	Applied    map[string]any
	At         time.Time
}

// #endregion transition-record

// #region environment

// DefaultHistoryLimit caps the in-memory snapshot history. Older snapshots
// are discarded oldest-first; attach a journal for full retention.
const DefaultHistoryLimit = 256

// Environment is the current world snapshot plus an audit trail of prior
// snapshots and applied transitions. It is an audit log, not an undo stack.
type Environment struct {
	vars         map[string]Variable
	history      []map[string]any
	historyLimit int
	log          []TransitionRecord
}

// NewEnvironment returns an empty environment with the default history cap.
func NewEnvironment() *Environment {
	return &Environment{
		vars:         make(map[string]Variable),
		historyLimit: DefaultHistoryLimit,
	}
}

// SetHistoryLimit overrides the snapshot retention cap. Zero or negative
// disables in-memory history entirely.
func (e *Environment) SetHistoryLimit(n int) {
	e.historyLimit = n
}

// Load replaces the variable map wholesale, first pushing the previous
// snapshot onto the history. Variable types are inferred per value.
func (e *Environment) Load(snapshot map[string]any) {
	if len(e.vars) > 0 {
		e.pushHistory(e.Snapshot())
	}
	vars := make(map[string]Variable, len(snapshot))
	for k, v := range snapshot {
		vars[k] = NewVariable(k, cloneValue(v))
	}
	e.vars = vars
}

// Snapshot returns a deep copy of the current variable values.
func (e *Environment) Snapshot() map[string]any {
	out := make(map[string]any, len(e.vars))
	for k, v := range e.vars {
		out[k] = cloneValue(v.Value)
	}
	return out
}

// Get returns the variable for name.
func (e *Environment) Get(name string) (Variable, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set assigns one variable, re-inferring its type and preserving any
// registered bounds/domain restriction.
func (e *Environment) Set(name string, value any) {
	prev, ok := e.vars[name]
	v := NewVariable(name, value)
	if ok {
		v.Bounds = prev.Bounds
		v.Domain = prev.Domain
	}
	e.vars[name] = v
}

// Restrict attaches bounds or a value domain to a variable. Restrictions
// are enforced by ApplyTransition commits.
func (e *Environment) Restrict(name string, bounds *Bounds, domain []string) {
	v, ok := e.vars[name]
	if !ok {
		v = Variable{Name: name, Type: TypeRelation}
	}
	v.Bounds = bounds
	v.Domain = domain
	e.vars[name] = v
}

// ApplyTransition checks the transition's preconditions against the current
// snapshot and, on success, merges its target values in and appends to the
// transition log. A bounds/domain veto rejects the merge untouched.
func (e *Environment) ApplyTransition(t *Transition) error {
	snap := e.Snapshot()
	if !t.Applicable(snap) {
		return fmt.Errorf("transition %q: preconditions not met", t.ActionName)
	}
	if veto := e.checkRestrictions(t.To); veto != nil {
		return fmt.Errorf("transition %q rejected: %s", t.ActionName, veto.Reason)
	}

	e.pushHistory(snap)
	for k, v := range t.To {
		e.Set(k, cloneValue(v))
	}
	e.log = append(e.log, TransitionRecord{
		ActionName: t.ActionName,
		Applied:    Clone(t.To),
		At:         time.Now().UTC(),
	})
	return nil
}

// History returns copies of the retained prior snapshots, oldest first. The
// audit trail itself stays private so callers cannot rewrite it.
func (e *Environment) History() []map[string]any {
	out := make([]map[string]any, len(e.history))
	for i, snap := range e.history {
		out[i] = Clone(snap)
	}
	return out
}

// TransitionLog returns the append-only transition records.
func (e *Environment) TransitionLog() []TransitionRecord {
	return e.log
}

// Reset clears variables, history, and the transition log.
func (e *Environment) Reset() {
	e.vars = make(map[string]Variable)
	e.history = nil
	e.log = nil
}

func (e *Environment) pushHistory(snap map[string]any) {
	if e.historyLimit <= 0 {
		return
	}
	e.history = append(e.history, snap)
	if len(e.history) > e.historyLimit {
		e.history = e.history[len(e.history)-e.historyLimit:]
	}
}

// #endregion environment
