// Package scenario runs data-driven planning fixtures: a JSON description
// of initial state, goal, and action catalog, plus the outcome the plan is
// expected to produce. Fixtures double as regression cases and as an
// exchange format for downstream evaluation harnesses.
package scenario

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kestrelworks/symbolic-planner/internal/action"
	"github.com/kestrelworks/symbolic-planner/internal/state"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a planning scenario.
type Fixture struct {
	Description string `json:"description"`
	Algorithm   string `json:"algorithm"`
	// TimeoutMs: 0 uses the default budget, negative means already exhausted.
	TimeoutMs    int                 `json:"timeout_ms,omitempty"`
	MaxDepth     int                 `json:"max_depth,omitempty"`
	Seed         int64               `json:"seed,omitempty"`
	InitialState map[string]any      `json:"initial_state"`
	GoalState    map[string]any      `json:"goal_state"`
	Actions      []action.Descriptor `json:"actions"`
	Expect       Expectation         `json:"expect"`
}

// Expectation pins the outcome a fixture run must produce. Zero-valued
// fields are not checked, except Success which is always checked.
type Expectation struct {
	Success       bool    `json:"success"`
	Length        int     `json:"length,omitempty"`
	MaxCost       float64 `json:"max_cost,omitempty"`
	Reason        string  `json:"reason,omitempty"`
	NodesExpanded *int    `json:"nodes_expanded,omitempty"`
}

// #endregion fixture-types

// #region load

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture JSON and checks structural requirements.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if f.Algorithm == "" {
		return nil, fmt.Errorf("fixture: missing algorithm")
	}
	if len(f.Actions) == 0 && f.Expect.Success {
		return nil, fmt.Errorf("fixture %q: success expected with no actions", f.Description)
	}
	return &f, nil
}

// RequestHash digests the planning request itself: initial state, goal, and
// action catalog in canonical form. Identical requests hash identically no
// matter which file or description carried them.
func (f *Fixture) RequestHash() string {
	h := sha256.New()
	io.WriteString(h, state.Canonical(f.InitialState))
	io.WriteString(h, state.Canonical(f.GoalState))
	for _, d := range f.Actions {
		fmt.Fprintf(h, "|%s|%s|%v|%v|%g|%g",
			d.Name, d.Type, d.Preconditions, d.Effects, d.Duration, d.SuccessProb)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// BuildActions compiles the fixture's action descriptors.
func (f *Fixture) BuildActions() ([]*action.Action, error) {
	actions := make([]*action.Action, len(f.Actions))
	for i, d := range f.Actions {
		a, err := action.FromDescriptor(d)
		if err != nil {
			return nil, fmt.Errorf("fixture action %d: %w", i, err)
		}
		actions[i] = a
	}
	return actions, nil
}

// #endregion load
