package scenario

import (
	"fmt"
	"time"

	"github.com/kestrelworks/symbolic-planner/internal/planner"
)

// #region run-result

// RunResult captures one fixture run and any expectation mismatches.
type RunResult struct {
	Description string
	Result      *planner.Result
	Mismatches  []string
}

// Passed reports whether every expectation held.
func (r RunResult) Passed() bool {
	return len(r.Mismatches) == 0
}

// #endregion run-result

// #region harness

// Run executes a fixture through a fresh planner and diffs the outcome
// against the fixture's expectations.
func Run(f *Fixture) (RunResult, error) {
	actions, err := f.BuildActions()
	if err != nil {
		return RunResult{}, err
	}

	cfg := planner.DefaultConfig()
	cfg.Algorithm = planner.Algorithm(f.Algorithm)
	if f.MaxDepth > 0 {
		cfg.MaxDepth = f.MaxDepth
	}
	if f.TimeoutMs != 0 {
		// Negative carries through as an already-exhausted budget.
		cfg.Timeout = time.Duration(f.TimeoutMs) * time.Millisecond
	}
	if f.Seed != 0 {
		cfg.Seed = f.Seed
	}

	p := planner.New(cfg)
	result := p.Plan(f.InitialState, f.GoalState, actions, nil)

	run := RunResult{Description: f.Description, Result: result}
	run.Mismatches = diff(f.Expect, result)
	return run, nil
}

// diff compares the expectation against the actual result. Zero-valued
// expectation fields are unchecked.
func diff(want Expectation, got *planner.Result) []string {
	var mismatches []string

	if got.Success != want.Success {
		mismatches = append(mismatches,
			fmt.Sprintf("success: want %v, got %v (reason: %s)", want.Success, got.Success, got.Reason))
	}
	if want.Length > 0 && got.Length != want.Length {
		mismatches = append(mismatches,
			fmt.Sprintf("length: want %d, got %d", want.Length, got.Length))
	}
	if want.MaxCost > 0 && got.Cost > want.MaxCost {
		mismatches = append(mismatches,
			fmt.Sprintf("cost: want <= %v, got %v", want.MaxCost, got.Cost))
	}
	if want.Reason != "" && got.Reason != want.Reason {
		mismatches = append(mismatches,
			fmt.Sprintf("reason: want %q, got %q", want.Reason, got.Reason))
	}
	if want.NodesExpanded != nil && got.NodesExpanded != *want.NodesExpanded {
		mismatches = append(mismatches,
			fmt.Sprintf("nodes_expanded: want %d, got %d", *want.NodesExpanded, got.NodesExpanded))
	}
	return mismatches
}

// #endregion harness
