package planner

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/kestrelworks/symbolic-planner/internal/action"
	"github.com/kestrelworks/symbolic-planner/internal/state"
)

// #region sampling

// planSampling runs randomized rollouts of bounded length, choosing
// uniformly among executable actions and stopping early on goal. Rollouts
// share no information, so redundant exploration is expected; the cheapest
// successful rollout wins. NodesExpanded counts rollouts started.
func (p *Planner) planSampling(initial, goal map[string]any, actions []*action.Action, deadline time.Time) *Result {
	var best *Node
	expanded := 0

	for it := 0; it < p.config.SamplingIterations; it++ {
		if !time.Now().Before(deadline) {
			break
		}
		expanded++

		length := 1 + p.rng.Intn(p.config.RolloutMax)
		n := p.rollout(initial, goal, actions, length)
		if n == nil {
			continue
		}
		if best == nil || n.G < best.G {
			best = n
			log.Debug("rollout improved", "iteration", it, "cost", n.G, "length", len(n.Path))
		}
	}

	if best == nil {
		return newFailure(AlgorithmSampling, ReasonNoSolution, expanded)
	}
	return p.solved(best, expanded, initial, goal)
}

// rollout performs one random trial of at most maxLen actions. Returns the
// terminal node on goal success, nil otherwise.
func (p *Planner) rollout(initial, goal map[string]any, actions []*action.Action, maxLen int) *Node {
	current := state.Clone(initial)
	var path []*action.Action
	var cost float64

	if state.Satisfied(current, goal) {
		return &Node{State: current, G: 0}
	}

	for step := 0; step < maxLen; step++ {
		var executable []*action.Action
		for _, a := range actions {
			if a.CanExecute(current) {
				executable = append(executable, a)
			}
		}
		if len(executable) == 0 {
			return nil
		}

		a := executable[p.rng.Intn(len(executable))]
		next, err := a.Execute(current)
		if err != nil {
			return nil
		}
		current = next
		path = append(path, a)
		cost += a.Duration

		if state.Satisfied(current, goal) {
			return &Node{State: current, Path: path, G: cost, Depth: len(path)}
		}
	}
	return nil
}

// #endregion sampling
