package planner

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/kestrelworks/symbolic-planner/internal/action"
	"github.com/kestrelworks/symbolic-planner/internal/state"
)

// #region greedy

// planGreedy is strict hill-climbing: no tree, no backtracking. Each round
// evaluates every executable action's resulting heuristic and commits to
// the single best one. NodesExpanded counts evaluation rounds.
func (p *Planner) planGreedy(initial, goal map[string]any, actions []*action.Action, deadline time.Time) *Result {
	current := state.Clone(initial)
	var path []*action.Action
	var cost float64
	expanded := 0

	for {
		if !time.Now().Before(deadline) {
			return newFailure(AlgorithmGreedy, ReasonNoSolution, expanded)
		}
		expanded++

		if state.Satisfied(current, goal) {
			n := &Node{State: current, Path: path, G: cost, Depth: len(path)}
			return p.solved(n, expanded, initial, goal)
		}
		if len(path) >= p.config.MaxDepth {
			return newFailure(AlgorithmGreedy, ReasonNoSolution, expanded)
		}

		var best *action.Action
		var bestState map[string]any
		bestScore := 0.0
		for _, a := range actions {
			if !a.CanExecute(current) {
				continue
			}
			next, err := a.Execute(current)
			if err != nil {
				return newFailure(AlgorithmGreedy, "internal error: "+err.Error(), expanded)
			}
			score := p.calc.Score(next, goal, actions)
			if best == nil || score < bestScore {
				best = a
				bestState = next
				bestScore = score
			}
		}
		if best == nil {
			return newFailure(AlgorithmGreedy, ReasonNoSolution, expanded)
		}

		log.Debug("greedy step", "action", best.Name, "score", bestScore, "depth", len(path))
		current = bestState
		path = append(path, best)
		cost += best.Duration
	}
}

// #endregion greedy
