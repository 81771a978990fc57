// Package heuristic scores planning states against a goal. None of the
// provided strategies is proven admissible, so the planner built on them is
// satisficing rather than cost-optimal.
package heuristic

import (
	"github.com/kestrelworks/symbolic-planner/internal/action"
	"github.com/kestrelworks/symbolic-planner/internal/state"
)

// #region strategy

// Strategy selects the scoring function.
type Strategy string

const (
	// StrategyZero always scores 0, reducing A* to uniform-cost search.
	StrategyZero Strategy = "zero"
	// StrategyGoalDistance counts mismatched goal keys (Hamming-style).
	StrategyGoalDistance Strategy = "goal_distance"
	// StrategyActionCost takes the cheapest simulated one-step lookahead.
	StrategyActionCost Strategy = "action_cost"
	// StrategyCombined blends goal distance and action cost.
	StrategyCombined Strategy = "combined"
)

// #endregion strategy

// #region config

// Config carries the blend weights for StrategyCombined.
type Config struct {
	Strategy       Strategy
	DistanceWeight float64
	CostWeight     float64
}

// DefaultConfig returns the goal-distance strategy with the standard
// 0.7/0.3 blend weights.
func DefaultConfig() Config {
	return Config{
		Strategy:       StrategyGoalDistance,
		DistanceWeight: 0.7,
		CostWeight:     0.3,
	}
}

// #endregion config

// #region calculator

// Calculator evaluates states with a configured strategy.
type Calculator struct {
	config Config
}

// NewCalculator creates a calculator with the given configuration.
func NewCalculator(config Config) *Calculator {
	if config.Strategy == "" {
		config = DefaultConfig()
	}
	return &Calculator{config: config}
}

// Strategy returns the configured scoring strategy.
func (c *Calculator) Strategy() Strategy {
	return c.config.Strategy
}

// Score evaluates current against goal. actions are consulted only by the
// action-cost and combined strategies; each executable action costs one
// simulated execution per call, so callers budget these against the overall
// time limit.
func (c *Calculator) Score(current, goal map[string]any, actions []*action.Action) float64 {
	switch c.config.Strategy {
	case StrategyZero:
		return 0
	case StrategyActionCost:
		return c.actionCost(current, goal, actions)
	case StrategyCombined:
		return c.config.DistanceWeight*state.GoalDistance(current, goal) +
			c.config.CostWeight*c.actionCost(current, goal, actions)
	default:
		return state.GoalDistance(current, goal)
	}
}

// actionCost simulates every currently-executable action and returns the
// minimum of duration + goal_distance(result). Falls back to plain goal
// distance when nothing is executable.
func (c *Calculator) actionCost(current, goal map[string]any, actions []*action.Action) float64 {
	best := -1.0
	for _, a := range actions {
		if !a.CanExecute(current) {
			continue
		}
		next, err := a.Execute(current)
		if err != nil {
			continue
		}
		cost := a.Duration + state.GoalDistance(next, goal)
		if best < 0 || cost < best {
			best = cost
		}
	}
	if best < 0 {
		return state.GoalDistance(current, goal)
	}
	return best
}

// #endregion calculator
