package planner

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kestrelworks/symbolic-planner/internal/action"
	"github.com/kestrelworks/symbolic-planner/internal/heuristic"
	"github.com/kestrelworks/symbolic-planner/internal/state"
)

// #region planner

// Planner orchestrates the search strategies over a private state manager.
// A Planner serves one Plan call at a time; concurrent planning uses
// separate instances.
type Planner struct {
	config  Config
	calc    *heuristic.Calculator
	manager *state.Manager
	rng     *rand.Rand
}

// New creates a planner with its own state manager. Zero-valued config
// fields fall back to DefaultConfig field by field, so a caller setting only
// some fields keeps the rest at their defaults.
func New(config Config) *Planner {
	def := DefaultConfig()
	if config.Algorithm == "" {
		config.Algorithm = def.Algorithm
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = def.MaxDepth
	}
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}
	if config.SamplingIterations <= 0 {
		config.SamplingIterations = def.SamplingIterations
	}
	if config.RolloutMax <= 0 {
		config.RolloutMax = def.RolloutMax
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Planner{
		config:  config,
		calc:    heuristic.NewCalculator(config.Heuristic),
		manager: state.NewManager(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Manager exposes the planner's state manager, e.g. to attach a journal.
func (p *Planner) Manager() *state.Manager {
	return p.manager
}

// #endregion planner

// #region plan

// Plan searches for an ordered action sequence transforming initial into a
// state satisfying goal. transitions may be nil; when present they are
// registered with the state manager for committed/simulated application by
// downstream consumers.
func (p *Planner) Plan(initial, goal map[string]any, actions []*action.Action, transitions []*state.Transition) *Result {
	start := time.Now()

	if reason, ok := validateRequest(initial, goal, actions); !ok {
		r := newFailure(p.config.Algorithm, reason, 0)
		r.PlanningTime = time.Since(start)
		return r
	}

	p.manager.Reset()
	if err := p.manager.Load(initial); err != nil {
		r := newFailure(p.config.Algorithm, "state load failed: "+err.Error(), 0)
		r.PlanningTime = time.Since(start)
		return r
	}
	for _, t := range transitions {
		p.manager.RegisterTransition(t)
	}

	deadline := start.Add(p.config.Timeout)
	log.Debug("planning started",
		"algorithm", p.config.Algorithm,
		"actions", len(actions),
		"goal_keys", len(goal))

	var result *Result
	switch p.config.Algorithm {
	case AlgorithmBFS:
		result = p.planBFS(initial, goal, actions, deadline)
	case AlgorithmDFS:
		result = p.planDFS(initial, goal, actions, deadline)
	case AlgorithmGreedy:
		result = p.planGreedy(initial, goal, actions, deadline)
	case AlgorithmHierarchical:
		result = p.planHierarchical(initial, goal, actions, deadline)
	case AlgorithmSampling:
		result = p.planSampling(initial, goal, actions, deadline)
	default:
		result = p.planAStar(initial, goal, actions, deadline)
	}

	result.Algorithm = p.config.Algorithm
	result.PlanningTime = time.Since(start)

	if result.Success {
		log.Info("plan found",
			"algorithm", result.Algorithm,
			"length", result.Length,
			"cost", result.Cost,
			"nodes", result.NodesExpanded,
			"elapsed", result.PlanningTime)
	} else {
		log.Info("plan failed",
			"algorithm", result.Algorithm,
			"reason", result.Reason,
			"nodes", result.NodesExpanded,
			"elapsed", result.PlanningTime)
	}
	return result
}

func validateRequest(initial, goal map[string]any, actions []*action.Action) (string, bool) {
	switch {
	case len(initial) == 0:
		return "invalid request: empty initial state", false
	case len(goal) == 0:
		return "invalid request: empty goal state", false
	case len(actions) == 0:
		return "invalid request: empty action list", false
	}
	return "", true
}

// #endregion plan

// #region success-result

// solved builds a success result from a goal node.
func (p *Planner) solved(n *Node, expanded int, initial, goal map[string]any) *Result {
	plan := make([]*action.Action, len(n.Path))
	for i, a := range n.Path {
		plan[i] = a.Clone()
	}
	seq := action.NewSequence("", plan, state.Clone(initial), state.Clone(goal))
	return &Result{
		Success:       true,
		Sequence:      seq,
		NodesExpanded: expanded,
		Cost:          n.G,
		Length:        len(plan),
		Metadata: map[string]any{
			"final_state": state.Clone(n.State),
		},
	}
}

// #endregion success-result
