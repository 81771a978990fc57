// Package planner searches for action sequences that transform an initial
// state into one satisfying a goal, under wall-clock and depth budgets. Six
// interchangeable strategies share one successor generator and goal test.
package planner

import (
	"math"
	"time"

	"github.com/kestrelworks/symbolic-planner/internal/action"
	"github.com/kestrelworks/symbolic-planner/internal/heuristic"
)

// #region algorithm

// Algorithm selects the search strategy.
type Algorithm string

const (
	AlgorithmBFS          Algorithm = "bfs"
	AlgorithmDFS          Algorithm = "dfs"
	AlgorithmAStar        Algorithm = "astar"
	AlgorithmGreedy       Algorithm = "greedy"
	AlgorithmHierarchical Algorithm = "hierarchical"
	AlgorithmSampling     Algorithm = "sampling"
)

// #endregion algorithm

// #region reasons

// ReasonNoSolution is the uniform failure reason for budget exhaustion and
// exhausted frontiers.
const ReasonNoSolution = "no solution found within time/depth limits"

// #endregion reasons

// #region node

// Node is one search-tree entry: a detached state snapshot, the action path
// that produced it, and its costs. Children reference parents; parents never
// reference children, so the tree is acyclic by construction. Cycle
// avoidance across states is the visited set's job.
type Node struct {
	State  map[string]any
	Path   []*action.Action
	G      float64 // cumulative path cost
	H      float64 // heuristic estimate
	F      float64 // G + H
	Depth  int
	Parent *Node
}

// #endregion node

// #region result

// Result is the immutable outcome of one Plan call.
type Result struct {
	Success       bool
	Sequence      *action.Sequence // nil on failure
	PlanningTime  time.Duration
	NodesExpanded int
	Cost          float64 // +Inf on failure
	Length        int
	Algorithm     Algorithm
	Reason        string
	Metadata      map[string]any
}

func newFailure(alg Algorithm, reason string, expanded int) *Result {
	return &Result{
		Success:       false,
		NodesExpanded: expanded,
		Cost:          math.Inf(1),
		Algorithm:     alg,
		Reason:        reason,
		Metadata:      make(map[string]any),
	}
}

// #endregion result

// #region config

// Config bundles the planning budgets and heuristic settings.
type Config struct {
	Algorithm Algorithm
	MaxDepth  int
	// Timeout is the wall-clock budget. Zero falls back to the default;
	// a negative value is an already-spent budget and fails every search
	// before its first expansion.
	Timeout            time.Duration
	SamplingIterations int
	RolloutMax         int
	Seed               int64 // 0 = time-seeded
	Heuristic          heuristic.Config
}

// DefaultConfig returns the standard budgets: depth 10, 30s wall clock,
// 100 sampling rollouts of at most 20 actions.
func DefaultConfig() Config {
	return Config{
		Algorithm:          AlgorithmAStar,
		MaxDepth:           10,
		Timeout:            30 * time.Second,
		SamplingIterations: 100,
		RolloutMax:         20,
		Heuristic:          heuristic.DefaultConfig(),
	}
}

// #endregion config
