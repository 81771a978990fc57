package planner

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/kestrelworks/symbolic-planner/internal/action"
	"github.com/kestrelworks/symbolic-planner/internal/state"
)

// #region bfs

// planBFS explores the state graph in FIFO order. The first node passing
// the goal test has minimal action count, not minimal cost. A visited set
// keyed by canonical state guarantees termination despite cycles.
func (p *Planner) planBFS(initial, goal map[string]any, actions []*action.Action, deadline time.Time) *Result {
	root := p.root(initial, goal, actions)
	frontier := []*Node{root}
	visited := map[string]bool{state.Canonical(root.State): true}
	expanded := 0

	for len(frontier) > 0 {
		if !time.Now().Before(deadline) {
			return newFailure(AlgorithmBFS, ReasonNoSolution, expanded)
		}

		n := frontier[0]
		frontier = frontier[1:]
		expanded++
		log.Debug("bfs expand", "depth", n.Depth, "frontier", len(frontier))

		if state.Satisfied(n.State, goal) {
			return p.solved(n, expanded, initial, goal)
		}
		if n.Depth >= p.config.MaxDepth {
			continue
		}

		children, err := p.successors(n, goal, actions)
		if err != nil {
			return newFailure(AlgorithmBFS, "internal error: "+err.Error(), expanded)
		}
		for _, c := range children {
			key := state.Canonical(c.State)
			if visited[key] {
				continue
			}
			visited[key] = true
			frontier = append(frontier, c)
		}
	}
	return newFailure(AlgorithmBFS, ReasonNoSolution, expanded)
}

// #endregion bfs

// #region dfs

// planDFS explores in LIFO order; successors are pushed in reverse so the
// declared action order is explored left to right. May return a long,
// non-optimal solution first.
func (p *Planner) planDFS(initial, goal map[string]any, actions []*action.Action, deadline time.Time) *Result {
	root := p.root(initial, goal, actions)
	stack := []*Node{root}
	visited := map[string]bool{state.Canonical(root.State): true}
	expanded := 0

	for len(stack) > 0 {
		if !time.Now().Before(deadline) {
			return newFailure(AlgorithmDFS, ReasonNoSolution, expanded)
		}

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		expanded++
		log.Debug("dfs expand", "depth", n.Depth, "stack", len(stack))

		if state.Satisfied(n.State, goal) {
			return p.solved(n, expanded, initial, goal)
		}
		if n.Depth >= p.config.MaxDepth {
			continue
		}

		children, err := p.successors(n, goal, actions)
		if err != nil {
			return newFailure(AlgorithmDFS, "internal error: "+err.Error(), expanded)
		}
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			key := state.Canonical(c.State)
			if visited[key] {
				continue
			}
			visited[key] = true
			stack = append(stack, c)
		}
	}
	return newFailure(AlgorithmDFS, ReasonNoSolution, expanded)
}

// #endregion dfs
