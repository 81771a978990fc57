package planner

import (
	"container/heap"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kestrelworks/symbolic-planner/internal/action"
	"github.com/kestrelworks/symbolic-planner/internal/state"
)

// #region astar

// planAStar orders the frontier by f = g + h. Closed states are never
// reopened, so with an inadmissible heuristic the returned cost is not
// guaranteed minimal. Ties break on frontier insertion order.
func (p *Planner) planAStar(initial, goal map[string]any, actions []*action.Action, deadline time.Time) *Result {
	open := &frontier{}
	heap.Init(open)
	open.push(p.root(initial, goal, actions))

	closed := make(map[string]bool)
	expanded := 0

	for open.Len() > 0 {
		if !time.Now().Before(deadline) {
			return newFailure(AlgorithmAStar, ReasonNoSolution, expanded)
		}

		n := heap.Pop(open).(*entry).node
		expanded++

		key := state.Canonical(n.State)
		if closed[key] {
			continue
		}
		closed[key] = true
		log.Debug("astar expand", "depth", n.Depth, "f", n.F, "open", open.Len())

		if state.Satisfied(n.State, goal) {
			return p.solved(n, expanded, initial, goal)
		}
		if n.Depth >= p.config.MaxDepth {
			continue
		}

		children, err := p.successors(n, goal, actions)
		if err != nil {
			return newFailure(AlgorithmAStar, "internal error: "+err.Error(), expanded)
		}
		for _, c := range children {
			if closed[state.Canonical(c.State)] {
				continue
			}
			open.push(c)
		}
	}
	return newFailure(AlgorithmAStar, ReasonNoSolution, expanded)
}

// #endregion astar

// #region frontier

// entry wraps a node with its insertion sequence for stable tie-breaking.
type entry struct {
	node  *Node
	seq   int
	index int
}

// frontier is a min-heap over f, ties broken by insertion order.
type frontier struct {
	items []*entry
	seq   int
}

func (f *frontier) push(n *Node) {
	f.seq++
	heap.Push(f, &entry{node: n, seq: f.seq})
}

func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Less(i, j int) bool {
	a, b := f.items[i], f.items[j]
	if a.node.F != b.node.F {
		return a.node.F < b.node.F
	}
	return a.seq < b.seq
}

func (f *frontier) Swap(i, j int) {
	f.items[i], f.items[j] = f.items[j], f.items[i]
	f.items[i].index = i
	f.items[j].index = j
}

func (f *frontier) Push(x any) {
	e := x.(*entry)
	e.index = len(f.items)
	f.items = append(f.items, e)
}

func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	f.items = old[:n-1]
	return e
}

// #endregion frontier
