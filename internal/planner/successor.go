package planner

import (
	"fmt"

	"github.com/kestrelworks/symbolic-planner/internal/action"
	"github.com/kestrelworks/symbolic-planner/internal/state"
)

// #region default-progress

// defaultProgress is the synthetic safety-valve action injected when a
// non-terminal node has zero applicable successors. It only bumps an
// internal step counter; downstream consumers filter it out of plans.
var defaultProgress = action.MustNew(
	"default-progress", "default_progress", action.TypeWait,
	nil, nil, []string{"_planning_step+=1"}, 1.0, 1.0,
)

// DefaultProgressName identifies injected safety-valve actions in a plan.
const DefaultProgressName = "default_progress"

// #endregion default-progress

// #region successors

// successors expands a node: every applicable action is executed against a
// copy of the node's state and scored. An action whose preconditions fail is
// inapplicable, not an error; an execution failure after the precondition
// gate passed is an internal error and aborts expansion.
func (p *Planner) successors(n *Node, goal map[string]any, actions []*action.Action) ([]*Node, error) {
	var children []*Node
	for _, a := range actions {
		if !a.CanExecute(n.State) {
			continue
		}
		next, err := a.Execute(n.State)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", a.Name, err)
		}
		children = append(children, p.child(n, a, next, goal, actions))
	}

	if len(children) == 0 && n.Depth < p.config.MaxDepth {
		next, err := defaultProgress.Execute(n.State)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", DefaultProgressName, err)
		}
		children = append(children, p.child(n, defaultProgress, next, goal, actions))
	}
	return children, nil
}

func (p *Planner) child(n *Node, a *action.Action, next, goal map[string]any, actions []*action.Action) *Node {
	path := make([]*action.Action, len(n.Path)+1)
	copy(path, n.Path)
	path[len(n.Path)] = a

	g := n.G + a.Duration
	h := p.calc.Score(next, goal, actions)
	return &Node{
		State:  next,
		Path:   path,
		G:      g,
		H:      h,
		F:      g + h,
		Depth:  n.Depth + 1,
		Parent: n,
	}
}

// root builds the search root over a copy of the initial state.
func (p *Planner) root(initial, goal map[string]any, actions []*action.Action) *Node {
	st := state.Clone(initial)
	h := p.calc.Score(st, goal, actions)
	return &Node{State: st, H: h, F: h}
}

// #endregion successors
