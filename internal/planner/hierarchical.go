package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kestrelworks/symbolic-planner/internal/action"
	"github.com/kestrelworks/symbolic-planner/internal/state"
)

// #region taxonomy

// locationKeywords mark goal keys handled first: get somewhere before
// doing anything there.
var locationKeywords = []string{
	"location", "room", "position", "place", "zone", "at_", "_at",
}

// objectKeywords mark object/entity goals handled second.
var objectKeywords = []string{
	"object", "item", "entity", "holding", "carry", "grasp", "tool", "target",
}

func containsAny(key string, keywords []string) bool {
	lower := strings.ToLower(key)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// #endregion taxonomy

// #region partition

// partitionGoal splits a goal map into ordered subgoal groups: location-like
// keys, then object/entity-like keys, then boolean-valued keys, then the
// remainder. When the first three buckets are all empty the remaining items
// are chunked two at a time instead.
func partitionGoal(goal map[string]any) []map[string]any {
	keys := make([]string, 0, len(goal))
	for k := range goal {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	locGroup := make(map[string]any)
	objGroup := make(map[string]any)
	boolGroup := make(map[string]any)
	rest := make(map[string]any)

	for _, k := range keys {
		v := goal[k]
		switch {
		case containsAny(k, locationKeywords):
			locGroup[k] = v
		case containsAny(k, objectKeywords):
			objGroup[k] = v
		default:
			if _, isBool := v.(bool); isBool {
				boolGroup[k] = v
			} else {
				rest[k] = v
			}
		}
	}

	var groups []map[string]any
	for _, g := range []map[string]any{locGroup, objGroup, boolGroup} {
		if len(g) > 0 {
			groups = append(groups, g)
		}
	}

	if len(groups) == 0 {
		// No taxonomy bucket populated: chunk pairs in key order.
		var chunk map[string]any
		for _, k := range keys {
			if chunk == nil {
				chunk = make(map[string]any)
			}
			chunk[k] = goal[k]
			if len(chunk) == 2 {
				groups = append(groups, chunk)
				chunk = nil
			}
		}
		if chunk != nil {
			groups = append(groups, chunk)
		}
		return groups
	}

	if len(rest) > 0 {
		groups = append(groups, rest)
	}
	return groups
}

// #endregion partition

// #region hierarchical

// planHierarchical solves ordered subgoal groups independently via A*,
// chaining each group's end state into the next group's start. Any subgoal
// failure aborts the whole plan; there is no partial credit.
func (p *Planner) planHierarchical(initial, goal map[string]any, actions []*action.Action, deadline time.Time) *Result {
	groups := partitionGoal(goal)
	log.Debug("hierarchical partition", "groups", len(groups))

	current := state.Clone(initial)
	var combined []*action.Action
	var cost float64
	expanded := 0

	for i, group := range groups {
		sub := p.planAStar(current, group, actions, deadline)
		expanded += sub.NodesExpanded
		if !sub.Success {
			log.Debug("subgoal failed", "group", i, "reason", sub.Reason)
			return newFailure(AlgorithmHierarchical, ReasonNoSolution, expanded)
		}

		combined = append(combined, sub.Sequence.Actions...)
		cost += sub.Cost
		if fs, ok := sub.Metadata["final_state"].(map[string]any); ok {
			current = fs
		}
	}

	seq := action.NewSequence("", combined, state.Clone(initial), state.Clone(goal))
	return &Result{
		Success:       true,
		Sequence:      seq,
		NodesExpanded: expanded,
		Cost:          cost,
		Length:        len(combined),
		Metadata: map[string]any{
			"final_state":    state.Clone(current),
			"subgoal_groups": groups,
		},
	}
}

// #endregion hierarchical
