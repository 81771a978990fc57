package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/symbolic-planner/internal/action"
)

// #region partition

func TestPartitionGoal_TaxonomyOrder(t *testing.T) {
	goal := map[string]any{
		"door_closed":    false,
		"robot_location": "kitchen",
		"holding_item":   "mug",
		"battery":        80.0,
	}

	groups := partitionGoal(goal)
	require.Len(t, groups, 4)

	assert.Equal(t, map[string]any{"robot_location": "kitchen"}, groups[0])
	assert.Equal(t, map[string]any{"holding_item": "mug"}, groups[1])
	assert.Equal(t, map[string]any{"door_closed": false}, groups[2])
	assert.Equal(t, map[string]any{"battery": 80.0}, groups[3])
}

func TestPartitionGoal_LocationAndBool(t *testing.T) {
	goal := map[string]any{
		"robot_location": "kitchen",
		"door_closed":    false,
	}

	groups := partitionGoal(goal)
	require.Len(t, groups, 2)
	assert.Equal(t, map[string]any{"robot_location": "kitchen"}, groups[0])
	assert.Equal(t, map[string]any{"door_closed": false}, groups[1])
}

func TestPartitionGoal_PairChunkFallback(t *testing.T) {
	goal := map[string]any{
		"battery": 80.0,
		"speed":   1.5,
		"water":   10.0,
	}

	groups := partitionGoal(goal)
	require.Len(t, groups, 2)
	assert.Equal(t, map[string]any{"battery": 80.0, "speed": 1.5}, groups[0])
	assert.Equal(t, map[string]any{"water": 10.0}, groups[1])
}

func TestPartitionGoal_Empty(t *testing.T) {
	assert.Empty(t, partitionGoal(map[string]any{}))
}

// #endregion partition

// #region hierarchical-plan

func TestPlan_HierarchicalChainsSubgoals(t *testing.T) {
	initial := map[string]any{"robot_location": "hall", "door_closed": true}
	goal := map[string]any{"robot_location": "kitchen", "door_closed": false}
	actions := []*action.Action{
		act(t, "goto_kitchen", []string{"robot_location=hall"}, []string{"robot_location=kitchen"}, 1.0),
		act(t, "open_door", []string{"door_closed=true"}, []string{"door_closed=false"}, 2.0),
	}

	p := New(testConfig(AlgorithmHierarchical))
	res := p.Plan(initial, goal, actions, nil)

	require.True(t, res.Success, "reason: %s", res.Reason)
	require.Equal(t, 2, res.Length)
	// Location subgoal is solved before the boolean one.
	assert.Equal(t, "goto_kitchen", res.Sequence.Actions[0].Name)
	assert.Equal(t, "open_door", res.Sequence.Actions[1].Name)
	assert.Equal(t, 3.0, res.Cost)

	groups, ok := res.Metadata["subgoal_groups"].([]map[string]any)
	require.True(t, ok)
	assert.Len(t, groups, 2)

	final, ok := res.Metadata["final_state"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "kitchen", final["robot_location"])
	assert.Equal(t, false, final["door_closed"])
}

func TestPlan_HierarchicalFailsWhenAnySubgoalFails(t *testing.T) {
	initial := map[string]any{"robot_location": "hall", "door_closed": true}
	goal := map[string]any{"robot_location": "kitchen", "door_closed": false}
	// Only the movement action exists; the boolean subgoal is unreachable.
	actions := []*action.Action{
		act(t, "goto_kitchen", []string{"robot_location=hall"}, []string{"robot_location=kitchen"}, 1.0),
	}

	cfg := testConfig(AlgorithmHierarchical)
	cfg.MaxDepth = 3
	p := New(cfg)
	res := p.Plan(initial, goal, actions, nil)

	require.False(t, res.Success)
	assert.Nil(t, res.Sequence)
	assert.Equal(t, ReasonNoSolution, res.Reason)
}

// #endregion hierarchical-plan
