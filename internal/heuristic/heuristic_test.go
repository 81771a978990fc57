package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/symbolic-planner/internal/action"
)

func testActions(t *testing.T) []*action.Action {
	t.Helper()
	open, err := action.New("", "open_door", action.TypeManipulation, nil,
		[]string{"door_closed"}, []string{"door_closed=false"}, 2.0, 1)
	require.NoError(t, err)
	wait, err := action.New("", "wait", action.TypeWait, nil,
		nil, []string{"ticks+=1"}, 5.0, 1)
	require.NoError(t, err)
	return []*action.Action{open, wait}
}

func TestScore_Zero(t *testing.T) {
	c := NewCalculator(Config{Strategy: StrategyZero})
	got := c.Score(map[string]any{"a": 1}, map[string]any{"a": 2, "b": 3}, nil)
	assert.Equal(t, 0.0, got)
}

func TestScore_GoalDistance(t *testing.T) {
	c := NewCalculator(Config{Strategy: StrategyGoalDistance})
	current := map[string]any{"door_closed": true, "room": "hall"}
	goal := map[string]any{"door_closed": false, "room": "hall"}

	assert.Equal(t, 1.0, c.Score(current, goal, nil))
	assert.Equal(t, 0.0, c.Score(goal, goal, nil))
}

func TestScore_ActionCost(t *testing.T) {
	c := NewCalculator(Config{Strategy: StrategyActionCost})
	actions := testActions(t)

	current := map[string]any{"door_closed": true}
	goal := map[string]any{"door_closed": false}

	// open_door: 2.0 + dist 0 = 2.0; wait: 5.0 + dist 1 = 6.0 → min 2.0.
	assert.Equal(t, 2.0, c.Score(current, goal, actions))
}

func TestScore_ActionCost_FallbackWhenNoneExecutable(t *testing.T) {
	c := NewCalculator(Config{Strategy: StrategyActionCost})
	open, err := action.New("", "open_door", action.TypeManipulation, nil,
		[]string{"door_closed"}, []string{"door_closed=false"}, 2.0, 1)
	require.NoError(t, err)

	current := map[string]any{"door_closed": false, "x": 1}
	goal := map[string]any{"x": 2}

	assert.Equal(t, 1.0, c.Score(current, goal, []*action.Action{open}))
}

func TestScore_Combined(t *testing.T) {
	c := NewCalculator(Config{
		Strategy:       StrategyCombined,
		DistanceWeight: 0.7,
		CostWeight:     0.3,
	})
	actions := testActions(t)

	current := map[string]any{"door_closed": true}
	goal := map[string]any{"door_closed": false}

	// 0.7*1 + 0.3*2.0 = 1.3
	assert.InDelta(t, 1.3, c.Score(current, goal, actions), 1e-9)
}

func TestNewCalculator_EmptyConfigDefaults(t *testing.T) {
	c := NewCalculator(Config{})
	assert.Equal(t, StrategyGoalDistance, c.Strategy())
}
