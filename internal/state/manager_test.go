package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDoorTransition(t *testing.T, to map[string]any) *Transition {
	t.Helper()
	tr, err := NewTransition("open_door", nil, to, []string{"door_closed"}, nil)
	require.NoError(t, err)
	return tr
}

func TestManager_ApplyAction_FirstMatch(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Load(map[string]any{"door_closed": true}))

	first := openDoorTransition(t, map[string]any{"door_closed": false, "via": "push"})
	second := openDoorTransition(t, map[string]any{"door_closed": false, "via": "pull"})
	m.RegisterTransition(first)
	m.RegisterTransition(second)

	applied, err := m.ApplyAction("open_door", nil)
	require.NoError(t, err)
	assert.Same(t, first, applied, "registration order decides among same-name matches")

	snap := m.Snapshot()
	assert.Equal(t, "push", snap["via"])
}

func TestManager_ApplyAction_NoMatch(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Load(map[string]any{"door_closed": false}))
	m.RegisterTransition(openDoorTransition(t, map[string]any{"door_closed": false}))

	_, err := m.ApplyAction("open_door", nil)
	assert.Error(t, err, "preconditions do not hold")

	_, err = m.ApplyAction("close_door", nil)
	assert.Error(t, err, "unknown action name")
}

func TestManager_SimulateAction_DoesNotCommit(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Load(map[string]any{"door_closed": true}))
	m.RegisterTransition(openDoorTransition(t, map[string]any{"door_closed": false}))

	next, tr, err := m.SimulateAction("open_door", nil)
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, false, next["door_closed"])

	// Committed state untouched.
	assert.Equal(t, true, m.Snapshot()["door_closed"])
	assert.Empty(t, m.Environment().TransitionLog())
}

func TestManager_MatchingTransitions(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Load(map[string]any{"door_closed": true}))

	a := openDoorTransition(t, map[string]any{"door_closed": false})
	b := openDoorTransition(t, map[string]any{"door_closed": false})
	blocked, err := NewTransition("open_door", nil,
		map[string]any{"door_closed": false}, []string{"has_key"}, nil)
	require.NoError(t, err)

	m.RegisterTransition(a)
	m.RegisterTransition(blocked)
	m.RegisterTransition(b)

	matches := m.MatchingTransitions("open_door")
	require.Len(t, matches, 2)
	assert.Same(t, a, matches[0])
	assert.Same(t, b, matches[1])
}

func TestManager_Templates(t *testing.T) {
	m := NewManager()
	m.RegisterTemplate("docked", map[string]any{"location": "dock", "battery": 100.0})

	require.NoError(t, m.LoadTemplate("docked"))
	assert.Equal(t, "dock", m.Snapshot()["location"])

	assert.Error(t, m.LoadTemplate("unknown"))
}

func TestManager_ResetKeepsRegistrations(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Load(map[string]any{"door_closed": true}))
	m.RegisterTransition(openDoorTransition(t, map[string]any{"door_closed": false}))

	m.Reset()
	assert.Empty(t, m.Snapshot())
	assert.Len(t, m.Transitions(), 1)
}
