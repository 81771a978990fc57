package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSatisfied_TypeAware(t *testing.T) {
	tests := []struct {
		name    string
		current map[string]any
		goal    map[string]any
		want    bool
	}{
		{
			"numeric-within-tolerance",
			map[string]any{"battery": 0.8004},
			map[string]any{"battery": 0.8},
			true,
		},
		{
			"numeric-outside-tolerance",
			map[string]any{"battery": 0.81},
			map[string]any{"battery": 0.8},
			false,
		},
		{
			"int-vs-float",
			map[string]any{"count": 3},
			map[string]any{"count": 3.0},
			true,
		},
		{
			"string-case-whitespace",
			map[string]any{"room": "  Kitchen "},
			map[string]any{"room": "kitchen"},
			true,
		},
		{
			"bool-strict",
			map[string]any{"on": true},
			map[string]any{"on": true},
			true,
		},
		{
			"bool-vs-number-fails",
			map[string]any{"on": 1},
			map[string]any{"on": true},
			false,
		},
		{
			"sequence-as-set",
			map[string]any{"bag": []any{"b", "a", "a"}},
			map[string]any{"bag": []any{"a", "b"}},
			true,
		},
		{
			"sequence-mismatch",
			map[string]any{"bag": []any{"a"}},
			map[string]any{"bag": []any{"a", "b"}},
			false,
		},
		{
			"nested-map-recurses",
			map[string]any{"inv": map[string]any{"apple": 1, "pear": 2}},
			map[string]any{"inv": map[string]any{"apple": 1, "pear": 2}},
			true,
		},
		{
			"nested-map-differs",
			map[string]any{"inv": map[string]any{"apple": 1}},
			map[string]any{"inv": map[string]any{"apple": 2}},
			false,
		},
		{
			"missing-key-fails",
			map[string]any{"a": 1},
			map[string]any{"b": 1},
			false,
		},
		{
			"missing-underscore-key-tolerated",
			map[string]any{"a": 1},
			map[string]any{"a": 1, "_planning_step": 3},
			true,
		},
		{
			"extra-state-keys-ignored",
			map[string]any{"a": 1, "b": 2, "c": 3},
			map[string]any{"a": 1},
			true,
		},
		{
			"type-mismatch-fails-closed",
			map[string]any{"room": 7},
			map[string]any{"room": "kitchen"},
			false,
		},
		{
			"typed-string-slice-as-set",
			map[string]any{"items": []string{"b", "a"}},
			map[string]any{"items": []string{"a", "b"}},
			true,
		},
		{
			"typed-slice-vs-any-slice",
			map[string]any{"items": []any{"a", "b"}},
			map[string]any{"items": []string{"a", "b"}},
			true,
		},
		{
			"typed-int-slice-mismatch",
			map[string]any{"ids": []int{1, 2}},
			map[string]any{"ids": []int{1, 3}},
			false,
		},
		{
			"typed-string-map-recurses",
			map[string]any{"labels": map[string]string{"door": "open"}},
			map[string]any{"labels": map[string]string{"door": "open"}},
			true,
		},
		{
			"typed-map-vs-any-map",
			map[string]any{"counts": map[string]int{"apple": 2}},
			map[string]any{"counts": map[string]any{"apple": 2}},
			true,
		},
		{
			"typed-collection-mismatch-fails-closed",
			map[string]any{"items": []string{"a"}},
			map[string]any{"items": map[string]string{"a": "b"}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Satisfied(tt.current, tt.goal))
		})
	}
}

func TestGoalDistance(t *testing.T) {
	current := map[string]any{"a": 1, "b": "x", "c": true, "extra": 9}
	goal := map[string]any{"a": 1, "b": "y", "c": false, "d": 5}

	// a matches; b, c, d (missing) differ; extra is ignored.
	assert.Equal(t, 3.0, GoalDistance(current, goal))
	assert.Equal(t, 0.0, GoalDistance(current, map[string]any{"a": 1}))
	assert.Equal(t, 0.0, GoalDistance(map[string]any{}, map[string]any{"_internal": 1}))

	// Collection-typed values score without panicking.
	held := map[string]any{"holding": []string{"mug", "plate"}}
	assert.Equal(t, 0.0, GoalDistance(held, map[string]any{"holding": []string{"plate", "mug"}}))
	assert.Equal(t, 1.0, GoalDistance(held, map[string]any{"holding": []string{"mug"}}))
}
