package state

import (
	"math"
	"reflect"
	"strings"

	"github.com/kestrelworks/symbolic-planner/internal/predicate"
)

// #region goal-test

// numericTolerance is the absolute tolerance for numeric goal comparison.
const numericTolerance = 0.001

// internalPrefix marks reserved keys the goal test tolerates when absent
// from the current state.
const internalPrefix = "_"

// Satisfied reports whether every goal entry is met by the current state.
// Numeric values compare within an absolute tolerance, strings compare case-
// and whitespace-insensitively, booleans strictly, slices as sets, and
// nested maps recurse. A goal key missing from the state fails unless the
// key carries the internal underscore prefix.
func Satisfied(current, goal map[string]any) bool {
	for key, want := range goal {
		have, ok := current[key]
		if !ok {
			if strings.HasPrefix(key, internalPrefix) {
				continue
			}
			return false
		}
		if !ValuesMatch(have, want) {
			return false
		}
	}
	return true
}

// ValuesMatch is the type-aware comparator behind Satisfied.
func ValuesMatch(have, want any) bool {
	switch w := want.(type) {
	case bool:
		h, ok := have.(bool)
		return ok && h == w
	case int, int32, int64, float32, float64:
		wn, _ := predicate.NumberForm(w)
		hn, ok := predicate.NumberForm(have)
		if !ok {
			return false
		}
		return math.Abs(hn-wn) <= numericTolerance
	case string:
		h, ok := have.(string)
		if !ok {
			return false
		}
		return normalize(h) == normalize(w)
	}

	// Untyped collections ([]string, map[string]int, ...) reach here; they
	// must compare by the same set/recursion rules as []any and
	// map[string]any, and must never panic on uncomparable types.
	if ws, ok := anySlice(want); ok {
		hs, ok := anySlice(have)
		return ok && setEqual(hs, ws)
	}
	if wm, ok := anyStringMap(want); ok {
		hm, ok := anyStringMap(have)
		// Recurse with the same missing-key rule.
		return ok && Satisfied(hm, wm) && Satisfied(wm, hm)
	}
	return reflect.DeepEqual(have, want)
}

// anySlice normalizes any slice or array value to []any.
func anySlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// anyStringMap normalizes any string-keyed map value to map[string]any.
func anyStringMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	for _, k := range rv.MapKeys() {
		out[k.String()] = rv.MapIndex(k).Interface()
	}
	return out, true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// setEqual compares slices order- and duplicate-insensitively.
func setEqual(a, b []any) bool {
	return subset(a, b) && subset(b, a)
}

func subset(a, b []any) bool {
	for _, x := range a {
		found := false
		for _, y := range b {
			if ValuesMatch(x, y) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// #endregion goal-test

// #region goal-distance

// GoalDistance counts goal keys whose current value does not match the
// target, restricted to the goal's key set. Extra state keys are ignored.
func GoalDistance(current, goal map[string]any) float64 {
	var d float64
	for key, want := range goal {
		have, ok := current[key]
		if !ok {
			if strings.HasPrefix(key, internalPrefix) {
				continue
			}
			d++
			continue
		}
		if !ValuesMatch(have, want) {
			d++
		}
	}
	return d
}

// #endregion goal-distance
