package predicate

import (
	"strconv"
	"strings"
)

// #region effect-op

// EffectOp identifies how an effect modifies its target key.
type EffectOp int

const (
	// EffectAssign sets the key to a typed literal.
	EffectAssign EffectOp = iota
	// EffectIncrement adds a numeric delta; a missing key reads as 0.
	EffectIncrement
	// EffectDecrement subtracts a numeric delta; a missing key reads as 0.
	EffectDecrement
)

// #endregion effect-op

// #region effect

// Effect is a compiled state mutation.
type Effect struct {
	Key string
	Op  EffectOp

	// Value is the typed literal for EffectAssign: bool, float64, or string.
	Value any
	// Delta is the parsed amount for increment/decrement.
	Delta float64

	raw string
}

// CompileEffect tokenizes an effect expression: key=value assignment,
// key+=n / key-=n numeric adjustment.
func CompileEffect(expr string) (Effect, error) {
	raw := expr
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Effect{}, &ParseError{Expr: raw, Reason: "empty expression"}
	}

	if key, val, ok := splitOnce(expr, "+="); ok {
		return makeDelta(raw, key, EffectIncrement, val)
	}
	if key, val, ok := splitOnce(expr, "-="); ok {
		return makeDelta(raw, key, EffectDecrement, val)
	}
	if key, val, ok := splitOnce(expr, "="); ok {
		key = strings.TrimSpace(key)
		if key == "" {
			return Effect{}, &ParseError{Expr: raw, Reason: "missing key"}
		}
		return Effect{Key: key, Op: EffectAssign, Value: typedLiteral(val), raw: raw}, nil
	}

	return Effect{}, &ParseError{Expr: raw, Reason: "no assignment operator"}
}

// CompileEffects compiles a list of effect expressions, failing on the first
// malformed entry.
func CompileEffects(exprs []string) ([]Effect, error) {
	effs := make([]Effect, 0, len(exprs))
	for _, e := range exprs {
		eff, err := CompileEffect(e)
		if err != nil {
			return nil, err
		}
		effs = append(effs, eff)
	}
	return effs, nil
}

func makeDelta(raw, key string, op EffectOp, val string) (Effect, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Effect{}, &ParseError{Expr: raw, Reason: "missing key"}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return Effect{}, &ParseError{Expr: raw, Reason: "non-numeric delta"}
	}
	return Effect{Key: key, Op: op, Delta: n, raw: raw}, nil
}

// typedLiteral parses an assignment value into bool, float64, or a trimmed
// string, so "door_closed=false" yields a real boolean.
func typedLiteral(val string) any {
	val = strings.TrimSpace(val)
	switch strings.ToLower(val) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(val, 64); err == nil {
		return n
	}
	return val
}

// Source returns the original expression text.
func (e Effect) Source() string {
	return e.raw
}

// #endregion effect

// #region apply

// Apply mutates state in place. The caller owns the map; use ApplyAll for
// the copy-on-write form. Coercion failures are a no-op (fail-closed).
func (e Effect) Apply(state map[string]any) {
	switch e.Op {
	case EffectAssign:
		state[e.Key] = e.Value
	case EffectIncrement:
		n, ok := NumberForm(state[e.Key])
		if !ok {
			return
		}
		state[e.Key] = n + e.Delta
	case EffectDecrement:
		n, ok := NumberForm(state[e.Key])
		if !ok {
			return
		}
		state[e.Key] = n - e.Delta
	}
}

// ApplyAll is a pure next-state function: it copies the input state and
// applies each effect in declared order. The input map is never mutated.
func ApplyAll(state map[string]any, effects []Effect) map[string]any {
	next := make(map[string]any, len(state)+len(effects))
	for k, v := range state {
		next[k] = v
	}
	for _, e := range effects {
		e.Apply(next)
	}
	return next
}

// #endregion apply
