// Package predicate compiles the textual precondition/effect grammar used by
// action definitions into a small evaluable form. Expressions are tokenized
// once at load time; malformed input is rejected there with a structured
// error instead of silently failing during search.
package predicate

import (
	"fmt"
	"strconv"
	"strings"
)

// #region op

// Op identifies a comparison operator in a compiled condition.
type Op int

const (
	// OpTruthy is a bare-key truthiness lookup.
	OpTruthy Op = iota
	// OpEq compares string forms after trimming whitespace.
	OpEq
	// OpNeq is the negation of OpEq.
	OpNeq
	// OpGt is a numeric greater-than; a missing key reads as 0.
	OpGt
	// OpLt is a numeric less-than; a missing key reads as 0.
	OpLt
)

// String returns the operator's surface syntax.
func (o Op) String() string {
	switch o {
	case OpEq:
		return "="
	case OpNeq:
		return "!="
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	default:
		return ""
	}
}

// #endregion op

// #region parse-error

// ParseError reports an unparseable condition or effect expression.
type ParseError struct {
	Expr   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Expr, e.Reason)
}

// #endregion parse-error

// #region condition

// Condition is a compiled boolean expression over one state key.
type Condition struct {
	Key string
	Op  Op

	// Text is the raw right-hand side, kept for OpEq/OpNeq comparison and
	// for reconstructing the source expression.
	Text string
	// Num is the parsed right-hand side for OpGt/OpLt.
	Num float64

	raw string
}

// Compile tokenizes a condition expression. Operators in priority order:
// key=value, key!=value, key>value, key<value, bare key.
func Compile(expr string) (Condition, error) {
	raw := expr
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Condition{}, &ParseError{Expr: raw, Reason: "empty expression"}
	}

	// != must be probed before = so "a!=b" is not split at the '='.
	if key, val, ok := splitOnce(expr, "!="); ok {
		return makeCompare(raw, key, OpNeq, val)
	}
	if key, val, ok := splitOnce(expr, "="); ok {
		return makeCompare(raw, key, OpEq, val)
	}
	if key, val, ok := splitOnce(expr, ">"); ok {
		return makeNumeric(raw, key, OpGt, val)
	}
	if key, val, ok := splitOnce(expr, "<"); ok {
		return makeNumeric(raw, key, OpLt, val)
	}

	if strings.ContainsAny(expr, " \t") {
		return Condition{}, &ParseError{Expr: raw, Reason: "bare key contains whitespace"}
	}
	return Condition{Key: expr, Op: OpTruthy, raw: raw}, nil
}

// CompileAll compiles a list of condition expressions, failing on the first
// malformed entry.
func CompileAll(exprs []string) ([]Condition, error) {
	conds := make([]Condition, 0, len(exprs))
	for _, e := range exprs {
		c, err := Compile(e)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, nil
}

func makeCompare(raw, key string, op Op, val string) (Condition, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Condition{}, &ParseError{Expr: raw, Reason: "missing key"}
	}
	return Condition{Key: key, Op: op, Text: strings.TrimSpace(val), raw: raw}, nil
}

func makeNumeric(raw, key string, op Op, val string) (Condition, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Condition{}, &ParseError{Expr: raw, Reason: "missing key"}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return Condition{}, &ParseError{Expr: raw, Reason: "non-numeric comparison value"}
	}
	return Condition{Key: key, Op: op, Text: strings.TrimSpace(val), Num: n, raw: raw}, nil
}

// #endregion condition

// #region eval

// Eval evaluates the condition against a state map. Coercion failures
// resolve to false rather than raising (fail-closed).
func (c Condition) Eval(state map[string]any) bool {
	switch c.Op {
	case OpEq:
		v, ok := state[c.Key]
		if !ok {
			return false
		}
		return strings.TrimSpace(stringForm(v)) == c.Text
	case OpNeq:
		v, ok := state[c.Key]
		if !ok {
			// An absent key cannot equal the target value.
			return true
		}
		return strings.TrimSpace(stringForm(v)) != c.Text
	case OpGt:
		n, ok := NumberForm(state[c.Key])
		if !ok {
			return false
		}
		return n > c.Num
	case OpLt:
		n, ok := NumberForm(state[c.Key])
		if !ok {
			return false
		}
		return n < c.Num
	case OpTruthy:
		return Truthy(state[c.Key])
	}
	return false
}

// EvalAll reports whether every condition holds (conjunction).
func EvalAll(conds []Condition, state map[string]any) bool {
	for _, c := range conds {
		if !c.Eval(state) {
			return false
		}
	}
	return true
}

// Source returns the original expression text.
func (c Condition) Source() string {
	if c.raw != "" {
		return c.raw
	}
	if c.Op == OpTruthy {
		return c.Key
	}
	return c.Key + c.Op.String() + c.Text
}

// #endregion eval

// #region coercion

// NumberForm coerces a state value to float64. A nil (missing) value reads
// as 0, matching the grammar's missing-key default.
func NumberForm(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Truthy reports boolean truthiness of a state value: bools as-is, numbers
// nonzero, strings "true"/"yes"/"1", non-empty collections.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes", "1":
			return true
		}
		return false
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		n, ok := NumberForm(v)
		return ok && n != 0
	}
}

func stringForm(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func splitOnce(s, sep string) (string, string, bool) {
	i := strings.Index(s, sep)
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+len(sep):], true
}

// #endregion coercion
