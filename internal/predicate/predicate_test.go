package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Operators(t *testing.T) {
	tests := []struct {
		name string
		expr string
		op   Op
		key  string
	}{
		{"equality", "door=open", OpEq, "door"},
		{"inequality", "door!=open", OpNeq, "door"},
		{"greater", "battery>20", OpGt, "battery"},
		{"less", "distance<5.5", OpLt, "distance"},
		{"bare-key", "holding_cup", OpTruthy, "holding_cup"},
		{"spaces-trimmed", "  door = open ", OpEq, "door"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.op, c.Op)
			assert.Equal(t, tt.key, c.Key)
		})
	}
}

func TestCompile_Malformed(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"whitespace-only", "   "},
		{"missing-key-eq", "=5"},
		{"missing-key-gt", ">5"},
		{"non-numeric-gt", "battery>full"},
		{"non-numeric-lt", "distance<near"},
		{"bare-key-with-space", "door open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expr)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestEval_Grammar(t *testing.T) {
	state := map[string]any{
		"door":     "open",
		"battery":  42.0,
		"count":    3,
		"holding":  true,
		"label":    " shelf ",
		"progress": "0.5",
	}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"eq-hit", "door=open", true},
		{"eq-miss", "door=closed", false},
		{"eq-missing-key", "window=open", false},
		{"eq-trims-value", "label=shelf", true},
		{"neq-hit", "door!=closed", true},
		{"neq-miss", "door!=open", false},
		{"neq-missing-key", "window!=open", true},
		{"gt-hit", "battery>20", true},
		{"gt-miss", "battery>99", false},
		{"gt-missing-defaults-zero", "missing>-1", true},
		{"gt-non-numeric-value", "door>1", false},
		{"lt-hit", "count<10", true},
		{"lt-string-number", "progress<1", true},
		{"truthy-bool", "holding", true},
		{"truthy-number", "battery", true},
		{"truthy-missing", "absent", false},
		{"truthy-string", "door", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Eval(state), "expr %q", tt.expr)
		})
	}
}

func TestEvalAll_Conjunction(t *testing.T) {
	state := map[string]any{"a": 1.0, "b": true}

	conds, err := CompileAll([]string{"a>0", "b"})
	require.NoError(t, err)
	assert.True(t, EvalAll(conds, state))

	conds, err = CompileAll([]string{"a>0", "b", "c=1"})
	require.NoError(t, err)
	assert.False(t, EvalAll(conds, state))
}

func TestCompileEffect(t *testing.T) {
	tests := []struct {
		name string
		expr string
		op   EffectOp
	}{
		{"assign", "door=closed", EffectAssign},
		{"assign-bool", "holding=false", EffectAssign},
		{"increment", "steps+=1", EffectIncrement},
		{"decrement", "battery-=2.5", EffectDecrement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := CompileEffect(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.op, e.Op)
		})
	}

	for _, bad := range []string{"", "door", "steps+=many", "=x"} {
		_, err := CompileEffect(bad)
		assert.Error(t, err, "expr %q", bad)
	}
}

func TestEffect_AssignTypedLiteral(t *testing.T) {
	e, err := CompileEffect("door_closed=false")
	require.NoError(t, err)

	next := ApplyAll(map[string]any{"door_closed": true}, []Effect{e})
	assert.Equal(t, false, next["door_closed"])

	e, err = CompileEffect("battery=80")
	require.NoError(t, err)
	next = ApplyAll(map[string]any{}, []Effect{e})
	assert.Equal(t, 80.0, next["battery"])

	e, err = CompileEffect("room=kitchen")
	require.NoError(t, err)
	next = ApplyAll(map[string]any{}, []Effect{e})
	assert.Equal(t, "kitchen", next["room"])
}

func TestApplyAll_CopyOnWrite(t *testing.T) {
	effects, err := CompileEffects([]string{"steps+=1", "door=open"})
	require.NoError(t, err)

	in := map[string]any{"steps": 2.0, "door": "closed"}
	out := ApplyAll(in, effects)

	assert.Equal(t, 2.0, in["steps"], "input map must not be mutated")
	assert.Equal(t, "closed", in["door"])
	assert.Equal(t, 3.0, out["steps"])
	assert.Equal(t, "open", out["door"])
}

func TestApplyAll_MissingKeyDefaultsZero(t *testing.T) {
	effects, err := CompileEffects([]string{"steps+=1"})
	require.NoError(t, err)

	out := ApplyAll(map[string]any{}, effects)
	assert.Equal(t, 1.0, out["steps"])
}

func TestApplyAll_DeclaredOrder(t *testing.T) {
	effects, err := CompileEffects([]string{"x=1", "x+=2", "x-=0.5"})
	require.NoError(t, err)

	out := ApplyAll(map[string]any{}, effects)
	assert.Equal(t, 2.5, out["x"])
}
