package eval

import "testing"

func TestJSONRoundTrip(t *testing.T) {
	b := testBuiltins(t)

	set := NewAttrSet()
	set.Pairs["n"] = NewInt(42)
	set.Pairs["f"] = &Float{Value: 1.5}
	set.Pairs["s"] = NewString("hi")
	set.Pairs["null"] = NULL
	set.Pairs["flag"] = TRUE
	set.Pairs["xs"] = mkList(NewInt(1), NewString("two"))

	encoded := apply(t, b, "toJSON", set)
	s, ok := encoded.(*String)
	if !ok {
		t.Fatalf("toJSON = %v", encoded)
	}
	decoded := apply(t, b, "fromJSON", s)
	if got := Equal(decoded, set); got != TRUE {
		t.Errorf("round trip changed the value: %s", decoded.Inspect())
	}
}

func TestFromJSONNumbers(t *testing.T) {
	b := testBuiltins(t)
	got := apply(t, b, "fromJSON", NewString(`{"i": 3, "f": 3.5, "big": 123456789012345678901234567890}`)).(*AttrSet)
	if got.Pairs["i"].Type() != INT_OBJ {
		t.Errorf("integer literal decoded as %s", got.Pairs["i"].Type())
	}
	if got.Pairs["f"].Type() != FLOAT_OBJ {
		t.Errorf("float literal decoded as %s", got.Pairs["f"].Type())
	}
	big := got.Pairs["big"].(*Int)
	if big.Value.String() != "123456789012345678901234567890" {
		t.Errorf("big integer lost precision: %s", big.Value.String())
	}
}

func TestFromJSONProtoPollutionGuard(t *testing.T) {
	b := testBuiltins(t)
	got := apply(t, b, "fromJSON", NewString(`{"__proto__": {"x": 1}, "ok": 2}`)).(*AttrSet)
	if _, ok := got.Get("__proto__"); ok {
		t.Fatalf("__proto__ key survived parsing")
	}
	renamed, ok := got.Get("__pollutants__")
	if !ok {
		t.Fatalf("sanitised key missing: %s", got.Inspect())
	}
	if _, ok := renamed.(*AttrSet).Get("x"); !ok {
		t.Errorf("sanitised payload lost its value")
	}
	if got := intVal(t, got.Pairs["ok"]); got != 2 {
		t.Errorf("sibling key damaged: %d", got)
	}
}

func TestFromJSONBadInput(t *testing.T) {
	b := testBuiltins(t)
	got := apply(t, b, "fromJSON", NewString("{nope"))
	if err, ok := AsError(got); !ok || err.Kind != EvalErrorKind {
		t.Errorf("fromJSON on garbage = %v, want NixEvalError", got)
	}
}

func TestToJSONForcesThunksAndRejectsLambdas(t *testing.T) {
	b := testBuiltins(t)
	set := NewAttrSet()
	set.Pairs["lazy"] = MkLazy(func() Value { return NewInt(1) })
	got := apply(t, b, "toJSON", set)
	if got.(*String).Value != `{"lazy":1}` {
		t.Errorf("toJSON = %q", got.(*String).Value)
	}

	bad := NewAttrSet()
	bad.Pairs["fn"] = &Lambda{Fn: func(v Value) Value { return v }}
	if got := apply(t, b, "toJSON", bad); !isError(got) {
		t.Errorf("toJSON over lambda = %v, want error", got)
	}
}
