package eval

import (
	"reflect"
	"testing"
)

func TestAttrNamesSortedAndValuesAligned(t *testing.T) {
	b := testBuiltins(t)
	set := NewAttrSet()
	set.Pairs["zeta"] = NewInt(3)
	set.Pairs["alpha"] = NewInt(1)
	set.Pairs["mid"] = NewInt(2)

	names := apply(t, b, "attrNames", set).(*List)
	var got []string
	for _, el := range names.Elements {
		got = append(got, el.(*String).Value)
	}
	if !reflect.DeepEqual(got, []string{"alpha", "mid", "zeta"}) {
		t.Errorf("attrNames = %v", got)
	}

	values := apply(t, b, "attrValues", set).(*List)
	var vals []int64
	for _, el := range values.Elements {
		vals = append(vals, intVal(t, el))
	}
	if !reflect.DeepEqual(vals, []int64{1, 2, 3}) {
		t.Errorf("attrValues = %v", vals)
	}
}

func TestHasGetAttr(t *testing.T) {
	b := testBuiltins(t)
	set := NewAttrSet()
	set.Pairs["k"] = NewInt(1)

	if got := apply(t, b, "hasAttr", NewString("k"), set); got != TRUE {
		t.Errorf("hasAttr k = %v", got)
	}
	if got := apply(t, b, "hasAttr", NewString("x"), set); got != FALSE {
		t.Errorf("hasAttr x = %v", got)
	}
	if got := intVal(t, apply(t, b, "getAttr", NewString("k"), set)); got != 1 {
		t.Errorf("getAttr k = %d", got)
	}
	got := apply(t, b, "getAttr", NewString("x"), set)
	if err, ok := AsError(got); !ok || err.Kind != AttrMissingKind {
		t.Errorf("getAttr missing = %v, want AttrMissingError", got)
	}
}

func TestIntersectAttrs(t *testing.T) {
	b := testBuiltins(t)
	e1 := NewAttrSet()
	e1.Pairs["a"] = NewInt(1)
	e1.Pairs["b"] = NewInt(2)
	e2 := NewAttrSet()
	e2.Pairs["b"] = NewInt(20)
	e2.Pairs["c"] = NewInt(30)

	out := apply(t, b, "intersectAttrs", e1, e2).(*AttrSet)
	if len(out.Pairs) != 1 {
		t.Fatalf("intersection has %d keys", len(out.Pairs))
	}
	if got := intVal(t, out.Pairs["b"]); got != 20 {
		t.Errorf("intersection takes values from e2: b = %d", got)
	}
}

func TestListToAttrsRoundTrip(t *testing.T) {
	b := testBuiltins(t)
	set := NewAttrSet()
	set.Pairs["x"] = NewInt(1)
	set.Pairs["y"] = NewString("s")

	// listToAttrs (map (k: {name=k; value=s.${k}}) (attrNames s)) == s
	var entries []Value
	for _, k := range set.SortedKeys() {
		e := NewAttrSet()
		e.Pairs["name"] = NewString(k)
		e.Pairs["value"] = set.Pairs[k]
		entries = append(entries, e)
	}
	rebuilt := apply(t, b, "listToAttrs", mkList(entries...))
	if got := Equal(rebuilt, set); got != TRUE {
		t.Errorf("round trip lost structure: %v", rebuilt.Inspect())
	}

	// First occurrence wins on duplicate names.
	dup1 := NewAttrSet()
	dup1.Pairs["name"] = NewString("k")
	dup1.Pairs["value"] = NewInt(1)
	dup2 := NewAttrSet()
	dup2.Pairs["name"] = NewString("k")
	dup2.Pairs["value"] = NewInt(2)
	out := apply(t, b, "listToAttrs", mkList(dup1, dup2)).(*AttrSet)
	if got := intVal(t, out.Pairs["k"]); got != 1 {
		t.Errorf("duplicate name resolved to %d, want first (1)", got)
	}
}

func TestMapAttrsLazy(t *testing.T) {
	b := testBuiltins(t)
	calls := 0
	f := &Lambda{Fn: func(name Value) Value {
		return &Lambda{Fn: func(v Value) Value {
			calls++
			return Add(v, NewInt(1))
		}}
	}}
	set := NewAttrSet()
	set.Pairs["a"] = NewInt(1)
	set.Pairs["b"] = NewInt(2)

	out := apply(t, b, "mapAttrs", f, set).(*AttrSet)
	if calls != 0 {
		t.Errorf("mapAttrs ran %d mappers eagerly", calls)
	}
	if got := intVal(t, out.Pairs["b"]); got != 3 {
		t.Errorf("mapAttrs b = %d, want 3", got)
	}
	if calls != 1 {
		t.Errorf("forcing one attr ran %d mappers", calls)
	}
}

func TestRemoveAttrsPurity(t *testing.T) {
	b := testBuiltins(t)
	set := NewAttrSet()
	set.Pairs["keep"] = NewInt(1)
	set.Pairs["drop"] = NewInt(2)

	out := apply(t, b, "removeAttrs", set, mkList(NewString("drop"), NewString("ghost"))).(*AttrSet)
	if _, ok := out.Get("drop"); ok {
		t.Errorf("removeAttrs kept dropped key")
	}
	if _, ok := out.Get("keep"); !ok {
		t.Errorf("removeAttrs lost unrelated key")
	}
	if _, ok := set.Get("drop"); !ok {
		t.Errorf("removeAttrs mutated its input")
	}
}

func TestCatAttrs(t *testing.T) {
	b := testBuiltins(t)
	s1 := NewAttrSet()
	s1.Pairs["a"] = NewInt(1)
	s2 := NewAttrSet()
	s2.Pairs["b"] = NewInt(2)
	s3 := NewAttrSet()
	s3.Pairs["a"] = NewInt(3)

	out := apply(t, b, "catAttrs", NewString("a"), mkList(s1, s2, s3)).(*List)
	if len(out.Elements) != 2 || intVal(t, out.Elements[1]) != 3 {
		t.Errorf("catAttrs = %v", out.Inspect())
	}
}
