package eval

type thunkState int

const (
	thunkUnforced thunkState = iota
	thunkInProgress
	thunkForced
)

// Thunk is a memoised suspended computation. A forced thunk never
// transitions back; a failed force restores the unforced state so callers
// that catch the error (tryEval, orDefault) can retry.
type Thunk struct {
	state    thunkState
	producer func() Value
	value    Value
}

// MkLazy wraps a nullary producer in a thunk.
func MkLazy(producer func() Value) *Thunk {
	return &Thunk{state: thunkUnforced, producer: producer}
}

func (t *Thunk) Type() ValueType { return THUNK_OBJ }
func (t *Thunk) NixType() string { return Force(t).NixType() }
func (t *Thunk) Inspect() string {
	if t.state == thunkForced {
		return t.value.Inspect()
	}
	return "<THUNK>"
}

// Force drives v to weak head normal form. Non-thunks come back verbatim.
// When a producer returns another thunk the outer thunk collapses onto it,
// so no nested Thunk-of-Thunk is ever observable.
func Force(v Value) Value {
	t, ok := v.(*Thunk)
	if !ok {
		return v
	}
	for {
		switch t.state {
		case thunkForced:
			return t.value
		case thunkInProgress:
			// Leave the in-progress mark; the outer force frame
			// restores the unforced state when this error reaches it.
			return newEvalError("self-referential evaluation")
		}
		t.state = thunkInProgress
		result := t.producer()
		if isError(result) {
			t.state = thunkUnforced
			return result
		}
		if inner, ok := result.(*Thunk); ok {
			// Splice: force the inner thunk in place and adopt its
			// value, so neither producer ever runs twice.
			if inner == t {
				t.state = thunkUnforced
				return newEvalError("self-referential evaluation")
			}
			innerValue := Force(inner)
			if isError(innerValue) {
				t.state = thunkUnforced
				return innerValue
			}
			t.state = thunkForced
			t.value = innerValue
			t.producer = nil
			return innerValue
		}
		t.state = thunkForced
		t.value = result
		t.producer = nil
		return result
	}
}

// ForceDeep forces v and recursively every list element and attr-set
// value underneath it. The first error encountered is returned.
func ForceDeep(v Value) Value {
	v = Force(v)
	if isError(v) {
		return v
	}
	switch val := v.(type) {
	case *List:
		for i, el := range val.Elements {
			forced := ForceDeep(el)
			if isError(forced) {
				return forced
			}
			val.Elements[i] = forced
		}
	case *AttrSet:
		for _, k := range val.SortedKeys() {
			forced := ForceDeep(val.Pairs[k])
			if isError(forced) {
				return forced
			}
			val.Pairs[k] = forced
		}
	}
	return v
}

// Select forces v and reads attribute name from the result. This is the
// explicit form of transparent thunk field access: the transpiler emits a
// Select call at every attribute consumption site. A missing attribute is
// an AttrMissingError so orDefault can tell it apart from genuine type
// errors.
func Select(v Value, name string) Value {
	forced := Force(v)
	if isError(forced) {
		return forced
	}
	set, ok := forced.(*AttrSet)
	if !ok {
		return newTypeError("invalid input type (%s), expected (set)", forced.NixType())
	}
	val, ok := set.Get(name)
	if !ok {
		return newAttrMissing("attribute '%s' missing", name)
	}
	return val
}
