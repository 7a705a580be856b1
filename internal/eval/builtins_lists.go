package eval

import "sort"

func listBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		"length": {Name: "length", Fn: func(args ...Value) Value {
			l, err := ForceList(args[0])
			if err != nil {
				return err
			}
			return NewInt(int64(len(l.Elements)))
		}},
		"head": {Name: "head", Fn: func(args ...Value) Value {
			l, err := ForceList(args[0])
			if err != nil {
				return err
			}
			if len(l.Elements) == 0 {
				return newRangeError("head called on empty list")
			}
			return l.Elements[0]
		}},
		"tail": {Name: "tail", Fn: func(args ...Value) Value {
			l, err := ForceList(args[0])
			if err != nil {
				return err
			}
			if len(l.Elements) == 0 {
				return &List{}
			}
			return &List{Elements: l.Elements[1:]}
		}},
		"elem": curry2("elem", func(x, xs Value) Value {
			l, err := ForceList(xs)
			if err != nil {
				return err
			}
			for _, el := range l.Elements {
				eq, eqErr := deepEqual(x, el)
				if eqErr != nil {
					return eqErr
				}
				if eq {
					return TRUE
				}
			}
			return FALSE
		}),
		"elemAt": curry2("elemAt", func(xs, n Value) Value {
			l, err := ForceList(xs)
			if err != nil {
				return err
			}
			idx, err := forceInt64(n)
			if err != nil {
				return err
			}
			if idx < 0 || idx >= int64(len(l.Elements)) {
				return newRangeError("list index %d is out of bounds", idx)
			}
			return l.Elements[idx]
		}),
		"concatLists": {Name: "concatLists", Fn: func(args ...Value) Value {
			l, err := ForceList(args[0])
			if err != nil {
				return err
			}
			var out []Value
			for _, el := range l.Elements {
				inner, err := ForceList(el)
				if err != nil {
					return err
				}
				out = append(out, inner.Elements...)
			}
			return &List{Elements: out}
		}},
		"concatMap": curry2("concatMap", func(f, xs Value) Value {
			l, err := ForceList(xs)
			if err != nil {
				return err
			}
			var out []Value
			for _, el := range l.Elements {
				mapped, err := ForceList(Call(f, el))
				if err != nil {
					return err
				}
				out = append(out, mapped.Elements...)
			}
			return &List{Elements: out}
		}),
		"filter": curry2("filter", func(pred, xs Value) Value {
			l, err := ForceList(xs)
			if err != nil {
				return err
			}
			var out []Value
			for _, el := range l.Elements {
				keep, err := ForceBool(Call(pred, el))
				if err != nil {
					return err
				}
				if keep.Value {
					out = append(out, el)
				}
			}
			return &List{Elements: out}
		}),
		"map": curry2("map", func(f, xs Value) Value {
			l, err := ForceList(xs)
			if err != nil {
				return err
			}
			out := make([]Value, len(l.Elements))
			for i, el := range l.Elements {
				el := el
				out[i] = MkLazy(func() Value { return Call(f, el) })
			}
			return &List{Elements: out}
		}),
		"genList": curry2("genList", func(f, n Value) Value {
			count, err := forceInt64(n)
			if err != nil {
				return err
			}
			if count < 0 {
				return newRangeError("genList: negative length %d", count)
			}
			out := make([]Value, count)
			for i := int64(0); i < count; i++ {
				i := i
				out[i] = MkLazy(func() Value { return Call(f, NewInt(i)) })
			}
			return &List{Elements: out}
		}),
		"foldl'": curry3("foldl'", func(op, nul, xs Value) Value {
			l, err := ForceList(xs)
			if err != nil {
				return err
			}
			acc := Force(nul)
			if isError(acc) {
				return acc
			}
			for _, el := range l.Elements {
				acc = Force(Call(Call(op, acc), el))
				if isError(acc) {
					return acc
				}
			}
			return acc
		}),
		"partition": curry2("partition", func(pred, xs Value) Value {
			l, err := ForceList(xs)
			if err != nil {
				return err
			}
			var right, wrong []Value
			for _, el := range l.Elements {
				ok, err := ForceBool(Call(pred, el))
				if err != nil {
					return err
				}
				if ok.Value {
					right = append(right, el)
				} else {
					wrong = append(wrong, el)
				}
			}
			out := NewAttrSet()
			out.Pairs["right"] = &List{Elements: right}
			out.Pairs["wrong"] = &List{Elements: wrong}
			return out
		}),
		"sort": curry2("sort", builtinSort),
		"groupBy": curry2("groupBy", func(f, xs Value) Value {
			l, err := ForceList(xs)
			if err != nil {
				return err
			}
			out := NewAttrSet()
			for _, el := range l.Elements {
				key, err := ForceString(Call(f, el))
				if err != nil {
					return err
				}
				group, ok := out.Pairs[key.Value]
				if !ok {
					group = &List{}
					out.Pairs[key.Value] = group
				}
				gl := group.(*List)
				gl.Elements = append(gl.Elements, el)
			}
			return out
		}),
		"all": curry2("all", func(pred, xs Value) Value {
			l, err := ForceList(xs)
			if err != nil {
				return err
			}
			for _, el := range l.Elements {
				ok, err := ForceBool(Call(pred, el))
				if err != nil {
					return err
				}
				if !ok.Value {
					return FALSE
				}
			}
			return TRUE
		}),
		"any": curry2("any", func(pred, xs Value) Value {
			l, err := ForceList(xs)
			if err != nil {
				return err
			}
			for _, el := range l.Elements {
				ok, err := ForceBool(Call(pred, el))
				if err != nil {
					return err
				}
				if ok.Value {
					return TRUE
				}
			}
			return FALSE
		}),
		"genericClosure": {Name: "genericClosure", Fn: builtinGenericClosure},
	}
}

// builtinSort is a stable merge-driven sort: cmp a b == true means a
// sorts before b.
func builtinSort(cmp, xs Value) Value {
	l, err := ForceList(xs)
	if err != nil {
		return err
	}
	out := make([]Value, len(l.Elements))
	copy(out, l.Elements)
	var sortErr *Error
	sort.SliceStable(out, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		less, err := ForceBool(Call(Call(cmp, out[i]), out[j]))
		if err != nil {
			sortErr = err
			return false
		}
		return less.Value
	})
	if sortErr != nil {
		return sortErr
	}
	return &List{Elements: out}
}

// builtinGenericClosure computes the closure of startSet under operator,
// deduplicating elements by their `key` attribute.
func builtinGenericClosure(args ...Value) Value {
	spec, err := ForceAttrs(args[0])
	if err != nil {
		return err
	}
	startSet, ok := spec.Get("startSet")
	if !ok {
		return newEvalError("attribute 'startSet' missing in genericClosure argument")
	}
	operator, ok := spec.Get("operator")
	if !ok {
		return newEvalError("attribute 'operator' missing in genericClosure argument")
	}
	work, err := ForceList(startSet)
	if err != nil {
		return err
	}
	pending := make([]Value, len(work.Elements))
	copy(pending, work.Elements)

	var out []Value
	seen := make(map[string]struct{})
	for len(pending) > 0 {
		item := pending[0]
		pending = pending[1:]
		set, err := ForceAttrs(item)
		if err != nil {
			return err
		}
		keyVal, ok := set.Get("key")
		if !ok {
			return newEvalError("attribute 'key' missing in genericClosure element")
		}
		coerced := CoerceToString(keyVal)
		if isError(coerced) {
			return coerced
		}
		key := coerced.(*String).Value
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, set)
		next, err := ForceList(Call(operator, set))
		if err != nil {
			return err
		}
		pending = append(pending, next.Elements...)
	}
	return &List{Elements: out}
}
