package eval

func attrsBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		"attrNames": {Name: "attrNames", Fn: func(args ...Value) Value {
			set, err := ForceAttrs(args[0])
			if err != nil {
				return err
			}
			keys := set.SortedKeys()
			out := make([]Value, len(keys))
			for i, k := range keys {
				out[i] = NewString(k)
			}
			return &List{Elements: out}
		}},
		"attrValues": {Name: "attrValues", Fn: func(args ...Value) Value {
			set, err := ForceAttrs(args[0])
			if err != nil {
				return err
			}
			keys := set.SortedKeys()
			out := make([]Value, len(keys))
			for i, k := range keys {
				out[i] = set.Pairs[k]
			}
			return &List{Elements: out}
		}},
		"hasAttr": curry2("hasAttr", func(name, set Value) Value {
			s, err := ForceString(name)
			if err != nil {
				return err
			}
			a, err := ForceAttrs(set)
			if err != nil {
				return err
			}
			_, ok := a.Get(s.Value)
			return nativeBoolToBooleanObject(ok)
		}),
		"getAttr": curry2("getAttr", func(name, set Value) Value {
			s, err := ForceString(name)
			if err != nil {
				return err
			}
			a, err := ForceAttrs(set)
			if err != nil {
				return err
			}
			v, ok := a.Get(s.Value)
			if !ok {
				return newAttrMissing("attribute '%s' missing", s.Value)
			}
			return v
		}),
		"intersectAttrs": curry2("intersectAttrs", func(e1, e2 Value) Value {
			a, err := ForceAttrs(e1)
			if err != nil {
				return err
			}
			b, err := ForceAttrs(e2)
			if err != nil {
				return err
			}
			out := NewAttrSet()
			for k, v := range b.Pairs {
				if _, ok := a.Get(k); ok {
					out.Pairs[k] = v
				}
			}
			return out
		}),
		"listToAttrs": {Name: "listToAttrs", Fn: func(args ...Value) Value {
			l, err := ForceList(args[0])
			if err != nil {
				return err
			}
			out := NewAttrSet()
			for _, el := range l.Elements {
				entry, err := ForceAttrs(el)
				if err != nil {
					return err
				}
				nameVal, ok := entry.Get("name")
				if !ok {
					return newEvalError("attribute 'name' missing in listToAttrs element")
				}
				name, err := ForceString(nameVal)
				if err != nil {
					return err
				}
				value, ok := entry.Get("value")
				if !ok {
					return newEvalError("attribute 'value' missing in listToAttrs element")
				}
				// First occurrence wins, matching the reference
				// interpreter.
				if _, dup := out.Get(name.Value); !dup {
					out.Pairs[name.Value] = value
				}
			}
			return out
		}},
		"mapAttrs": curry2("mapAttrs", func(f, set Value) Value {
			a, err := ForceAttrs(set)
			if err != nil {
				return err
			}
			out := NewAttrSet()
			for k, v := range a.Pairs {
				k, v := k, v
				out.Pairs[k] = MkLazy(func() Value {
					return Call(Call(f, NewString(k)), v)
				})
			}
			return out
		}),
		"removeAttrs": curry2("removeAttrs", func(set, names Value) Value {
			a, err := ForceAttrs(set)
			if err != nil {
				return err
			}
			l, err := ForceList(names)
			if err != nil {
				return err
			}
			out := a.Copy()
			for _, el := range l.Elements {
				name, err := ForceString(el)
				if err != nil {
					return err
				}
				delete(out.Pairs, name.Value)
			}
			return out
		}),
		"catAttrs": curry2("catAttrs", func(name, list Value) Value {
			s, err := ForceString(name)
			if err != nil {
				return err
			}
			l, err := ForceList(list)
			if err != nil {
				return err
			}
			var out []Value
			for _, el := range l.Elements {
				set, err := ForceAttrs(el)
				if err != nil {
					return err
				}
				if v, ok := set.Get(s.Value); ok {
					out = append(out, v)
				}
			}
			return &List{Elements: out}
		}),
	}
}
