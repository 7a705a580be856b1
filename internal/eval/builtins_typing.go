package eval

// typingBuiltins covers the type predicates and typeOf.
func typingBuiltins() map[string]*Builtin {
	predicate := func(name string, test func(Value) bool) *Builtin {
		return &Builtin{Name: name, Fn: func(args ...Value) Value {
			forced := Force(args[0])
			if isError(forced) {
				return forced
			}
			return nativeBoolToBooleanObject(test(forced))
		}}
	}
	return map[string]*Builtin{
		"isAttrs":    predicate("isAttrs", func(v Value) bool { return v.Type() == ATTRSET_OBJ }),
		"isBool":     predicate("isBool", func(v Value) bool { return v.Type() == BOOL_OBJ }),
		"isFloat":    predicate("isFloat", func(v Value) bool { return v.Type() == FLOAT_OBJ }),
		"isInt":      predicate("isInt", func(v Value) bool { return v.Type() == INT_OBJ }),
		"isList":     predicate("isList", func(v Value) bool { return v.Type() == LIST_OBJ }),
		"isNull":     predicate("isNull", func(v Value) bool { return v.Type() == NULL_OBJ }),
		"isPath":     predicate("isPath", func(v Value) bool { return v.Type() == PATH_OBJ }),
		"isString":   predicate("isString", func(v Value) bool { return v.Type() == STRING_OBJ }),
		"isFunction": predicate("isFunction", func(v Value) bool { return v.Type() == LAMBDA_OBJ || v.Type() == BUILTIN_OBJ }),
		"typeOf": {Name: "typeOf", Fn: func(args ...Value) Value {
			return TypeOf(args[0])
		}},
		"functionArgs": {Name: "functionArgs", Fn: func(args ...Value) Value {
			forced := Force(args[0])
			if isError(forced) {
				return forced
			}
			lam, ok := forced.(*Lambda)
			if !ok {
				if _, isBuiltin := forced.(*Builtin); isBuiltin {
					return NewAttrSet()
				}
				return newTypeError("invalid input type (%s), expected (lambda)", forced.NixType())
			}
			out := NewAttrSet()
			for _, f := range lam.Formals {
				out.Pairs[f.Name] = nativeBoolToBooleanObject(f.HasDefault)
			}
			return out
		}},
	}
}
