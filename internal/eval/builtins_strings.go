package eval

import "strings"

// stringBuiltins covers the string surface, including the context
// builtins of the (otherwise stubbed) string-context mechanism.
func stringBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		"stringLength": {Name: "stringLength", Fn: func(args ...Value) Value {
			s, err := ForceString(args[0])
			if err != nil {
				return err
			}
			return NewInt(int64(len(s.Value)))
		}},
		"baseNameOf": {Name: "baseNameOf", Fn: func(args ...Value) Value {
			s, err := coerceToStringOrPath(args[0])
			if err != nil {
				return err
			}
			if idx := strings.LastIndex(s, "/"); idx >= 0 {
				return NewString(s[idx+1:])
			}
			return NewString(s)
		}},
		"dirOf": {Name: "dirOf", Fn: func(args ...Value) Value {
			forced := Force(args[0])
			if isError(forced) {
				return forced
			}
			s, err := coerceToStringOrPath(forced)
			if err != nil {
				return err
			}
			idx := strings.LastIndex(s, "/")
			dir := ""
			if idx > 0 {
				dir = s[:idx]
			} else if idx == 0 {
				dir = "/"
			}
			if forced.Type() == PATH_OBJ {
				return &Path{Value: dir}
			}
			return NewString(dir)
		}},
		"concatStringsSep": curry2("concatStringsSep", func(sep, list Value) Value {
			s, err := ForceString(sep)
			if err != nil {
				return err
			}
			l, err := ForceList(list)
			if err != nil {
				return err
			}
			parts := make([]string, 0, len(l.Elements))
			for _, el := range l.Elements {
				coerced := CoerceToString(el)
				if isError(coerced) {
					return coerced
				}
				parts = append(parts, coerced.(*String).Value)
			}
			return NewString(strings.Join(parts, s.Value))
		}),
		"toString": {Name: "toString", Fn: func(args ...Value) Value {
			return CoerceToString(args[0])
		}},
		"substring": curry3("substring", func(start, length, str Value) Value {
			st, err := forceInt64(start)
			if err != nil {
				return err
			}
			ln, err := forceInt64(length)
			if err != nil {
				return err
			}
			s, err := ForceString(str)
			if err != nil {
				return err
			}
			if st < 0 {
				return newRangeError("negative start position in substring")
			}
			if st > int64(len(s.Value)) {
				return NewString("")
			}
			end := int64(len(s.Value))
			if ln >= 0 && st+ln < end {
				end = st + ln
			}
			return NewString(s.Value[st:end])
		}),
		"replaceStrings": curry3("replaceStrings", builtinReplaceStrings),
		"hasContext": {Name: "hasContext", Fn: func(args ...Value) Value {
			s, err := ForceString(args[0])
			if err != nil {
				return err
			}
			return nativeBoolToBooleanObject(len(s.Context) > 0)
		}},
		"getContext": {Name: "getContext", Fn: func(args ...Value) Value {
			s, err := ForceString(args[0])
			if err != nil {
				return err
			}
			out := NewAttrSet()
			for token := range s.Context {
				out.Pairs[token] = NewAttrSet()
			}
			return out
		}},
		"appendContext": curry2("appendContext", func(str, ctx Value) Value {
			s, err := ForceString(str)
			if err != nil {
				return err
			}
			set, err := ForceAttrs(ctx)
			if err != nil {
				return err
			}
			return s.WithContext(set.SortedKeys()...)
		}),
		"unsafeDiscardStringContext": {Name: "unsafeDiscardStringContext", Fn: func(args ...Value) Value {
			s, err := ForceString(args[0])
			if err != nil {
				return err
			}
			return NewString(s.Value)
		}},
	}
}

// builtinReplaceStrings performs simultaneous left-to-right substitution.
// Replacements are spliced into the output directly, never rescanned, so
// inserted text cannot trigger further matches.
func builtinReplaceStrings(from, to, str Value) Value {
	fl, err := ForceList(from)
	if err != nil {
		return err
	}
	tl, err := ForceList(to)
	if err != nil {
		return err
	}
	if len(fl.Elements) != len(tl.Elements) {
		return newEvalError("replaceStrings: 'from' and 'to' lists differ in length (%d != %d)", len(fl.Elements), len(tl.Elements))
	}
	s, err := ForceString(str)
	if err != nil {
		return err
	}
	froms := make([]string, len(fl.Elements))
	tos := make([]string, len(tl.Elements))
	for i := range fl.Elements {
		fs, err := ForceString(fl.Elements[i])
		if err != nil {
			return err
		}
		ts, err := ForceString(tl.Elements[i])
		if err != nil {
			return err
		}
		froms[i], tos[i] = fs.Value, ts.Value
	}

	var out strings.Builder
	input := s.Value
	pos := 0
	for pos < len(input) {
		matched := false
		for i, f := range froms {
			if strings.HasPrefix(input[pos:], f) {
				out.WriteString(tos[i])
				if f == "" {
					// An empty match consumes nothing: copy one byte so
					// the scan advances.
					out.WriteByte(input[pos])
					pos++
				} else {
					pos += len(f)
				}
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte(input[pos])
			pos++
		}
	}
	// An empty 'from' matches the empty string once at every position,
	// including the end of the input; for an empty input that is its
	// single insertion.
	for i, f := range froms {
		if f == "" {
			out.WriteString(tos[i])
			break
		}
	}
	return NewString(out.String())
}

func coerceToStringOrPath(v Value) (string, *Error) {
	forced := Force(v)
	if err, ok := AsError(forced); ok {
		return "", err
	}
	switch val := forced.(type) {
	case *String:
		return val.Value, nil
	case *Path:
		return val.Value, nil
	default:
		return "", newTypeError("invalid input type (%s), expected (string)", forced.NixType())
	}
}

func forceInt64(v Value) (int64, *Error) {
	forced := Force(v)
	if err, ok := AsError(forced); ok {
		return 0, err
	}
	i, ok := forced.(*Int)
	if !ok {
		return 0, newTypeError("invalid input type (%s), expected (int)", forced.NixType())
	}
	n, fits := i.Int64()
	if !fits {
		return 0, newRangeError("integer %s out of host range", i.Value.String())
	}
	return n, nil
}
