package eval

import "strings"

// ForceString forces v and asserts it is a string.
func ForceString(v Value) (*String, *Error) {
	forced := Force(v)
	if err, ok := AsError(forced); ok {
		return nil, err
	}
	s, ok := forced.(*String)
	if !ok {
		return nil, newTypeError("invalid input type (%s), expected (string)", forced.NixType())
	}
	return s, nil
}

// ForceNumber forces v and asserts it is an int or a float.
func ForceNumber(v Value) (Value, *Error) {
	forced := Force(v)
	if err, ok := AsError(forced); ok {
		return nil, err
	}
	switch forced.(type) {
	case *Int, *Float:
		return forced, nil
	}
	return nil, newTypeError("invalid input type (%s), expected (number)", forced.NixType())
}

// ForceList forces v and asserts it is a list.
func ForceList(v Value) (*List, *Error) {
	forced := Force(v)
	if err, ok := AsError(forced); ok {
		return nil, err
	}
	l, ok := forced.(*List)
	if !ok {
		return nil, newTypeError("invalid input type (%s), expected (list)", forced.NixType())
	}
	return l, nil
}

// ForceAttrs forces v and asserts it is an attr-set.
func ForceAttrs(v Value) (*AttrSet, *Error) {
	forced := Force(v)
	if err, ok := AsError(forced); ok {
		return nil, err
	}
	a, ok := forced.(*AttrSet)
	if !ok {
		return nil, newTypeError("invalid input type (%s), expected (set)", forced.NixType())
	}
	return a, nil
}

// ForceBool forces v and asserts it is a bool.
func ForceBool(v Value) (*Bool, *Error) {
	forced := Force(v)
	if err, ok := AsError(forced); ok {
		return nil, err
	}
	b, ok := forced.(*Bool)
	if !ok {
		return nil, newTypeError("invalid input type (%s), expected (bool)", forced.NixType())
	}
	return b, nil
}

func IsNull(v Value) bool   { return Force(v).Type() == NULL_OBJ }
func IsBool(v Value) bool   { return Force(v).Type() == BOOL_OBJ }
func IsInt(v Value) bool    { return Force(v).Type() == INT_OBJ }
func IsFloat(v Value) bool  { return Force(v).Type() == FLOAT_OBJ }
func IsString(v Value) bool { return Force(v).Type() == STRING_OBJ }
func IsPath(v Value) bool   { return Force(v).Type() == PATH_OBJ }
func IsList(v Value) bool   { return Force(v).Type() == LIST_OBJ }
func IsAttrs(v Value) bool  { return Force(v).Type() == ATTRSET_OBJ }
func IsFunction(v Value) bool {
	t := Force(v).Type()
	return t == LAMBDA_OBJ || t == BUILTIN_OBJ
}

// TypeOf reports the Nix-visible type name of the forced value.
func TypeOf(v Value) Value {
	forced := Force(v)
	if isError(forced) {
		return forced
	}
	return NewString(forced.NixType())
}

// CoerceToString implements the nix_to_string coercion: strings pass
// through, numbers stringify, true maps to "1" and false to "", null maps
// to "", lists coerce elementwise joined with a space, attr-sets go
// through __toString or outPath.
func CoerceToString(v Value) Value {
	forced := Force(v)
	switch val := forced.(type) {
	case *Error:
		return val
	case *String:
		return val
	case *Path:
		return NewString(val.Value)
	case *Int:
		return NewString(val.Value.String())
	case *Float:
		return NewString(val.Inspect())
	case *Bool:
		if val.Value {
			return NewString("1")
		}
		return NewString("")
	case *Null:
		return NewString("")
	case *List:
		parts := make([]string, 0, len(val.Elements))
		for _, el := range val.Elements {
			coerced := CoerceToString(el)
			if isError(coerced) {
				return coerced
			}
			parts = append(parts, coerced.(*String).Value)
		}
		return NewString(strings.Join(parts, " "))
	case *AttrSet:
		if toS, ok := val.Get("__toString"); ok {
			res := Force(Call(toS, val))
			if isError(res) {
				return res
			}
			return CoerceToString(res)
		}
		if outPath, ok := val.Get("outPath"); ok {
			return CoerceToString(outPath)
		}
		return newTypeError("cannot coerce a set to a string")
	default:
		return newTypeError("cannot coerce a %s to a string", forced.NixType())
	}
}
