package eval

import (
	"bytes"
	"encoding/json"
	"math/big"
)

func jsonBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		"fromJSON": {Name: "fromJSON", Fn: func(args ...Value) Value {
			s, err := ForceString(args[0])
			if err != nil {
				return err
			}
			dec := json.NewDecoder(bytes.NewReader([]byte(s.Value)))
			dec.UseNumber()
			var tree interface{}
			if jsonErr := dec.Decode(&tree); jsonErr != nil {
				return newEvalError("fromJSON: %v", jsonErr)
			}
			return jsonToValue(tree)
		}},
		"toJSON": {Name: "toJSON", Fn: func(args ...Value) Value {
			tree, err := valueToJSON(args[0])
			if err != nil {
				return err
			}
			data, jsonErr := json.Marshal(tree)
			if jsonErr != nil {
				return newEvalError("toJSON: %v", jsonErr)
			}
			return NewString(string(data))
		}},
	}
}

// jsonToValue converts a decoded JSON tree. Any "__proto__" key in the
// input is renamed to "__pollutants__" so parsed documents can never
// masquerade as prototype tampering further down the line.
func jsonToValue(tree interface{}) Value {
	switch t := tree.(type) {
	case nil:
		return NULL
	case bool:
		return nativeBoolToBooleanObject(t)
	case json.Number:
		if i, ok := new(big.Int).SetString(t.String(), 10); ok {
			return &Int{Value: i}
		}
		f, err := t.Float64()
		if err != nil {
			return newEvalError("fromJSON: bad number %q", t.String())
		}
		return &Float{Value: f}
	case string:
		return NewString(t)
	case []interface{}:
		out := make([]Value, len(t))
		for i, el := range t {
			conv := jsonToValue(el)
			if isError(conv) {
				return conv
			}
			out[i] = conv
		}
		return &List{Elements: out}
	case map[string]interface{}:
		out := NewAttrSet()
		for k, v := range t {
			if k == reservedProtoName {
				k = "__pollutants__"
			}
			conv := jsonToValue(v)
			if isError(conv) {
				return conv
			}
			out.Pairs[k] = conv
		}
		return out
	default:
		return newEvalError("fromJSON: unsupported JSON node")
	}
}

// valueToJSON deep-forces v into a json.Marshal-able tree.
func valueToJSON(v Value) (interface{}, *Error) {
	forced := Force(v)
	if err, ok := AsError(forced); ok {
		return nil, err
	}
	switch val := forced.(type) {
	case *Null:
		return nil, nil
	case *Bool:
		return val.Value, nil
	case *Int:
		if n, ok := val.Int64(); ok {
			return n, nil
		}
		return json.Number(val.Value.String()), nil
	case *Float:
		return val.Value, nil
	case *String:
		return val.Value, nil
	case *Path:
		return val.Value, nil
	case *List:
		out := make([]interface{}, len(val.Elements))
		for i, el := range val.Elements {
			conv, err := valueToJSON(el)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case *AttrSet:
		if toS, ok := val.Get("__toString"); ok {
			res := CoerceToString(Call(toS, val))
			if err, isErr := AsError(res); isErr {
				return nil, err
			}
			return res.(*String).Value, nil
		}
		if outPath, ok := val.Get("outPath"); ok {
			return valueToJSON(outPath)
		}
		out := make(map[string]interface{}, len(val.Pairs))
		for k, av := range val.Pairs {
			conv, err := valueToJSON(av)
			if err != nil {
				return nil, err
			}
			out[k] = conv
		}
		return out, nil
	default:
		return nil, newTypeError("cannot convert %s to JSON", forced.NixType())
	}
}
