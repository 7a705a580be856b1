package eval

import (
	"math"
	"math/big"
)

func mathBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		"add": curry2("add", Add),
		"sub": curry2("sub", Sub),
		"mul": curry2("mul", Mul),
		"div": curry2("div", Div),
		"lessThan": curry2("lessThan", func(a, b Value) Value {
			return Less(a, b)
		}),
		"bitAnd": curry2("bitAnd", func(a, b Value) Value {
			return bitwise(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).And(x, y) })
		}),
		"bitOr": curry2("bitOr", func(a, b Value) Value {
			return bitwise(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Or(x, y) })
		}),
		"bitXor": curry2("bitXor", func(a, b Value) Value {
			return bitwise(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Xor(x, y) })
		}),
		"ceil": {Name: "ceil", Fn: func(args ...Value) Value {
			return rounding(args[0], math.Ceil)
		}},
		"floor": {Name: "floor", Fn: func(args ...Value) Value {
			return rounding(args[0], math.Floor)
		}},
	}
}

func bitwise(a, b Value, fn func(x, y *big.Int) *big.Int) Value {
	fa, fb, err := forceBoth(a, b)
	if err != nil {
		return err
	}
	ia, ok := fa.(*Int)
	if !ok {
		return newTypeError("invalid input type (%s), expected (int)", fa.NixType())
	}
	ib, ok := fb.(*Int)
	if !ok {
		return newTypeError("invalid input type (%s), expected (int)", fb.NixType())
	}
	return &Int{Value: fn(ia.Value, ib.Value)}
}

func rounding(v Value, fn func(float64) float64) Value {
	forced, err := ForceNumber(v)
	if err != nil {
		return err
	}
	if i, ok := forced.(*Int); ok {
		return i
	}
	rounded := fn(forced.(*Float).Value)
	bi, _ := big.NewFloat(rounded).Int(nil)
	return &Int{Value: bi}
}
