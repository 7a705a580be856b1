package eval

import "math/big"

// opTypeName collapses int/float into "number" for operator diagnostics.
func opTypeName(v Value) string {
	switch v.Type() {
	case INT_OBJ, FLOAT_OBJ:
		return "number"
	default:
		return v.NixType()
	}
}

func isNumber(v Value) bool {
	t := v.Type()
	return t == INT_OBJ || t == FLOAT_OBJ
}

func asFloat(v Value) float64 {
	switch n := v.(type) {
	case *Int:
		f, _ := new(big.Float).SetInt(n.Value).Float64()
		return f
	case *Float:
		return n.Value
	}
	return 0
}

func forceBoth(a, b Value) (Value, Value, *Error) {
	fa := Force(a)
	if err, ok := AsError(fa); ok {
		return nil, nil, err
	}
	fb := Force(b)
	if err, ok := AsError(fb); ok {
		return nil, nil, err
	}
	return fa, fb, nil
}

// Add implements `+`: number addition, string concatenation, and the
// path/string mixes (path + string coerces the string and stays a path).
func Add(a, b Value) Value {
	fa, fb, err := forceBoth(a, b)
	if err != nil {
		return err
	}
	switch {
	case isNumber(fa) && isNumber(fb):
		if ia, ok := fa.(*Int); ok {
			if ib, ok := fb.(*Int); ok {
				return &Int{Value: new(big.Int).Add(ia.Value, ib.Value)}
			}
		}
		return &Float{Value: asFloat(fa) + asFloat(fb)}
	case fa.Type() == STRING_OBJ && fb.Type() == STRING_OBJ:
		return NewString(fa.(*String).Value + fb.(*String).Value)
	case fa.Type() == PATH_OBJ && (fb.Type() == STRING_OBJ || fb.Type() == PATH_OBJ):
		coerced := CoerceToString(fb)
		if isError(coerced) {
			return coerced
		}
		return &Path{Value: fa.(*Path).Value + coerced.(*String).Value}
	case fa.Type() == STRING_OBJ && fb.Type() == PATH_OBJ:
		return NewString(fa.(*String).Value + fb.(*Path).Value)
	}
	if opTypeName(fa) != opTypeName(fb) {
		return newTypeError("given types mismatch (%s != %s)", opTypeName(fa), opTypeName(fb))
	}
	return newTypeError("invalid input type (%s), expected (number or string)", opTypeName(fa))
}

// Sub implements `-`; both operands must be numbers, integer stays
// integer when both are.
func Sub(a, b Value) Value {
	return arith(a, b,
		func(x, y *big.Int) Value { return &Int{Value: new(big.Int).Sub(x, y)} },
		func(x, y float64) Value { return &Float{Value: x - y} })
}

// Mul implements `*`.
func Mul(a, b Value) Value {
	return arith(a, b,
		func(x, y *big.Int) Value { return &Int{Value: new(big.Int).Mul(x, y)} },
		func(x, y float64) Value { return &Float{Value: x * y} })
}

// Div implements `/`. Division by zero is a RangeError. Integer division
// truncates toward zero.
func Div(a, b Value) Value {
	fa, fb, err := forceBoth(a, b)
	if err != nil {
		return err
	}
	if !isNumber(fa) || !isNumber(fb) {
		return arithTypeError(fa, fb)
	}
	if ib, ok := fb.(*Int); ok && ib.Value.Sign() == 0 {
		return newRangeError("Division by zero")
	}
	if fbf, ok := fb.(*Float); ok && fbf.Value == 0 {
		return newRangeError("Division by zero")
	}
	if ia, ok := fa.(*Int); ok {
		if ib, ok := fb.(*Int); ok {
			return &Int{Value: new(big.Int).Quo(ia.Value, ib.Value)}
		}
	}
	return &Float{Value: asFloat(fa) / asFloat(fb)}
}

func arith(a, b Value, intFn func(x, y *big.Int) Value, floatFn func(x, y float64) Value) Value {
	fa, fb, err := forceBoth(a, b)
	if err != nil {
		return err
	}
	if !isNumber(fa) || !isNumber(fb) {
		return arithTypeError(fa, fb)
	}
	if ia, ok := fa.(*Int); ok {
		if ib, ok := fb.(*Int); ok {
			return intFn(ia.Value, ib.Value)
		}
	}
	return floatFn(asFloat(fa), asFloat(fb))
}

func arithTypeError(fa, fb Value) *Error {
	if opTypeName(fa) != opTypeName(fb) {
		return newTypeError("given types mismatch (%s != %s)", opTypeName(fa), opTypeName(fb))
	}
	return newTypeError("invalid input type (%s), expected (number)", opTypeName(fa))
}

// ConcatLists implements `++`.
func ConcatLists(a, b Value) Value {
	la, err := ForceList(a)
	if err != nil {
		return err
	}
	lb, err := ForceList(b)
	if err != nil {
		return err
	}
	out := make([]Value, 0, len(la.Elements)+len(lb.Elements))
	out = append(out, la.Elements...)
	out = append(out, lb.Elements...)
	return &List{Elements: out}
}

// Update implements `//`: shallow right-wins merge into a fresh attr-set,
// operands untouched.
func Update(a, b Value) Value {
	sa, err := ForceAttrs(a)
	if err != nil {
		return err
	}
	sb, err := ForceAttrs(b)
	if err != nil {
		return err
	}
	out := sa.Copy()
	for k, v := range sb.Pairs {
		out.Pairs[k] = v
	}
	return out
}

// And implements `&&`. The right operand is only forced when the left is
// true, so a throwing right side short-circuits away.
func And(a, b Value) Value {
	ba, err := ForceBool(a)
	if err != nil {
		return err
	}
	if !ba.Value {
		return FALSE
	}
	bb, err := ForceBool(b)
	if err != nil {
		return err
	}
	return nativeBoolToBooleanObject(bb.Value)
}

// Or implements `||`.
func Or(a, b Value) Value {
	ba, err := ForceBool(a)
	if err != nil {
		return err
	}
	if ba.Value {
		return TRUE
	}
	bb, err := ForceBool(b)
	if err != nil {
		return err
	}
	return nativeBoolToBooleanObject(bb.Value)
}

// Implication implements `->`: !a || b.
func Implication(a, b Value) Value {
	ba, err := ForceBool(a)
	if err != nil {
		return err
	}
	if !ba.Value {
		return TRUE
	}
	bb, err := ForceBool(b)
	if err != nil {
		return err
	}
	return nativeBoolToBooleanObject(bb.Value)
}

// Equal implements `==`: deep structural equality on forced values.
func Equal(a, b Value) Value {
	eq, err := deepEqual(a, b)
	if err != nil {
		return err
	}
	return nativeBoolToBooleanObject(eq)
}

// NotEqual implements `!=`.
func NotEqual(a, b Value) Value {
	eq, err := deepEqual(a, b)
	if err != nil {
		return err
	}
	return nativeBoolToBooleanObject(!eq)
}

func compareNumbers(a, b Value, op string) Value {
	fa, fb, err := forceBoth(a, b)
	if err != nil {
		return err
	}
	if !isNumber(fa) || !isNumber(fb) {
		return arithTypeError(fa, fb)
	}
	var cmp int
	if ia, ok := fa.(*Int); ok {
		if ib, ok := fb.(*Int); ok {
			cmp = ia.Value.Cmp(ib.Value)
			return comparisonResult(cmp, op)
		}
	}
	x, y := asFloat(fa), asFloat(fb)
	switch {
	case x < y:
		cmp = -1
	case x > y:
		cmp = 1
	}
	return comparisonResult(cmp, op)
}

func comparisonResult(cmp int, op string) Value {
	switch op {
	case "<":
		return nativeBoolToBooleanObject(cmp < 0)
	case "<=":
		return nativeBoolToBooleanObject(cmp <= 0)
	case ">":
		return nativeBoolToBooleanObject(cmp > 0)
	case ">=":
		return nativeBoolToBooleanObject(cmp >= 0)
	}
	return newEvalError("unknown comparison operator %s", op)
}

// Less implements `<`.
func Less(a, b Value) Value { return compareNumbers(a, b, "<") }

// LessEq implements `<=`.
func LessEq(a, b Value) Value { return compareNumbers(a, b, "<=") }

// Greater implements `>`.
func Greater(a, b Value) Value { return compareNumbers(a, b, ">") }

// GreaterEq implements `>=`.
func GreaterEq(a, b Value) Value { return compareNumbers(a, b, ">=") }

// Not implements unary `!`.
func Not(a Value) Value {
	ba, err := ForceBool(a)
	if err != nil {
		return err
	}
	return nativeBoolToBooleanObject(!ba.Value)
}

// Neg implements unary `-`.
func Neg(a Value) Value {
	fa, err := ForceNumber(a)
	if err != nil {
		return err
	}
	switch n := fa.(type) {
	case *Int:
		return &Int{Value: new(big.Int).Neg(n.Value)}
	case *Float:
		return &Float{Value: -n.Value}
	}
	return newTypeError("invalid input type (%s), expected (number)", fa.NixType())
}

// DeepMerge ensures attrs.p1.p2...pn = value, creating intermediate
// attr-sets on demand. The transpiler uses it to assemble nested
// attribute-path literals like { a.b.c = 1; }.
func DeepMerge(attrs Value, value Value, path ...Value) *Error {
	if len(path) == 0 {
		return newEvalError("deepMerge: empty path")
	}
	node, err := ForceAttrs(attrs)
	if err != nil {
		return err
	}
	for i := 0; i < len(path)-1; i++ {
		key, err := ForceString(path[i])
		if err != nil {
			return err
		}
		next, ok := node.Get(key.Value)
		if !ok {
			child := NewAttrSet()
			node.Set(key.Value, child)
			node = child
			continue
		}
		forced := Force(next)
		childSet, ok := forced.(*AttrSet)
		if !ok {
			return newEvalError("deepMerge: tried to merge sub-key of %s into non-attrset (%s)", key.Value, forced.NixType())
		}
		node = childSet
	}
	last, err := ForceString(path[len(path)-1])
	if err != nil {
		return err
	}
	node.Set(last.Value, value)
	return nil
}

// LambdaArgCheck resolves a named lambda argument: the actual attr if
// present, otherwise the forced fallback, otherwise an evaluation error.
// fallback is nil when the formal has no default.
func LambdaArgCheck(actual Value, key string, fallback Value) Value {
	set, err := ForceAttrs(actual)
	if err != nil {
		return err
	}
	if v, ok := set.Get(key); ok {
		return v
	}
	if fallback != nil {
		return Force(fallback)
	}
	return newEvalError("attrset element %s missing at lambda call", key)
}

// OrDefault backs the `e.a.b or def` construct: force primary, and when
// the failure is a missing attribute (an AttrMissingError) substitute the
// forced fallback. A null result is returned as is; every other failure
// propagates.
func OrDefault(primary, fallback Value) Value {
	forced := Force(primary)
	if err, ok := AsError(forced); ok {
		if err.Kind == AttrMissingKind {
			return Force(fallback)
		}
		return err
	}
	return forced
}
