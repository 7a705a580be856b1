package eval

import "math/big"

// deepEqual compares two values structurally, forcing thunks at every
// level. Ints and floats compare numerically across kinds (1 == 1.0).
// Functions compare by identity. Paths and strings never compare equal to
// each other.
func deepEqual(a, b Value) (bool, *Error) {
	fa, fb, err := forceBoth(a, b)
	if err != nil {
		return false, err
	}

	if isNumber(fa) && isNumber(fb) {
		if ia, ok := fa.(*Int); ok {
			if ib, ok := fb.(*Int); ok {
				return ia.Value.Cmp(ib.Value) == 0, nil
			}
		}
		if ia, ok := fa.(*Int); ok {
			f, _ := new(big.Float).SetInt(ia.Value).Float64()
			return f == fb.(*Float).Value, nil
		}
		if ib, ok := fb.(*Int); ok {
			f, _ := new(big.Float).SetInt(ib.Value).Float64()
			return fa.(*Float).Value == f, nil
		}
		return fa.(*Float).Value == fb.(*Float).Value, nil
	}

	if fa.Type() != fb.Type() {
		return false, nil
	}

	switch va := fa.(type) {
	case *Null:
		return true, nil
	case *Bool:
		return va.Value == fb.(*Bool).Value, nil
	case *String:
		return va.Value == fb.(*String).Value, nil
	case *Path:
		return va.Value == fb.(*Path).Value, nil
	case *List:
		vb := fb.(*List)
		if len(va.Elements) != len(vb.Elements) {
			return false, nil
		}
		for i := range va.Elements {
			eq, err := deepEqual(va.Elements[i], vb.Elements[i])
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	case *AttrSet:
		vb := fb.(*AttrSet)
		if len(va.Pairs) != len(vb.Pairs) {
			return false, nil
		}
		for k, av := range va.Pairs {
			bv, ok := vb.Pairs[k]
			if !ok {
				return false, nil
			}
			eq, err := deepEqual(av, bv)
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	case *Lambda:
		return va == fb.(*Lambda), nil
	case *Builtin:
		return va == fb.(*Builtin), nil
	}
	return false, nil
}
