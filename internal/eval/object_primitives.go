package eval

import (
	"math/big"
	"strconv"
)

type Null struct{}

func (n *Null) Type() ValueType { return NULL_OBJ }
func (n *Null) Inspect() string { return "null" }
func (n *Null) NixType() string { return NixTypeNull }

type Bool struct {
	Value bool
}

func (b *Bool) Type() ValueType { return BOOL_OBJ }
func (b *Bool) Inspect() string { return strconv.FormatBool(b.Value) }
func (b *Bool) NixType() string { return NixTypeBool }

// Int is an arbitrary-precision integer.
type Int struct {
	Value *big.Int
}

func NewInt(v int64) *Int { return &Int{Value: big.NewInt(v)} }

func (i *Int) Type() ValueType { return INT_OBJ }
func (i *Int) Inspect() string { return i.Value.String() }
func (i *Int) NixType() string { return NixTypeInt }

// Int64 reports the value as int64; ok is false when it does not fit.
func (i *Int) Int64() (int64, bool) {
	if !i.Value.IsInt64() {
		return 0, false
	}
	return i.Value.Int64(), true
}

type Float struct {
	Value float64
}

func (f *Float) Type() ValueType { return FLOAT_OBJ }
func (f *Float) Inspect() string {
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}
func (f *Float) NixType() string { return NixTypeFloat }

// String carries an optional string context: an opaque set of dependency
// tokens. Operators do not thread context through results; the context
// builtins read and extend it directly.
type String struct {
	Value   string
	Context map[string]struct{}
}

func NewString(s string) *String { return &String{Value: s} }

func (s *String) Type() ValueType { return STRING_OBJ }
func (s *String) Inspect() string { return strconv.Quote(s.Value) }
func (s *String) NixType() string { return NixTypeString }

// WithContext returns a copy of s whose context additionally holds tokens.
func (s *String) WithContext(tokens ...string) *String {
	out := &String{Value: s.Value, Context: make(map[string]struct{}, len(s.Context)+len(tokens))}
	for t := range s.Context {
		out.Context[t] = struct{}{}
	}
	for _, t := range tokens {
		out.Context[t] = struct{}{}
	}
	return out
}

// Path is an absolute filesystem path, distinct from String.
type Path struct {
	Value string
}

func (p *Path) Type() ValueType { return PATH_OBJ }
func (p *Path) Inspect() string { return p.Value }
func (p *Path) NixType() string { return NixTypePath }
