package eval

import (
	"io"
	"os"

	"github.com/funvibe/nixrt/internal/config"
)

// Builtins is the combined operators+builtins table handed to every
// translated module. Keys are the builtin names of the stable contract;
// the operator group is reachable both through the table (the transpiler's
// nixOp calls) and as plain Go functions in this package.
type Builtins struct {
	table map[string]Value

	// Out is the debug sink for trace. Defaults to stderr.
	Out io.Writer

	cfg *config.Config
}

// NewBuiltins assembles the full table against the given configuration.
// cfg may be nil, meaning defaults.
func NewBuiltins(cfg *config.Config) *Builtins {
	if cfg == nil {
		cfg = config.Default()
	}
	b := &Builtins{
		table: make(map[string]Value),
		Out:   os.Stderr,
		cfg:   cfg,
	}
	b.register(typingBuiltins())
	b.register(stringBuiltins())
	b.register(listBuiltins())
	b.register(attrsBuiltins())
	b.register(versionBuiltins())
	b.register(mathBuiltins())
	b.register(jsonBuiltins())
	b.register(b.envBuiltins())
	b.register(b.controlBuiltins())
	b.register(operatorBuiltins())
	return b
}

func (b *Builtins) register(m map[string]*Builtin) {
	for name, builtin := range m {
		b.table[name] = builtin
	}
}

// Lookup resolves a contract name. Adding names is additive; renaming any
// existing name breaks every translated module.
func (b *Builtins) Lookup(name string) (Value, bool) {
	v, ok := b.table[name]
	return v, ok
}

// Names enumerates the table for contract tests.
func (b *Builtins) Names() []string {
	set := NewAttrSet()
	for k := range b.table {
		set.Pairs[k] = NULL
	}
	return set.SortedKeys()
}

// AsAttrSet exposes the table as the `builtins` attr-set value visible to
// Nix code.
func (b *Builtins) AsAttrSet() *AttrSet {
	out := NewAttrSet()
	for k, v := range b.table {
		out.Pairs[k] = v
	}
	return out
}

// operatorBuiltins exposes the nixOp group and the transpiler auxiliaries
// through the table.
func operatorBuiltins() map[string]*Builtin {
	m := map[string]*Builtin{
		"_deepMerge": {Name: "_deepMerge", Fn: func(args ...Value) Value {
			if len(args) < 3 {
				return newEvalError("deepMerge: empty path")
			}
			if err := DeepMerge(args[0], args[1], args[2:]...); err != nil {
				return err
			}
			return args[0]
		}},
		"_lambdaArgCheck": {Name: "_lambdaArgCheck", Fn: func(args ...Value) Value {
			if len(args) < 2 {
				return newEvalError("lambdaArgCheck expects at least 2 arguments, got %d", len(args))
			}
			key, err := ForceString(args[1])
			if err != nil {
				return err
			}
			var fallback Value
			if len(args) == 3 {
				fallback = args[2]
			}
			return LambdaArgCheck(args[0], key.Value, fallback)
		}},
		"orDefault": curry2("orDefault", OrDefault),
	}
	binary := map[string]func(a, b Value) Value{
		"nixOp__Add":    Add,
		"nixOp__Sub":    Sub,
		"nixOp__Mul":    Mul,
		"nixOp__Div":    Div,
		"nixOp__And":    And,
		"nixOp__Or":     Or,
		"nixOp__Impl":   Implication,
		"nixOp__Update": Update,
		"nixOp__Concat": ConcatLists,
		"nixOp__Eq":     Equal,
		"nixOp__NotEq":  NotEqual,
		"nixOp__Less":   Less,
		"nixOp__LessEq": LessEq,
		"nixOp__More":   Greater,
		"nixOp__MoreEq": GreaterEq,
	}
	for name, fn := range binary {
		m[name] = curry2(name, fn)
	}
	m["nixOp__Not"] = &Builtin{Name: "nixOp__Not", Fn: func(args ...Value) Value { return Not(args[0]) }}
	m["nixOp__Neg"] = &Builtin{Name: "nixOp__Neg", Fn: func(args ...Value) Value { return Neg(args[0]) }}
	return m
}
