package eval

import "fmt"

// Formal is one named argument of an attr-set-pattern lambda.
type Formal struct {
	Name       string
	HasDefault bool
}

// Lambda is a 1-argument closure. Multi-argument Nix functions arrive
// curried from the transpiler. Formals is non-nil for attr-set-pattern
// lambdas ({ a, b ? x, ... }: body) and drives functionArgs.
type Lambda struct {
	Fn       func(arg Value) Value
	Formals  []Formal
	Ellipsis bool
}

func (l *Lambda) Type() ValueType { return LAMBDA_OBJ }
func (l *Lambda) Inspect() string { return "<LAMBDA>" }
func (l *Lambda) NixType() string { return NixTypeLambda }

// Builtin is a host-implemented function. Curried application goes through
// Call, which forces only the callee, never the argument: each builtin
// decides what to force, so genList-produced thunks stay lazy.
type Builtin struct {
	Name string
	Fn   func(args ...Value) Value
}

func (b *Builtin) Type() ValueType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string { return fmt.Sprintf("<BUILTIN %s>", b.Name) }
func (b *Builtin) NixType() string { return NixTypeLambda }

// Call applies a lambda or builtin to one argument after forcing the
// callee. Builtins taking several arguments are applied one at a time via
// partial application.
func Call(fn Value, arg Value) Value {
	fn = Force(fn)
	if isError(fn) {
		return fn
	}
	switch f := fn.(type) {
	case *Lambda:
		return f.Fn(arg)
	case *Builtin:
		return f.Fn(arg)
	default:
		return newTypeError("invalid input type (%s), expected (lambda)", f.NixType())
	}
}

// curry2 adapts a 2-argument host function to the curried calling
// convention the transpiler uses.
func curry2(name string, fn func(a, b Value) Value) *Builtin {
	return &Builtin{Name: name, Fn: func(args ...Value) Value {
		a := args[0]
		return &Builtin{Name: name + "'", Fn: func(args ...Value) Value {
			return fn(a, args[0])
		}}
	}}
}

func curry3(name string, fn func(a, b, c Value) Value) *Builtin {
	return &Builtin{Name: name, Fn: func(args ...Value) Value {
		a := args[0]
		return &Builtin{Name: name + "'", Fn: func(args ...Value) Value {
			b := args[0]
			return &Builtin{Name: name + "''", Fn: func(args ...Value) Value {
				return fn(a, b, args[0])
			}}
		}}
	}}
}
