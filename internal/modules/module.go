package modules

import (
	"github.com/google/uuid"

	"github.com/funvibe/nixrt/internal/eval"
)

// RuntimeFacade is the per-module object handed to translated code. Its
// three callables are the stable runtime/transpiler contract.
type RuntimeFacade interface {
	// Export resolves an anchor-qualified path to a Path value, or an
	// evaluation error value.
	Export(anchor string, payload string) eval.Value
	// Import loads, translates and evaluates a file, cached by absolute
	// path.
	Import(path eval.Value) eval.Value
	// PathExists reports path visibility; it never raises.
	PathExists(path eval.Value) eval.Value
}

// ModuleFunc is an instantiated translated module: a function of the
// runtime facade and the combined operators+builtins table, returning the
// module's top-level value.
type ModuleFunc func(rt RuntimeFacade, blti *eval.Builtins) eval.Value

// Module is one import-cache record. Cell is the promise-shaped thunk
// cached before evaluation starts, so cyclic imports observe it instead
// of re-entering translation. Exactly one of value/fail is set once
// settled.
type Module struct {
	AbsPath string
	ID      uuid.UUID
	Source  []byte

	done  bool
	value eval.Value
	fail  *eval.Error

	Cell *eval.Thunk
}

func newModule(absPath string) *Module {
	m := &Module{AbsPath: absPath, ID: uuid.New()}
	m.Cell = eval.MkLazy(func() eval.Value {
		if !m.done {
			return eval.NewEvalError("infinite recursion encountered while importing '%s'", m.AbsPath)
		}
		if m.fail != nil {
			return m.fail
		}
		return m.value
	})
	return m
}

func (m *Module) settle(v eval.Value) {
	if err, ok := eval.AsError(v); ok {
		m.fail = err
	} else {
		m.value = v
	}
	m.done = true
}
