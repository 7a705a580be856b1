// Package nixrt is the runtime support library for ahead-of-time
// translated Nix expressions.
//
// A translated module is a Go function of the runtime facade and the
// combined operators+builtins table; it registers itself against the
// absolute path of the Nix file it was translated from:
//
//	func init() {
//		nixrt.Register("/src/release.nix", func(rt nixrt.RuntimeFacade, blti *nixrt.Builtins) nixrt.Value {
//			...
//		})
//	}
//
// An embedder then evaluates it through a VM:
//
//	vm := nixrt.New()
//	value, err := vm.Import("/src/release.nix")
//
// Everything a translated module touches — values, thunks, scopes,
// operators, builtins — is re-exported here so generated code depends on
// this package alone.
package nixrt

import (
	"github.com/funvibe/nixrt/internal/config"
	"github.com/funvibe/nixrt/internal/eval"
	"github.com/funvibe/nixrt/internal/modules"
)

// Contract surface for generated code.
type (
	Value         = eval.Value
	Error         = eval.Error
	Thunk         = eval.Thunk
	Null          = eval.Null
	Bool          = eval.Bool
	Int           = eval.Int
	Float         = eval.Float
	String        = eval.String
	Path          = eval.Path
	List          = eval.List
	AttrSet       = eval.AttrSet
	Lambda        = eval.Lambda
	Formal        = eval.Formal
	Builtins      = eval.Builtins
	Scope         = eval.Scope
	RuntimeFacade = modules.RuntimeFacade
	ModuleFunc    = modules.ModuleFunc
)

// Lazy core
var (
	MkLazy    = eval.MkLazy
	Force     = eval.Force
	ForceDeep = eval.ForceDeep
	Select    = eval.Select
)

// Scopes
var (
	NewScope     = eval.NewScope
	NewScopeWith = eval.NewScopeWith
	AttrsScope   = eval.AttrsScope
)

// Operator group (nixOp) and transpiler auxiliaries
var (
	Add         = eval.Add
	Sub         = eval.Sub
	Mul         = eval.Mul
	Div         = eval.Div
	And         = eval.And
	Or          = eval.Or
	Implication = eval.Implication
	Update      = eval.Update
	Concat      = eval.ConcatLists
	Eq          = eval.Equal
	NotEq       = eval.NotEqual
	Less        = eval.Less
	LessEq      = eval.LessEq
	More        = eval.Greater
	MoreEq      = eval.GreaterEq
	Not         = eval.Not
	Neg         = eval.Neg
	DeepMerge   = eval.DeepMerge
	OrDefault   = eval.OrDefault
	Call        = eval.Call
	NewInt      = eval.NewInt
	NewString   = eval.NewString
	NewAttrSet  = eval.NewAttrSet

	LambdaArgCheck = eval.LambdaArgCheck
)

// Register records an AOT-translated module under the absolute path of
// its Nix source. Generated packages call it from init.
func Register(originPath string, fn ModuleFunc) {
	modules.Register(originPath, fn)
}

// Options tunes a VM.
type Options struct {
	// ConfigFile points at a nixrt.yaml; empty means defaults.
	ConfigFile string
	// Translator overrides the AOT registry, mostly in tests.
	Translator modules.Translator
	// Trace logs one line per import to the debug sink.
	Trace bool
}

// VM wraps the import engine and provides the high-level embedding API.
type VM struct {
	engine *modules.Engine
}

// New creates a VM with default options.
func New() *VM {
	vm, _ := NewWithOptions(Options{})
	return vm
}

// NewWithOptions creates a VM. The only error source is a broken config
// file.
func NewWithOptions(opts Options) (*VM, error) {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
	}
	engine := modules.NewEngine(opts.Translator, cfg)
	engine.Trace = opts.Trace
	return &VM{engine: engine}, nil
}

// Import evaluates the module at path and forces its top-level value.
func (v *VM) Import(path string) (Value, error) {
	result := eval.Force(v.engine.Import(path))
	if err, ok := eval.AsError(result); ok {
		return nil, err
	}
	return result, nil
}

// Builtins exposes the VM's operators+builtins table, the same instance
// every imported module sees.
func (v *VM) Builtins() *Builtins {
	return v.engine.Builtins()
}

// FacadeFor builds a runtime facade anchored at dir, for host code that
// wants to call into the runtime the way a translated module would.
func (v *VM) FacadeFor(dir string) RuntimeFacade {
	return v.engine.FacadeFor(dir)
}
