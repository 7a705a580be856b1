package modules

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/funvibe/nixrt/internal/config"
	"github.com/funvibe/nixrt/internal/eval"
	"github.com/funvibe/nixrt/internal/nixpath"
)

// Engine is the import engine: it resolves paths, drives the translator,
// instantiates modules and owns the process-wide import cache. Entries
// are inserted before evaluation starts and never removed.
type Engine struct {
	mu    sync.Mutex
	cache map[string]*Module // keyed by absolute path
	tr    Translator
	res   *nixpath.Resolver
	blti  *eval.Builtins
	cfg   *config.Config
	ctx   context.Context
	Trace bool
}

// NewEngine wires an engine against a translator and configuration. A nil
// translator means the AOT registry; a nil config means defaults.
func NewEngine(tr Translator, cfg *config.Config) *Engine {
	if tr == nil {
		tr = RegistryTranslator{}
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{
		cache: make(map[string]*Module),
		tr:    tr,
		res:   nixpath.NewResolver(cfg.SearchPath),
		blti:  eval.NewBuiltins(cfg),
		cfg:   cfg,
		ctx:   context.Background(),
	}
}

// Builtins exposes the engine's operators+builtins table.
func (e *Engine) Builtins() *eval.Builtins { return e.blti }

// FacadeFor builds the runtime facade for a module living in dir.
func (e *Engine) FacadeFor(dir string) RuntimeFacade {
	return &facade{engine: e, dir: dir}
}

// Import loads the module at path and returns its cached cell. The cell
// forces to the module's top-level value, or to the recorded failure.
func (e *Engine) Import(path string) eval.Value {
	abs, err := filepath.Abs(path)
	if err != nil {
		return eval.WrapEvalError("while importing '"+path+"'", err)
	}
	abs = filepath.Clean(abs)
	if nixpath.IsDir(abs) {
		abs = filepath.Join(abs, config.DefaultModuleFile)
	}

	e.mu.Lock()
	if mod, ok := e.cache[abs]; ok {
		e.mu.Unlock()
		return mod.Cell
	}
	// The placeholder goes in before translation begins so that cyclic
	// imports observe it instead of re-entering.
	mod := newModule(abs)
	e.cache[abs] = mod
	e.mu.Unlock()

	mod.settle(e.load(mod, abs))
	return mod.Cell
}

func (e *Engine) load(mod *Module, abs string) eval.Value {
	src, err := os.ReadFile(abs)
	if err != nil {
		return eval.WrapEvalError("while importing '"+abs+"'", err)
	}
	mod.Source = src

	fn, err := e.tr.Translate(e.ctx, abs, src)
	if err != nil {
		return eval.WrapEvalError("while translating '"+abs+"'", err)
	}
	if e.Trace {
		e.blti.Trace("import " + abs + " [" + mod.ID.String() + "]")
	}

	result := fn(e.FacadeFor(filepath.Dir(abs)), e.blti)
	if evErr, ok := eval.AsError(result); ok {
		return eval.WrapEvalError("while evaluating '"+abs+"'", evErr)
	}
	return result
}

// CacheSize reports the number of import-cache entries.
func (e *Engine) CacheSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cache)
}

// facade binds the stable three-callable contract to one module
// directory.
type facade struct {
	engine *Engine
	dir    string
}

func (f *facade) Export(anchor string, payload string) eval.Value {
	resolved, err := f.engine.res.Resolve(nixpath.Anchor(anchor), payload, f.dir)
	if err != nil {
		return eval.NewEvalError("%v", err)
	}
	return &eval.Path{Value: resolved}
}

func (f *facade) Import(path eval.Value) eval.Value {
	p, err := pathArg(path)
	if err != nil {
		return err
	}
	target := p
	if !filepath.IsAbs(target) {
		target = filepath.Join(f.dir, target)
	}
	return f.engine.Import(target)
}

func (f *facade) PathExists(path eval.Value) eval.Value {
	p, err := pathArg(path)
	if err != nil {
		return eval.FALSE
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(f.dir, p)
	}
	if nixpath.Exists(p) {
		return eval.TRUE
	}
	return eval.FALSE
}

// pathArg accepts a Path or a string-coercible value.
func pathArg(v eval.Value) (string, *eval.Error) {
	forced := eval.Force(v)
	if err, ok := eval.AsError(forced); ok {
		return "", err
	}
	if p, ok := forced.(*eval.Path); ok {
		return p.Value, nil
	}
	coerced := eval.CoerceToString(forced)
	if err, ok := eval.AsError(coerced); ok {
		return "", err
	}
	return coerced.(*eval.String).Value, nil
}
