package nixrt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/nixrt/internal/eval"
	"github.com/funvibe/nixrt/internal/modules"
)

type mapTranslator map[string]ModuleFunc

func (m mapTranslator) Translate(ctx context.Context, originPath string, source []byte) (modules.ModuleFunc, error) {
	fn, ok := m[filepath.Base(originPath)]
	if !ok {
		return nil, fmt.Errorf("no module for %s", originPath)
	}
	return fn, nil
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("# translated ahead of time\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVMImportEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "pkg.nix")

	// A module shaped like `{ n }: rec { big = n * 1000; msg = ...; }`,
	// written the way the transpiler emits code: scopes of thunks, every
	// consumption site forcing.
	tr := mapTranslator{
		"pkg.nix": func(rt RuntimeFacade, blti *Builtins) Value {
			return &Lambda{
				Formals: []Formal{{Name: "n"}},
				Fn: func(arg Value) Value {
					scope := NewScope(nil)
					scope.Bind("n", MkLazy(func() Value {
						return eval.LambdaArgCheck(arg, "n", nil)
					}))
					scope.Bind("big", MkLazy(func() Value {
						n, _ := scope.Lookup("n")
						return Mul(n, NewInt(1000))
					}))
					scope.Bind("msg", MkLazy(func() Value {
						big, _ := scope.Lookup("big")
						coerced := eval.CoerceToString(big)
						if eval.IsError(coerced) {
							return coerced
						}
						return Add(NewString("count="), coerced)
					}))
					return scope.ExtractScope()
				},
			}
		},
	}

	vm, err := NewWithOptions(Options{Translator: tr})
	if err != nil {
		t.Fatal(err)
	}
	top, err := vm.Import(path)
	if err != nil {
		t.Fatal(err)
	}

	args := NewAttrSet()
	args.Pairs["n"] = NewInt(3)
	result := Force(Call(top, args))
	set, ok := result.(*AttrSet)
	if !ok {
		t.Fatalf("module value = %v", result)
	}
	msg := Force(Select(set, "msg"))
	if s, ok := msg.(*String); !ok || s.Value != "count=3000" {
		t.Errorf("msg = %v, want count=3000", msg)
	}
}

func TestTryEvalOverUnresolvedStoreAnchor(t *testing.T) {
	t.Setenv("NIX_PATH", "")
	dir := t.TempDir()
	path := writeSource(t, dir, "chain.nix")

	// tryEval (toString <no-such-channel>) must observe the anchor
	// failure as an evaluation error and convert it.
	tr := mapTranslator{
		"chain.nix": func(rt RuntimeFacade, blti *Builtins) Value {
			tryEval, _ := blti.Lookup("tryEval")
			return Call(tryEval, MkLazy(func() Value {
				resolved := rt.Export("Store", "no-such-channel/lib.nix")
				return eval.CoerceToString(resolved)
			}))
		},
	}

	vm, err := NewWithOptions(Options{Translator: tr})
	if err != nil {
		t.Fatal(err)
	}
	got, err := vm.Import(path)
	if err != nil {
		t.Fatal(err)
	}
	set, ok := got.(*AttrSet)
	if !ok {
		t.Fatalf("tryEval result = %v", got)
	}
	if set.Pairs["success"] != eval.FALSE || set.Pairs["value"] != eval.FALSE {
		t.Errorf("tryEval = %s, want success=false value=false", set.Inspect())
	}
}

func TestVMConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nixrt.yaml")
	if err := os.WriteFile(cfgPath, []byte("system: riscv64-linux\ntrace-color: never\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	vm, err := NewWithOptions(Options{ConfigFile: cfgPath, Translator: mapTranslator{}})
	if err != nil {
		t.Fatal(err)
	}
	cur, _ := vm.Builtins().Lookup("currentSystem")
	got := Call(cur, eval.NULL)
	if s, ok := got.(*String); !ok || s.Value != "riscv64-linux" {
		t.Errorf("currentSystem = %v", got)
	}

	if _, err := NewWithOptions(Options{ConfigFile: writeBad(t, dir)}); err == nil {
		t.Errorf("broken config accepted")
	}
}

func writeBad(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(p, []byte("trace-color: rainbow\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}
