package eval

import (
	"sort"
	"testing"
)

// testBuiltins is shared across the builtin tests; the table is stateless
// apart from the trace sink, which the control tests replace.
func testBuiltins(t *testing.T) *Builtins {
	t.Helper()
	return NewBuiltins(nil)
}

// apply resolves a builtin by name and applies it to args one at a time,
// following the curried calling convention of translated code.
func apply(t *testing.T, b *Builtins, name string, args ...Value) Value {
	t.Helper()
	fn, ok := b.Lookup(name)
	if !ok {
		t.Fatalf("builtin %q not in table", name)
	}
	for _, arg := range args {
		fn = Call(fn, arg)
		if isError(fn) {
			return fn
		}
	}
	return fn
}

func mkList(vals ...Value) *List { return &List{Elements: vals} }

func TestBuiltinsTableIsComplete(t *testing.T) {
	b := testBuiltins(t)
	// The transpiler is bound to these names; a missing one breaks every
	// translated module.
	names := []string{
		"isAttrs", "isBool", "isFloat", "isFunction", "isInt", "isList",
		"isNull", "isPath", "isString", "typeOf", "functionArgs",
		"stringLength", "baseNameOf", "dirOf", "concatStringsSep",
		"toString", "replaceStrings", "splitVersion", "substring",
		"hasContext", "getContext", "appendContext", "unsafeDiscardStringContext",
		"length", "head", "tail", "elem", "elemAt", "concatLists",
		"concatMap", "filter", "map", "genList", "foldl'", "partition",
		"sort", "groupBy", "all", "any", "genericClosure",
		"attrNames", "attrValues", "hasAttr", "getAttr", "intersectAttrs",
		"listToAttrs", "mapAttrs", "removeAttrs", "catAttrs",
		"compareVersions", "parseDrvName",
		"seq", "deepSeq", "tryEval", "abort", "throw", "assert", "trace",
		"add", "sub", "mul", "div", "bitAnd", "bitOr", "bitXor", "ceil",
		"floor", "lessThan",
		"fromJSON", "toJSON",
		"getEnv", "currentSystem", "currentTime", "nixVersion",
		"langVersion", "storeDir", "nixPath", "readFile", "readDir",
		"toPath",
		"_deepMerge", "_lambdaArgCheck", "orDefault",
	}
	for _, name := range names {
		if _, ok := b.Lookup(name); !ok {
			t.Errorf("builtin %q missing from table", name)
		}
	}
	got := b.Names()
	if !sort.StringsAreSorted(got) {
		t.Errorf("Names() not sorted")
	}
}

func TestOperatorGroupInTable(t *testing.T) {
	b := testBuiltins(t)
	got := apply(t, b, "nixOp__Add", NewInt(2), NewInt(3))
	if intVal(t, got) != 5 {
		t.Errorf("nixOp__Add 2 3 = %v, want 5", got)
	}
	got = apply(t, b, "nixOp__Not", FALSE)
	if got != TRUE {
		t.Errorf("nixOp__Not false = %v, want true", got)
	}
}
