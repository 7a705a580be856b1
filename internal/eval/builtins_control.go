package eval

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

// controlBuiltins covers evaluation control: forcing, error raising and
// interception, and the trace sink.
func (b *Builtins) controlBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		"seq": curry2("seq", func(e1, e2 Value) Value {
			forced := Force(e1)
			if isError(forced) {
				return forced
			}
			return e2
		}),
		"deepSeq": curry2("deepSeq", func(e1, e2 Value) Value {
			forced := ForceDeep(e1)
			if isError(forced) {
				return forced
			}
			return e2
		}),
		"tryEval": {Name: "tryEval", Fn: func(args ...Value) Value {
			forced := Force(args[0])
			out := NewAttrSet()
			if err, ok := AsError(forced); ok {
				if !isEvalFailure(err) {
					return err
				}
				out.Pairs["success"] = FALSE
				out.Pairs["value"] = FALSE
				return out
			}
			out.Pairs["success"] = TRUE
			out.Pairs["value"] = forced
			return out
		}},
		"abort": {Name: "abort", Fn: func(args ...Value) Value {
			msg := CoerceToString(args[0])
			if err, ok := AsError(msg); ok {
				return err
			}
			return newAbortError("evaluation aborted with the following error message: '%s'", msg.(*String).Value)
		}},
		"throw": {Name: "throw", Fn: func(args ...Value) Value {
			msg := CoerceToString(args[0])
			if err, ok := AsError(msg); ok {
				return err
			}
			return newEvalError("%s", msg.(*String).Value)
		}},
		"assert": {Name: "assert", Fn: func(args ...Value) Value {
			cond, err := ForceBool(args[0])
			if err != nil {
				return err
			}
			if !cond.Value {
				return newEvalError("assertion failed")
			}
			return TRUE
		}},
		"trace": curry2("trace", func(e1, e2 Value) Value {
			forced := Force(e1)
			if isError(forced) {
				return forced
			}
			b.Trace(forced.Inspect())
			return e2
		}),
	}
}

// Trace writes one line to the debug sink, dimmed with ANSI codes when
// the sink is a colour-capable terminal.
func (b *Builtins) Trace(msg string) {
	line := "trace: " + msg
	if b.traceColorEnabled() {
		line = ansiDim + line + ansiReset
	}
	fmt.Fprintln(b.Out, line)
}

func (b *Builtins) traceColorEnabled() bool {
	switch b.cfg.TraceColor {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := b.Out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
