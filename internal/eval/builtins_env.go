package eval

import (
	"os"
	"strings"
	"time"

	"github.com/funvibe/nixrt/internal/config"
)

// envBuiltins covers the host-environment reads and the constant
// builtins.
func (b *Builtins) envBuiltins() map[string]*Builtin {
	nixPath := parseSearchPathList(b.cfg.SearchPath, os.Getenv(config.NixPathEnv))
	return map[string]*Builtin{
		"getEnv": {Name: "getEnv", Fn: func(args ...Value) Value {
			name, err := ForceString(args[0])
			if err != nil {
				return err
			}
			return NewString(os.Getenv(name.Value))
		}},
		"currentSystem": {Name: "currentSystem", Fn: func(args ...Value) Value {
			return NewString(b.cfg.System)
		}},
		"currentTime": {Name: "currentTime", Fn: func(args ...Value) Value {
			return NewInt(time.Now().Unix())
		}},
		"nixVersion": {Name: "nixVersion", Fn: func(args ...Value) Value {
			return NewString(config.NixVersion)
		}},
		"langVersion": {Name: "langVersion", Fn: func(args ...Value) Value {
			return NewInt(config.LangVersion)
		}},
		"storeDir": {Name: "storeDir", Fn: func(args ...Value) Value {
			return NewString(b.cfg.StoreDir)
		}},
		"nixPath": {Name: "nixPath", Fn: func(args ...Value) Value {
			return nixPath
		}},
		"readFile": {Name: "readFile", Fn: func(args ...Value) Value {
			p, err := coerceToStringOrPath(args[0])
			if err != nil {
				return err
			}
			data, readErr := os.ReadFile(p)
			if readErr != nil {
				return newEvalError("cannot read file '%s': %v", p, readErr)
			}
			return NewString(string(data))
		}},
		"readDir": {Name: "readDir", Fn: func(args ...Value) Value {
			p, err := coerceToStringOrPath(args[0])
			if err != nil {
				return err
			}
			entries, readErr := os.ReadDir(p)
			if readErr != nil {
				return newEvalError("cannot read directory '%s': %v", p, readErr)
			}
			out := NewAttrSet()
			for _, e := range entries {
				kind := "regular"
				switch {
				case e.IsDir():
					kind = "directory"
				case e.Type()&os.ModeSymlink != 0:
					kind = "symlink"
				case !e.Type().IsRegular():
					kind = "unknown"
				}
				out.Pairs[e.Name()] = NewString(kind)
			}
			return out
		}},
		"toPath": {Name: "toPath", Fn: func(args ...Value) Value {
			p, err := coerceToStringOrPath(args[0])
			if err != nil {
				return err
			}
			return &Path{Value: p}
		}},
	}
}

// parseSearchPathList turns config entries plus the NIX_PATH value into
// the `builtins.nixPath`-shaped list of { path, prefix } sets.
func parseSearchPathList(cfgEntries []string, env string) *List {
	entries := append([]string{}, cfgEntries...)
	if env != "" {
		entries = append(entries, strings.Split(env, ":")...)
	}
	out := &List{}
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		set := NewAttrSet()
		if idx := strings.IndexByte(entry, '='); idx >= 0 {
			set.Pairs["prefix"] = NewString(entry[:idx])
			set.Pairs["path"] = NewString(entry[idx+1:])
		} else {
			set.Pairs["prefix"] = NewString("")
			set.Pairs["path"] = NewString(entry)
		}
		out.Elements = append(out.Elements, set)
	}
	return out
}
