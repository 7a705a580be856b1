// Package nixpath resolves anchor-qualified paths at the transpiler/
// runtime boundary and implements the NIX_PATH-style search.
package nixpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/nixrt/internal/config"
)

// Anchor classifies an unresolved path payload.
type Anchor string

const (
	AnchorRelative Anchor = "Relative"
	AnchorAbsolute Anchor = "Absolute"
	AnchorHome     Anchor = "Home"
	AnchorStore    Anchor = "Store"
)

// SearchEntry is one parsed component of the search path: either named
// ("nixpkgs=/some/prefix") or an unnamed bare prefix.
type SearchEntry struct {
	Name string
	Path string
}

// ParseSearchPath splits a colon-separated NIX_PATH-style string.
func ParseSearchPath(raw string) []SearchEntry {
	var out []SearchEntry
	for _, entry := range strings.Split(raw, ":") {
		if entry == "" {
			continue
		}
		if idx := strings.IndexByte(entry, '='); idx >= 0 {
			out = append(out, SearchEntry{Name: entry[:idx], Path: entry[idx+1:]})
		} else {
			out = append(out, SearchEntry{Path: entry})
		}
	}
	return out
}

// Resolver resolves anchors against a module directory, the user's home,
// and a search path.
type Resolver struct {
	entries []SearchEntry
}

// NewResolver builds a resolver from explicit entries plus the NIX_PATH
// environment variable. Explicit entries take precedence.
func NewResolver(extra []string) *Resolver {
	var entries []SearchEntry
	for _, e := range extra {
		entries = append(entries, ParseSearchPath(e)...)
	}
	entries = append(entries, ParseSearchPath(os.Getenv(config.NixPathEnv))...)
	return &Resolver{entries: entries}
}

// Resolve maps (anchor, payload) to an absolute path. moduleDir is the
// directory of the currently-evaluating module, used by Relative anchors.
func (r *Resolver) Resolve(anchor Anchor, payload, moduleDir string) (string, error) {
	switch anchor {
	case AnchorRelative:
		return filepath.Abs(filepath.Join(moduleDir, payload))
	case AnchorAbsolute:
		if !filepath.IsAbs(payload) {
			return filepath.Abs(payload)
		}
		return filepath.Clean(payload), nil
	case AnchorHome:
		home := os.Getenv(config.HomeEnv)
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("export did not resolve: no home directory")
			}
		}
		return filepath.Abs(filepath.Join(home, payload))
	case AnchorStore:
		return r.resolveStore(payload)
	default:
		return "", fmt.Errorf("export did not resolve: unknown anchor %q", anchor)
	}
}

// resolveStore consults the search path: a named entry matching the
// payload's first segment substitutes its prefix; otherwise each unnamed
// entry is tried as a prefix and the first existing readable resolution
// wins.
func (r *Resolver) resolveStore(payload string) (string, error) {
	head := payload
	rest := ""
	if idx := strings.IndexByte(payload, '/'); idx >= 0 {
		head, rest = payload[:idx], payload[idx:]
	}
	for _, e := range r.entries {
		if e.Name != "" && e.Name == head {
			return filepath.Abs(filepath.Join(e.Path, rest))
		}
	}
	for _, e := range r.entries {
		if e.Name != "" {
			continue
		}
		candidate := filepath.Join(e.Path, payload)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Abs(candidate)
		}
	}
	return "", fmt.Errorf("export did not resolve: file '%s' was not found in the search path", payload)
}

// Exists reports whether the path is visible to the process. It never
// fails: any stat error reads as absence.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path names a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
