package nixpath

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseSearchPath(t *testing.T) {
	tests := []struct {
		in   string
		want []SearchEntry
	}{
		{"", nil},
		{"/a/b", []SearchEntry{{Path: "/a/b"}}},
		{"nixpkgs=/ch/nixpkgs", []SearchEntry{{Name: "nixpkgs", Path: "/ch/nixpkgs"}}},
		{
			"nixpkgs=/ch/nixpkgs:/fallback::x=/y",
			[]SearchEntry{
				{Name: "nixpkgs", Path: "/ch/nixpkgs"},
				{Path: "/fallback"},
				{Name: "x", Path: "/y"},
			},
		},
	}
	for _, tt := range tests {
		if got := ParseSearchPath(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseSearchPath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolveRelativeAndAbsolute(t *testing.T) {
	r := NewResolver(nil)

	got, err := r.Resolve(AnchorRelative, "sub/file.nix", "/modules/here")
	if err != nil {
		t.Fatalf("relative resolve failed: %v", err)
	}
	if got != "/modules/here/sub/file.nix" {
		t.Errorf("relative = %q", got)
	}

	got, err = r.Resolve(AnchorAbsolute, "/x/../y/file.nix", "/ignored")
	if err != nil {
		t.Fatalf("absolute resolve failed: %v", err)
	}
	if got != "/y/file.nix" {
		t.Errorf("absolute = %q", got)
	}
}

func TestResolveHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	r := NewResolver(nil)
	got, err := r.Resolve(AnchorHome, ".config/nix/registry.json", "/ignored")
	if err != nil {
		t.Fatalf("home resolve failed: %v", err)
	}
	if got != "/home/tester/.config/nix/registry.json" {
		t.Errorf("home = %q", got)
	}
}

func TestResolveStoreNamedEntry(t *testing.T) {
	t.Setenv("NIX_PATH", "")
	r := NewResolver([]string{"nixpkgs=/channels/nixpkgs"})

	got, err := r.Resolve(AnchorStore, "nixpkgs/lib/default.nix", "/ignored")
	if err != nil {
		t.Fatalf("store resolve failed: %v", err)
	}
	if got != "/channels/nixpkgs/lib/default.nix" {
		t.Errorf("store named = %q", got)
	}

	// The bare channel name resolves to the prefix itself.
	got, err = r.Resolve(AnchorStore, "nixpkgs", "/ignored")
	if err != nil {
		t.Fatalf("bare store resolve failed: %v", err)
	}
	if got != "/channels/nixpkgs" {
		t.Errorf("store bare = %q", got)
	}
}

func TestResolveStoreUnnamedEntryNeedsExistingFile(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.nix")
	if err := os.WriteFile(present, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NIX_PATH", "")
	r := NewResolver([]string{"/does/not/exist", dir})

	got, err := r.Resolve(AnchorStore, "present.nix", "/ignored")
	if err != nil {
		t.Fatalf("unnamed store resolve failed: %v", err)
	}
	if got != present {
		t.Errorf("store unnamed = %q, want %q", got, present)
	}

	_, err = r.Resolve(AnchorStore, "absent.nix", "/ignored")
	if err == nil {
		t.Fatalf("resolve of absent entry succeeded")
	}
	if !strings.Contains(err.Error(), "export did not resolve") {
		t.Errorf("error = %v", err)
	}
}

func TestResolveUnknownAnchor(t *testing.T) {
	r := NewResolver(nil)
	_, err := r.Resolve(Anchor("Banana"), "x", "/ignored")
	if err == nil || !strings.Contains(err.Error(), "unknown anchor") {
		t.Errorf("unknown anchor error = %v", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if !Exists(dir) {
		t.Errorf("Exists(%q) = false", dir)
	}
	if Exists(filepath.Join(dir, "ghost")) {
		t.Errorf("Exists reported a missing path")
	}
	if !IsDir(dir) {
		t.Errorf("IsDir(%q) = false", dir)
	}
}
