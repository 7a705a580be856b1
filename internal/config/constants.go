package config

// DefaultModuleFile is appended when an import path resolves to a
// directory.
const DefaultModuleFile = "default.nix"

// SourceFileExt is the extension of translatable source files.
const SourceFileExt = ".nix"

// LangVersion mirrors builtins.langVersion of the reference interpreter
// generation this runtime targets.
const LangVersion = 6

// NixVersion is reported by builtins.nixVersion.
const NixVersion = "2.18.1"

// DefaultSystem is reported by builtins.currentSystem unless overridden
// in the runtime configuration.
const DefaultSystem = "x86_64-linux"

// DefaultStoreDir is reported by builtins.storeDir.
const DefaultStoreDir = "/nix/store"

// Environment variable names consulted by the path engine
const (
	NixPathEnv = "NIX_PATH"
	HomeEnv    = "HOME"
)
