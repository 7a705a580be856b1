// Package config holds the runtime constants and the optional nixrt.yaml
// configuration file.
//
// The config file lets an embedder pin search-path entries and reporting
// knobs without touching process environment variables:
//
//	system: x86_64-linux
//	trace-color: auto
//	search-path:
//	  - nixpkgs=/var/lib/channels/nixpkgs
//	  - /var/lib/channels
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the parsed nixrt.yaml.
type Config struct {
	// System overrides builtins.currentSystem.
	System string `yaml:"system,omitempty"`

	// TraceColor controls ANSI colour on the trace sink: "auto" (colour
	// when the sink is a terminal), "always", or "never". Empty means
	// auto.
	TraceColor string `yaml:"trace-color,omitempty"`

	// SearchPath entries are prepended to the NIX_PATH-derived search
	// path. Each entry is either "name=prefix" or a bare prefix.
	SearchPath []string `yaml:"search-path,omitempty"`

	// StoreDir overrides builtins.storeDir.
	StoreDir string `yaml:"store-dir,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		System:     DefaultSystem,
		TraceColor: "auto",
		StoreDir:   DefaultStoreDir,
	}
}

// Load reads and validates a nixrt.yaml. A missing file is not an error:
// the defaults come back.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that have a closed domain.
func (c *Config) Validate() error {
	switch c.TraceColor {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("config: invalid trace-color %q (want auto, always or never)", c.TraceColor)
	}
	if c.System == "" {
		c.System = DefaultSystem
	}
	if c.StoreDir == "" {
		c.StoreDir = DefaultStoreDir
	}
	return nil
}
