// Package config handles global kibrary configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the global configuration, normally at
// ~/.config/kibrary/config.toml.
type Config struct {
	// DefaultLibrary names the library used when --library is not given.
	DefaultLibrary string `toml:"default_library"`

	// Libraries maps a library name to its ordered root directories. The
	// first root receives newly created objects.
	Libraries map[string][]string `toml:"libraries"`

	// AuditLog is the default audit log target for decompile runs. Empty
	// disables audit logging unless --audit-log is passed.
	AuditLog string `toml:"audit_log"`

	// UI holds optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig holds optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0".."255") or a hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kibrary", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".kibrary.toml")
	}
	return filepath.Join(home, ".config", "kibrary", "config.toml")
}

// Load reads the config file at path. A missing file yields an empty config,
// not an error; a malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// LibraryRoots resolves a library name to its root directories. An empty name
// falls back to the default library.
func (c *Config) LibraryRoots(name string) ([]string, error) {
	if name == "" {
		name = c.DefaultLibrary
	}
	if name == "" {
		return nil, fmt.Errorf("no library specified and no default_library configured")
	}
	roots, ok := c.Libraries[name]
	if !ok || len(roots) == 0 {
		return nil, fmt.Errorf("library %q not found in config", name)
	}
	return roots, nil
}

// LibraryNames returns the configured library names, unordered.
func (c *Config) LibraryNames() []string {
	names := make([]string, 0, len(c.Libraries))
	for name := range c.Libraries {
		names = append(names, name)
	}
	return names
}
