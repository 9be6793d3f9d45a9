package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kibrary/kibrary/internal/atomicfile"
)

// persistedConfig mirrors Config with omit-empty pointers so a saved file only
// contains what the user actually set.
type persistedConfig struct {
	DefaultLibrary *string             `toml:"default_library,omitempty"`
	Libraries      map[string][]string `toml:"libraries,omitempty"`
	AuditLog       *string             `toml:"audit_log,omitempty"`
	UI             *persistedUI        `toml:"ui,omitempty"`
}

type persistedUI struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		DefaultLibrary: nonEmptyPtr(cfg.DefaultLibrary),
		AuditLog:       nonEmptyPtr(cfg.AuditLog),
	}
	if len(cfg.Libraries) > 0 {
		out.Libraries = cfg.Libraries
	}
	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUI{Accent: accent}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
