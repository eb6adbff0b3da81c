package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/snip/internal/atomicfile"
)

type persistedConfig struct {
	DataDir      *string              `toml:"data_dir,omitempty"`
	SnippetsFile *string              `toml:"snippets_file,omitempty"`
	CounterFile  *string              `toml:"counter_file,omitempty"`
	Editor       *string              `toml:"editor,omitempty"`
	UI           *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the config to path atomically. Empty values are omitted.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		DataDir:      nonEmptyPtr(cfg.DataDir),
		SnippetsFile: nonEmptyPtr(cfg.SnippetsFile),
		CounterFile:  nonEmptyPtr(cfg.CounterFile),
		Editor:       nonEmptyPtr(cfg.Editor),
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644, atomicfile.WithParents()); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

// settable maps dotted config keys to their fields.
var settable = map[string]func(*Config) *string{
	"data_dir":      func(c *Config) *string { return &c.DataDir },
	"snippets_file": func(c *Config) *string { return &c.SnippetsFile },
	"counter_file":  func(c *Config) *string { return &c.CounterFile },
	"editor":        func(c *Config) *string { return &c.Editor },
	"ui.accent":     func(c *Config) *string { return &c.UI.Accent },
	"ui.code_theme": func(c *Config) *string { return &c.UI.CodeTheme },
}

// Keys returns the config keys accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settable))
	for k := range settable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns value to a dotted key such as "ui.accent". An empty value
// clears the key.
func (c *Config) Set(key, value string) error {
	field, ok := settable[strings.TrimSpace(key)]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	*field(c) = strings.TrimSpace(value)
	return nil
}

// Get returns the value of a dotted key.
func (c *Config) Get(key string) (string, error) {
	field, ok := settable[strings.TrimSpace(key)]
	if !ok {
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return *field(c), nil
}
