// Package config handles global snip configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultSnippetsFile is the snippet file name inside the data directory.
	DefaultSnippetsFile = "snippets.json"
	// DefaultCounterFile is the id counter file name inside the data directory.
	DefaultCounterFile = "id.txt"
	// DefaultCodeTheme is the chroma theme used when none is configured.
	DefaultCodeTheme = "monokai"
)

// Config represents the global snip configuration.
type Config struct {
	// DataDir holds the snippet file, the counter file and the search index.
	// Defaults to $XDG_DATA_HOME/snip (or ~/.local/share/snip).
	DataDir string `toml:"data_dir"`

	// SnippetsFile is the snippet file path. Relative paths resolve against DataDir.
	SnippetsFile string `toml:"snippets_file"`

	// CounterFile is the id counter path. Relative paths resolve against DataDir.
	CounterFile string `toml:"counter_file"`

	// Editor is used to write snippet code (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or hex color ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme is the chroma theme used to highlight snippet code.
	// Example values: "monokai", "dracula", "github", "nord".
	CodeTheme string `toml:"code_theme"`
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads the configuration from a specific path.
// A missing file yields an empty config.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/snip/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "snip", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "snip", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// DefaultDataDir returns the directory snippets live in when data_dir is unset.
func DefaultDataDir() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "snip")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "snip")
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "snip")
	}
	return "."
}

// ResolveDataDir applies precedence: explicit override > data_dir > default.
// A leading "~/" is expanded to the home directory.
func (c *Config) ResolveDataDir(override string) string {
	dir := strings.TrimSpace(override)
	if dir == "" && c != nil {
		dir = strings.TrimSpace(c.DataDir)
	}
	if dir == "" {
		return DefaultDataDir()
	}
	return expandHome(dir)
}

// SnippetPaths returns the snippet and counter file paths under dataDir.
func (c *Config) SnippetPaths(dataDir string) (snippetsFile, counterFile string) {
	snippetsFile, counterFile = DefaultSnippetsFile, DefaultCounterFile
	if c != nil {
		if v := strings.TrimSpace(c.SnippetsFile); v != "" {
			snippetsFile = v
		}
		if v := strings.TrimSpace(c.CounterFile); v != "" {
			counterFile = v
		}
	}
	return resolveIn(dataDir, snippetsFile), resolveIn(dataDir, counterFile)
}

// CodeTheme returns the configured chroma theme or the default.
func (c *Config) CodeTheme() string {
	if c != nil {
		if v := strings.TrimSpace(c.UI.CodeTheme); v != "" {
			return v
		}
	}
	return DefaultCodeTheme
}

// GetEditor returns the editor to use, falling back to $EDITOR.
func (c *Config) GetEditor() string {
	if c != nil && c.Editor != "" {
		return c.Editor
	}
	return os.Getenv("EDITOR")
}

func resolveIn(dir, p string) string {
	p = expandHome(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// CreateDefault writes a commented default config to path if none exists.
// It returns true when a file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# snip configuration

# Directory holding snippets.json, id.txt and the search index.
# data_dir = "~/.local/share/snip"

# File names (relative to data_dir) or absolute paths.
# snippets_file = "snippets.json"
# counter_file = "id.txt"

# Editor for writing snippet code (defaults to $EDITOR)
# editor = "vim"

# Optional UI accent color (ANSI 0-255 or #RRGGBB) and code highlight theme.
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
