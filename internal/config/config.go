package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// FileName is the preferences file inside the config directory.
const FileName = "config.json"

// ErrUnknownKey is wrapped by Set and Value for keys that do not exist.
var ErrUnknownKey = errors.New("unknown config key")

// Config holds the editor preferences.
type Config struct {
	// UI preferences
	Theme         string `json:"theme"`
	RevealSecrets bool   `json:"reveal_secrets"`

	// Save behavior
	CloseAfterSave bool   `json:"close_after_save"`
	CloseDelay     string `json:"close_delay"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Theme:      "creeper",
		CloseDelay: "1s",
		LogLevel:   "info",
	}
}

// CloseDelayDuration parses CloseDelay, falling back to one second.
func (c *Config) CloseDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.CloseDelay)
	if err != nil || d < 0 {
		return time.Second
	}
	return d
}

// Manager handles configuration loading and saving
type Manager struct {
	fs         afero.Fs
	configPath string
	config     *Config
}

// DefaultDir returns the per-user preferences directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, "propedit"), nil
}

// NewManager creates a configuration manager for dir on fsys.
func NewManager(fsys afero.Fs, dir string) *Manager {
	return &Manager{
		fs:         fsys,
		configPath: filepath.Join(dir, FileName),
		config:     DefaultConfig(),
	}
}

// Path returns the config file path.
func (m *Manager) Path() string {
	return m.configPath
}

// Dir returns the directory holding the config file.
func (m *Manager) Dir() string {
	return filepath.Dir(m.configPath)
}

// Load reads the configuration from disk. A missing file leaves the
// defaults in place and is not created until the first Set.
func (m *Manager) Load() error {
	data, err := afero.ReadFile(m.fs, m.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		m.config = DefaultConfig()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}

	m.expandEnvVars(config)
	m.config = config
	return nil
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	if err := m.fs.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(m.fs, m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// Keys lists the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(accessors))
	for k := range accessors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns a single setting formatted as text.
func (m *Manager) Value(key string) (string, error) {
	a, ok := accessors[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return a.get(m.config), nil
}

// Set updates a configuration value and saves
func (m *Manager) Set(key, value string) error {
	a, ok := accessors[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := a.set(m.config, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return m.Save()
}

type accessor struct {
	get func(*Config) string
	set func(*Config, string) error
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var accessors = map[string]accessor{
	"theme": {
		get: func(c *Config) string { return c.Theme },
		set: func(c *Config, v string) error { c.Theme = v; return nil },
	},
	"reveal_secrets": boolAccessor(func(c *Config) *bool { return &c.RevealSecrets }),
	"close_after_save": boolAccessor(func(c *Config) *bool { return &c.CloseAfterSave }),
	"close_delay": {
		get: func(c *Config) string { return c.CloseDelay },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			if d < 0 {
				return fmt.Errorf("negative duration %s", v)
			}
			c.CloseDelay = v
			return nil
		},
	},
	"log_level": {
		get: func(c *Config) string { return c.LogLevel },
		set: func(c *Config, v string) error {
			v = strings.ToLower(v)
			if !logLevels[v] {
				return fmt.Errorf("level must be one of debug, info, warn, error")
			}
			c.LogLevel = v
			return nil
		},
	},
	"log_file": {
		get: func(c *Config) string { return c.LogFile },
		set: func(c *Config, v string) error { c.LogFile = v; return nil },
	},
}

func boolAccessor(field func(*Config) *bool) accessor {
	return accessor{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", v)
			}
			*field(c) = b
			return nil
		},
	}
}

// expandEnvVars expands environment variables in config values
func (m *Manager) expandEnvVars(config *Config) {
	config.Theme = expandString(config.Theme)
	config.LogFile = expandString(config.LogFile)
	config.LogLevel = expandString(config.LogLevel)
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandString expands environment variables in a string
// Supports $VAR and ${VAR} syntax
func expandString(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		// Return original if env var not found
		return match
	})
}
