package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"thoreinstein.com/tend/pkg/errors"
)

// Config represents the application configuration.
// Per-project facts are derived from disk and git, never from configuration.
type Config struct {
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	Git       GitConfig       `mapstructure:"git"`
	Output    OutputConfig    `mapstructure:"output"`
}

// WorkspaceConfig holds project discovery configuration
type WorkspaceConfig struct {
	Roots   []string `mapstructure:"roots"`   // Directories whose children are candidate projects
	Workers int      `mapstructure:"workers"` // Parallel refresh limit (default: 4)
}

// GitConfig holds external git invocation configuration
type GitConfig struct {
	Timeout string `mapstructure:"timeout"` // Per-invocation timeout (default: "30s")
}

// OutputConfig holds terminal rendering configuration
type OutputConfig struct {
	NoColor bool `mapstructure:"no_color"` // Disable styled output
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Set defaults
	setDefaults()

	// Unmarshal the config
	if err := viper.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	// Expand paths
	if err := expandPaths(config); err != nil {
		return nil, errors.Wrap(err, "failed to expand paths")
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return config, nil
}

// GitTimeout returns the parsed per-invocation git timeout.
func (c *Config) GitTimeout() time.Duration {
	d, err := time.ParseDuration(c.Git.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if c.Workspace.Workers < 0 {
		return errors.NewConfigError("workspace.workers", "must not be negative")
	}
	if c.Git.Timeout != "" {
		if _, err := time.ParseDuration(c.Git.Timeout); err != nil {
			return errors.NewConfigErrorWithCause("git.timeout", "not a valid duration", err)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fall back to current directory if home dir can't be determined
		homeDir = "."
	}

	viper.SetDefault("workspace.roots", []string{filepath.Join(homeDir, "src")})
	viper.SetDefault("workspace.workers", 4)
	viper.SetDefault("git.timeout", "30s")
	viper.SetDefault("output.no_color", false)
}

// expandPaths expands ~ and environment variables in paths
func expandPaths(config *Config) error {
	var err error

	for i, path := range config.Workspace.Roots {
		config.Workspace.Roots[i], err = expandPath(path)
		if err != nil {
			return err
		}
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// WriteDefault writes a commented starter configuration to path in TOML
// form, creating parent directories as needed. It refuses to overwrite an
// existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf("config file already exists: %s", path)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	doc := map[string]any{
		"workspace": map[string]any{
			"roots":   []string{filepath.Join(homeDir, "src")},
			"workers": 4,
		},
		"git": map[string]any{
			"timeout": "30s",
		},
		"output": map[string]any{
			"no_color": false,
		},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding default config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "creating config directory for %s", path)
	}
	return os.WriteFile(path, data, 0644)
}
