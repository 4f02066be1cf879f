package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Len(t, cfg.Workspace.Roots, 1)
	assert.Equal(t, 4, cfg.Workspace.Workers)
	assert.Equal(t, 30*time.Second, cfg.GitTimeout())
	assert.False(t, cfg.Output.NoColor)
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("workspace.roots", []string{"/data/projects"})
	viper.Set("workspace.workers", 8)
	viper.Set("git.timeout", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"/data/projects"}, cfg.Workspace.Roots)
	assert.Equal(t, 8, cfg.Workspace.Workers)
	assert.Equal(t, 5*time.Second, cfg.GitTimeout())
}

func TestLoad_TildeExpansion(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("workspace.roots", []string{"~/projects"})

	cfg, err := Load()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "projects"), cfg.Workspace.Roots[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workspace.Workers = -1 },
			wantErr: true,
		},
		{
			name:    "bad timeout",
			mutate:  func(c *Config) { c.Git.Timeout = "soon" },
			wantErr: true,
		},
		{
			name:   "empty timeout allowed",
			mutate: func(c *Config) { c.Git.Timeout = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Workspace: WorkspaceConfig{Workers: 4},
				Git:       GitConfig{Timeout: "30s"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")

	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, toml.Unmarshal(data, &doc))
	assert.Contains(t, doc, "workspace")
	assert.Contains(t, doc, "git")

	// Never overwrite an existing file.
	assert.Error(t, WriteDefault(path))
}
