package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestRootCommandStructure(t *testing.T) {
	// Not parallel - accesses global rootCmd
	cmd := rootCmd

	if cmd.Use != "tend" {
		t.Errorf("root command Use = %q, want %q", cmd.Use, "tend")
	}

	if cmd.Short == "" {
		t.Error("root command should have Short description")
	}

	if cmd.Long == "" {
		t.Error("root command should have Long description")
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	// Not parallel - accesses global rootCmd
	cmd := rootCmd

	configFlag := cmd.PersistentFlags().Lookup("config")
	if configFlag == nil {
		t.Fatal("root command should have --config persistent flag")
	}
	if configFlag.DefValue != "" {
		t.Errorf("--config default should be empty, got %q", configFlag.DefValue)
	}
	if !strings.Contains(configFlag.Usage, "$HOME/.config/tend") {
		t.Error("--config usage should mention default config location")
	}

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	if verboseFlag == nil {
		t.Fatal("root command should have --verbose persistent flag")
	}
	if verboseFlag.DefValue != "false" {
		t.Errorf("--verbose default should be 'false', got %q", verboseFlag.DefValue)
	}
	if verboseFlag.Shorthand != "v" {
		t.Errorf("--verbose shorthand should be 'v', got %q", verboseFlag.Shorthand)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	// Not parallel - accesses global rootCmd
	registered := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		name := strings.Split(sub.Use, " ")[0]
		registered[name] = true
	}

	expected := []string{"scan", "problems", "show", "sync", "origin", "config"}
	for _, name := range expected {
		if !registered[name] {
			t.Errorf("root command should have %q subcommand registered", name)
		}
	}
}

func TestInitConfig_WithCustomConfigFile(t *testing.T) {
	// Don't run in parallel - modifies global viper state
	tmpDir := t.TempDir()

	configContent := `[workspace]
roots = ["/custom/src"]
workers = 2

[git]
timeout = "10s"
`
	customConfigPath := filepath.Join(tmpDir, "custom-config.toml")
	if err := os.WriteFile(customConfigPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write custom config: %v", err)
	}

	resetConfig()
	defer resetConfig()

	oldCfgFile := cfgFile
	cfgFile = customConfigPath
	defer func() { cfgFile = oldCfgFile }()

	if err := initConfig(); err != nil {
		t.Fatalf("initConfig() error: %v", err)
	}

	if got := viper.GetStringSlice("workspace.roots"); len(got) != 1 || got[0] != "/custom/src" {
		t.Errorf("workspace.roots = %v, want [/custom/src]", got)
	}
	if got := viper.GetInt("workspace.workers"); got != 2 {
		t.Errorf("workspace.workers = %d, want 2", got)
	}
	if got := viper.GetString("git.timeout"); got != "10s" {
		t.Errorf("git.timeout = %q, want %q", got, "10s")
	}
}

func TestInitConfig_NoConfigFile(t *testing.T) {
	// Don't run in parallel - modifies global viper state
	tmpDir := t.TempDir()

	resetConfig()
	defer resetConfig()

	t.Setenv("HOME", tmpDir)

	oldCfgFile := cfgFile
	cfgFile = ""
	defer func() { cfgFile = oldCfgFile }()

	// Should not fail when no config file exists; defaults apply.
	if err := initConfig(); err != nil {
		t.Fatalf("initConfig() without config file should not error: %v", err)
	}

	if appConfig == nil {
		t.Fatal("initConfig() should populate appConfig")
	}
	if appConfig.Workspace.Workers != 4 {
		t.Errorf("default workers = %d, want 4", appConfig.Workspace.Workers)
	}
}

func TestRootCommand_ExecuteWithUnknownCommand(t *testing.T) {
	var stderr bytes.Buffer

	testCmd := *rootCmd
	testCmd.SetArgs([]string{"unknown-subcommand-xyz"})
	testCmd.SetOut(&bytes.Buffer{})
	testCmd.SetErr(&stderr)

	if err := testCmd.Execute(); err == nil {
		t.Error("Execute with unknown subcommand should return error")
	}
}
