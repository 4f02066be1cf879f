package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"thoreinstein.com/tend/pkg/bootstrap"
	"thoreinstein.com/tend/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tend configuration",
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Init writes a starter configuration file with the default workspace
roots, worker count and git timeout. It refuses to overwrite an
existing file.

Examples:
  tend config init
  tend config init --path /tmp/tend.toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInitCommand()
	},
}

var configInitPath string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "Write the config file to this path instead of the default location")
}

func runConfigInitCommand() error {
	path := configInitPath
	if path == "" {
		var err error
		path, err = bootstrap.DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}

	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}
