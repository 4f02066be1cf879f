package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"thoreinstein.com/tend/pkg/ui"
)

// originCmd represents the origin command
var originCmd = &cobra.Command{
	Use:   "origin <project> <scheme>",
	Short: "Rewrite a project's origin URL to https or ssh",
	Long: `Origin rewrites the project's origin remote URL into the requested
scheme and applies it with git remote set-url. Supported schemes are
https and ssh. Projects without a configured origin are left untouched.

Examples:
  tend origin redis-tools https
  tend origin redis-tools ssh`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOriginCommand(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(originCmd)
}

func runOriginCommand(name, scheme string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	p, err := requireProject(ws, name)
	if err != nil {
		return err
	}

	repo, err := p.Repo()
	if err != nil {
		return err
	}

	if err := repo.ChangeOriginProtocol(scheme); err != nil {
		return err
	}

	if origin, ok := repo.Origin(); ok {
		fmt.Printf("%s origin for %s is now %s\n", ui.StyleSuccess.Render("✓"), p.Name, origin)
	} else {
		fmt.Printf("%s has no origin remote, nothing to change\n", p.Name)
	}
	return nil
}
