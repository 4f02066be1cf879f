package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"thoreinstein.com/tend/pkg/ui"
)

var syncFetchOnly bool

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync <project>",
	Short: "Pull then push a project's repository",
	Long: `Sync integrates remote changes into a project and publishes local
commits, in that order. It is a no-op for projects without a configured
origin remote.

The operation is not transactional: if the push fails after a
successful pull, the working tree keeps the pulled changes. Use --fetch
to update tracking state without touching the working tree.

Examples:
  tend sync redis-tools
  tend sync redis-tools --fetch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSyncCommand(args[0])
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncFetchOnly, "fetch", false, "Only fetch remote tracking state, do not pull or push")
}

func runSyncCommand(name string) error {
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

	if _, ok := repo.Origin(); !ok {
		fmt.Printf("%s has no origin remote, nothing to sync\n", p.Name)
		return nil
	}

	if syncFetchOnly {
		if err := repo.Fetch(); err != nil {
			return err
		}
		fmt.Printf("%s %s fetched: %d ahead, %d behind\n", ui.StyleSuccess.Render("✓"), p.Name, repo.Ahead(), repo.Behind())
		return nil
	}

	if verbose {
		fmt.Printf("Syncing %s...\n", p.Name)
	}
	if err := repo.Sync(); err != nil {
		return err
	}

	fmt.Printf("%s %s synced\n", ui.StyleSuccess.Render("✓"), p.Name)
	return nil
}
