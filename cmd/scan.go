package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thoreinstein.com/tend/pkg/ui"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Inventory the projects under the workspace roots",
	Long: `Scan discovers every version-controlled project under the configured
workspace roots, refreshes each one from disk, and prints an inventory
table with the dominant language, source structure, file count and
source line count.

Examples:
  tend scan
  tend scan --verbose`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScanCommand()
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScanCommand() error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Scanning %d projects under %v\n", ws.Len(), ws.Roots)
	}

	if err := ws.RefreshAll(context.Background(), workers()); err != nil {
		return errors.Wrap(err, "refreshing workspace")
	}

	table := ui.NewTable("PROJECT", "LANGUAGE", "STRUCTURE", "FILES", "SLOC", "AGE", "REFRESH")
	for _, p := range ws.Projects() {
		tree, err := p.Files()
		if err != nil {
			return err
		}
		repo, err := p.Repo()
		if err != nil {
			return err
		}

		table.AddRow(
			p.Name,
			tree.Language(),
			tree.Structure().String(),
			strconv.Itoa(tree.Count()),
			strconv.Itoa(tree.SLOC),
			formatAge(repo.Age()),
			p.RefreshDuration().Round(time.Millisecond).String(),
		)
	}
	table.Print()

	return nil
}
