package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"thoreinstein.com/tend/pkg/ui"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <project>",
	Short: "Show the full facts for one project",
	Long: `Show prints everything tend knows about a single project: its file
tree, repository state and packaging facts. Lookup is by directory
name, case-insensitively.

Examples:
  tend show redis-tools
  tend show MyApp`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowCommand(args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShowCommand(name string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	p, err := requireProject(ws, name)
	if err != nil {
		return err
	}

	tree, err := p.Files()
	if err != nil {
		return err
	}
	repo, err := p.Repo()
	if err != nil {
		return err
	}
	pkg, err := p.Package()
	if err != nil {
		return err
	}

	fmt.Println(ui.Section(p.Name))
	printFact("Path", p.Path)

	fmt.Println(ui.Section("Files"))
	printFact("Language", tree.Language())
	printFact("Structure", tree.Structure().String())
	printFact("Files", fmt.Sprintf("%d", tree.Count()))
	printFact("SLOC", fmt.Sprintf("%d", tree.SLOC))
	if largest, ok := tree.Largest(); ok {
		printFact("Largest file", fmt.Sprintf("%s (%d lines)", largest.Path, largest.Lines))
	}

	fmt.Println(ui.Section("Repository"))
	printFact("Dirty", fmt.Sprintf("%v", repo.Dirty()))
	printFact("Commits", fmt.Sprintf("%d", repo.CommitCount()))
	printFact("Last commit", fmt.Sprintf("%s (%s)", repo.LastCommit().Format(time.DateOnly), formatAge(repo.Age())))
	printFact("Ahead / behind", fmt.Sprintf("%d / %d", repo.Ahead(), repo.Behind()))
	if origin, ok := repo.Origin(); ok {
		printFact("Origin", origin)
	} else {
		printFact("Origin", ui.StyleMuted.Render("none"))
	}

	fmt.Println(ui.Section("Packaging"))
	printFact("Descriptor", fmt.Sprintf("%v", pkg.HasDescriptor))
	if pkg.HasDescriptor {
		printFact("Version", pkg.Version())
		if release, ok := pkg.LastRelease(); ok {
			printFact("Last release", release.Format(time.DateOnly))
		}
		if unpublished, ok := pkg.Unpublished(); ok {
			printFact("Unpublished", fmt.Sprintf("%d commits", len(unpublished)))
		}
	}

	fmt.Println(ui.Section("Project"))
	if readme, ok := p.Readme(); ok {
		printFact("README", readme)
	} else {
		printFact("README", ui.StyleMuted.Render("none"))
	}
	printFact("Docs", fmt.Sprintf("%v", p.HasDocs()))

	problems, err := p.Problems()
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		fmt.Println(ui.Section("Problems"))
		for _, problem := range problems {
			fmt.Printf("  %s %s\n", ui.StyleWarning.Render("•"), problem)
		}
	}

	return nil
}

// printFact renders one label/value line with aligned labels.
func printFact(label, value string) {
	padded := label + strings.Repeat(" ", max(0, 16-len(label)))
	fmt.Printf("  %s %s\n", ui.StyleMuted.Render(padded), value)
}
