package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"thoreinstein.com/tend/pkg/ui"
	"thoreinstein.com/tend/pkg/workspace"
)

var problemsJSON bool
var problemsYAML bool

// problemsCmd represents the problems command
var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "Report every project's maintenance problems",
	Long: `Problems inspects every project in the workspace and prints its
maintenance problems: uncommitted changes, unpushed or unpulled commits,
insecure remotes, missing packaging files, missing README and empty
source trees.

Projects without problems are omitted from the report. A project whose
facts cannot be computed at all is reported with the failure instead of
being silently skipped.

Examples:
  tend problems
  tend problems --json
  tend problems --yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProblemsCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(problemsCmd)

	problemsCmd.Flags().BoolVar(&problemsJSON, "json", false, "Emit the report as JSON")
	problemsCmd.Flags().BoolVar(&problemsYAML, "yaml", false, "Emit the report as YAML")
	problemsCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

// problemReport is the encodable form of a workspace.Report.
type problemReport struct {
	Project  string   `json:"project" yaml:"project"`
	Problems []string `json:"problems,omitempty" yaml:"problems,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func runProblemsCommand(cmd *cobra.Command) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	reports := ws.Reports(context.Background(), workers())

	if problemsJSON || problemsYAML {
		return encodeReports(cmd, reports)
	}

	printReports(reports)
	return nil
}

// encodeReports writes the machine-readable form of the report to the
// command's stdout. Only projects with problems or failures appear.
func encodeReports(cmd *cobra.Command, reports []workspace.Report) error {
	out := make([]problemReport, 0, len(reports))
	for _, r := range reports {
		if len(r.Problems) == 0 && r.Err == nil {
			continue
		}
		pr := problemReport{Project: r.Name, Problems: r.Problems}
		if r.Err != nil {
			pr.Error = r.Err.Error()
		}
		out = append(out, pr)
	}

	if problemsYAML {
		data, err := yaml.Marshal(out)
		if err != nil {
			return errors.Wrap(err, "encoding report as YAML")
		}
		cmd.Print(string(data))
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "encoding report as JSON")
	}
	return nil
}

// printReports renders the human-readable report.
func printReports(reports []workspace.Report) {
	clean := 0
	for _, r := range reports {
		switch {
		case r.Err != nil:
			fmt.Printf("%s %s: %v\n", ui.StyleError.Render("✗"), ui.StyleBold.Render(r.Name), r.Err)
		case len(r.Problems) > 0:
			fmt.Println(ui.StyleBold.Render(r.Name))
			for _, problem := range r.Problems {
				fmt.Printf("  %s %s\n", ui.StyleWarning.Render("•"), problem)
			}
		default:
			clean++
		}
	}

	if clean == len(reports) {
		fmt.Println(ui.StyleSuccess.Render("All projects are healthy"))
	} else if verbose {
		fmt.Fprintf(os.Stderr, "%d of %d projects healthy\n", clean, len(reports))
	}
}
