package cmd

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"thoreinstein.com/tend/pkg/git"
	"thoreinstein.com/tend/pkg/project"
	"thoreinstein.com/tend/pkg/workspace"
)

// loadWorkspace builds the workspace from the configured roots with a git
// runner that honors the configured timeout.
func loadWorkspace() (*workspace.Workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	runner := &git.RealCommandRunner{
		Timeout: cfg.GitTimeout(),
		Verbose: verbose,
	}
	return workspace.NewWithRunner(cfg.Workspace.Roots, runner)
}

// requireProject looks up a single project by name and fails with the known
// names when it does not exist.
func requireProject(ws *workspace.Workspace, name string) (*project.Project, error) {
	p, ok := ws.Get(name)
	if !ok {
		return nil, errors.Newf("unknown project %q (known: %v)", name, ws.Names())
	}
	return p, nil
}

// workers returns the configured refresh parallelism.
func workers() int {
	if appConfig == nil {
		return workspace.DefaultWorkers
	}
	return appConfig.Workspace.Workers
}

// formatAge renders a duration since the last commit in coarse units.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
