// Package workspace discovers version-controlled project directories under
// one or more roots and aggregates their problems.
package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"thoreinstein.com/tend/pkg/errors"
	"thoreinstein.com/tend/pkg/git"
	"thoreinstein.com/tend/pkg/project"
)

// DefaultWorkers bounds parallel project refreshes. Each refresh spawns
// git subprocesses, so the limit also caps concurrent process creation.
const DefaultWorkers = 4

// Workspace maps lower-cased project names to Projects. It is built once
// at construction; nothing is persisted between runs.
type Workspace struct {
	Roots    []string
	projects map[string]*project.Project
}

// Report is the problem summary for one project. A hard failure while
// refreshing is recorded in Err rather than silently swallowed.
type Report struct {
	Name     string
	Problems []string
	Err      error
}

// New discovers projects under the given roots using the real git binary.
func New(roots []string) (*Workspace, error) {
	return NewWithRunner(roots, git.NewRunner())
}

// NewWithRunner discovers projects with a custom CommandRunner (for
// testing). Every immediate child directory of a root containing the
// version-control marker becomes one Project. Construction fails fast when
// a root does not exist or is not a directory. When two roots contain
// projects with the same case-insensitive name, the first discovered wins.
func NewWithRunner(roots []string, runner git.CommandRunner) (*Workspace, error) {
	w := &Workspace{
		Roots:    roots,
		projects: make(map[string]*project.Project),
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.NewConfigErrorWithCause("workspace.roots", "root does not exist: "+root, err)
		}
		if !info.IsDir() {
			return nil, errors.NewConfigError("workspace.roots", "root is not a directory: "+root)
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, errors.Wrapf(err, "reading workspace root %s", root)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if !git.IsRepo(path) {
				continue
			}

			key := strings.ToLower(entry.Name())
			if _, exists := w.projects[key]; exists {
				continue
			}
			w.projects[key] = project.NewWithRunner(path, runner)
		}
	}

	return w, nil
}

// Get looks up a project by name, case-insensitively.
func (w *Workspace) Get(name string) (*project.Project, bool) {
	p, ok := w.projects[strings.ToLower(name)]
	return p, ok
}

// Len returns the number of discovered projects.
func (w *Workspace) Len() int {
	return len(w.projects)
}

// Names returns the lower-cased project names in sorted order.
func (w *Workspace) Names() []string {
	names := make([]string, 0, len(w.projects))
	for name := range w.projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Projects returns the discovered projects sorted by name.
func (w *Workspace) Projects() []*project.Project {
	projects := make([]*project.Project, 0, len(w.projects))
	for _, name := range w.Names() {
		projects = append(projects, w.projects[name])
	}
	return projects
}

// RefreshAll rebuilds every project from disk with a bounded worker pool.
// Projects are independent, so refreshes run in parallel; the first hard
// failure cancels the remaining work and is returned.
func (w *Workspace) RefreshAll(ctx context.Context, workers int) error {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, p := range w.Projects() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return p.Refresh()
		})
	}
	return g.Wait()
}

// Reports recomputes every project's problems fresh, in parallel, and
// returns one Report per project sorted by name. Per-project failures are
// recorded in the Report instead of aborting the others.
func (w *Workspace) Reports(ctx context.Context, workers int) []Report {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	projects := w.Projects()
	reports := make([]Report, len(projects))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range projects {
		g.Go(func() error {
			reports[i].Name = p.Name
			if err := ctx.Err(); err != nil {
				reports[i].Err = err
				return nil
			}
			problems, err := p.Problems()
			reports[i].Problems = problems
			reports[i].Err = err
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in the reports

	return reports
}
