// Package project composes the file tree, repository and packaging facts
// for one version-controlled directory and exposes its maintenance
// problems.
package project

import (
	"os"
	"path/filepath"
	"time"

	"thoreinstein.com/tend/pkg/files"
	"thoreinstein.com/tend/pkg/git"
	"thoreinstein.com/tend/pkg/ignore"
	"thoreinstein.com/tend/pkg/pack"
)

// ProblemSource is the capability shared by every entity that can report
// maintenance problems. Problems are plain diagnostic strings, recomputed
// on demand and never persisted.
type ProblemSource interface {
	Problems() []string
}

// Project is one version-controlled directory. Its sub-entities are built
// lazily on first access and cached for the Project's lifetime; Refresh
// rebuilds everything from disk. A Project never outlives its path and
// never carries state across process runs.
type Project struct {
	Path string
	Name string

	runner git.CommandRunner

	tree *files.Tree
	repo *git.Repository
	pkg  *pack.Info

	// refreshDuration is the wall-clock cost of the last full refresh.
	refreshDuration time.Duration
}

// New creates a Project rooted at path, using the real git binary.
func New(path string) *Project {
	return NewWithRunner(path, git.NewRunner())
}

// NewWithRunner creates a Project with a custom CommandRunner (for testing).
func NewWithRunner(path string, runner git.CommandRunner) *Project {
	return &Project{
		Path:   path,
		Name:   filepath.Base(path),
		runner: runner,
	}
}

// Files returns the project's file tree, scanning on first access.
func (p *Project) Files() (*files.Tree, error) {
	if p.tree != nil {
		return p.tree, nil
	}

	matcher, err := ignore.Load(filepath.Join(p.Path, ".gitignore"))
	if err != nil {
		return nil, err
	}
	tree, err := files.Scan(p.Path, matcher)
	if err != nil {
		return nil, err
	}
	p.tree = tree
	return tree, nil
}

// Repo returns the project's repository facts, refreshing on first access.
func (p *Project) Repo() (*git.Repository, error) {
	if p.repo != nil && p.repo.Valid() {
		return p.repo, nil
	}

	repo := git.NewRepositoryWithRunner(p.Path, p.runner)
	if err := repo.Refresh(); err != nil {
		return nil, err
	}
	p.repo = repo
	return repo, nil
}

// Package returns the project's packaging facts, probing on first access.
func (p *Project) Package() (*pack.Info, error) {
	if p.pkg != nil {
		return p.pkg, nil
	}

	info, err := pack.Detect(p.Path, p.runner)
	if err != nil {
		return nil, err
	}
	p.pkg = info
	return info, nil
}

// Refresh discards every cached sub-entity and rebuilds all of them from
// the current filesystem and repository state.
func (p *Project) Refresh() error {
	start := time.Now()
	p.tree = nil
	p.repo = nil
	p.pkg = nil

	if _, err := p.Files(); err != nil {
		return err
	}
	if _, err := p.Repo(); err != nil {
		return err
	}
	if _, err := p.Package(); err != nil {
		return err
	}

	p.refreshDuration = time.Since(start)
	return nil
}

// RefreshDuration returns the wall-clock cost of the last full Refresh.
func (p *Project) RefreshDuration() time.Duration {
	return p.refreshDuration
}

// HasDocs reports whether the project has a docs subdirectory.
func (p *Project) HasDocs() bool {
	info, err := os.Stat(filepath.Join(p.Path, "docs"))
	return err == nil && info.IsDir()
}

// Readme returns the name of the first file matching the README glob.
func (p *Project) Readme() (string, bool) {
	matches, err := filepath.Glob(filepath.Join(p.Path, "README*"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return filepath.Base(matches[0]), true
}

// Problems concatenates the problem streams of every populated sub-entity
// in a fixed order: repository, files, package, then project-level checks.
// Entries carry no project-name prefix; prefixing is a presentation
// concern. A hard sub-entity failure propagates instead of being folded
// into the stream.
func (p *Project) Problems() ([]string, error) {
	var problems []string

	repo, err := p.Repo()
	if err != nil {
		return nil, err
	}
	problems = append(problems, repo.Problems()...)

	tree, err := p.Files()
	if err != nil {
		return nil, err
	}
	problems = append(problems, tree.Problems()...)

	pkg, err := p.Package()
	if err != nil {
		return nil, err
	}
	problems = append(problems, pkg.Problems()...)

	if _, ok := p.Readme(); !ok {
		problems = append(problems, "has no README file")
	}

	return problems, nil
}
