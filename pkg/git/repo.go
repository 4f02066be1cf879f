// Package git translates external git command output into structured
// repository facts. The git binary itself is an opaque collaborator: every
// query shells out with an argument vector and parses standard output.
package git

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"thoreinstein.com/tend/pkg/errors"
)

// Repository holds derived version-control state for one working tree.
// All fields are recomputed together by Refresh; there is no partial
// refresh. Refresh and Sync on the same Repository must be serialized by
// the caller.
type Repository struct {
	Path   string
	runner CommandRunner

	valid       bool
	dirty       bool
	commitCount int
	lastCommit  time.Time
	ahead       int
	behind      int
	origin      string // empty means no remote configured
}

// aheadBehindRegex extracts the bracketed tracking markers from the first
// line of `git status --branch --porcelain`. Absence of a marker means
// zero, not unknown.
var (
	aheadRegex  = regexp.MustCompile(`\[.*ahead (\d+)`)
	behindRegex = regexp.MustCompile(`behind (\d+)\]`)
)

// NewRepository creates a Repository for path using the real git binary.
// The returned repository is invalid until the first Refresh.
func NewRepository(path string) *Repository {
	return NewRepositoryWithRunner(path, NewRunner())
}

// NewRepositoryWithRunner creates a Repository with a custom CommandRunner
// (for testing).
func NewRepositoryWithRunner(path string, runner CommandRunner) *Repository {
	return &Repository{Path: path, runner: runner}
}

// Refresh re-invokes the underlying git commands and replaces all fields.
// On failure the repository is left invalid rather than partially updated,
// and the error propagates to the caller.
func (r *Repository) Refresh() error {
	r.valid = false

	status, err := r.runner.Output(r.Path, "git", "status", "--porcelain")
	if err != nil {
		return errors.NewGitErrorWithCause("Refresh", r.Path, "status query failed", err)
	}
	dirty := strings.TrimSpace(string(status)) != ""

	branch, err := r.runner.Output(r.Path, "git", "status", "--branch", "--porcelain")
	if err != nil {
		return errors.NewGitErrorWithCause("Refresh", r.Path, "branch status query failed", err)
	}
	ahead, behind := parseAheadBehind(string(branch))

	stamp, err := r.runner.Output(r.Path, "git", "log", "-1", "--format=%ct")
	if err != nil {
		return errors.NewGitErrorWithCause("Refresh", r.Path, "log query failed", err)
	}
	lastCommit, err := parseUnixTimestamp(string(stamp))
	if err != nil {
		return errors.NewGitErrorWithCause("Refresh", r.Path, "unparseable commit timestamp", err)
	}

	shortlog, err := r.runner.Output(r.Path, "git", "shortlog", "-s", "HEAD")
	if err != nil {
		return errors.NewGitErrorWithCause("Refresh", r.Path, "shortlog query failed", err)
	}
	count := parseShortlogCount(string(shortlog))

	url, err := r.runner.Output(r.Path, "git", "ls-remote", "--get-url", "origin")
	if err != nil {
		return errors.NewGitErrorWithCause("Refresh", r.Path, "remote URL query failed", err)
	}
	origin := strings.TrimSpace(string(url))
	// git echoes the literal remote name back when no URL is configured.
	if origin == "origin" {
		origin = ""
	}

	r.dirty = dirty
	r.ahead = ahead
	r.behind = behind
	r.lastCommit = lastCommit
	r.commitCount = count
	r.origin = origin
	r.valid = true
	return nil
}

// Valid reports whether the repository holds a complete snapshot.
func (r *Repository) Valid() bool { return r.valid }

// Dirty reports whether the working tree has uncommitted changes.
func (r *Repository) Dirty() bool { return r.dirty }

// CommitCount returns the total number of commits on the current branch.
func (r *Repository) CommitCount() int { return r.commitCount }

// LastCommit returns the timestamp of the most recent commit.
func (r *Repository) LastCommit() time.Time { return r.lastCommit }

// Age returns the elapsed wall-clock time since the most recent commit.
func (r *Repository) Age() time.Duration { return time.Since(r.lastCommit) }

// Ahead returns the number of local commits not on the tracked remote.
func (r *Repository) Ahead() int { return r.ahead }

// Behind returns the number of remote commits not yet pulled.
func (r *Repository) Behind() int { return r.behind }

// Origin returns the fetch URL of the remote named origin. The second
// return is false when no remote is configured.
func (r *Repository) Origin() (string, bool) {
	return r.origin, r.origin != ""
}

// Synced reports whether the branch is level with its remote: zero ahead
// and zero behind.
func (r *Repository) Synced() bool {
	return r.ahead == 0 && r.behind == 0
}

// ChangeOriginProtocol rewrites the origin URL in the requested scheme
// ("https" or "ssh") and applies it with `git remote set-url`. It is a
// no-op without a configured origin, rejects any other scheme before
// touching the repository, and updates only the in-memory URL on success
// (no full refresh). Applying the same scheme twice is idempotent.
func (r *Repository) ChangeOriginProtocol(scheme string) error {
	if scheme != "https" && scheme != "ssh" {
		return errors.NewConfigError("scheme", fmt.Sprintf("invalid scheme %q: must be https or ssh", scheme))
	}
	if r.origin == "" {
		return nil
	}

	parsed, err := ParseRemoteURL(r.origin)
	if err != nil {
		return errors.NewGitErrorWithCause("SetOrigin", r.Path, "cannot parse current origin", err)
	}
	rewritten, err := parsed.InScheme(scheme)
	if err != nil {
		return err
	}

	if err := r.runner.Run(r.Path, "git", "remote", "set-url", "origin", rewritten); err != nil {
		return errors.NewGitErrorWithCause("SetOrigin", r.Path, "remote set-url failed", err)
	}
	r.origin = rewritten
	return nil
}

// Fetch updates remote tracking state without touching the working tree,
// then refreshes so ahead/behind counts reflect the remote. It is a no-op
// without a configured origin.
func (r *Repository) Fetch() error {
	if r.origin == "" {
		return nil
	}

	if err := r.runner.Run(r.Path, "git", "fetch"); err != nil {
		return errors.NewGitErrorWithCause("Fetch", r.Path, "fetch failed", err)
	}
	return r.Refresh()
}

// Sync integrates remote changes and publishes local ones, then refreshes.
// It is a no-op without a configured origin. The operation is not
// transactional: a failed push after a successful pull leaves the working
// tree already mutated by the pull.
func (r *Repository) Sync() error {
	if r.origin == "" {
		return nil
	}

	if err := r.runner.Run(r.Path, "git", "pull"); err != nil {
		return errors.NewGitErrorWithCause("Sync", r.Path, "pull failed", err)
	}
	if err := r.runner.Run(r.Path, "git", "push"); err != nil {
		return errors.NewGitErrorWithCause("Sync", r.Path, "push failed after pull", err)
	}
	return r.Refresh()
}

// Problems reports maintenance issues derived from the current snapshot.
func (r *Repository) Problems() []string {
	var problems []string
	if r.dirty {
		problems = append(problems, "has uncommitted changes")
	}
	if r.ahead > 0 {
		problems = append(problems, fmt.Sprintf("has %d commits to push", r.ahead))
	}
	if r.behind > 0 {
		problems = append(problems, fmt.Sprintf("has %d commits to pull", r.behind))
	}
	if Insecure(r.origin) {
		problems = append(problems, "has an insecure origin URL")
	}
	return problems
}

// parseAheadBehind extracts ahead/behind counts from branch status output
// such as "## main...origin/main [ahead 3, behind 2]". Missing markers
// parse as zero.
func parseAheadBehind(output string) (ahead, behind int) {
	line, _, _ := strings.Cut(output, "\n")
	if m := aheadRegex.FindStringSubmatch(line); len(m) == 2 {
		ahead, _ = strconv.Atoi(m[1])
	}
	if m := behindRegex.FindStringSubmatch(line); len(m) == 2 {
		behind, _ = strconv.Atoi(m[1])
	}
	return ahead, behind
}

// parseUnixTimestamp converts `git log --format=%ct` output to a time.
func parseUnixTimestamp(output string) (time.Time, error) {
	raw := strings.TrimSpace(output)
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing timestamp %q", raw)
	}
	return time.Unix(secs, 0), nil
}

// parseShortlogCount sums the per-author counts of `git shortlog -s`.
// Each line has the form "   42\tAuthor Name".
func parseShortlogCount(output string) int {
	total := 0
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if n, err := strconv.Atoi(fields[0]); err == nil {
			total += n
		}
	}
	return total
}
