// Package pack detects whether a project is a distributable package and
// how far its released version trails its commit history.
package pack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"thoreinstein.com/tend/pkg/errors"
	"thoreinstein.com/tend/pkg/git"
)

const (
	// DescriptorFile marks a project as a distributable package.
	DescriptorFile = "setup.py"
	// ChangelogFile records releases; its mtime is the last-release marker.
	ChangelogFile = "CHANGES.txt"
	// VersionUnknown is the sentinel for a package without a changelog.
	// Unknown is a distinct state, not zero.
	VersionUnknown = "unknown"
)

// Info holds packaging facts for one project root.
type Info struct {
	Path          string
	HasDescriptor bool
	HasChangelog  bool

	version     string
	lastRelease time.Time
	unpublished []string
}

// Detect probes root for the packaging descriptor and changelog. When a
// changelog exists, the declared version is its first whitespace-delimited
// token and the unpublished commits are read from git history since the
// changelog's last modification. A git failure propagates; missing files
// resolve to absent/unknown values.
func Detect(root string, runner git.CommandRunner) (*Info, error) {
	info := &Info{Path: root, version: VersionUnknown}

	if _, err := os.Stat(filepath.Join(root, DescriptorFile)); err == nil {
		info.HasDescriptor = true
	}

	stat, err := os.Stat(filepath.Join(root, ChangelogFile))
	if err != nil {
		return info, nil
	}
	info.HasChangelog = true
	info.lastRelease = stat.ModTime()

	data, err := os.ReadFile(filepath.Join(root, ChangelogFile))
	if err != nil {
		return nil, errors.NewScanErrorWithCause(root, "reading changelog", err)
	}
	info.version = parseVersion(string(data))

	out, err := runner.Output(root, "git", "log",
		"--since="+info.lastRelease.Format(time.RFC3339), "--format=%s")
	if err != nil {
		return nil, errors.NewGitErrorWithCause("Detect", root, "unpublished commit query failed", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) != "" {
			info.unpublished = append(info.unpublished, line)
		}
	}

	return info, nil
}

// Version returns the declared version, or the unknown sentinel when no
// changelog exists.
func (i *Info) Version() string {
	return i.version
}

// LastRelease returns the changelog modification time. The second return
// is false when no changelog exists.
func (i *Info) LastRelease() (time.Time, bool) {
	return i.lastRelease, i.HasChangelog
}

// Unpublished returns the commit subjects recorded since the last release.
// The second return is false when no changelog exists: the count is
// unknown, not zero.
func (i *Info) Unpublished() ([]string, bool) {
	return i.unpublished, i.HasChangelog
}

// Problems reports packaging hygiene issues.
func (i *Info) Problems() []string {
	if !i.HasDescriptor {
		return []string{"has no " + DescriptorFile + " file"}
	}

	var problems []string
	if !i.HasChangelog {
		problems = append(problems, "has no "+ChangelogFile+" file")
	}
	if n := len(i.unpublished); n > 0 {
		problems = append(problems, fmt.Sprintf("has %d unpublished commits", n))
	}
	return problems
}

// parseVersion extracts the first whitespace-delimited token of the
// changelog and normalizes it through semver when it parses as one.
func parseVersion(contents string) string {
	fields := strings.Fields(contents)
	if len(fields) == 0 {
		return VersionUnknown
	}

	token := strings.TrimPrefix(fields[0], "v")
	if v, err := semver.NewVersion(token); err == nil {
		return v.String()
	}
	return fields[0]
}
