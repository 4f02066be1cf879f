package pack

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"thoreinstein.com/tend/pkg/git"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestDetect_NoDescriptor(t *testing.T) {
	dir := t.TempDir()

	info, err := Detect(dir, &git.MockCommandRunner{})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.HasDescriptor {
		t.Error("HasDescriptor = true, want false")
	}
	problems := info.Problems()
	if len(problems) != 1 || problems[0] != "has no setup.py file" {
		t.Errorf("Problems() = %v", problems)
	}
}

func TestDetect_DescriptorWithoutChangelog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "setup.py", "from setuptools import setup\n")

	mock := &git.MockCommandRunner{}
	info, err := Detect(dir, mock)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.Version() != VersionUnknown {
		t.Errorf("Version() = %q, want %q", info.Version(), VersionUnknown)
	}
	if _, known := info.Unpublished(); known {
		t.Error("Unpublished() known = true, want unknown without changelog")
	}
	if _, known := info.LastRelease(); known {
		t.Error("LastRelease() known = true, want unknown without changelog")
	}
	// No changelog means git history is never queried.
	if len(mock.Calls) != 0 {
		t.Errorf("expected no git invocations, got %d", len(mock.Calls))
	}

	problems := info.Problems()
	if len(problems) != 1 || problems[0] != "has no CHANGES.txt file" {
		t.Errorf("Problems() = %v, want only the missing changelog", problems)
	}
	for _, p := range problems {
		if strings.Contains(p, "unpublished") {
			t.Errorf("Problems() = %v, must not contain an unpublished-commit problem", problems)
		}
	}
}

func TestDetect_WithChangelog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "setup.py", "from setuptools import setup\n")
	writeFile(t, dir, "CHANGES.txt", "0.3.1 2026-08-01\n- fixed things\n")

	mock := &git.MockCommandRunner{
		OutputFunc: func(d string, name string, args ...string) ([]byte, error) {
			return []byte("add feature\nfix bug\n"), nil
		},
	}

	info, err := Detect(dir, mock)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.Version() != "0.3.1" {
		t.Errorf("Version() = %q, want 0.3.1", info.Version())
	}
	unpublished, known := info.Unpublished()
	if !known {
		t.Fatal("Unpublished() should be known with a changelog")
	}
	if len(unpublished) != 2 {
		t.Errorf("Unpublished() = %v, want 2 subjects", unpublished)
	}

	problems := info.Problems()
	if len(problems) != 1 || problems[0] != "has 2 unpublished commits" {
		t.Errorf("Problems() = %v", problems)
	}

	// The git query is filtered to subject lines since the release time.
	if len(mock.Calls) != 1 {
		t.Fatalf("expected one git invocation, got %d", len(mock.Calls))
	}
	args := mock.Calls[0].Args
	if args[0] != "log" || !strings.HasPrefix(args[1], "--since=") || args[2] != "--format=%s" {
		t.Errorf("git args = %v", args)
	}
}

func TestDetect_ChangelogUpToDate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "setup.py", "from setuptools import setup\n")
	writeFile(t, dir, "CHANGES.txt", "1.0.0\n")

	mock := &git.MockCommandRunner{
		OutputFunc: func(d string, name string, args ...string) ([]byte, error) {
			return []byte("\n"), nil
		},
	}

	info, err := Detect(dir, mock)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	unpublished, known := info.Unpublished()
	if !known || len(unpublished) != 0 {
		t.Errorf("Unpublished() = %v, %v; want known and empty", unpublished, known)
	}
	if problems := info.Problems(); len(problems) != 0 {
		t.Errorf("Problems() = %v, want none", problems)
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{"empty changelog", "", VersionUnknown},
		{"plain semver", "1.2.3 first release\n", "1.2.3"},
		{"v prefix normalized", "v2.0.0\n", "2.0.0"},
		{"short version normalized", "0.4 notes\n", "0.4.0"},
		{"non-semver token kept verbatim", "rolling release notes\n", "rolling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseVersion(tt.contents); got != tt.want {
				t.Errorf("parseVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}
