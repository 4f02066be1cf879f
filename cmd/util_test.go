package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"thoreinstein.com/tend/pkg/git"
	"thoreinstein.com/tend/pkg/workspace"
)

func TestFormatAge(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"seconds", 30 * time.Second, "just now"},
		{"minutes", 5 * time.Minute, "5m ago"},
		{"hours", 3 * time.Hour, "3h ago"},
		{"days", 49 * time.Hour, "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAge(tt.d); got != tt.want {
				t.Errorf("formatAge(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestRequireProject(t *testing.T) {
	root := t.TempDir()
	projectDir := filepath.Join(root, "Alpha")
	if err := os.MkdirAll(filepath.Join(projectDir, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create project dir: %v", err)
	}

	ws, err := workspace.NewWithRunner([]string{root}, &git.MockCommandRunner{})
	if err != nil {
		t.Fatalf("NewWithRunner() error: %v", err)
	}

	// Lookup is case-insensitive.
	p, err := requireProject(ws, "alpha")
	if err != nil {
		t.Fatalf("requireProject(alpha) error: %v", err)
	}
	if p.Name != "Alpha" {
		t.Errorf("project name = %q, want %q", p.Name, "Alpha")
	}

	if _, err := requireProject(ws, "missing"); err == nil {
		t.Error("requireProject(missing) should return error")
	}
}
