package git

import (
	"os"
	"path/filepath"
)

// MarkerDir is the version-control marker checked during workspace
// discovery.
const MarkerDir = ".git"

// IsRepo checks if a path is a git repository
func IsRepo(path string) bool {
	// Check for .git directory or file (for worktrees)
	gitPath := filepath.Join(path, MarkerDir)
	if info, err := os.Stat(gitPath); err == nil {
		return info.IsDir() || info.Mode().IsRegular()
	}
	return false
}
