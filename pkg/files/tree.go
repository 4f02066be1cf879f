// Package files walks a project root and derives size and structure facts
// from the recognized source files under it.
package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"thoreinstein.com/tend/pkg/errors"
	"thoreinstein.com/tend/pkg/ignore"
	"thoreinstein.com/tend/pkg/lang"
)

// Structure classifies the layout of a project's recognized files.
type Structure int

const (
	// Empty means no recognized source files were found.
	Empty Structure = iota
	// SingleFile means exactly one file, directly under the root.
	SingleFile
	// MultipleFiles means two or more files, all direct children of the root.
	MultipleFiles
	// Module means at least one file is nested more than one level below
	// the root, regardless of where the other files sit.
	Module
)

// String returns the human-readable name of the structure.
func (s Structure) String() string {
	switch s {
	case Empty:
		return "empty"
	case SingleFile:
		return "single file"
	case MultipleFiles:
		return "multiple files"
	case Module:
		return "module"
	default:
		return "unknown"
	}
}

// File is one recognized source file, with its path relative to the tree
// root and its newline count.
type File struct {
	Path  string
	Lines int
}

// Tree holds the recognized file set for one root plus derived statistics.
// File order is insertion order from the walk; it carries no semantics
// beyond display and largest-file tie-breaking.
type Tree struct {
	Root        string
	Files       []File
	SLOC        int
	Diagnostics []string

	largest    File
	hasLargest bool
}

// exclusions are build-artifact directory names pruned from every walk,
// independent of per-project ignore rules.
var exclusions = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	"build":        true,
	"dist":         true,
	"target":       true,
}

// Scan walks root depth-first and returns the recognized file set.
// Entries whose bare name starts with a hidden or temporary marker, sits in
// the build-artifact set, or matches the ignore rules are pruned together
// with their whole subtree. Files that cannot be read or decoded are
// skipped from the statistics with a recorded diagnostic; they never abort
// the walk. A nil matcher means no ignore rules.
func Scan(root string, matcher *ignore.Matcher) (*Tree, error) {
	t := &Tree{Root: root}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return errors.NewScanErrorWithCause(root, "walking project root", err)
			}
			t.Diagnostics = append(t.Diagnostics, fmt.Sprintf("could not read %s: %v", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		name := d.Name()
		if skipName(name) || (matcher != nil && matcher.Matches(name)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !lang.Known(name) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = name
		}
		t.record(path, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// record counts a file's lines and folds it into the tree statistics.
func (t *Tree) record(path, rel string) {
	data, err := os.ReadFile(path)
	if err != nil {
		t.Diagnostics = append(t.Diagnostics, fmt.Sprintf("could not read %s: %v", rel, err))
		return
	}
	if !utf8.Valid(data) {
		t.Diagnostics = append(t.Diagnostics, fmt.Sprintf("could not decode %s: not valid UTF-8", rel))
		return
	}

	f := File{Path: rel, Lines: countLines(data)}
	t.Files = append(t.Files, f)
	t.SLOC += f.Lines

	// First file reaching the maximum wins.
	if !t.hasLargest || f.Lines > t.largest.Lines {
		t.largest = f
		t.hasLargest = true
	}
}

// Largest returns the member file with the most lines. The second return
// is false for an empty tree.
func (t *Tree) Largest() (File, bool) {
	return t.largest, t.hasLargest
}

// Count returns the number of recognized files.
func (t *Tree) Count() int {
	return len(t.Files)
}

// Structure classifies the tree layout. The result is a pure function of
// the recorded file set.
func (t *Tree) Structure() Structure {
	nested := false
	for _, f := range t.Files {
		if strings.ContainsRune(f.Path, filepath.Separator) {
			nested = true
			break
		}
	}

	switch {
	case nested:
		return Module
	case len(t.Files) == 0:
		return Empty
	case len(t.Files) == 1:
		return SingleFile
	default:
		return MultipleFiles
	}
}

// Language returns the dominant language of the recorded files.
func (t *Tree) Language() string {
	paths := make([]string, len(t.Files))
	for i, f := range t.Files {
		paths[i] = f.Path
	}
	return lang.Dominant(paths)
}

// Problems reports maintenance issues derived from the file set.
func (t *Tree) Problems() []string {
	var problems []string
	if len(t.Files) == 0 {
		problems = append(problems, "has no source files")
	}
	problems = append(problems, t.Diagnostics...)
	return problems
}

// skipName reports whether a bare name is hidden or a temporary artifact.
func skipName(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") {
		return true
	}
	return exclusions[name]
}

// countLines is a simple newline count, the SLOC definition used
// throughout the engine.
func countLines(data []byte) int {
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}
