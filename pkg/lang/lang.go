// Package lang maps file extensions to languages and picks the dominant
// language of a file set.
package lang

import (
	"os"
	"path/filepath"
)

// Unknown is the sentinel returned when no file maps to a language.
const Unknown = "Unknown"

// byExtension is the fixed extension-to-language table. Extensions not in
// this table are not recognized source files.
var byExtension = map[string]string{
	".pyw":  "Python",
	".py":   "Python",
	".go":   "Go",
	".nim":  "Nimrod",
	".js":   "Javascript",
	".html": "Javascript",
	".as":   "ActionScript",
	".java": "Java",
}

// ByExtension returns the language for a file extension (including the
// leading dot) and whether the extension is recognized.
func ByExtension(ext string) (string, bool) {
	l, ok := byExtension[ext]
	return l, ok
}

// Known reports whether a file path has a recognized source extension.
func Known(path string) bool {
	_, ok := byExtension[filepath.Ext(path)]
	return ok
}

// Dominant returns the language with the highest file count over the given
// paths. Unmapped extensions are filtered out before counting. Ties break
// toward the language of the first file encountered in input order; this
// order is deterministic but not guaranteed stable across table changes.
// An empty or fully-unmapped input yields Unknown, never an error.
func Dominant(paths []string) string {
	counts := make(map[string]int)
	var order []string

	for _, p := range paths {
		l, ok := byExtension[filepath.Ext(p)]
		if !ok {
			continue
		}
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}

	best := Unknown
	bestCount := 0
	for _, l := range order {
		if counts[l] > bestCount {
			best = l
			bestCount = counts[l]
		}
	}
	return best
}

// Shallow classifies a root from its immediate children only, without
// recursing. It is the cheap variant used when a full tree walk has not
// been built yet.
func Shallow(root string) string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return Unknown
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, e.Name())
	}
	return Dominant(paths)
}
