package lang

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDominant(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{
			name:  "empty input",
			paths: nil,
			want:  Unknown,
		},
		{
			name:  "single language",
			paths: []string{"a.py", "b.py"},
			want:  "Python",
		},
		{
			name:  "majority wins",
			paths: []string{"main.go", "a.py", "b.py"},
			want:  "Python",
		},
		{
			name:  "unmapped extensions filtered",
			paths: []string{"README.md", "Makefile", "main.go"},
			want:  "Go",
		},
		{
			name:  "all unmapped",
			paths: []string{"README.md", "notes.txt"},
			want:  Unknown,
		},
		{
			name:  "tie breaks to first encountered",
			paths: []string{"app.js", "lib.go", "util.go", "index.html"},
			want:  "Javascript",
		},
		{
			name:  "html counts as javascript",
			paths: []string{"index.html"},
			want:  "Javascript",
		},
		{
			name:  "nested paths use extension only",
			paths: []string{"foo/a.py", "foo/sub/b.py"},
			want:  "Python",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dominant(tt.paths); got != tt.want {
				t.Errorf("Dominant(%v) = %q, want %q", tt.paths, got, tt.want)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	if !Known("src/main.go") {
		t.Error("Known(src/main.go) = false, want true")
	}
	if Known("README.md") {
		t.Error("Known(README.md) = true, want false")
	}
	if Known("Makefile") {
		t.Error("Known(Makefile) = true, want false")
	}
}

func TestByExtension(t *testing.T) {
	if l, ok := ByExtension(".java"); !ok || l != "Java" {
		t.Errorf("ByExtension(.java) = %q, %v", l, ok)
	}
	if _, ok := ByExtension(".rs"); ok {
		t.Error("ByExtension(.rs) should not be recognized")
	}
}

func TestShallow(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.py", "b.py", "main.go"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("pass\n"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	// Nested files must not influence the shallow variant.
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for _, name := range []string{"x.go", "y.go", "z.go"} {
		if err := os.WriteFile(filepath.Join(sub, name), []byte("package sub\n"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	if got := Shallow(dir); got != "Python" {
		t.Errorf("Shallow() = %q, want %q", got, "Python")
	}

	if got := Shallow(filepath.Join(dir, "missing")); got != Unknown {
		t.Errorf("Shallow(missing) = %q, want %q", got, Unknown)
	}
}
