package ui

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	SetNoColor(true)

	table := NewTable("NAME", "SLOC")
	table.AddRow("alpha", "120")
	table.AddRow("beta-longer-name", "7")

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (header, separator, 2 rows)\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header line = %q, want NAME first", lines[0])
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("separator line = %q, want rule characters", lines[1])
	}

	// Columns grow to the widest cell.
	if !strings.Contains(lines[3], "beta-longer-name") {
		t.Errorf("row = %q, want full project name", lines[3])
	}
	if idx := strings.Index(lines[2], "120"); idx < len("beta-longer-name") {
		t.Errorf("second column should be aligned past the widest first column, got index %d", idx)
	}
}

func TestTableEmptyHeaders(t *testing.T) {
	table := &Table{}
	if got := table.Render(); got != "" {
		t.Errorf("Render() on empty table = %q, want empty", got)
	}
}

func TestPadAndTruncate(t *testing.T) {
	if got := pad("ab", 4); got != "ab  " {
		t.Errorf("pad = %q, want %q", got, "ab  ")
	}
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate = %q, want %q", got, "abc…")
	}
	if got := truncate("ab", 4); got != "ab" {
		t.Errorf("truncate short = %q, want unchanged", got)
	}
}
