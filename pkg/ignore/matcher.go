// Package ignore compiles per-project ignore rules into match predicates.
//
// Rules follow a simplified gitignore syntax: one glob pattern per line,
// lines starting with '#' are comments, blank lines are skipped. Patterns
// are matched against the bare name of a file or directory, not its full
// path. This is a best-effort approximation of gitignore semantics, not a
// full implementation.
package ignore

import (
	"os"
	"regexp"
	"strings"

	"thoreinstein.com/tend/pkg/errors"
)

// Matcher tests file and directory names against a compiled rule set.
type Matcher struct {
	patterns []*regexp.Regexp
}

// Compile builds a Matcher from the textual contents of an ignore file.
// Matching each glob directly against every visited name is too slow for
// large trees, so each pattern is converted to an anchored regular
// expression once and reused.
func Compile(contents string) (*Matcher, error) {
	m := &Matcher{}

	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		expr, err := regexp.Compile(translate(line))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid ignore pattern %q", line)
		}
		m.patterns = append(m.patterns, expr)
	}

	return m, nil
}

// Load reads an ignore file and compiles it. A missing file yields an
// empty rule set, not an error.
func Load(path string) (*Matcher, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Matcher{}, nil
	}
	if err != nil {
		return nil, errors.NewScanErrorWithCause(path, "reading ignore file", err)
	}
	return Compile(string(data))
}

// Matches reports whether any compiled pattern matches the bare name.
func (m *Matcher) Matches(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// translate converts one glob pattern into an anchored regular expression.
// Literal dots and pluses are escaped, '*' becomes any run of characters,
// and path separators are stripped so the pattern matches bare names.
// Bracket expressions pass through unchanged: their glob semantics already
// coincide with the regexp dialect.
func translate(pattern string) string {
	var sb strings.Builder
	sb.WriteString("^")

	for _, r := range pattern {
		switch r {
		case '.':
			sb.WriteString(`\.`)
		case '+':
			sb.WriteString(`\+`)
		case '*':
			sb.WriteString(".*")
		case '/', '\\':
			// Patterns match bare names only.
		default:
			sb.WriteRune(r)
		}
	}

	sb.WriteString("$")
	return sb.String()
}
