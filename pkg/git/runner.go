package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"thoreinstein.com/tend/pkg/errors"
)

// DefaultTimeout bounds every external git invocation. A hung subprocess
// otherwise blocks the caller indefinitely.
const DefaultTimeout = 30 * time.Second

// CommandRunner abstracts external process invocation so repository logic
// can be tested without a git binary. Commands are always invoked with an
// argument vector, never through a shell; paths are still passed through
// unsanitized, so this is not safe for untrusted input.
type CommandRunner interface {
	// Run executes a command in dir and discards its output.
	Run(dir string, name string, args ...string) error
	// Output executes a command in dir and returns its standard output.
	Output(dir string, name string, args ...string) ([]byte, error)
}

// RealCommandRunner invokes commands on the host with a per-invocation
// timeout.
type RealCommandRunner struct {
	Timeout time.Duration
	Verbose bool
}

// NewRunner returns a RealCommandRunner with the default timeout.
func NewRunner() *RealCommandRunner {
	return &RealCommandRunner{Timeout: DefaultTimeout}
}

func (r *RealCommandRunner) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

// Run implements CommandRunner.
func (r *RealCommandRunner) Run(dir string, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
	defer cancel()

	if r.Verbose {
		fmt.Fprintf(os.Stderr, "+ %s %s\n", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.Wrapf(err, "%s %s: %s", name, strings.Join(args, " "), msg)
		}
		return errors.Wrapf(err, "%s %s", name, strings.Join(args, " "))
	}
	return nil
}

// Output implements CommandRunner.
func (r *RealCommandRunner) Output(dir string, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
	defer cancel()

	if r.Verbose {
		fmt.Fprintf(os.Stderr, "+ %s %s\n", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrapf(err, "%s %s: %s", name, strings.Join(args, " "), msg)
		}
		return nil, errors.Wrapf(err, "%s %s", name, strings.Join(args, " "))
	}
	return out, nil
}

// RunnerCall records one invocation seen by the MockCommandRunner.
type RunnerCall struct {
	Dir  string
	Name string
	Args []string
}

// MockCommandRunner is a CommandRunner for tests. Unset functions succeed
// with empty output.
type MockCommandRunner struct {
	RunFunc    func(dir string, name string, args ...string) error
	OutputFunc func(dir string, name string, args ...string) ([]byte, error)
	Calls      []RunnerCall
}

// Run implements CommandRunner.
func (m *MockCommandRunner) Run(dir string, name string, args ...string) error {
	m.Calls = append(m.Calls, RunnerCall{Dir: dir, Name: name, Args: args})
	if m.RunFunc != nil {
		return m.RunFunc(dir, name, args...)
	}
	return nil
}

// Output implements CommandRunner.
func (m *MockCommandRunner) Output(dir string, name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, RunnerCall{Dir: dir, Name: name, Args: args})
	if m.OutputFunc != nil {
		return m.OutputFunc(dir, name, args...)
	}
	return []byte{}, nil
}
