// Package errors provides typed errors for the tend project.
//
// This package defines domain-specific error types that provide structured
// error information for the different subsystems (git, scanning, config).
// All error types implement the standard error interface and support
// errors.Is() and errors.As() from the standard library and cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// GitError represents a failed invocation of the external git binary.
type GitError struct {
	Operation string // e.g., "Refresh", "Sync", "SetOrigin"
	Repo      string // Repository path the command ran against
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *GitError) Error() string {
	if e.Repo != "" {
		return fmt.Sprintf("git %s failed in %s: %s", e.Operation, e.Repo, e.Message)
	}
	return fmt.Sprintf("git %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *GitError) Unwrap() error {
	return e.Cause
}

// NewGitError creates a new GitError.
func NewGitError(operation, repo, message string) *GitError {
	return &GitError{Operation: operation, Repo: repo, Message: message}
}

// NewGitErrorWithCause creates a new GitError with an underlying cause.
func NewGitErrorWithCause(operation, repo, message string, cause error) *GitError {
	return &GitError{Operation: operation, Repo: repo, Message: message, Cause: cause}
}

// ScanError represents a failure while walking a project tree.
type ScanError struct {
	Path    string // File or directory that triggered the failure
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("scan failed at %s: %s", e.Path, e.Message)
	}
	return "scan error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// NewScanError creates a new ScanError.
func NewScanError(path, message string) *ScanError {
	return &ScanError{Path: path, Message: message}
}

// NewScanErrorWithCause creates a new ScanError with an underlying cause.
func NewScanErrorWithCause(path, message string, cause error) *ScanError {
	return &ScanError{Path: path, Message: message, Cause: cause}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field   string // Which config field has the issue
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return "config error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with an underlying cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// IsGitError checks if an error or any error in its chain is a GitError.
func IsGitError(err error) bool {
	var gitErr *GitError
	return errors.As(err, &gitErr)
}

// IsScanError checks if an error or any error in its chain is a ScanError.
func IsScanError(err error) bool {
	var scanErr *ScanError
	return errors.As(err, &scanErr)
}

// IsConfigError checks if an error or any error in its chain is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// Re-export commonly used functions from cockroachdb/errors for convenience.
// This allows consumers to use tenderrors.Wrap() instead of importing two packages.
var (
	// New creates a new error with the given message.
	New = errors.New

	// Newf creates a new error with formatted message.
	Newf = errors.Newf

	// Wrap wraps an error with additional context.
	Wrap = errors.Wrap

	// Wrapf wraps an error with formatted additional context.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As

	// Cause returns the root cause of an error.
	Cause = errors.Cause
)
