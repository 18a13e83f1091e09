package main

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for invalid benchmark configurations. These surface before
// any trial runs and are never retried.
var (
	ErrNoTrials         = errors.New("trial count must be at least 1")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrUnknownSize      = errors.New("unknown size")
)

// UserError represents an error that should be displayed to the user with helpful context
type UserError struct {
	Message    string
	Cause      error
	Suggestion string
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// FormatUserError formats an error for user display with colors and suggestions
func FormatUserError(err error) string {
	var sb strings.Builder

	var userErr *UserError
	if errors.As(err, &userErr) {
		sb.WriteString(fmt.Sprintf("\033[91mError:\033[0m %s\n", userErr.Message))
		if userErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("       Cause: %v\n", userErr.Cause))
		}
		if userErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("\n\033[93mSuggestion:\033[0m %s\n", userErr.Suggestion))
		}
	} else {
		errStr := err.Error()
		sb.WriteString(fmt.Sprintf("\033[91mError:\033[0m %s\n", errStr))

		suggestion := getSuggestionForError(errStr)
		if suggestion != "" {
			sb.WriteString(fmt.Sprintf("\n\033[93mSuggestion:\033[0m %s\n", suggestion))
		}
	}

	return sb.String()
}

// getSuggestionForError returns a helpful suggestion based on error content
func getSuggestionForError(errStr string) string {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "unknown algorithm") {
		return "Run 'pairbench --list' to see the available algorithms."
	}

	if strings.Contains(errLower, "trial count") {
		return "Set PAIRBENCH_TRIALS to a positive number (default: 10)."
	}

	if strings.Contains(errLower, "database") || strings.Contains(errLower, "sqlite") {
		if strings.Contains(errLower, "locked") {
			return "Another pairbench process may be writing to the same database. Point PAIRBENCH_DB at a different file or wait for the other run to finish."
		}
		return "Check that the directory for PAIRBENCH_DB exists and is writable. JSON export still runs even when the database is unavailable."
	}

	if strings.Contains(errLower, "permission denied") {
		return "Check write permissions on the output directory (PAIRBENCH_OUT) and database path (PAIRBENCH_DB)."
	}

	if strings.Contains(errLower, "no such file or directory") {
		return "Create the output directory first, or set PAIRBENCH_OUT to an existing location."
	}

	if strings.Contains(errLower, "power of 2") || strings.Contains(errLower, "power of two") {
		return "FFT sizes must be powers of two. Use one of the built-in size presets."
	}

	return ""
}

// Common error constructors

// ErrInvalidConfiguration creates an error for a benchmark configuration
// rejected before any trial runs
func ErrInvalidConfiguration(cause error) *UserError {
	return &UserError{
		Message:    "Invalid benchmark configuration",
		Cause:      cause,
		Suggestion: "Check algorithm name, size label and PAIRBENCH_TRIALS. Run 'pairbench --list' for valid values.",
	}
}

// ErrTrialFailed creates an error for an implementation failing mid-trial
func ErrTrialFailed(impl string, trial int, cause error) *UserError {
	return &UserError{
		Message: fmt.Sprintf("%s implementation failed on trial %d", impl, trial),
		Cause:   cause,
	}
}

// ErrDatabaseOpen creates an error for SQLite store initialization failures
func ErrDatabaseOpen(path string, cause error) *UserError {
	return &UserError{
		Message: fmt.Sprintf("Failed to open results database: %s", path),
		Cause:   cause,
		Suggestion: `Possible fixes:
       1. Check the directory exists and is writable
       2. Point PAIRBENCH_DB at a different file
       3. Disable the database exporter with PAIRBENCH_DB="" (JSON export still works)`,
	}
}
