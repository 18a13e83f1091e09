package main

import (
	"errors"
	"strings"
	"testing"
)

func TestUserError(t *testing.T) {
	t.Run("message with cause", func(t *testing.T) {
		cause := errors.New("disk full")
		err := &UserError{Message: "Failed to write results", Cause: cause}

		if got := err.Error(); got != "Failed to write results: disk full" {
			t.Errorf("Error() = %q", got)
		}
		if !errors.Is(err, cause) {
			t.Error("Unwrap should expose the cause")
		}
	})

	t.Run("message without cause", func(t *testing.T) {
		err := &UserError{Message: "Nothing to run"}
		if got := err.Error(); got != "Nothing to run" {
			t.Errorf("Error() = %q", got)
		}
	})
}

func TestFormatUserError(t *testing.T) {
	t.Run("user error renders message, cause and suggestion", func(t *testing.T) {
		err := &UserError{
			Message:    "Invalid benchmark configuration",
			Cause:      ErrNoTrials,
			Suggestion: "Set PAIRBENCH_TRIALS to a positive number.",
		}

		out := FormatUserError(err)
		if !strings.Contains(out, "Invalid benchmark configuration") {
			t.Errorf("missing message: %q", out)
		}
		if !strings.Contains(out, "trial count must be at least 1") {
			t.Errorf("missing cause: %q", out)
		}
		if !strings.Contains(out, "Suggestion") {
			t.Errorf("missing suggestion: %q", out)
		}
	})

	t.Run("plain error gets a pattern-matched suggestion", func(t *testing.T) {
		out := FormatUserError(errors.New("unknown algorithm: \"bubblesort\""))
		if !strings.Contains(out, "pairbench --list") {
			t.Errorf("expected a --list hint: %q", out)
		}
	})

	t.Run("wrapped user error is still unwrapped for display", func(t *testing.T) {
		wrapped := ErrInvalidConfiguration(ErrNoTrials)
		out := FormatUserError(wrapped)
		if !strings.Contains(out, "Invalid benchmark configuration") {
			t.Errorf("expected UserError formatting: %q", out)
		}
	})
}

func TestGetSuggestionForError(t *testing.T) {
	cases := []struct {
		name   string
		errStr string
		want   string
	}{
		{"unknown algorithm", "unknown algorithm: \"foo\"", "--list"},
		{"bad trials", "trial count must be at least 1", "PAIRBENCH_TRIALS"},
		{"locked database", "sqlite database is locked", "PAIRBENCH_DB"},
		{"generic database", "database disk image is malformed", "PAIRBENCH_DB"},
		{"permissions", "open /var/results: permission denied", "permissions"},
		{"missing dir", "open /nope/out: no such file or directory", "PAIRBENCH_OUT"},
		{"fft size", "fft size must be a positive power of two, got 1000", "powers of two"},
		{"unmatched", "something inexplicable", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := getSuggestionForError(tc.errStr)
			if tc.want == "" {
				if got != "" {
					t.Errorf("suggestion = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tc.want) {
				t.Errorf("suggestion = %q, want mention of %q", got, tc.want)
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	t.Run("invalid configuration wraps the cause", func(t *testing.T) {
		err := ErrInvalidConfiguration(ErrUnknownAlgorithm)
		if !errors.Is(err, ErrUnknownAlgorithm) {
			t.Error("cause should survive wrapping")
		}
		if err.Suggestion == "" {
			t.Error("constructor should attach a suggestion")
		}
	})

	t.Run("trial failure names implementation and trial", func(t *testing.T) {
		err := ErrTrialFailed("managed", 4, errors.New("out of range"))
		if !strings.Contains(err.Error(), "managed implementation failed on trial 4") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("database open names the path", func(t *testing.T) {
		err := ErrDatabaseOpen("/data/results.db", errors.New("readonly filesystem"))
		if !strings.Contains(err.Error(), "/data/results.db") {
			t.Errorf("Error() = %q", err.Error())
		}
		if !strings.Contains(err.Suggestion, "PAIRBENCH_DB") {
			t.Errorf("Suggestion = %q", err.Suggestion)
		}
	})
}
