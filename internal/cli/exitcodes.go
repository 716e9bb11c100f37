package cli

import (
	"errors"

	"github.com/yaklabco/gotbl/pkg/runner"
)

// Exit codes for gotbl.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssuesFound indicates the run completed but the input files
	// have problems, or the run itself failed.
	ExitIssuesFound = 1

	// ExitUsageError indicates invalid command-line usage or
	// configuration.
	ExitUsageError = 2
)

// ErrIssuesFound signals a nonzero exit after the problems were already
// reported to the user; main must not log it a second time.
var ErrIssuesFound = errors.New("issues found")

// UsageError marks an error caused by invalid flags or configuration,
// so main can exit with ExitUsageError instead of a plain failure.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func usageError(err error) error {
	return &UsageError{Err: err}
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsageError
	}

	return ExitIssuesFound
}

// ExitCodeFromResult determines the exit code for a check run. Strict
// mode promotes warnings to a failing exit.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	stats := result.Stats
	if stats.FindingsBySeverity["error"] > 0 || stats.FilesErrored > 0 {
		return ExitIssuesFound
	}
	if strict && stats.FindingsBySeverity["warning"] > 0 {
		return ExitIssuesFound
	}

	return ExitSuccess
}
