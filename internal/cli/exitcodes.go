package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/yaklabco/mdslice/internal/configloader"
	"github.com/yaklabco/mdslice/pkg/fsutil"
	"github.com/yaklabco/mdslice/pkg/runner"
)

// ErrConversionIssues is returned when a conversion finished but its result
// calls for a non-zero exit code.
var ErrConversionIssues = errors.New("conversion issues found")

// Exit codes for mdslice.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates that some files could not be converted, or that
	// a command failed for any other reason.
	ExitFailure = 1

	// ExitWarnings indicates warnings were reported in strict mode.
	ExitWarnings = 2

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Info diagnostics never affect the exit code.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitFailure
	}

	if strict && result.HasWarnings() {
		return ExitWarnings
	}

	return ExitSuccess
}

// exitError carries the exit code of a conversion with issues.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("%v (exit code %d)", ErrConversionIssues, e.code)
}

func (e *exitError) Unwrap() error {
	return ErrConversionIssues
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	var validationErr *configloader.ValidationError
	if errors.As(err, &validationErr) {
		return ExitConfigError
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, fsutil.ErrPermissionDenied) ||
		errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ExitIOError
	}

	return ExitFailure
}
