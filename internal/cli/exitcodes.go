package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/srcfix/internal/configloader"
	"github.com/yaklabco/srcfix/pkg/fsutil"
	"github.com/yaklabco/srcfix/pkg/rewrite"
	"github.com/yaklabco/srcfix/pkg/runner"
	"github.com/yaklabco/srcfix/pkg/splice"
)

// Exit codes for srcfix.
const (
	// ExitSuccess indicates every file was processed.
	ExitSuccess = 0

	// ExitFileErrors indicates one or more files failed.
	ExitFileErrors = 1

	// ExitChangesPending indicates --check found files that would change.
	ExitChangesPending = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates invalid configuration or rule registration.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors outside per-file processing.
	ExitIOError = 74
)

// Signals that carry an exit code but need no error log.
var (
	ErrFilesFailed    = errors.New("one or more files failed")
	ErrChangesPending = errors.New("changes pending")
)

// ExitError attaches an exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status"
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

// ExitCodeFromResult determines the exit code of a completed run. File
// failures take precedence over pending changes.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitFileErrors
	}
	if check && result.HasChanges() {
		return ExitChangesPending
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case configloader.IsConfigError(err), errors.Is(err, rewrite.ErrRuleRegistration):
		return ExitConfigError
	case errors.Is(err, splice.ErrOverlap), errors.Is(err, splice.ErrOutOfRange),
		errors.Is(err, fsutil.ErrConcurrentModification):
		return ExitFileErrors
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err only signals an exit status that the
// command has already reported.
func IsSilent(err error) bool {
	return errors.Is(err, ErrFilesFailed) || errors.Is(err, ErrChangesPending)
}
