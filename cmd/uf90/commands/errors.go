package commands

import (
	"fmt"
	"io"

	"github.com/teranos/uf90/errors"
)

// Exit codes besides the generic 1
const (
	ExitPending          = 1
	ExitBuildToolMissing = 127
)

// ExitError carries a specific process exit code. A nil Err exits silently
// with Code; the command has already reported what happened.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, errors.ErrBuildToolNotFound) {
		return ExitBuildToolMissing
	}
	return 1
}

// ReportError prints err and its hints to w and returns the exit code.
func ReportError(w io.Writer, err error) int {
	code := ExitCode(err)
	if err == nil {
		return code
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return code
	}

	fmt.Fprintf(w, "Error: %s\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
	return code
}
