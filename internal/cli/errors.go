package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/session"
)

// ExitStatusError carries the process exit status for a failed command. The error
// has already been reported to the user when it is returned.
type ExitStatusError struct {
	Code int
	Err  error
}

func (e *ExitStatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitStatusError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit status for err
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitStatusError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}

// Reported reports whether err was already printed by a formatter
func Reported(err error) bool {
	var exitErr *ExitStatusError
	return errors.As(err, &exitErr)
}

// ErrorKinds groups a command's own sentinel errors by exit status.
// API and session errors are classified without help.
type ErrorKinds struct {
	Auth       []error
	Validation []error
	NotFound   []error
	Permission []error
}

// Classify maps err to a machine-readable code, an exit status and an
// optional suggestion
func Classify(err error, kinds ErrorKinds) (code string, exit int, suggestion string) {
	switch {
	case errors.Is(err, session.ErrAnonymous), api.IsUnauthorized(err), matchesAny(err, kinds.Auth):
		return "NOT_AUTHENTICATED", ExitAuth, "Log in with: agency login"
	case api.IsForbidden(err), matchesAny(err, kinds.Permission):
		return "FORBIDDEN", ExitAuth, ""
	case api.IsNotFound(err), matchesAny(err, kinds.NotFound):
		return "NOT_FOUND", ExitNotFound, ""
	case api.IsRejected(err), matchesAny(err, kinds.Validation):
		return "VALIDATION_ERROR", ExitValidation, ""
	case api.StatusCode(err) != 0:
		return "API_ERROR", ExitError, ""
	}
	return "ERROR", ExitError, ""
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
