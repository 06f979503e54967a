// Package exitcode defines exit codes for the CLI.
package exitcode

import "tasksync/internal/taskerr"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid input, unknown task).
	UserError = 1

	// AuthError indicates a rejected request or missing credentials.
	AuthError = 2

	// BackendError indicates a transport or server failure.
	BackendError = 3
)

// ForError maps a domain error to an exit code. A nil error is Success.
func ForError(err *taskerr.Error) int {
	if err == nil {
		return Success
	}
	switch err.Kind {
	case taskerr.KindValidation, taskerr.KindNotFound:
		return UserError
	case taskerr.KindForbidden:
		return AuthError
	default:
		return BackendError
	}
}
