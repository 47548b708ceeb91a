// Package errors provides error handling conventions for the ruleranger CLI
// and engine.
//
// It re-exports the wrapping helpers of [github.com/cockroachdb/errors] so
// that callers import a single errors package, defines sentinel errors for
// the engine's failure taxonomy, and an ExitError type for CLI exit code
// handling.
//
// # Sentinel Errors
//
// The typed errors raised by the engine components match these sentinels
// through [errors.Is]:
//
//	if errors.Is(err, rrerrors.ErrDuplicateRule) {
//	    // abort startup
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): Validation failed, or a user error (invalid input, configuration)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := rrerrors.NewUserError(rrerrors.ErrInvalidConfig, "Check your config file")
//	var exitErr *rrerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
