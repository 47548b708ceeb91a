package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a validation failure or a user-related error.
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for the engine failure taxonomy.
var (
	// ErrDuplicateRule indicates a rule identity was registered twice.
	ErrDuplicateRule = crdb.New("duplicate rule")

	// ErrRegistrySealed indicates a registration was attempted after the registry was sealed.
	ErrRegistrySealed = crdb.New("rule registry is sealed")

	// ErrUnsupportedAsset indicates no inspector adapter exists for an asset kind.
	ErrUnsupportedAsset = crdb.New("unsupported asset")

	// ErrRuleExecution indicates a rule failed unexpectedly while running.
	ErrRuleExecution = crdb.New("rule execution failed")

	// ErrFixFailed indicates a remediation was rolled back.
	ErrFixFailed = crdb.New("fix failed")

	// ErrReadOnly indicates a mutation was attempted through a read-only view.
	ErrReadOnly = crdb.New("asset is read-only")

	// ErrNotFound indicates the requested asset or rule was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")
)

// Wrapping helpers re-exported from cockroachdb/errors.
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
	Mark        = crdb.Mark
	Is          = crdb.Is
	As          = crdb.As
	Join        = crdb.Join
	UnwrapAll   = crdb.UnwrapAll
	GetDetails  = crdb.GetAllDetails
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewExitErrorWithSuggestion creates an ExitError with a suggestion.
func NewExitErrorWithSuggestion(err error, code int, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       code,
		Suggestion: suggestion,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: ruleranger doctor",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for err: ExitSuccess for nil, the
// code of the outermost ExitError in the chain, else ExitUser.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}

// SuggestionOf returns the suggestion of the outermost ExitError in the
// chain that carries one.
func SuggestionOf(err error) string {
	for err != nil {
		if e, ok := err.(*ExitError); ok && e.Suggestion != "" {
			return e.Suggestion
		}
		err = crdb.UnwrapOnce(err)
	}
	return ""
}
