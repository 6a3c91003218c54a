package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ===========================================================================
// Custom Errors
// Standard error taxonomy for the application, each mapped to an HTTP
// status code. Four families: configuration (fatal at startup),
// connectivity (degraded, non-fatal), authentication (recoverable) and
// per-write errors (recoverable, surfaced to the caller).
// ===========================================================================

// Sentinel errors for errors.Is()
var (
	// ErrNotFound the target record does not exist. Update and soft-delete
	// assert existence first; a merge against a missing id must surface
	// this instead of creating a malformed partial row.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized missing or invalid session
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden authenticated but not allowed
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput request payload failed validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateEntry unique constraint violated (e.g. username)
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrConflict concurrent modification conflict
	ErrConflict = errors.New("conflict")

	// ErrInternal internal server error
	ErrInternal = errors.New("internal server error")

	// ErrUnavailable backend store unreachable; subscriptions degrade to
	// silence, writes surface this to the caller
	ErrUnavailable = errors.New("backend unavailable")

	// ErrConfig invalid or missing configuration, fatal to the session
	ErrConfig = errors.New("configuration error")

	// ErrTimeout request timeout
	ErrTimeout = errors.New("timeout")

	// ErrInvalidCredentials wrong username or password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired token past its expiry
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidToken malformed or revoked token
	ErrInvalidToken = errors.New("invalid token")
)

// ===========================================================================
// AppError
// ===========================================================================

// AppError carries a wrapped sentinel plus user-facing detail.
type AppError struct {
	// Err wrapped sentinel error
	Err error

	// Message user-facing message
	Message string

	// Code machine-readable code (e.g. "NOT_FOUND")
	Code string

	// StatusCode HTTP status code
	StatusCode int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error for errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError from a sentinel error.
func New(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: StatusCode(err),
		Code:       ErrorCode(err),
	}
}

// Wrap annotates err with a message, preserving the chain.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// ===========================================================================
// Error mapping
// ===========================================================================

// StatusCode maps an error to its HTTP status code.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateEntry):
		return http.StatusConflict
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode maps an error to its machine-readable code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrDuplicateEntry):
		return "DUPLICATE_ENTRY"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrConfig):
		return "CONFIG_ERROR"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrTokenExpired):
		return "TOKEN_EXPIRED"
	case errors.Is(err, ErrInvalidToken):
		return "INVALID_TOKEN"
	default:
		return "INTERNAL_ERROR"
	}
}

// Is is a helper for errors.Is().
func Is(err, target error) bool {
	return errors.Is(err, target)
}
