package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates the backend rejected a duplicate record.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnauthorized indicates missing or rejected credentials.
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeForbidden indicates the credential lacks access to the resource.
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeUpstream indicates the hospital API answered with an unexpected status or payload.
	ErrCodeUpstream ErrorCode = "upstream"
	// ErrCodeUnavailable indicates the hospital API could not be reached.
	ErrCodeUnavailable ErrorCode = "unavailable"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError is an error the portal can show to a user. Message is safe to render;
// Cause keeps the underlying failure for logs.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Field names the form input the error belongs to, if any.
	Field string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns Cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

func newError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NotFound reports a record the hospital API does not have.
func NotFound(message string) *AppError { return newError(ErrCodeNotFound, message) }

// Conflict reports a duplicate the hospital API refused, e.g. a re-registered patient.
func Conflict(message string) *AppError { return newError(ErrCodeConflict, message) }

// Validation reports rejected form input.
func Validation(message string) *AppError { return newError(ErrCodeValidation, message) }

// ValidationField reports rejected input for one form field. Forms render the
// message next to that field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Unauthorized reports missing, expired or rejected credentials. Handlers end the
// session when they see it.
func Unauthorized(message string) *AppError { return newError(ErrCodeUnauthorized, message) }

// Forbidden reports a credential that lacks access.
func Forbidden(message string) *AppError { return newError(ErrCodeForbidden, message) }

// Unavailable reports a dependency that could not be reached.
func Unavailable(message string) *AppError { return newError(ErrCodeUnavailable, message) }

// Upstream reports an unexpected status or payload from the hospital API.
func Upstream(message string) *AppError { return newError(ErrCodeUpstream, message) }

// Internal reports a fault in the portal itself.
func Internal(message string) *AppError { return newError(ErrCodeInternal, message) }

// Wrap attaches code and a user-facing message to err. It returns nil for a nil err.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Is reports whether any AppError in err's chain carries code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound reports an ErrCodeNotFound error.
func IsNotFound(err error) bool { return Is(err, ErrCodeNotFound) }

// IsConflict reports an ErrCodeConflict error.
func IsConflict(err error) bool { return Is(err, ErrCodeConflict) }

// IsValidation reports an ErrCodeValidation error.
func IsValidation(err error) bool { return Is(err, ErrCodeValidation) }

// IsUnauthorized reports an ErrCodeUnauthorized error.
func IsUnauthorized(err error) bool { return Is(err, ErrCodeUnauthorized) }

// IsUpstream reports an ErrCodeUpstream error.
func IsUpstream(err error) bool { return Is(err, ErrCodeUpstream) }

// IsUnavailable reports an ErrCodeUnavailable error.
func IsUnavailable(err error) bool { return Is(err, ErrCodeUnavailable) }

// IsTimeout reports an ErrCodeTimeout error.
func IsTimeout(err error) bool { return Is(err, ErrCodeTimeout) }

// GetCode returns the code of the first AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the form field of the first AppError in err's chain, or "".
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
