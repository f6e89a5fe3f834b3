package errors

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// MapStatus maps a hospital API response status to an AppError.
// The message reported by the backend (its "msg" or "message" field) is preferred when present.
// It returns nil for 2xx statuses.
func MapStatus(status int, backendMessage string) error {
	if status >= 200 && status < 300 {
		return nil
	}

	msg := strings.TrimSpace(backendMessage)
	pick := func(fallback string) string {
		if msg != "" {
			return msg
		}
		return fallback
	}

	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &AppError{Code: ErrCodeValidation, Message: pick("The submitted data was rejected.")}
	case status == http.StatusUnauthorized:
		return &AppError{Code: ErrCodeUnauthorized, Message: pick("Your session is no longer valid.")}
	case status == http.StatusForbidden:
		return &AppError{Code: ErrCodeForbidden, Message: pick("You do not have access to this resource.")}
	case status == http.StatusNotFound:
		return &AppError{Code: ErrCodeNotFound, Message: pick("Resource not found")}
	case status == http.StatusConflict:
		return &AppError{Code: ErrCodeConflict, Message: pick("A matching record already exists.")}
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return &AppError{Code: ErrCodeTimeout, Message: pick("Request timed out. Please try again.")}
	case status == http.StatusServiceUnavailable || status == http.StatusBadGateway:
		return &AppError{Code: ErrCodeUnavailable, Message: pick("The hospital service is unavailable.")}
	default:
		return Upstream(pick("The hospital service returned an unexpected response."))
	}
}

// MapTransportError maps errors raised before a response was received.
// Context errors map to Timeout/Canceled, network errors to Unavailable.
// Errors that are already AppErrors pass through untouched.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		code := ErrCodeUnavailable
		if netErr.Timeout() {
			code = ErrCodeTimeout
		}
		return &AppError{
			Code:    code,
			Message: "The hospital service could not be reached.",
			Cause:   err,
		}
	}

	return &AppError{
		Code:    ErrCodeUnavailable,
		Message: "The hospital service could not be reached.",
		Cause:   err,
	}
}

// UserMessage returns a message that is safe to show in the UI.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}
