package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
)

// ErrorOpts contains all options needed to render an error response on a page.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err is the error that occurred (optional, can be nil if only field errors)
	Err error
	// FieldErrors contains field-level validation errors (field name → error message)
	FieldErrors map[string]string
	PageMeta    PageMeta
	// Data contains additional template data, such as preserved form input and select options.
	Data map[string]any
	// RetryURL, when set, renders a retry control that reloads the failed view.
	RetryURL string
	// StatusCode for full page responses. Zero derives it from Err.
	StatusCode int
	// ShowToast also raises a toast with the general message.
	ShowToast bool
}

// DetermineErrorStatus maps an error to the status of a full page response. Field
// validation failures use 422 so non-JS form posts are distinguishable from success.
func DetermineErrorStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case apperrors.IsValidation(err):
		return http.StatusUnprocessableEntity
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsConflict(err):
		return http.StatusConflict
	case apperrors.IsTimeout(err):
		return http.StatusGatewayTimeout
	case apperrors.IsUnavailable(err):
		return http.StatusServiceUnavailable
	case apperrors.IsUpstream(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RenderError renders the page described by opts with its error state.
func (h *UIHandlers) RenderError(opts ErrorOpts) {
	builder := h.page(opts.R, opts.PageMeta)

	generalError := processError(opts.Err, &opts.FieldErrors)
	if len(opts.FieldErrors) > 0 {
		builder.WithFieldErrors(opts.FieldErrors)
	}
	switch {
	case generalError != "" && opts.RetryURL != "":
		builder.WithRetry(generalError, opts.RetryURL)
	case generalError != "":
		builder.WithError(generalError)
	case len(opts.FieldErrors) > 0:
		builder.WithError(errMsgFixBelow)
	}
	for k, v := range opts.Data {
		builder.With(k, v)
	}

	if opts.ShowToast && generalError != "" {
		triggerToast(opts.W, generalError, "error")
	}

	status := opts.StatusCode
	if status == 0 {
		status = DetermineErrorStatus(opts.Err)
		if opts.Err == nil && len(opts.FieldErrors) > 0 {
			status = http.StatusUnprocessableEntity
		}
	}
	h.renderPage(opts.W, opts.R, status, builder.Build())
}

// processError converts err into a general message, moving field-scoped validation
// errors into fieldErrors.
func processError(err error, fieldErrors *map[string]string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "The request took too long. Please try again."
	}
	if apperrors.IsValidation(err) {
		if field := apperrors.GetField(err); field != "" {
			if *fieldErrors == nil {
				*fieldErrors = map[string]string{}
			}
			(*fieldErrors)[field] = apperrors.UserMessage(err)
			return ""
		}
	}
	return apperrors.UserMessage(err)
}
