package httpx

import (
	"context"
	"net/http"

	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
)

// FieldChecker returns field-level validation errors for a decoded form.
type FieldChecker[T any] func(r *http.Request, req *T) map[string]string

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[T any] struct {
	W        http.ResponseWriter
	R        *http.Request
	PageMeta PageMeta
	// Check runs before Submit; any errors re-render the form without calling the backend.
	Check FieldChecker[T]
	// Submit performs the write.
	Submit func(ctx context.Context, req T) error
	// ExtraData is passed to the template on error (select options, the record being edited).
	ExtraData map[string]any
	// LoadExtra adds data that needs a backend call. It only runs when the form is re-rendered.
	LoadExtra func(ctx context.Context) map[string]any
	// SuccessURL is loaded into the content area after a successful submit.
	SuccessURL string
	// SuccessURLFor overrides SuccessURL when the destination depends on the submitted form.
	SuccessURLFor  func(req T) string
	SuccessMessage string
}

// HandleForm decodes the posted form into T, checks it, submits it, and either
// navigates to SuccessURL or re-renders the form with the user's input and errors.
func HandleForm[T any](h *UIHandlers, opts FormHandlerOpts[T]) {
	if opts.Submit == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}

	var req T
	if err := decodeForm(opts.R, &req); err != nil {
		h.logger().WarnContext(opts.R.Context(), "form decode failed", "path", opts.R.URL.Path, "error", err)
		renderFormError(h, opts, nil, apperrors.Validation("The form could not be read. Please check your input."))
		return
	}

	if opts.Check != nil {
		if fieldErrors := opts.Check(opts.R, &req); len(fieldErrors) > 0 {
			renderFormError(h, opts, fieldErrors, nil)
			return
		}
	}

	if err := opts.Submit(opts.R.Context(), req); err != nil {
		if apperrors.IsUnauthorized(err) {
			h.endSession(opts.W, opts.R)
			return
		}
		h.logger().InfoContext(opts.R.Context(), "form submission rejected",
			"path", opts.R.URL.Path,
			"code", string(apperrors.GetCode(err)),
			"error", err,
		)
		renderFormError(h, opts, nil, err)
		return
	}

	next := opts.SuccessURL
	if opts.SuccessURLFor != nil {
		next = opts.SuccessURLFor(req)
	}
	completeForm(opts.W, opts.R, next, opts.SuccessMessage)
}

// completeForm reports success and moves on to url. HTMX clients keep their shell and
// load url into the content area; plain posts follow a 303.
func completeForm(w http.ResponseWriter, r *http.Request, url, message string) {
	if !IsHTMX(r) {
		http.Redirect(w, r, url, http.StatusSeeOther)
		return
	}
	triggerToast(w, message, "success")
	HTMX(w).Location(url, "#content")
}

// renderFormError renders the form with errors and the user's input preserved.
func renderFormError[T any](h *UIHandlers, opts FormHandlerOpts[T], fieldErrors map[string]string, err error) {
	data := make(map[string]any, len(opts.ExtraData)+1)
	for k, v := range opts.ExtraData {
		data[k] = v
	}
	if opts.LoadExtra != nil {
		for k, v := range opts.LoadExtra(opts.R.Context()) {
			data[k] = v
		}
	}
	data["Form"] = formValues(opts.R)

	h.RenderError(ErrorOpts{
		W:           opts.W,
		R:           opts.R,
		Err:         err,
		FieldErrors: fieldErrors,
		PageMeta:    opts.PageMeta,
		Data:        data,
	})
}
