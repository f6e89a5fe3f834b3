package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
)

const defaultPlaceholderRefresh = time.Second

// placeholderRefresh returns the placeholder's retry interval, never below 100ms.
func (h *UIHandlers) placeholderRefresh() time.Duration {
	if h.PlaceholderRefresh <= 0 {
		return defaultPlaceholderRefresh
	}
	return max(h.PlaceholderRefresh, 100*time.Millisecond)
}

// retryAfterSeconds rounds d up to whole seconds, the only unit Retry-After and meta
// refresh accept.
func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(int((d + time.Second - 1) / time.Second))
}

// wantsJSON reports whether the client asked for JSON rather than a page.
func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// NotFound renders the not-found page. JSON clients get an error body.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		WriteAppError(w, apperrors.NotFound("not found"))
		return
	}
	data := h.page(r, PageMeta{Title: "Page Not Found", PageTitle: "Page Not Found", CurrentPage: PageNotFound}).
		With("Path", r.URL.Path).
		Build()
	h.renderPage(w, r, http.StatusNotFound, data)
}

// Unauthorized tells a signed-in user the page belongs to another role.
func (h *UIHandlers) Unauthorized(w http.ResponseWriter, r *http.Request) {
	b := h.page(r, PageMeta{Title: "Access Denied", PageTitle: "Access Denied", CurrentPage: PageUnauthorized})
	if sess := GetSessionFromContext(r.Context()); sess.IsAuthenticated() && h.Shells != nil {
		b.With("Landing", h.Shells.Landing(sess))
	}
	h.renderDashboardPage(w, r, b.Build())
}

// RoleNotConfigured is shown to a signed-in user whose role has no dashboard. It offers
// only sign-out.
func (h *UIHandlers) RoleNotConfigured(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	data := NewTemplateData(r, PageMeta{
		Title:       "Dashboard Unavailable",
		PageTitle:   "Dashboard Unavailable",
		CurrentPage: PageRoleNotConfigured,
	}).With("RoleLabel", sess.Role.Label()).Build()
	h.renderPage(w, r, http.StatusForbidden, data)
}

// Placeholder is served while the session is still being resolved. It holds no
// protected content and asks for the same URL again shortly.
func (h *UIHandlers) Placeholder(w http.ResponseWriter, r *http.Request) {
	refresh := h.placeholderRefresh()
	seconds := retryAfterSeconds(refresh)

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Retry-After", seconds)
	if wantsJSON(r) {
		WriteAppError(w, apperrors.Unavailable("The session is still loading."))
		return
	}
	data := map[string]any{
		"Title":        "Loading",
		"RetryURL":     r.URL.RequestURI(),
		"RetryDelay":   strconv.FormatInt(refresh.Milliseconds(), 10) + "ms",
		"RetrySeconds": seconds,
		"Partial":      IsHTMX(r),
	}
	if err := h.T.RenderError(w, http.StatusOK, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "placeholder render")
	}
}

// SessionPending answers a form submission that arrived before the session resolved.
// The placeholder would retry with a GET and lose the body, so the user is asked to
// submit again instead.
func (h *UIHandlers) SessionPending(w http.ResponseWriter, r *http.Request) {
	const msg = "Your session is still loading. Please submit the form again."
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Retry-After", retryAfterSeconds(h.placeholderRefresh()))
	switch {
	case IsHTMX(r):
		triggerToast(w, msg, "error")
		w.Header().Set(hxReswap, "none")
		w.WriteHeader(http.StatusServiceUnavailable)
	case wantsJSON(r):
		WriteAppError(w, apperrors.Unavailable(msg))
	default:
		h.RenderError(ErrorOpts{
			W:          w,
			R:          r,
			Err:        apperrors.Unavailable(msg),
			PageMeta:   PageMeta{Title: "Try Again", PageTitle: "Try Again", CurrentPage: PageNotFound},
			StatusCode: http.StatusServiceUnavailable,
		})
	}
}

// CSRFFailed renders a rejected state-changing request.
func (h *UIHandlers) CSRFFailed(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r) {
		triggerToast(w, "Your form expired. Reload the page and try again.", "error")
		HTMX(w).Discard()
		return
	}
	h.RenderError(ErrorOpts{
		W:          w,
		R:          r,
		Err:        apperrors.Forbidden("Your form expired. Reload the page and try again."),
		PageMeta:   PageMeta{Title: "Request Rejected", PageTitle: "Request Rejected", CurrentPage: PageNotFound},
		StatusCode: http.StatusForbidden,
	})
}

// AreaRoot sends the bare prefix of a role area to the role's landing route.
func (h *UIHandlers) AreaRoot(w http.ResponseWriter, r *http.Request) {
	landing := "/"
	if sess := GetSessionFromContext(r.Context()); sess.IsAuthenticated() && h.Shells != nil {
		if l := h.Shells.Landing(sess); l != "" {
			landing = l
		}
	}
	Navigate(w, r, landing)
}
