package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Request and response headers htmx exchanges with the portal.
const (
	hxRequest        = "Hx-Request"
	hxHistoryRestore = "Hx-History-Restore-Request"
	hxTrigger        = "Hx-Trigger"
	hxRedirect       = "Hx-Redirect"
	hxReswap         = "Hx-Reswap"
	hxLocation       = "Hx-Location"
)

// IsHTMX reports whether htmx sent the request.
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(hxRequest), "true")
}

// WantsPartial reports whether the handler should render only the #content fragment.
// History restores ask for the full page because htmx swaps the whole body.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r) && !strings.EqualFold(r.Header.Get(hxHistoryRestore), "true")
}

// SetHXTrigger fires event on the client after the swap. The header carries
// {"<event>": payload}, or true when payload is nil.
func SetHXTrigger(w http.ResponseWriter, event string, payload any) {
	if payload == nil {
		payload = true
	}
	b, err := json.Marshal(map[string]any{event: payload})
	if err != nil {
		b, _ = json.Marshal(map[string]bool{event: true})
	}
	w.Header().Set(hxTrigger, string(b))
}

// HTMXResponse writes the header-only replies htmx understands. Each terminal method
// writes a 204, so the handler must return right after calling it.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX wraps w.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Trigger fires a client-side event. It can be chained before a terminal method.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	SetHXTrigger(h.w, event, payload)
	return h
}

// Redirect makes the browser do a full navigation to url. The guard uses it so a
// denied htmx swap never lands a foreign page inside the current shell.
func (h *HTMXResponse) Redirect(url string) {
	h.w.Header().Set(hxRedirect, url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Discard leaves the page untouched. Superseded view loads and rejected forms use it.
func (h *HTMXResponse) Discard() {
	h.w.Header().Set(hxReswap, "none")
	h.w.WriteHeader(http.StatusNoContent)
}

// Location loads path into target without a full reload and pushes it onto history.
func (h *HTMXResponse) Location(path, target string) {
	b, err := json.Marshal(map[string]string{"path": path, "target": target})
	if err != nil {
		h.w.Header().Set(hxLocation, path)
	} else {
		h.w.Header().Set(hxLocation, string(b))
	}
	h.w.WriteHeader(http.StatusNoContent)
}
