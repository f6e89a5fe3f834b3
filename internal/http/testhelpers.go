package httpx

import (
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/access"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/fetch"
	"github.com/maf-y/ArardaHospital-Frontend/internal/service"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// CreateUIHandlersForTest creates UIHandlers with templates and the default role shells.
// Tests set the backend-facing services they exercise.
func CreateUIHandlersForTest(t *testing.T) *UIHandlers {
	t.Helper()
	tr := RequireTemplateRenderer(t)
	if tr == nil {
		return nil
	}
	tracker := fetch.NewTracker()
	t.Cleanup(tracker.Close)
	return &UIHandlers{
		T:       tr,
		Shells:  service.NewDispatcher(service.DispatcherOptions{Registry: access.MustDefaultRegistry()}),
		Fetches: tracker,
	}
}

// WithSession returns r carrying the given session, as ResolveSession would attach it.
func WithSession(r *http.Request, id string, sess domainauth.Session) *http.Request {
	return r.WithContext(SetSessionInContext(r.Context(), id, sess))
}

// AsHTMX marks r as an htmx request.
func AsHTMX(r *http.Request) *http.Request {
	r.Header.Set("Hx-Request", "true")
	return r
}
