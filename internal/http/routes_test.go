package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/access"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/statsd"
	"github.com/maf-y/ArardaHospital-Frontend/internal/service"
)

func newTestRouter(t *testing.T) (http.Handler, *statsd.Recorder) {
	t.Helper()
	reg := access.MustDefaultRegistry()
	metrics := statsd.NewRecorder()
	h, err := NewRouter(RouterServices{
		Resolver: &fakeResolver{sessions: map[string]domainauth.Session{
			"doc":   doctorSession,
			"pharm": pharmSession,
		}},
		Guard:     access.NewGuard(reg, access.DefaultRoutes(reg)),
		Auth:      &fakeAuth{},
		Shells:    service.NewDispatcher(service.DispatcherOptions{Registry: reg}),
		Views:     &fakeViews{},
		Clinical:  newFakeClinical(),
		Directory: fakeDirectory{},
		Metrics:   metrics,
	})
	require.NoError(t, err)
	return h, metrics
}

func get(h http.Handler, target, session string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if session != "" {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session})
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestNewRouter_RequiresCoreServices(t *testing.T) {
	_, err := NewRouter(RouterServices{Auth: &fakeAuth{}})
	assert.Error(t, err)
}

func TestNewRouter_Navigation(t *testing.T) {
	h, metrics := newTestRouter(t)

	tests := []struct {
		name     string
		target   string
		session  string
		status   int
		location string
		contains string
	}{
		{name: "public home", target: "/", status: http.StatusOK, contains: "Cardiology"},
		{name: "doctor directory", target: "/showDoctor?q=hana", status: http.StatusOK, contains: "Dr. Hana Tesfaye"},
		{name: "anonymous on dashboard", target: access.LandingDoctor, status: http.StatusSeeOther, location: "/"},
		{name: "signed in on public page", target: "/about", session: "doc", status: http.StatusSeeOther, location: access.LandingDoctor},
		{name: "own dashboard", target: access.LandingDoctor, session: "doc", status: http.StatusOK, contains: "Medical Records"},
		{name: "other role's area", target: access.LandingTriage, session: "doc", status: http.StatusSeeOther, location: "/unauthorized"},
		{name: "bare area prefix", target: "/doctor", session: "doc", status: http.StatusSeeOther, location: access.LandingDoctor},
		{name: "role without dashboard", target: "/user", session: "pharm", status: http.StatusForbidden, contains: "Pharmacist"},
		{name: "unknown path", target: "/nowhere", status: http.StatusNotFound},
		{name: "unknown path signed in", target: "/nowhere", session: "doc", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(h, tt.target, tt.session)
			assert.Equal(t, tt.status, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}

	assert.NotEmpty(t, metrics.Named("guard.decision"))
}

func TestNewRouter_HealthAndStatic(t *testing.T) {
	h, metrics := newTestRouter(t)

	w := get(h, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	w = get(h, "/static/css/app.css", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))

	w = get(h, "/static/css/app.css?v=abc123", "")
	assert.Equal(t, "public, max-age=31536000, immutable", w.Header().Get("Cache-Control"))

	assert.Empty(t, metrics.Named("guard.decision"), "static and health bypass the guard")
}
