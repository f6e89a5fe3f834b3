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
)

// recordingPages notes which guard page was rendered.
type recordingPages struct{ served string }

func (p *recordingPages) Placeholder(w http.ResponseWriter, _ *http.Request) {
	p.served = "placeholder"
	w.WriteHeader(http.StatusOK)
}

func (p *recordingPages) SessionPending(w http.ResponseWriter, _ *http.Request) {
	p.served = "session_pending"
	w.WriteHeader(http.StatusServiceUnavailable)
}

func (p *recordingPages) NotFound(w http.ResponseWriter, _ *http.Request) {
	p.served = "not_found"
	w.WriteHeader(http.StatusNotFound)
}

func (p *recordingPages) RoleNotConfigured(w http.ResponseWriter, _ *http.Request) {
	p.served = "role_not_configured"
	w.WriteHeader(http.StatusForbidden)
}

func newGuardedHandler(t *testing.T, sink statsd.Sink) (http.Handler, *recordingPages, *bool) {
	t.Helper()
	pages := &recordingPages{}
	reached := false
	guard := access.NewGuard(access.MustDefaultRegistry(), nil)
	h := GuardRoutes(GuardConfig{Guard: guard, Pages: pages, Metrics: sink})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		}))
	return h, pages, &reached
}

func guardRequest(method, path string, sess domainauth.Session, htmx bool) *http.Request {
	r := WithSession(httptest.NewRequest(method, path, nil), "s-1", sess)
	if htmx {
		AsHTMX(r)
	}
	return r
}

func TestGuardRoutes_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		session     domainauth.Session
		htmx        bool
		wantReached bool
		wantPage    string
		wantStatus  int
		wantHeader  string
		wantValue   string
	}{
		{
			name:        "anonymous on public page",
			path:        "/about",
			session:     domainauth.Anonymous(),
			wantReached: true,
			wantStatus:  http.StatusOK,
		},
		{
			name:       "authenticated on public page goes to landing",
			path:       "/",
			session:    doctorSession,
			wantStatus: http.StatusSeeOther,
			wantHeader: "Location",
			wantValue:  access.LandingDoctor,
		},
		{
			name:       "anonymous on protected page goes home",
			path:       "/triage/unassigned",
			session:    domainauth.Anonymous(),
			wantStatus: http.StatusSeeOther,
			wantHeader: "Location",
			wantValue:  access.PathHome,
		},
		{
			name:       "other role's area is unauthorized",
			path:       "/hospital-admin/dashboard",
			session:    doctorSession,
			wantStatus: http.StatusSeeOther,
			wantHeader: "Location",
			wantValue:  access.PathUnauthorized,
		},
		{
			name:       "htmx redirects use HX-Redirect",
			path:       "/hospital-admin/dashboard",
			session:    doctorSession,
			htmx:       true,
			wantStatus: http.StatusNoContent,
			wantHeader: "Hx-Redirect",
			wantValue:  access.PathUnauthorized,
		},
		{
			name:        "own area is allowed",
			path:        "/doctor/records/42",
			session:     doctorSession,
			wantReached: true,
			wantStatus:  http.StatusOK,
		},
		{
			name:       "unresolved session gets the placeholder",
			path:       "/doctor/assigned-records",
			session:    domainauth.Unresolved(),
			wantPage:   "placeholder",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown path waits for the session too",
			path:       "/no/such/page",
			session:    domainauth.Unresolved(),
			wantPage:   "placeholder",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown path is not found once resolved",
			path:       "/no/such/page",
			session:    domainauth.Anonymous(),
			wantPage:   "not_found",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "role without a dashboard",
			path:       "/doctor/assigned-records",
			session:    pharmSession,
			wantPage:   "role_not_configured",
			wantStatus: http.StatusForbidden,
		},
		{
			name:        "shared page is open to every resolved session",
			path:        "/unauthorized",
			session:     triageSession,
			wantReached: true,
			wantStatus:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, pages, reached := newGuardedHandler(t, nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, guardRequest(http.MethodGet, tt.path, tt.session, tt.htmx))

			assert.Equal(t, tt.wantReached, *reached)
			assert.Equal(t, tt.wantPage, pages.served)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantHeader != "" {
				assert.Equal(t, tt.wantValue, w.Header().Get(tt.wantHeader))
			}
		})
	}
}

func TestGuardRoutes_UnresolvedSubmissionIsNotReplayedAsGet(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			h, pages, reached := newGuardedHandler(t, nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, guardRequest(method, "/login", domainauth.Unresolved(), false))

			assert.False(t, *reached)
			assert.Equal(t, "session_pending", pages.served)
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		})
	}

	h, pages, _ := newGuardedHandler(t, nil)
	h.ServeHTTP(httptest.NewRecorder(), guardRequest(http.MethodHead, "/login", domainauth.Unresolved(), false))
	assert.Equal(t, "placeholder", pages.served)
}

func TestGuardRoutes_BypassSkipsDecision(t *testing.T) {
	sink := statsd.NewRecorder()
	h, _, reached := newGuardedHandler(t, sink)

	for _, path := range []string{"/static/css/app.css", "/healthz", "/auth/logout", "/auth/status"} {
		*reached = false
		w := httptest.NewRecorder()
		h.ServeHTTP(w, guardRequest(http.MethodGet, path, domainauth.Unresolved(), false))
		assert.True(t, *reached, path)
	}
	assert.Empty(t, sink.Named("guard.decision"))
}

func TestGuardRoutes_EmitsDecisionMetric(t *testing.T) {
	sink := statsd.NewRecorder()
	h, _, _ := newGuardedHandler(t, sink)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, guardRequest(http.MethodGet, "/hospital-admin/dashboard", doctorSession, false))

	samples := sink.Named("guard.decision")
	require.Len(t, samples, 1)
	assert.Equal(t, "redirect_unauthorized", samples[0].Tags["outcome"])
	assert.Equal(t, "protected", samples[0].Tags["kind"])
	assert.Equal(t, "Doctor", samples[0].Tags["role"])
}

func TestGuardRoutes_PanicsWithoutGuard(t *testing.T) {
	assert.Panics(t, func() { GuardRoutes(GuardConfig{Pages: &recordingPages{}}) })
}

func TestNavigate(t *testing.T) {
	w := httptest.NewRecorder()
	Navigate(w, httptest.NewRequest(http.MethodGet, "/x", nil), "/login")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	Navigate(w, AsHTMX(httptest.NewRequest(http.MethodGet, "/x", nil)), "/login")
	assert.Equal(t, "/login", w.Header().Get("Hx-Redirect"))
}
