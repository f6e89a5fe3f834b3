package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/access"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/metrics"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/statsd"
)

// DefaultGuardBypass lists path prefixes served without a navigation decision.
func DefaultGuardBypass() []string {
	return []string{"/static/", "/healthz", "/auth/", "/favicon.ico"}
}

// GuardPages renders the pages the guard answers with itself.
type GuardPages interface {
	Placeholder(w http.ResponseWriter, r *http.Request)
	SessionPending(w http.ResponseWriter, r *http.Request)
	NotFound(w http.ResponseWriter, r *http.Request)
	RoleNotConfigured(w http.ResponseWriter, r *http.Request)
}

// GuardConfig wires GuardRoutes.
type GuardConfig struct {
	Guard   *access.Guard
	Pages   GuardPages
	Metrics statsd.Sink
	// Bypass lists path prefixes that skip the guard. Nil means DefaultGuardBypass.
	Bypass []string
	Logger *slog.Logger
}

// GuardRoutes decides every navigation against the session attached by ResolveSession.
// Allowed requests reach next; everything else is answered here.
func GuardRoutes(cfg GuardConfig) func(http.Handler) http.Handler {
	if cfg.Guard == nil || cfg.Pages == nil {
		panic("GuardRoutes requires a Guard and Pages")
	}
	bypass := cfg.Bypass
	if bypass == nil {
		bypass = DefaultGuardBypass()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "route_guard")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypassed(r.URL.Path, bypass) {
				next.ServeHTTP(w, r)
				return
			}

			d := cfg.Guard.Decide(access.NavigationRequest{
				TargetPath: r.URL.Path,
				Session:    GetSessionFromContext(r.Context()),
			})
			metrics.EmitGuardDecision(cfg.Metrics, metrics.GuardDecision{
				Outcome: d.Outcome.String(),
				Kind:    d.Kind.String(),
				Role:    string(d.Role),
			})
			if d.Outcome != access.Allow {
				logger.DebugContext(r.Context(), "navigation intercepted",
					"path", r.URL.Path,
					"outcome", d.Outcome.String(),
					"location", d.Location,
				)
			}

			switch {
			case d.Outcome == access.Allow:
				next.ServeHTTP(w, r)
			case d.Outcome.IsRedirect():
				Navigate(w, r, d.Location)
			case d.Outcome == access.Placeholder && !isNavigation(r):
				cfg.Pages.SessionPending(w, r)
			case d.Outcome == access.Placeholder:
				cfg.Pages.Placeholder(w, r)
			case d.Outcome == access.RoleNotConfigured:
				cfg.Pages.RoleNotConfigured(w, r)
			default:
				cfg.Pages.NotFound(w, r)
			}
		})
	}
}

// Navigate sends the client to location. HTMX requests get HX-Redirect so the whole
// page, shell included, is replaced; plain requests get a 303.
func Navigate(w http.ResponseWriter, r *http.Request, location string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(location)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// isNavigation reports whether r can be repeated as-is by re-requesting its URL.
func isNavigation(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

func bypassed(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		if path == strings.TrimSuffix(p, "/") || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
