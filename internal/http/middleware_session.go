package httpx

import (
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

// SessionCookieName is the browser cookie holding the portal session id.
const SessionCookieName = "arada_session"

// SessionCookieConfig controls the session cookie attributes.
type SessionCookieConfig struct {
	Domain string
	// Secure forces the Secure attribute; otherwise it follows the request scheme.
	Secure bool
}

// SessionConfig wires ResolveSession.
type SessionConfig struct {
	Resolver SessionResolver
	Cookie   SessionCookieConfig
	Logger   *slog.Logger
}

// ResolveSession attaches the client's session to the request context. The session id
// comes from the session cookie; a request without one resolves to Anonymous.
func ResolveSession(cfg SessionConfig) func(http.Handler) http.Handler {
	if cfg.Resolver == nil {
		panic("ResolveSession requires a SessionResolver")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sessionCookieValue(r)
			sess := cfg.Resolver.Resolve(r.Context(), id)
			if id != "" && sess.IsAnonymous() {
				// Stale cookie: the backend no longer knows this session.
				clearSessionCookie(w, r, cfg.Cookie)
			}
			logger.DebugContext(r.Context(), "session resolved",
				"state", sess.State.String(),
				"role", string(sess.Role),
				"path", r.URL.Path,
			)
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), id, sess)))
		})
	}
}

func sessionCookieValue(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, cfg SessionCookieConfig, id string, expires time.Time) {
	maxAge := int(time.Until(expires).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   cfg.Secure || r.TLS != nil || isForwardedHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request, cfg SessionCookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   cfg.Secure || r.TLS != nil || isForwardedHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// sessionFields flattens a session for JSON responses.
func sessionFields(sess domainauth.Session) map[string]any {
	out := map[string]any{
		"state":         sess.State.String(),
		"authenticated": sess.IsAuthenticated(),
	}
	if sess.IsAuthenticated() {
		out["role"] = string(sess.Role)
		out["user_id"] = sess.Identity.UserID
		out["name"] = sess.Identity.DisplayName()
	}
	return out
}
