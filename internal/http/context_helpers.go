package httpx

import (
	"context"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

type sessionValue struct {
	id      string
	session domainauth.Session
}

// SetSessionInContext returns a child context carrying the client's session id and
// its resolved session.
func SetSessionInContext(ctx context.Context, id string, sess domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionValue{id: id, session: sess})
}

// GetUserSessionFromContext returns the resolved session and whether one was attached.
func GetUserSessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	v, ok := ctx.Value(sessionKey{}).(sessionValue)
	if !ok {
		return domainauth.Unresolved(), false
	}
	return v.session, true
}

// GetSessionFromContext retrieves the session from the request context.
// Requests that never passed ResolveSession report Unresolved.
func GetSessionFromContext(ctx context.Context) domainauth.Session {
	s, _ := GetUserSessionFromContext(ctx)
	return s
}

// SessionIDFromContext returns the client's session id, or "" when the client has none.
func SessionIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(sessionKey{}).(sessionValue)
	return v.id
}

// IsGuestUser reports whether the current request context carries no authenticated session.
func IsGuestUser(ctx context.Context) bool {
	return !GetSessionFromContext(ctx).IsAuthenticated()
}
