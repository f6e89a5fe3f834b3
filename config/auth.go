package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents where login and session probes are sent.
type AuthMode string

const (
	// AuthModeAPI talks to the hospital identity endpoints (/auth/login, /auth/me, /auth/logout).
	AuthModeAPI AuthMode = "api"
	// AuthModeMock uses an in-process identity directory (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "api", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: api, mock)", v)
	}
}

// DevAuthConfig controls the mock identity directory.
// Used when AUTH_MODE=mock for development and testing.
//
// Users are "username:password:Role" triples separated by ";".
type DevAuthConfig struct {
	Users []string `env:"USERS" envDefault:"patient:patient:Patient;admin:admin:HospitalAdministrator;reception:reception:Receptionist;doctor:doctor:Doctor;triage:triage:Triage;lab:lab:LabTechnician;pharmacy:pharmacy:Pharmacist" envSeparator:";"`
}

// AuthConfig groups login, session, and resolver configuration.
type AuthConfig struct {
	// Mode determines which identity collaborator to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"api"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL bounds how long a session record lives when the backend token carries no expiry.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// SessionCacheTTL is how long a resolved session is reused before /auth/me is probed again.
	SessionCacheTTL time.Duration `env:"SESSION_CACHE_TTL" envDefault:"30s"`

	// SessionCacheSize caps the number of resolved sessions kept in memory.
	SessionCacheSize int `env:"SESSION_CACHE_SIZE" envDefault:"4096"`

	// ResolveWait is how long a navigation waits for an outstanding probe before
	// the neutral placeholder is rendered. Zero waits for the probe to finish.
	ResolveWait time.Duration `env:"SESSION_RESOLVE_WAIT" envDefault:"2s"`

	// PlaceholderRefresh is how often the placeholder re-requests the page.
	PlaceholderRefresh time.Duration `env:"SESSION_PLACEHOLDER_REFRESH" envDefault:"1s"`
}

const (
	minSessionCacheTTL = time.Second
	minSessionCacheCap = 16
)

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Mode == "" {
		a.Mode = AuthModeAPI
	}
	if a.SessionTTL <= 0 {
		a.SessionTTL = 12 * time.Hour
	}
	// Placeholder polls must be able to pick up a finished probe from the cache.
	if a.SessionCacheTTL < minSessionCacheTTL {
		a.SessionCacheTTL = minSessionCacheTTL
	}
	if a.SessionCacheSize < minSessionCacheCap {
		a.SessionCacheSize = minSessionCacheCap
	}
	if a.ResolveWait < 0 {
		a.ResolveWait = 0
	}
	if a.PlaceholderRefresh <= 0 {
		a.PlaceholderRefresh = time.Second
	}
}
