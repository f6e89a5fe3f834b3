package ports

// Package ports defines interfaces (hexagonal ports) for the portal's collaborators.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

// LoginInput carries the login form values.
type LoginInput struct {
	Username string
	Password string
	Role     domainauth.Role
}

// LoginResult is what the identity collaborator returns for a successful login.
// ExpiresAt is zero when the collaborator does not say.
type LoginResult struct {
	Identity   domainauth.Identity
	Role       string
	Credential domainauth.Credential
	ExpiresAt  time.Time
	Message    string
}

// Principal is the /auth/me answer. Role is the raw wire value; it may be empty or unknown.
type Principal struct {
	Identity domainauth.Identity
	Role     string
}

// IdentityClient talks to the identity collaborator.
type IdentityClient interface {
	// Me probes the current session. Any non-2xx answer or malformed payload is an error.
	Me(ctx context.Context, cred domainauth.Credential) (Principal, error)

	// Login exchanges credentials for a backend credential and role.
	Login(ctx context.Context, in LoginInput) (LoginResult, error)

	// Logout invalidates the backend credential.
	Logout(ctx context.Context, cred domainauth.Credential) error
}

// RecordStore persists session records keyed by the browser's session cookie.
type RecordStore interface {
	Save(ctx context.Context, rec domainauth.Record) error
	Get(ctx context.Context, id string) (domainauth.Record, error)
	Delete(ctx context.Context, id string) error
}
