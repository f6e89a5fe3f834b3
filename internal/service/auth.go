package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/fetch"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
	"github.com/maf-y/ArardaHospital-Frontend/internal/session"
)

const defaultSessionTTL = 12 * time.Hour

// AuthSessionConfig groups the session-side collaborators of AuthService.
type AuthSessionConfig struct {
	// Store receives the explicit login and logout transitions. Required.
	Store *session.Store
	// Fetches is released on logout so the client's in-flight loads stop. Optional.
	Fetches *fetch.Tracker
	// TTL caps the lifetime of a session record. Zero means 12h.
	TTL    time.Duration
	Logger *slog.Logger
	Now    func() time.Time
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Identity ports.IdentityClient
	Records  ports.RecordStore
	Session  AuthSessionConfig
}

// AuthService performs the explicit login and logout transitions and hands out the
// backend credential stored for a session.
type AuthService struct {
	identity ports.IdentityClient
	records  ports.RecordStore
	store    *session.Store
	fetches  *fetch.Tracker
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Identity == nil {
		panic("AuthService requires an IdentityClient")
	}
	if opts.Records == nil {
		panic("AuthService requires a RecordStore")
	}
	if opts.Session.Store == nil {
		panic("AuthService requires a session Store")
	}
	ttl := opts.Session.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	logger := opts.Session.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Session.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		identity: opts.Identity,
		records:  opts.Records,
		store:    opts.Session.Store,
		fetches:  opts.Session.Fetches,
		ttl:      ttl,
		logger:   logger.With("component", "auth_service"),
		now:      now,
	}
}

// LoginRequest carries the submitted login form.
type LoginRequest struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Role     string `mapstructure:"role"`
}

// LoginResult is a successful login.
type LoginResult struct {
	SessionID string
	Session   domainauth.Session
	ExpiresAt time.Time
	Message   string
}

// Login exchanges credentials with the identity collaborator, persists the issued
// credential under a fresh session id, and moves that client to Authenticated.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.ValidationField("username", "Enter your username or e-mail.")
	}
	if req.Password == "" {
		return nil, apperrors.ValidationField("password", "Enter your password.")
	}
	requested, err := domainauth.ParseRole(strings.TrimSpace(req.Role))
	if err != nil {
		return nil, apperrors.ValidationField("role", "Choose the role you are signing in as.")
	}

	res, err := s.identity.Login(ctx, ports.LoginInput{Username: username, Password: req.Password, Role: requested})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	role, err := domainauth.ParseRole(res.Role)
	if err != nil {
		s.logger.WarnContext(ctx, "login returned no usable role",
			"requested", requested, "returned", res.Role, "user_id", res.Identity.UserID)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized,
			"The identity service did not confirm a role for this account.")
	}

	now := s.now()
	expires := now.Add(s.ttl)
	if !res.ExpiresAt.IsZero() && res.ExpiresAt.Before(expires) {
		expires = res.ExpiresAt
	}
	if !expires.After(now) {
		return nil, apperrors.Unauthorized("The identity service issued an expired session.")
	}

	rec := domainauth.Record{
		ID:         uuid.NewString(),
		UserID:     res.Identity.UserID,
		Role:       role,
		Credential: res.Credential,
		CreatedAt:  now,
		ExpiresAt:  expires,
	}
	if err := s.records.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save session record: %w", err)
	}

	sess := domainauth.Authenticated(res.Identity, role)
	s.store.Set(rec.ID, sess)
	s.logger.InfoContext(ctx, "user signed in", "role", role, "user_id", res.Identity.UserID)

	return &LoginResult{SessionID: rec.ID, Session: sess, ExpiresAt: expires, Message: res.Message}, nil
}

// Logout ends the session identified by sessionID. It never fails: the backend logout
// is attempted and its failure only logged, and the client ends up Anonymous regardless.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}

	rec, err := s.records.Get(ctx, sessionID)
	if err == nil && !rec.Credential.Empty() {
		if logoutErr := s.identity.Logout(ctx, rec.Credential); logoutErr != nil {
			s.logger.WarnContext(ctx, "backend logout failed", "error", logoutErr)
		}
	}
	if delErr := s.records.Delete(ctx, sessionID); delErr != nil {
		s.logger.WarnContext(ctx, "delete session record failed", "error", delErr)
	}

	s.store.Set(sessionID, domainauth.Anonymous())
	if s.fetches != nil {
		if n := s.fetches.Release(sessionID); n > 0 {
			s.logger.DebugContext(ctx, "cancelled in-flight loads on logout", "count", n)
		}
	}
}

// Credential returns the backend credential stored for sessionID.
func (s *AuthService) Credential(ctx context.Context, sessionID string) (domainauth.Credential, error) {
	if sessionID == "" {
		return domainauth.Credential{}, apperrors.Unauthorized("Your session has ended. Please sign in again.")
	}
	rec, err := s.records.Get(ctx, sessionID)
	if err != nil {
		return domainauth.Credential{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "Your session has ended. Please sign in again.")
	}
	if rec.Expired(s.now()) {
		return domainauth.Credential{}, apperrors.Unauthorized("Your session has expired. Please sign in again.")
	}
	return rec.Credential, nil
}
