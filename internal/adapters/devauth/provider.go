package devauth

// Package devauth provides a simple, config-driven identity directory for local development.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
)

// Config controls the dev identity directory.
type Config struct {
	// Users are "username:password:Role" entries. The role is kept verbatim, so an
	// entry may carry a role the portal does not recognise.
	Users           []string
	SessionDuration time.Duration // default 8h when zero
}

type account struct {
	password string
	role     string
	identity domainauth.Identity
}

type issued struct {
	username  string
	expiresAt time.Time
}

// Provider implements ports.IdentityClient without a backend.
// Login issues random opaque tokens; Me answers for tokens it issued and has not revoked.
type Provider struct {
	accounts        map[string]account
	sessionDuration time.Duration

	mu     sync.Mutex
	tokens map[string]issued
	now    func() time.Time
}

var _ ports.IdentityClient = (*Provider)(nil)

// NewProvider constructs a dev identity directory from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if len(cfg.Users) == 0 {
		return nil, errors.New("dev auth: at least one user is required")
	}
	accounts := make(map[string]account, len(cfg.Users))
	for _, entry := range cfg.Users {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("dev auth: invalid user entry %q (want username:password:Role)", entry)
		}
		username := strings.ToLower(parts[0])
		if _, dup := accounts[username]; dup {
			return nil, fmt.Errorf("dev auth: duplicate user %q", parts[0])
		}
		accounts[username] = account{
			password: parts[1],
			role:     parts[2],
			identity: domainauth.Identity{
				UserID: "dev-" + username,
				Name:   parts[0],
				Email:  username + "@arada.local",
			},
		}
	}

	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Provider{
		accounts:        accounts,
		sessionDuration: dur,
		tokens:          make(map[string]issued),
		now:             time.Now,
	}, nil
}

// Login checks the username, password, and selected role.
func (p *Provider) Login(_ context.Context, in ports.LoginInput) (ports.LoginResult, error) {
	acct, ok := p.accounts[strings.ToLower(strings.TrimSpace(in.Username))]
	if !ok || acct.password != in.Password {
		return ports.LoginResult{}, apperrors.Validation("Invalid credentials")
	}
	if in.Role != "" && string(in.Role) != acct.role {
		return ports.LoginResult{}, apperrors.Validation("Selected role does not match this account")
	}

	token, err := randomString(32)
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("generate token: %w", err)
	}
	expiresAt := p.now().Add(p.sessionDuration)

	p.mu.Lock()
	p.tokens[token] = issued{username: strings.ToLower(strings.TrimSpace(in.Username)), expiresAt: expiresAt}
	p.mu.Unlock()

	return ports.LoginResult{
		Identity:   acct.identity,
		Role:       acct.role,
		Credential: domainauth.Credential{Token: token},
		ExpiresAt:  expiresAt,
		Message:    "Login successful",
	}, nil
}

// Me returns the principal for a token this provider issued.
func (p *Provider) Me(_ context.Context, cred domainauth.Credential) (ports.Principal, error) {
	p.mu.Lock()
	tok, ok := p.tokens[cred.Token]
	if ok && !p.now().Before(tok.expiresAt) {
		delete(p.tokens, cred.Token)
		ok = false
	}
	p.mu.Unlock()

	if !ok {
		return ports.Principal{}, apperrors.Unauthorized("Not authenticated")
	}
	acct := p.accounts[tok.username]
	return ports.Principal{Identity: acct.identity, Role: acct.role}, nil
}

// Logout revokes the token.
func (p *Provider) Logout(_ context.Context, cred domainauth.Credential) error {
	p.mu.Lock()
	delete(p.tokens, cred.Token)
	p.mu.Unlock()
	return nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	// Compute number of random bytes needed to produce at least n base64 URL chars
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		// pad
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
