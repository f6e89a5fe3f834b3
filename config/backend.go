package config

import (
	"strings"
	"time"
)

// BackendConfig describes the hospital REST API the portal calls on behalf of users.
type BackendConfig struct {
	// BaseURL is the API root; every collaborator path is appended to it.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000/api"`

	// Timeout bounds a single outbound call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// RoleExpr extracts the role from the /auth/me payload.
	RoleExpr string `env:"ROLE_EXPR" envDefault:"role || user.role"`

	// UserIDExpr extracts the user id from the /auth/me payload.
	UserIDExpr string `env:"USER_ID_EXPR" envDefault:"userId || id || _id || user.id || user._id"`

	// NameExpr extracts the display name from the /auth/me payload.
	NameExpr string `env:"NAME_EXPR" envDefault:"name || user.name || join(' ', [firstName || '', lastName || ''])"`

	// EmailExpr extracts the e-mail address from the /auth/me payload.
	EmailExpr string `env:"EMAIL_EXPR" envDefault:"email || user.email"`

	// TokenExpr extracts the bearer token from the /auth/login payload.
	TokenExpr string `env:"TOKEN_EXPR" envDefault:"token || accessToken || access_token || data.token"`
}

// Sanitize normalises the base URL and timeouts.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
	b.RoleExpr = strings.TrimSpace(b.RoleExpr)
	b.UserIDExpr = strings.TrimSpace(b.UserIDExpr)
	b.NameExpr = strings.TrimSpace(b.NameExpr)
	b.EmailExpr = strings.TrimSpace(b.EmailExpr)
	b.TokenExpr = strings.TrimSpace(b.TokenExpr)
}

// MediaConfig describes the external image host used for staff profile photos.
type MediaConfig struct {
	// UploadURL is the multipart upload endpoint. Leave empty to disable uploads.
	UploadURL string `env:"UPLOAD_URL"`

	// UploadPreset is sent as the unsigned upload preset.
	UploadPreset string `env:"UPLOAD_PRESET"`

	// MaxBytes caps the accepted photo size.
	MaxBytes int64 `env:"MAX_BYTES" envDefault:"5242880"`
}

// Sanitize trims values and clamps the size limit.
func (m *MediaConfig) Sanitize() {
	m.UploadURL = strings.TrimSpace(m.UploadURL)
	m.UploadPreset = strings.TrimSpace(m.UploadPreset)
	if m.MaxBytes <= 0 {
		m.MaxBytes = 5 << 20
	}
}

// Enabled reports whether photo uploads are configured.
func (m *MediaConfig) Enabled() bool {
	return m.UploadURL != ""
}
