package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultCSRFCookieName names the CSRF cookie and the hidden form field carrying it.
	DefaultCSRFCookieName = "csrf_token"
	// DefaultCSRFHeaderName is the header htmx requests send the token in (canonical form).
	DefaultCSRFHeaderName = "X-Csrf-Token"

	csrfTokenBytes   = 32
	csrfCookieMaxAge = 12 * time.Hour
)

// CSRFConfig configures the double-submit cookie check.
type CSRFConfig struct {
	// CookieDomain scopes the CSRF cookie like the session cookie.
	CookieDomain string
	// Secure forces the Secure attribute; otherwise it follows the request scheme.
	Secure bool
	// Exempt lists path prefixes that skip validation.
	Exempt []string
	// OnFailure renders the rejection. Defaults to a plain 403.
	OnFailure http.Handler
}

type csrfTokenKey struct{}

// CSRFProtection issues a token cookie to every client that lacks one and requires
// state-changing requests to echo it back, either in the X-Csrf-Token header (htmx)
// or the csrf_token form field (plain forms). The token is placed in the request
// context for templates.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	onFailure := cfg.OnFailure
	if onFailure == nil {
		onFailure = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "CSRF token validation failed", http.StatusForbidden)
		})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := csrfCookieValue(r)
			if token == "" {
				var err error
				if token, err = newCSRFToken(); err != nil {
					http.Error(w, "unable to issue CSRF token", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     DefaultCSRFCookieName,
					Value:    token,
					Path:     "/",
					Domain:   cfg.CookieDomain,
					HttpOnly: false, // htmx reads it to fill the request header
					Secure:   cfg.Secure || r.TLS != nil || isForwardedHTTPS(r),
					SameSite: http.SameSiteStrictMode,
					MaxAge:   int(csrfCookieMaxAge.Seconds()),
				})
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token))

			if isSafeMethod(r.Method) || hasPrefixIn(r.URL.Path, cfg.Exempt) {
				next.ServeHTTP(w, r)
				return
			}
			if !tokensMatch(submittedCSRFToken(r), token) {
				onFailure.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetCSRFToken returns the token CSRFProtection attached to r.
func GetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey{}).(string)
	return token
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func hasPrefixIn(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func csrfCookieValue(r *http.Request) string {
	c, err := r.Cookie(DefaultCSRFCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("csrf token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// submittedCSRFToken reads the header first and falls back to the form field for
// urlencoded and multipart bodies. Other bodies are never parsed.
func submittedCSRFToken(r *http.Request) string {
	if v := r.Header.Get(DefaultCSRFHeaderName); v != "" {
		return v
	}
	media, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	switch media {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return r.FormValue(DefaultCSRFCookieName)
	}
	return ""
}

func tokensMatch(submitted, cookie string) bool {
	if submitted == "" || cookie == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(cookie)) == 1
}

// isForwardedHTTPS reports whether a proxy saw the request over https. The header may
// carry a comma-separated chain.
func isForwardedHTTPS(r *http.Request) bool {
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}
