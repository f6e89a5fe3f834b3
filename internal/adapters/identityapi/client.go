// Package identityapi implements ports.IdentityClient over the hospital identity
// endpoints (/auth/login, /auth/me, /auth/logout).
package identityapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/net/publicsuffix"

	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/hospitalapi"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/metrics"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
)

const (
	pathLogin  = "/auth/login"
	pathMe     = "/auth/me"
	pathLogout = "/auth/logout"
)

// Default field expressions, used when Options leaves one empty.
const (
	DefaultRoleExpr   = "role || user.role"
	DefaultUserIDExpr = "userId || id || _id || user.id || user._id"
	DefaultNameExpr   = "name || user.name || join(' ', [firstName || '', lastName || ''])"
	DefaultEmailExpr  = "email || user.email"
	DefaultTokenExpr  = "token || accessToken || access_token || data.token"
)

// Options configures Client.
type Options struct {
	// API performs the underlying HTTP calls; its base URL is the identity root.
	API *hospitalapi.Client

	RoleExpr   string
	UserIDExpr string
	NameExpr   string
	EmailExpr  string
	TokenExpr  string

	Logger *slog.Logger
}

// Client talks to the identity collaborator.
type Client struct {
	api    *hospitalapi.Client
	fields fieldSet
	logger *slog.Logger
}

type fieldSet struct {
	role, userID, name, email, token jmespath.JMESPath
}

var _ ports.IdentityClient = (*Client)(nil)

// New compiles the field expressions and returns a Client.
func New(opts Options) (*Client, error) {
	if opts.API == nil {
		return nil, errors.New("identityapi: API client is required")
	}

	var fs fieldSet
	for _, f := range []struct {
		dst      *jmespath.JMESPath
		expr     string
		fallback string
	}{
		{&fs.role, opts.RoleExpr, DefaultRoleExpr},
		{&fs.userID, opts.UserIDExpr, DefaultUserIDExpr},
		{&fs.name, opts.NameExpr, DefaultNameExpr},
		{&fs.email, opts.EmailExpr, DefaultEmailExpr},
		{&fs.token, opts.TokenExpr, DefaultTokenExpr},
	} {
		expr := strings.TrimSpace(f.expr)
		if expr == "" {
			expr = f.fallback
		}
		compiled, err := jmespath.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("identityapi: compile %q: %w", expr, err)
		}
		*f.dst = compiled
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{api: opts.API, fields: fs, logger: logger.With("component", "identityapi")}, nil
}

// Me probes the session identified by cred.
func (c *Client) Me(ctx context.Context, cred domainauth.Credential) (ports.Principal, error) {
	var doc any
	if err := c.api.Call(ctx, cred, ports.APIRequest{Method: http.MethodGet, Path: pathMe}, &doc); err != nil {
		return ports.Principal{}, err
	}
	if _, ok := doc.(map[string]any); !ok {
		return ports.Principal{}, apperrors.Upstream("The identity service returned a malformed response.")
	}
	return ports.Principal{
		Identity: c.identity(doc),
		Role:     c.field(c.fields.role, doc),
	}, nil
}

// Login posts the credentials and captures the token and any cookies the backend sets.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (ports.LoginResult, error) {
	start := time.Now()
	res, status, err := c.login(ctx, in)
	metrics.EmitUpstreamCall(c.api.Metrics(), metrics.UpstreamCall{
		Service:  c.api.Service(),
		Method:   http.MethodPost,
		Status:   status,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		c.logger.DebugContext(ctx, "login rejected", "role", in.Role, "status", status, "error", err)
	}
	return res, err
}

func (c *Client) login(ctx context.Context, in ports.LoginInput) (ports.LoginResult, int, error) {
	payload, err := json.Marshal(map[string]string{
		"username": in.Username,
		"email":    in.Username,
		"password": in.Password,
		"role":     string(in.Role),
	})
	if err != nil {
		return ports.LoginResult{}, 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode login")
	}

	endpoint := c.api.Resolve(pathLogin, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ports.LoginResult{}, 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build login request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return ports.LoginResult{}, 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "create cookie jar")
	}
	hc := c.api.HTTPClient(domainauth.Credential{})
	hc.Jar = jar

	resp, err := hc.Do(req)
	if err != nil {
		return ports.LoginResult{}, 0, apperrors.MapTransportError(err)
	}
	defer resp.Body.Close()

	if err := c.api.CheckResponse(resp); err != nil {
		return ports.LoginResult{}, resp.StatusCode, err
	}

	var doc any
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return ports.LoginResult{}, resp.StatusCode, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "The identity service returned a malformed response.")
	}

	token := c.field(c.fields.token, doc)
	cred := domainauth.Credential{Token: token, Cookies: capturedCookies(jar, req.URL)}
	if cred.Token == "" && len(cred.Cookies) == 0 {
		return ports.LoginResult{}, resp.StatusCode, apperrors.Upstream("The identity service did not issue a session.")
	}

	return ports.LoginResult{
		Identity:   c.identity(doc),
		Role:       c.field(c.fields.role, doc),
		Credential: cred,
		ExpiresAt:  tokenExpiry(token),
		Message:    stringValue(searchOrNil(messageExpr, doc)),
	}, resp.StatusCode, nil
}

// Logout invalidates the backend credential.
func (c *Client) Logout(ctx context.Context, cred domainauth.Credential) error {
	return c.api.Call(ctx, cred, ports.APIRequest{Method: http.MethodPost, Path: pathLogout}, nil)
}

func (c *Client) identity(doc any) domainauth.Identity {
	return domainauth.Identity{
		UserID: c.field(c.fields.userID, doc),
		Name:   c.field(c.fields.name, doc),
		Email:  c.field(c.fields.email, doc),
	}
}

func (c *Client) field(expr jmespath.JMESPath, doc any) string {
	return stringValue(searchOrNil(expr, doc))
}

var messageExpr = func() jmespath.JMESPath {
	e, err := jmespath.Compile("msg || message")
	if err != nil {
		panic(err)
	}
	return e
}()

func searchOrNil(expr jmespath.JMESPath, doc any) any {
	if doc == nil {
		return nil
	}
	v, err := expr.Search(doc)
	if err != nil {
		return nil
	}
	return v
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func capturedCookies(jar http.CookieJar, u *url.URL) []domainauth.Cookie {
	var out []domainauth.Cookie
	for _, ck := range jar.Cookies(u) {
		out = append(out, domainauth.Cookie{Name: ck.Name, Value: ck.Value})
	}
	return out
}

// tokenExpiry reads the exp claim of a JWT without verifying it. The portal never trusts
// the token's claims for authorization; exp only bounds the session record's lifetime.
func tokenExpiry(token string) time.Time {
	if strings.Count(token, ".") != 2 {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
