// Package hospitalapi implements ports.API against the hospital REST backend.
package hospitalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/oauth2"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/metrics"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/statsd"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
	maxBody        = 8 << 20
)

// messageExpr extracts the human-readable message the backend attaches to errors.
const messageExpr = "msg || message || error.message || error"

// Options configures Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
	// Service tags metrics; defaults to "clinical".
	Service string
	Metrics statsd.Sink
	Logger  *slog.Logger
}

// Client performs credential-bearing JSON calls. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	timeout   time.Duration
	transport http.RoundTripper
	service   string
	message   jmespath.JMESPath
	metrics   statsd.Sink
	logger    *slog.Logger
}

var _ ports.API = (*Client)(nil)

// New creates a Client for the API rooted at opts.BaseURL.
func New(opts Options) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("hospitalapi: base URL is required")
	}
	base, err := url.Parse(raw)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("hospitalapi: invalid base URL %q", opts.BaseURL)
	}

	msg, err := jmespath.Compile(messageExpr)
	if err != nil {
		return nil, fmt.Errorf("hospitalapi: compile message expression: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	service := opts.Service
	if service == "" {
		service = "clinical"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:      base,
		timeout:   timeout,
		transport: transport,
		service:   service,
		message:   msg,
		metrics:   opts.Metrics,
		logger:    logger.With("component", "hospitalapi", "service", service),
	}, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.base.String() }

// HTTPClient returns an http.Client that attaches cred to every request: the token as a
// bearer Authorization header, cookies as Cookie headers.
func (c *Client) HTTPClient(cred domainauth.Credential) *http.Client {
	var rt http.RoundTripper = &cookieTransport{cookies: cred.Cookies, base: c.transport}
	if cred.Token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cred.Token, TokenType: "Bearer"}),
			Base:   rt,
		}
	}
	return &http.Client{Transport: rt, Timeout: c.timeout}
}

// Resolve returns the absolute URL for path and query.
func (c *Client) Resolve(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Call performs req with cred and decodes the JSON response into out (when non-nil).
// Non-2xx answers are mapped to typed application errors carrying the backend's message.
func (c *Client) Call(ctx context.Context, cred domainauth.Credential, req ports.APIRequest, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	start := time.Now()
	status, err := c.do(ctx, cred, method, req, out)
	metrics.EmitUpstreamCall(c.metrics, metrics.UpstreamCall{
		Service:  c.service,
		Method:   method,
		Status:   status,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		c.logger.DebugContext(ctx, "backend call failed",
			"method", method, "path", req.Path, "status", status, "error", err)
	}
	return err
}

func (c *Client) do(ctx context.Context, cred domainauth.Credential, method string, req ports.APIRequest, out any) (int, error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return 0, apperrors.Wrap(err, apperrors.ErrCodeValidation, "encode request body")
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.Resolve(req.Path, req.Query), body)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient(cred).Do(httpReq)
	if err != nil {
		return 0, apperrors.MapTransportError(err)
	}
	defer resp.Body.Close()

	if err := c.CheckResponse(resp); err != nil {
		return resp.StatusCode, err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return resp.StatusCode, nil
		}
		return resp.StatusCode, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "The hospital service returned a malformed response.")
	}
	return resp.StatusCode, nil
}

// CheckResponse maps a non-2xx response to a typed application error carrying the
// backend's message. It consumes the body only on error.
func (c *Client) CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return apperrors.MapStatus(resp.StatusCode, c.backendMessage(raw))
}

// Service returns the metrics service tag.
func (c *Client) Service() string { return c.service }

// Metrics returns the configured sink, which may be nil.
func (c *Client) Metrics() statsd.Sink { return c.metrics }

// backendMessage pulls the error message out of a JSON error body, or returns a short
// plain-text body as-is.
func (c *Client) backendMessage(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		if len(raw) <= 200 && !bytes.HasPrefix(raw, []byte("<")) {
			return string(raw)
		}
		return ""
	}
	v, err := c.message.Search(doc)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// cookieTransport adds captured backend cookies to each request.
type cookieTransport struct {
	cookies []domainauth.Cookie
	base    http.RoundTripper
}

func (t *cookieTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.cookies) == 0 {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	for _, ck := range t.cookies {
		r.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	return t.base.RoundTrip(r)
}
