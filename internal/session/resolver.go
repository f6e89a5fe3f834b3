package session

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/statsd"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
)

// ResolverOptions groups dependencies for Resolver.
type ResolverOptions struct {
	Records  ports.RecordStore
	Identity ports.IdentityClient
	Store    *Store

	// Wait is how long Resolve blocks on an outstanding probe before reporting Unresolved.
	Wait time.Duration
	// ProbeTimeout bounds a single /auth/me probe. Zero means 15s.
	ProbeTimeout time.Duration

	Metrics statsd.Sink
	Logger  *slog.Logger
	Now     func() time.Time
}

// Resolver turns a client's session cookie into a Session.
//
// A client without a cookie is anonymous and costs no outbound call. Otherwise one
// probe is made per client; concurrent navigations share it, and its result is kept
// in the Store so later navigations do not probe again until the entry expires.
type Resolver struct {
	records  ports.RecordStore
	identity ports.IdentityClient
	store    *Store
	group    singleflight.Group

	wait         time.Duration
	probeTimeout time.Duration

	metrics statsd.Sink
	logger  *slog.Logger
	now     func() time.Time
}

// NewResolver creates a Resolver.
func NewResolver(opts ResolverOptions) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	timeout := opts.ProbeTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Resolver{
		records:      opts.Records,
		identity:     opts.Identity,
		store:        opts.Store,
		wait:         opts.Wait,
		probeTimeout: timeout,
		metrics:      opts.Metrics,
		logger:       logger.With("component", "session_resolver"),
		now:          now,
	}
}

// Store returns the session store the resolver writes to.
func (r *Resolver) Store() *Store { return r.store }

// Resolve returns the client's session. It returns an Unresolved session when the
// probe is still outstanding after the wait budget or when ctx ends first; the probe
// keeps running and its result is served to the next navigation.
func (r *Resolver) Resolve(ctx context.Context, clientID string) domainauth.Session {
	if clientID == "" {
		return domainauth.Anonymous()
	}
	if sess, ok := r.store.Get(clientID); ok {
		return sess
	}

	ch := r.group.DoChan(clientID, func() (any, error) {
		// Another caller may have finished a probe between our cache miss and this call.
		if sess, ok := r.store.Get(clientID); ok {
			return sess, nil
		}
		probeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.probeTimeout)
		defer cancel()
		sess := r.probe(probeCtx, clientID)
		r.store.Set(clientID, sess)
		return sess, nil
	})

	var timer <-chan time.Time
	if r.wait > 0 {
		t := time.NewTimer(r.wait)
		defer t.Stop()
		timer = t.C
	}

	select {
	case res := <-ch:
		sess, _ := res.Val.(domainauth.Session)
		return sess
	case <-timer:
		r.count("session.unresolved", "wait_budget")
		return domainauth.Unresolved()
	case <-ctx.Done():
		r.count("session.unresolved", "canceled")
		return domainauth.Unresolved()
	}
}

// probe performs the single identity check for clientID. Every failure degrades to Anonymous.
func (r *Resolver) probe(ctx context.Context, clientID string) domainauth.Session {
	start := r.now()
	defer func() {
		if r.metrics != nil {
			r.metrics.Timing("session.probe", time.Since(start), nil)
		}
	}()

	rec, err := r.records.Get(ctx, clientID)
	if err != nil {
		r.logger.DebugContext(ctx, "session record unavailable", "error", err)
		r.count("session.resolved", "no_record")
		return domainauth.Anonymous()
	}
	if rec.Expired(r.now()) {
		if delErr := r.records.Delete(ctx, clientID); delErr != nil {
			r.logger.WarnContext(ctx, "delete expired session record failed", "error", delErr)
		}
		r.count("session.resolved", "expired")
		return domainauth.Anonymous()
	}

	principal, err := r.identity.Me(ctx, rec.Credential)
	if err != nil {
		r.logger.DebugContext(ctx, "session probe failed", "error", err)
		r.count("session.resolved", "probe_failed")
		return domainauth.Anonymous()
	}

	role, err := domainauth.ParseRole(principal.Role)
	if err != nil {
		r.logger.DebugContext(ctx, "session probe returned no usable role", "role", principal.Role)
		r.count("session.resolved", "no_role")
		return domainauth.Anonymous()
	}

	r.count("session.resolved", "authenticated")
	return domainauth.Authenticated(principal.Identity, role)
}

func (r *Resolver) count(name, result string) {
	if r.metrics == nil {
		return
	}
	r.metrics.Count(name, 1, map[string]string{"result": result})
}
