package access

import (
	"errors"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

// Outcome is the guard's verdict for a navigation.
type Outcome uint8

const (
	// Allow renders the requested view.
	Allow Outcome = iota
	// Placeholder renders the neutral loading view while the session is unresolved.
	Placeholder
	// RedirectLanding sends an authenticated user to their role's landing route.
	RedirectLanding
	// RedirectPublic sends an anonymous user to the public home page.
	RedirectPublic
	// RedirectUnauthorized sends a user to the unauthorized page.
	RedirectUnauthorized
	// NotFound renders the not-found view.
	NotFound
	// RoleNotConfigured renders the explicit "no dashboard for this role" view.
	RoleNotConfigured
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Placeholder:
		return "placeholder"
	case RedirectLanding:
		return "redirect_landing"
	case RedirectPublic:
		return "redirect_public"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	case NotFound:
		return "not_found"
	case RoleNotConfigured:
		return "role_not_configured"
	default:
		return "unknown"
	}
}

// IsRedirect reports whether the outcome carries a Location.
func (o Outcome) IsRedirect() bool {
	return o == RedirectLanding || o == RedirectPublic || o == RedirectUnauthorized
}

// NavigationRequest is a single navigation to decide on.
type NavigationRequest struct {
	TargetPath string
	Session    auth.Session
}

// Decision is the guard's answer. Location is set for redirects.
type Decision struct {
	Outcome  Outcome
	Location string
	Kind     RouteKind
	Role     auth.Role
}

// Guard decides every navigation against the route table and registry.
type Guard struct {
	registry *Registry
	routes   *Routes
}

// NewGuard builds a guard. A nil routes table uses DefaultRoutes(reg).
func NewGuard(reg *Registry, routes *Routes) *Guard {
	if routes == nil {
		routes = DefaultRoutes(reg)
	}
	return &Guard{registry: reg, routes: routes}
}

// Registry returns the registry the guard consults.
func (g *Guard) Registry() *Registry { return g.registry }

// Routes returns the route table the guard consults.
func (g *Guard) Routes() *Routes { return g.routes }

// Decide evaluates req. Evaluation order:
//  1. an unresolved session gets the placeholder, whatever the path
//  2. unknown paths are not found for every resolved session
//  3. shared paths are allowed
//  4. public paths are allowed for anonymous users, otherwise redirect to landing
//  5. protected paths redirect anonymous users to the public home
//  6. protected paths are allowed when the role's prefixes cover them, otherwise unauthorized
func (g *Guard) Decide(req NavigationRequest) Decision {
	p := CleanPath(req.TargetPath)
	kind := g.routes.Classify(p)
	sess := req.Session
	d := Decision{Kind: kind, Role: sess.Role}

	if !sess.IsResolved() {
		d.Outcome = Placeholder
		return d
	}
	if kind == RouteUnknown {
		d.Outcome = NotFound
		return d
	}

	switch kind {
	case RouteShared:
		d.Outcome = Allow
		return d

	case RoutePublic:
		if !sess.IsAuthenticated() {
			d.Outcome = Allow
			return d
		}
		return g.toLanding(d, sess.Role)

	case RouteProtected:
		if !sess.IsAuthenticated() {
			d.Outcome = RedirectPublic
			d.Location = PathHome
			return d
		}
		if !g.registry.Configured(sess.Role) {
			d.Outcome = RoleNotConfigured
			return d
		}
		if g.registry.Allows(sess.Role, p) {
			d.Outcome = Allow
			return d
		}
		d.Outcome = RedirectUnauthorized
		d.Location = PathUnauthorized
		return d
	}

	d.Outcome = NotFound
	return d
}

func (g *Guard) toLanding(d Decision, role auth.Role) Decision {
	desc, err := g.registry.DescriptorFor(role)
	if err != nil {
		if errors.Is(err, ErrRoleNotConfigured) {
			d.Outcome = RoleNotConfigured
			return d
		}
		// Roles outside the set never reach here; Authenticated() rejects them.
		d.Outcome = RedirectPublic
		d.Location = PathHome
		return d
	}
	d.Outcome = RedirectLanding
	d.Location = desc.LandingRoute
	return d
}

// LandingFor returns the landing route for an authenticated session, or "" when
// the role has no dashboard.
func (g *Guard) LandingFor(sess auth.Session) string {
	if !sess.IsAuthenticated() {
		return ""
	}
	desc, err := g.registry.DescriptorFor(sess.Role)
	if err != nil {
		return ""
	}
	return desc.LandingRoute
}
