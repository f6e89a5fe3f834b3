package access

// RouteKind classifies a navigation target.
type RouteKind uint8

const (
	// RouteUnknown is any path outside the route table.
	RouteUnknown RouteKind = iota
	// RoutePublic is reachable only while anonymous.
	RoutePublic
	// RouteShared is reachable by any resolved session.
	RouteShared
	// RouteProtected lies under some configured role's prefix.
	RouteProtected
)

func (k RouteKind) String() string {
	switch k {
	case RoutePublic:
		return "public"
	case RouteShared:
		return "shared"
	case RouteProtected:
		return "protected"
	default:
		return "unknown"
	}
}

// Well-known paths.
const (
	PathHome         = "/"
	PathLogin        = "/login"
	PathUnauthorized = "/unauthorized"
	PathAuthStatus   = "/auth/status"
)

// DefaultPublicRoutes are the anonymous-only pages.
func DefaultPublicRoutes() []string {
	return []string{PathHome, "/about", "/contact", "/department", "/showDoctor", PathLogin}
}

// DefaultSharedRoutes are pages any resolved session may open.
func DefaultSharedRoutes() []string {
	return []string{PathUnauthorized, PathAuthStatus}
}

// Routes is the route table consulted by the guard.
type Routes struct {
	public   map[string]struct{}
	shared   map[string]struct{}
	registry *Registry
}

// NewRoutes builds a route table from exact public and shared paths plus the
// registry's protected prefixes.
func NewRoutes(reg *Registry, public, shared []string) *Routes {
	rt := &Routes{
		public:   make(map[string]struct{}, len(public)),
		shared:   make(map[string]struct{}, len(shared)),
		registry: reg,
	}
	for _, p := range public {
		rt.public[CleanPath(p)] = struct{}{}
	}
	for _, p := range shared {
		rt.shared[CleanPath(p)] = struct{}{}
	}
	return rt
}

// DefaultRoutes returns the portal's route table over reg.
func DefaultRoutes(reg *Registry) *Routes {
	return NewRoutes(reg, DefaultPublicRoutes(), DefaultSharedRoutes())
}

// Classify returns the kind of p.
func (rt *Routes) Classify(p string) RouteKind {
	p = CleanPath(p)
	if _, ok := rt.public[p]; ok {
		return RoutePublic
	}
	if _, ok := rt.shared[p]; ok {
		return RouteShared
	}
	if rt.registry != nil && rt.registry.Protected(p) {
		return RouteProtected
	}
	return RouteUnknown
}

// Public returns the public paths.
func (rt *Routes) Public() []string { return keys(rt.public) }

// Shared returns the shared paths.
func (rt *Routes) Shared() []string { return keys(rt.shared) }

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
