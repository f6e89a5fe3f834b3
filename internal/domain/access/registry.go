// Package access holds the role registry, route classification, and the
// navigation guard. Everything here is pure and deterministic.
package access

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

// ErrRoleNotConfigured is returned for roles that exist in the role set but have
// no landing route, prefixes, or menu.
var ErrRoleNotConfigured = errors.New("role not configured")

// ErrUnknownRole is returned for values outside the role set.
var ErrUnknownRole = errors.New("unknown role")

// ShellKind selects the persistent navigation chrome for a role.
type ShellKind string

const (
	ShellSidebar   ShellKind = "sidebar"
	ShellBottomBar ShellKind = "bottombar"
)

// NavEntry is one item of a role's menu.
type NavEntry struct {
	Label    string
	Path     string
	Icon     string
	Children []NavEntry
}

// RoleDescriptor is the static configuration for one role.
type RoleDescriptor struct {
	Role            auth.Role
	LandingRoute    string
	AllowedPrefixes []string
	Shell           ShellKind
	Menu            []NavEntry
}

// PrefixMatcher decides whether a role may reach a path.
type PrefixMatcher interface {
	Allowed(role auth.Role, p string) bool
}

// Registry maps every role to its descriptor or marks it as not configured.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	order        []auth.Role
	descriptors  map[auth.Role]RoleDescriptor
	unconfigured map[auth.Role]struct{}
	matcher      PrefixMatcher
}

// NewRegistry validates the descriptors and builds a registry.
// Every role of auth.AllRoles must be described exactly once or listed as
// unconfigured; anything else is an error.
func NewRegistry(descs []RoleDescriptor, unconfigured []auth.Role) (*Registry, error) {
	r := &Registry{
		descriptors:  make(map[auth.Role]RoleDescriptor, len(descs)),
		unconfigured: make(map[auth.Role]struct{}, len(unconfigured)),
	}

	var errs []error
	for _, d := range descs {
		if !d.Role.Valid() {
			errs = append(errs, fmt.Errorf("descriptor for %q: %w", d.Role, ErrUnknownRole))
			continue
		}
		if _, dup := r.descriptors[d.Role]; dup {
			errs = append(errs, fmt.Errorf("role %s described more than once", d.Role))
			continue
		}
		if err := validateDescriptor(d); err != nil {
			errs = append(errs, err)
			continue
		}
		r.descriptors[d.Role] = cloneDescriptor(d)
		r.order = append(r.order, d.Role)
	}

	for _, role := range unconfigured {
		if !role.Valid() {
			errs = append(errs, fmt.Errorf("unconfigured entry %q: %w", role, ErrUnknownRole))
			continue
		}
		if _, described := r.descriptors[role]; described {
			errs = append(errs, fmt.Errorf("role %s is both described and unconfigured", role))
			continue
		}
		r.unconfigured[role] = struct{}{}
	}

	for _, role := range auth.AllRoles() {
		_, described := r.descriptors[role]
		_, skipped := r.unconfigured[role]
		if !described && !skipped {
			errs = append(errs, fmt.Errorf("role %s has no descriptor", role))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid role registry: %w", errors.Join(errs...))
	}

	r.matcher = segmentMatcher{registry: r}
	return r, nil
}

func validateDescriptor(d RoleDescriptor) error {
	if len(d.AllowedPrefixes) == 0 {
		return fmt.Errorf("role %s: no allowed prefixes", d.Role)
	}
	for _, p := range d.AllowedPrefixes {
		if !strings.HasPrefix(p, "/") || p == "/" || strings.HasSuffix(p, "/") {
			return fmt.Errorf("role %s: invalid prefix %q", d.Role, p)
		}
	}
	if !strings.HasPrefix(d.LandingRoute, "/") {
		return fmt.Errorf("role %s: invalid landing route %q", d.Role, d.LandingRoute)
	}
	if !underAny(d.LandingRoute, d.AllowedPrefixes) {
		return fmt.Errorf("role %s: landing route %q is outside its allowed prefixes", d.Role, d.LandingRoute)
	}
	switch d.Shell {
	case ShellSidebar, ShellBottomBar:
	default:
		return fmt.Errorf("role %s: unknown shell %q", d.Role, d.Shell)
	}
	if len(d.Menu) == 0 {
		return fmt.Errorf("role %s: empty menu", d.Role)
	}
	for _, e := range flatten(d.Menu) {
		if !underAny(e.Path, d.AllowedPrefixes) {
			return fmt.Errorf("role %s: menu entry %q points outside its allowed prefixes", d.Role, e.Path)
		}
	}
	return nil
}

// WithMatcher returns a copy of the registry that delegates prefix checks to m.
func (r *Registry) WithMatcher(m PrefixMatcher) *Registry {
	cp := *r
	if m == nil {
		m = segmentMatcher{registry: &cp}
	}
	cp.matcher = m
	return &cp
}

// DescriptorFor returns the descriptor for role. Roles that are declared but not
// configured yield ErrRoleNotConfigured; values outside the role set yield ErrUnknownRole.
func (r *Registry) DescriptorFor(role auth.Role) (RoleDescriptor, error) {
	if d, ok := r.descriptors[role]; ok {
		return cloneDescriptor(d), nil
	}
	if _, ok := r.unconfigured[role]; ok {
		return RoleDescriptor{}, fmt.Errorf("%s: %w", role, ErrRoleNotConfigured)
	}
	return RoleDescriptor{}, fmt.Errorf("%q: %w", role, ErrUnknownRole)
}

// Descriptors returns the configured descriptors in registration order.
func (r *Registry) Descriptors() []RoleDescriptor {
	out := make([]RoleDescriptor, 0, len(r.order))
	for _, role := range r.order {
		out = append(out, cloneDescriptor(r.descriptors[role]))
	}
	return out
}

// Unconfigured returns roles that are declared but have no descriptor.
func (r *Registry) Unconfigured() []auth.Role {
	out := make([]auth.Role, 0, len(r.unconfigured))
	for _, role := range auth.AllRoles() {
		if _, ok := r.unconfigured[role]; ok {
			out = append(out, role)
		}
	}
	return out
}

// Configured reports whether role has a descriptor.
func (r *Registry) Configured(role auth.Role) bool {
	_, ok := r.descriptors[role]
	return ok
}

// Allows reports whether role may reach p.
func (r *Registry) Allows(role auth.Role, p string) bool {
	if !r.Configured(role) {
		return false
	}
	return r.matcher.Allowed(role, CleanPath(p))
}

// Protected reports whether p falls under any configured role's prefixes.
func (r *Registry) Protected(p string) bool {
	p = CleanPath(p)
	for _, role := range r.order {
		if underAny(p, r.descriptors[role].AllowedPrefixes) {
			return true
		}
	}
	return false
}

// AreaRoot returns the descriptor whose prefix equals p exactly.
func (r *Registry) AreaRoot(p string) (RoleDescriptor, bool) {
	p = CleanPath(p)
	for _, role := range r.order {
		d := r.descriptors[role]
		for _, prefix := range d.AllowedPrefixes {
			if prefix == p {
				return cloneDescriptor(d), true
			}
		}
	}
	return RoleDescriptor{}, false
}

// segmentMatcher matches whole path segments: "/doctor" covers "/doctor" and
// "/doctor/x" but not "/doctors".
type segmentMatcher struct {
	registry *Registry
}

func (m segmentMatcher) Allowed(role auth.Role, p string) bool {
	d, ok := m.registry.descriptors[role]
	if !ok {
		return false
	}
	return underAny(p, d.AllowedPrefixes)
}

// SegmentMatcher returns the built-in segment-aware matcher for r.
func SegmentMatcher(r *Registry) PrefixMatcher {
	return segmentMatcher{registry: r}
}

// UnderPrefix reports whether p equals prefix or lies below it.
func UnderPrefix(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func underAny(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if UnderPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// CleanPath normalises a request path: leading slash, no trailing slash, no dot segments.
func CleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func flatten(entries []NavEntry) []NavEntry {
	out := make([]NavEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
		out = append(out, flatten(e.Children)...)
	}
	return out
}

func cloneDescriptor(d RoleDescriptor) RoleDescriptor {
	cp := d
	cp.AllowedPrefixes = append([]string(nil), d.AllowedPrefixes...)
	cp.Menu = cloneMenu(d.Menu)
	return cp
}

func cloneMenu(entries []NavEntry) []NavEntry {
	if entries == nil {
		return nil
	}
	out := make([]NavEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		out[i].Children = cloneMenu(e.Children)
	}
	return out
}
