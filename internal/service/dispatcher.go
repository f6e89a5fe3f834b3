package service

import (
	"errors"
	"fmt"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/access"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

// ErrNoShell is returned when the session has no role to build a shell for.
var ErrNoShell = errors.New("session is not authenticated")

// MenuItem is a rendered navigation entry.
type MenuItem struct {
	Label    string
	Path     string
	Icon     string
	Active   bool
	Children []MenuItem
}

// Shell is the persistent navigation chrome around a role's dashboard views.
type Shell struct {
	Kind      access.ShellKind
	Role      domainauth.Role
	RoleLabel string
	User      string
	Landing   string
	Menu      []MenuItem
}

// Sidebar reports whether the shell renders as a sidebar.
func (s Shell) Sidebar() bool { return s.Kind == access.ShellSidebar }

// DispatcherOptions groups dependencies for Dispatcher.
type DispatcherOptions struct {
	Registry *access.Registry
}

// Dispatcher builds the role shell for authenticated sessions.
type Dispatcher struct {
	registry *access.Registry
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	if opts.Registry == nil {
		panic("Dispatcher requires a Registry")
	}
	return &Dispatcher{registry: opts.Registry}
}

// Shell returns the shell for sess with the entry matching currentPath marked active.
// Roles without a dashboard yield an error wrapping access.ErrRoleNotConfigured.
func (d *Dispatcher) Shell(sess domainauth.Session, currentPath string) (Shell, error) {
	if !sess.IsAuthenticated() {
		return Shell{}, ErrNoShell
	}
	desc, err := d.registry.DescriptorFor(sess.Role)
	if err != nil {
		return Shell{}, fmt.Errorf("build shell: %w", err)
	}

	current := access.CleanPath(currentPath)
	active := longestMatch(desc.Menu, current)

	return Shell{
		Kind:      desc.Shell,
		Role:      desc.Role,
		RoleLabel: desc.Role.Label(),
		User:      sess.Identity.DisplayName(),
		Landing:   desc.LandingRoute,
		Menu:      buildMenu(desc.Menu, active),
	}, nil
}

// Landing returns the landing route of sess's role, or "" when there is none.
func (d *Dispatcher) Landing(sess domainauth.Session) string {
	if !sess.IsAuthenticated() {
		return ""
	}
	desc, err := d.registry.DescriptorFor(sess.Role)
	if err != nil {
		return ""
	}
	return desc.LandingRoute
}

// longestMatch returns the path of the menu entry that most specifically covers current.
func longestMatch(entries []access.NavEntry, current string) string {
	best := ""
	var walk func([]access.NavEntry)
	walk = func(es []access.NavEntry) {
		for _, e := range es {
			if access.UnderPrefix(current, e.Path) && len(e.Path) > len(best) {
				best = e.Path
			}
			walk(e.Children)
		}
	}
	walk(entries)
	return best
}

// buildMenu copies entries, marking those on active and any parent of an active child.
func buildMenu(entries []access.NavEntry, active string) []MenuItem {
	if len(entries) == 0 {
		return nil
	}
	out := make([]MenuItem, 0, len(entries))
	for _, e := range entries {
		item := MenuItem{
			Label:    e.Label,
			Path:     e.Path,
			Icon:     e.Icon,
			Active:   active != "" && e.Path == active,
			Children: buildMenu(e.Children, active),
		}
		for _, c := range item.Children {
			if c.Active {
				item.Active = true
			}
		}
		out = append(out, item)
	}
	return out
}
