// Package viewmodel holds the typed data shared by every rendered page.
package viewmodel

import "github.com/maf-y/ArardaHospital-Frontend/internal/service"

// User represents the authenticated user context exposed to templates.
type User struct {
	ID        string
	Name      string
	Role      string
	RoleLabel string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
// Shell is nil on public pages and for roles without a dashboard.
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
	Shell           *service.Shell
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
