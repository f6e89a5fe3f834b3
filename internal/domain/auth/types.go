package auth

// Package auth contains domain-level types for roles and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"strings"
	"time"
)

// Role is the authorization role the identity collaborator reports for a user.
// The string form is the exact wire form.
type Role string

const (
	RolePatient               Role = "Patient"
	RoleHospitalAdministrator Role = "HospitalAdministrator"
	RoleReceptionist          Role = "Receptionist"
	RoleDoctor                Role = "Doctor"
	RoleTriage                Role = "Triage"
	RoleLabTechnician         Role = "LabTechnician"
	RolePharmacist            Role = "Pharmacist"
	RoleAdmin                 Role = "Admin"
)

var allRoles = []Role{
	RolePatient,
	RoleHospitalAdministrator,
	RoleReceptionist,
	RoleDoctor,
	RoleTriage,
	RoleLabTechnician,
	RolePharmacist,
	RoleAdmin,
}

var roleLabels = map[Role]string{
	RolePatient:               "Patient",
	RoleHospitalAdministrator: "Hospital Administrator",
	RoleReceptionist:          "Receptionist",
	RoleDoctor:                "Doctor",
	RoleTriage:                "Triage",
	RoleLabTechnician:         "Lab Technician",
	RolePharmacist:            "Pharmacist",
	RoleAdmin:                 "Admin",
}

// AllRoles returns every role in the closed set, in declaration order.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole converts a wire value into a Role. Surrounding whitespace is ignored;
// anything else must match exactly.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns a human-readable name for display.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// State is the resolution state of a client's session.
type State uint8

const (
	// StateUnresolved means the session probe has not completed. It is the zero value.
	StateUnresolved State = iota
	// StateAuthenticated means the probe (or a login) produced a role.
	StateAuthenticated
	// StateAnonymous means there is no usable session.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unresolved"
	}
}

// Identity is the opaque user reference reported by the identity collaborator.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// DisplayName prefers the name, then the e-mail address, then the id.
func (i Identity) DisplayName() string {
	switch {
	case strings.TrimSpace(i.Name) != "":
		return strings.TrimSpace(i.Name)
	case i.Email != "":
		return i.Email
	default:
		return i.UserID
	}
}

// Session is the client's current view of who they are.
// Build values with Unresolved, Anonymous, or Authenticated so that
// an authenticated session always carries a role.
type Session struct {
	State    State
	Identity Identity
	Role     Role
}

// Unresolved returns the initial session value.
func Unresolved() Session { return Session{State: StateUnresolved} }

// Anonymous returns a session with no identity.
func Anonymous() Session { return Session{State: StateAnonymous} }

// Authenticated returns an authenticated session. A missing or unknown role yields Anonymous.
func Authenticated(id Identity, role Role) Session {
	if !role.Valid() {
		return Anonymous()
	}
	return Session{State: StateAuthenticated, Identity: id, Role: role}
}

// IsAuthenticated reports whether the session carries a role.
func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.Role != ""
}

// IsAnonymous reports whether the session is resolved without an identity.
func (s Session) IsAnonymous() bool { return s.State == StateAnonymous }

// IsResolved reports whether the probe has completed.
func (s Session) IsResolved() bool { return s.State != StateUnresolved }

// Cookie is a backend-issued cookie kept on behalf of the client.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Credential is whatever the identity collaborator issued at login.
// Either field may be empty; both may be set.
type Credential struct {
	Token   string   `json:"token,omitempty"`
	Cookies []Cookie `json:"cookies,omitempty"`
}

// Empty reports whether the credential carries nothing to present.
func (c Credential) Empty() bool { return c.Token == "" && len(c.Cookies) == 0 }

// Record is the server-side entry keyed by the browser's session cookie.
// The role stored here is informational; authorization always uses a fresh probe.
type Record struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id,omitempty"`
	Role       Role       `json:"role,omitempty"`
	Credential Credential `json:"credential"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// Expired reports whether the record is past its expiry at now.
func (r Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}
