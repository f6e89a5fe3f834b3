// Package casbinacl backs the role registry's prefix checks with a Casbin enforcer.
package casbinacl

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/access"
	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

// modelText grants a role a path when a policy names the path exactly or
// a "/prefix/*" wildcard covers it.
//
//go:embed model.conf
var modelText string

// Matcher implements access.PrefixMatcher.
type Matcher struct {
	enforcer *casbin.SyncedEnforcer
	logger   *slog.Logger
}

var _ access.PrefixMatcher = (*Matcher)(nil)

// New builds an enforcer with two policies per allowed prefix of every configured role:
// the prefix itself and everything below it.
func New(reg *access.Registry, logger *slog.Logger) (*Matcher, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}

	for _, d := range reg.Descriptors() {
		for _, prefix := range d.AllowedPrefixes {
			for _, obj := range []string{prefix, prefix + "/*"} {
				if _, err := e.AddPolicy(string(d.Role), obj); err != nil {
					return nil, fmt.Errorf("add policy %s %s: %w", d.Role, obj, err)
				}
			}
		}
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{enforcer: e, logger: logger.With("component", "casbinacl")}, nil
}

// Allowed reports whether role may reach p. Enforcement errors deny.
func (m *Matcher) Allowed(role auth.Role, p string) bool {
	ok, err := m.enforcer.Enforce(string(role), p)
	if err != nil {
		m.logger.Error("casbin enforce failed", "role", role, "path", p, "error", err)
		return false
	}
	return ok
}

// Policies returns the loaded policy rules as (role, object) pairs.
func (m *Matcher) Policies() [][]string {
	rules, _ := m.enforcer.GetPolicy()
	return rules
}
