package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

func TestDefaultRegistry_IsTotal(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	for _, role := range auth.AllRoles() {
		d, err := reg.DescriptorFor(role)
		if reg.Configured(role) {
			require.NoError(t, err, "role %s", role)
			assert.Equal(t, role, d.Role)
			assert.NotEmpty(t, d.LandingRoute)
			assert.True(t, reg.Allows(role, d.LandingRoute), "landing of %s must be reachable", role)
			continue
		}
		assert.ErrorIs(t, err, ErrRoleNotConfigured, "role %s", role)
	}

	assert.ElementsMatch(t, []auth.Role{auth.RolePharmacist, auth.RoleAdmin}, reg.Unconfigured())
	assert.Len(t, reg.Descriptors(), 6)
}

func TestDescriptorFor_LandingRoutes(t *testing.T) {
	reg := MustDefaultRegistry()
	want := map[auth.Role]string{
		auth.RolePatient:               "/user",
		auth.RoleHospitalAdministrator: "/hospital-admin/dashboard",
		auth.RoleReceptionist:          "/receptionist/registration",
		auth.RoleDoctor:                "/doctor/assigned-records",
		auth.RoleTriage:                "/triage/unassigned",
		auth.RoleLabTechnician:         "/laboratorist/patientList",
	}
	for role, landing := range want {
		d, err := reg.DescriptorFor(role)
		require.NoError(t, err)
		assert.Equal(t, landing, d.LandingRoute, "role %s", role)
	}
}

func TestDescriptorFor_IsDeterministicAndIsolated(t *testing.T) {
	reg := MustDefaultRegistry()
	a, err := reg.DescriptorFor(auth.RoleHospitalAdministrator)
	require.NoError(t, err)
	a.AllowedPrefixes[0] = "/mutated"
	a.Menu[1].Children[0].Path = "/mutated"

	b, err := reg.DescriptorFor(auth.RoleHospitalAdministrator)
	require.NoError(t, err)
	assert.Equal(t, []string{"/hospital-admin"}, b.AllowedPrefixes)
	assert.Equal(t, "/hospital-admin/staff-management", b.Menu[1].Children[0].Path)
}

func TestDescriptorFor_UnknownRole(t *testing.T) {
	_, err := MustDefaultRegistry().DescriptorFor("Janitor")
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.False(t, errors.Is(err, ErrRoleNotConfigured))
}

func TestNewRegistry_RejectsIncompleteTables(t *testing.T) {
	descs := DefaultDescriptors()

	tests := []struct {
		name         string
		descs        []RoleDescriptor
		unconfigured []auth.Role
		wantErr      string
	}{
		{
			name:         "missing role",
			descs:        descs[1:],
			unconfigured: DefaultUnconfigured(),
			wantErr:      "role Patient has no descriptor",
		},
		{
			name:         "duplicate descriptor",
			descs:        append(append([]RoleDescriptor{}, descs...), descs[0]),
			unconfigured: DefaultUnconfigured(),
			wantErr:      "described more than once",
		},
		{
			name:         "described and unconfigured",
			descs:        descs,
			unconfigured: []auth.Role{auth.RolePharmacist, auth.RoleAdmin, auth.RoleDoctor},
			wantErr:      "both described and unconfigured",
		},
		{
			name: "landing outside prefixes",
			descs: func() []RoleDescriptor {
				cp := DefaultDescriptors()
				cp[3].LandingRoute = "/triage/unassigned"
				return cp
			}(),
			unconfigured: DefaultUnconfigured(),
			wantErr:      "outside its allowed prefixes",
		},
		{
			name: "root prefix",
			descs: func() []RoleDescriptor {
				cp := DefaultDescriptors()
				cp[0].AllowedPrefixes = []string{"/"}
				return cp
			}(),
			unconfigured: DefaultUnconfigured(),
			wantErr:      "invalid prefix",
		},
		{
			name: "menu entry outside prefixes",
			descs: func() []RoleDescriptor {
				cp := DefaultDescriptors()
				cp[2].Menu = append(cp[2].Menu, NavEntry{Label: "Lab", Path: "/laboratorist/patientList"})
				return cp
			}(),
			unconfigured: DefaultUnconfigured(),
			wantErr:      "points outside",
		},
		{
			name:         "unknown unconfigured role",
			descs:        descs,
			unconfigured: []auth.Role{auth.RolePharmacist, auth.RoleAdmin, "Janitor"},
			wantErr:      "unknown role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.descs, tt.unconfigured)
			require.Error(t, err)
			assert.Nil(t, reg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegistry_Allows_IsSegmentAware(t *testing.T) {
	reg := MustDefaultRegistry()

	assert.True(t, reg.Allows(auth.RoleDoctor, "/doctor"))
	assert.True(t, reg.Allows(auth.RoleDoctor, "/doctor/records/42"))
	assert.True(t, reg.Allows(auth.RoleDoctor, "/doctor/records/42/"))
	assert.False(t, reg.Allows(auth.RoleDoctor, "/doctors"))
	assert.False(t, reg.Allows(auth.RoleDoctor, "/doctor/../triage/unassigned"))
	assert.False(t, reg.Allows(auth.RolePharmacist, "/doctor"))
}

type denyAll struct{}

func (denyAll) Allowed(auth.Role, string) bool { return false }

func TestRegistry_WithMatcher(t *testing.T) {
	reg := MustDefaultRegistry()
	denied := reg.WithMatcher(denyAll{})

	assert.False(t, denied.Allows(auth.RoleDoctor, "/doctor/assigned-records"))
	assert.True(t, reg.Allows(auth.RoleDoctor, "/doctor/assigned-records"), "original registry is untouched")
	assert.True(t, reg.WithMatcher(nil).Allows(auth.RoleDoctor, "/doctor"))
}

func TestRegistry_AreaRoot(t *testing.T) {
	reg := MustDefaultRegistry()

	d, ok := reg.AreaRoot("/triage/")
	require.True(t, ok)
	assert.Equal(t, auth.RoleTriage, d.Role)

	_, ok = reg.AreaRoot("/triage/unassigned")
	assert.False(t, ok)
}

func TestCleanPath(t *testing.T) {
	cases := map[string]string{
		"":                  "/",
		"doctor":            "/doctor",
		"/doctor/":          "/doctor",
		"/a/./b/../c":       "/a/c",
		"/hospital-admin//": "/hospital-admin",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanPath(in), "input %q", in)
	}
}
