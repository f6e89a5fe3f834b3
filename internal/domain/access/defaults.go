package access

import "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"

// Landing routes for the configured roles.
const (
	LandingPatient               = "/user"
	LandingHospitalAdministrator = "/hospital-admin/dashboard"
	LandingReceptionist          = "/receptionist/registration"
	LandingDoctor                = "/doctor/assigned-records"
	LandingTriage                = "/triage/unassigned"
	LandingLabTechnician         = "/laboratorist/patientList"
)

// DefaultDescriptors returns the hospital portal's role table.
func DefaultDescriptors() []RoleDescriptor {
	return []RoleDescriptor{
		{
			Role:            auth.RolePatient,
			LandingRoute:    LandingPatient,
			AllowedPrefixes: []string{"/user"},
			Shell:           ShellBottomBar,
			Menu: []NavEntry{
				{Label: "My Health", Path: LandingPatient, Icon: "heart"},
				{Label: "Records", Path: "/user/records", Icon: "file"},
				{Label: "Prescriptions", Path: "/user/prescriptions", Icon: "pill"},
				{Label: "My Doctor", Path: "/user/doctor", Icon: "stethoscope"},
			},
		},
		{
			Role:            auth.RoleHospitalAdministrator,
			LandingRoute:    LandingHospitalAdministrator,
			AllowedPrefixes: []string{"/hospital-admin"},
			Shell:           ShellSidebar,
			Menu: []NavEntry{
				{Label: "Hospital Overview", Path: LandingHospitalAdministrator, Icon: "chart"},
				{
					Label: "Staff Management",
					Path:  "/hospital-admin/staff-management",
					Icon:  "users",
					Children: []NavEntry{
						{Label: "All Staff", Path: "/hospital-admin/staff-management"},
						{Label: "Add New Staff", Path: "/hospital-admin/add-staff"},
					},
				},
			},
		},
		{
			Role:            auth.RoleReceptionist,
			LandingRoute:    LandingReceptionist,
			AllowedPrefixes: []string{"/receptionist"},
			Shell:           ShellSidebar,
			Menu: []NavEntry{
				{Label: "Patient Registration", Path: LandingReceptionist, Icon: "clipboard"},
			},
		},
		{
			Role:            auth.RoleDoctor,
			LandingRoute:    LandingDoctor,
			AllowedPrefixes: []string{"/doctor"},
			Shell:           ShellSidebar,
			Menu: []NavEntry{
				{Label: "Medical Records", Path: LandingDoctor, Icon: "file"},
			},
		},
		{
			Role:            auth.RoleTriage,
			LandingRoute:    LandingTriage,
			AllowedPrefixes: []string{"/triage"},
			Shell:           ShellSidebar,
			Menu: []NavEntry{
				{Label: "Patient Queue", Path: LandingTriage, Icon: "activity"},
			},
		},
		{
			Role:            auth.RoleLabTechnician,
			LandingRoute:    LandingLabTechnician,
			AllowedPrefixes: []string{"/laboratorist"},
			Shell:           ShellSidebar,
			Menu: []NavEntry{
				{Label: "Test Requests", Path: LandingLabTechnician, Icon: "flask"},
			},
		},
	}
}

// DefaultUnconfigured lists roles that can sign in but have no dashboard.
func DefaultUnconfigured() []auth.Role {
	return []auth.Role{auth.RolePharmacist, auth.RoleAdmin}
}

// DefaultRegistry builds the registry from the built-in tables.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultDescriptors(), DefaultUnconfigured())
}

// MustDefaultRegistry is DefaultRegistry for package initialisation and tests.
func MustDefaultRegistry() *Registry {
	r, err := DefaultRegistry()
	if err != nil {
		panic(err)
	}
	return r
}
