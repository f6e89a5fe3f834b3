package httpx

// CurrentPage constants identify the page being rendered; each maps to one content template.
const (
	// Public pages.
	PageHome        = "home"
	PageAbout       = "about"
	PageContact     = "contact"
	PageDepartments = "departments"
	PageDoctors     = "doctors"
	PageLogin       = "login"

	// Pages the guard and error paths answer with.
	PageUnauthorized      = "unauthorized"
	PageNotFound          = "not-found"
	PageRoleNotConfigured = "role-not-configured"

	// Backend-backed views shared by every role dashboard.
	PageList   = "view-list"
	PageDetail = "view-detail"

	// Dashboard forms.
	PageRegistrationForm = "registration-form"
	PageVisitForm        = "visit-form"
	PageTriageForm       = "triage-form"
	PageRecordForm       = "record-form"
	PagePrescriptionForm = "prescription-form"
	PageLabRequestForm   = "lab-request-form"
	PageLabResultForm    = "lab-result-form"
	PageStaffForm        = "staff-form"

	// Hospital administrator overview.
	PageAdminOverview = "admin-overview"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageHome:              "home-content",
	PageAbout:             "about-content",
	PageContact:           "contact-content",
	PageDepartments:       "departments-content",
	PageDoctors:           "doctors-content",
	PageLogin:             "login-content",
	PageUnauthorized:      "unauthorized-content",
	PageNotFound:          "not-found-content",
	PageRoleNotConfigured: "role-not-configured-content",
	PageList:              "view-list-content",
	PageDetail:            "view-detail-content",
	PageRegistrationForm:  "registration-form-content",
	PageVisitForm:         "visit-form-content",
	PageTriageForm:        "triage-form-content",
	PageRecordForm:        "record-form-content",
	PagePrescriptionForm:  "prescription-form-content",
	PageLabRequestForm:    "lab-request-form-content",
	PageLabResultForm:     "lab-result-form-content",
	PageStaffForm:         "staff-form-content",
	PageAdminOverview:     "admin-overview-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to not-found-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "not-found-content"
}
