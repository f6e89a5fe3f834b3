package httpx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	arada "github.com/maf-y/ArardaHospital-Frontend"
	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/access"
	"github.com/maf-y/ArardaHospital-Frontend/internal/fetch"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/statsd"
	"github.com/maf-y/ArardaHospital-Frontend/internal/service"
)

const staticDirFromRoot = "frontend/static"

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Resolver  SessionResolver
	Guard     *access.Guard
	Auth      AuthService
	Shells    ShellBuilder
	Views     ViewsService
	Clinical  ClinicalService
	Directory DirectoryService
	// Fetches supersedes in-flight view loads. Optional.
	Fetches *fetch.Tracker
	// Metrics receives guard decision counters. Optional.
	Metrics statsd.Sink
	Cookie  SessionCookieConfig
	// PlaceholderRefresh is how soon the session placeholder asks again. Zero means one second.
	PlaceholderRefresh time.Duration
	// HealthChecks are reported by /healthz. Optional.
	HealthChecks map[string]HealthCheck
	// CompressionLevel enables gzip when in 1..9.
	CompressionLevel int
	IsDev            bool // Serve templates and static files from disk
	Logger           *slog.Logger
}

// NewRouter creates the portal's HTTP handler. Static assets and the health check are
// served directly; every other request resolves the session and passes the route guard
// before reaching its page.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Resolver == nil || services.Guard == nil || services.Auth == nil {
		return nil, errors.New("router requires a session resolver, route guard and auth service")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ui, staticFS, err := setupUIHandlers(services, logger)
	if err != nil {
		return nil, err
	}

	pages := http.NewServeMux()
	registerPublicRoutes(pages, ui)
	registerAuthRoutes(pages, ui)
	registerDashboardRoutes(pages, ui, services.Guard.Registry())
	pages.HandleFunc("/", ui.NotFound)

	app := chain(pages,
		ResolveSession(SessionConfig{Resolver: services.Resolver, Cookie: services.Cookie, Logger: logger}),
		CSRFProtection(CSRFConfig{
			CookieDomain: services.Cookie.Domain,
			Secure:       services.Cookie.Secure,
			OnFailure:    http.HandlerFunc(ui.CSRFFailed),
		}),
		GuardRoutes(GuardConfig{
			Guard:   services.Guard,
			Pages:   ui,
			Metrics: services.Metrics,
			Logger:  logger,
		}),
	)

	root := http.NewServeMux()
	root.Handle("GET /static/", staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))
	health := healthHandler(services.HealthChecks)
	root.HandleFunc("GET /healthz", health)
	root.HandleFunc("HEAD /healthz", health)
	root.Handle("/", app)

	mws := []func(http.Handler) http.Handler{Recover(logger), Logging(logger)}
	if services.CompressionLevel > 0 {
		mws = append(mws, Compression(CompressionConfig{Level: services.CompressionLevel, MinSize: 1024, Logger: logger}))
	}
	return chain(root, mws...), nil
}

// chain wraps h so the first middleware is outermost.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// setupUIHandlers builds the template renderer and UI handlers. Dev mode reads
// templates and static files from disk so edits show up without a rebuild.
func setupUIHandlers(services RouterServices, logger *slog.Logger) (*UIHandlers, fs.FS, error) {
	var (
		templateFS fs.FS
		staticFS   fs.FS
		resolver   *AssetResolver
	)

	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
		staticFS = os.DirFS(staticDirFromRoot)
		var err error
		if resolver, err = NewAssetResolverFromDisk(staticDirFromRoot); err != nil {
			logger.Warn("asset fingerprinting disabled", "dir", staticDirFromRoot, "error", err)
		}
	} else {
		var err error
		if templateFS, err = fs.Sub(arada.TemplateFS, TemplatePathFromRoot); err != nil {
			return nil, nil, fmt.Errorf("embedded templates: %w", err)
		}
		if staticFS, err = fs.Sub(arada.StaticFS, staticDirFromRoot); err != nil {
			return nil, nil, fmt.Errorf("embedded static files: %w", err)
		}
		resolver = NewAssetResolverFromFS(staticFS)
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Resolver:   resolver,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("parse templates: %w", err)
	}

	return &UIHandlers{
		T:         tr,
		Auth:      services.Auth,
		Shells:    services.Shells,
		Views:     services.Views,
		Clinical:  services.Clinical,
		Directory: services.Directory,
		Fetches:   services.Fetches,
		Cookie:    services.Cookie,
		IsDev:     services.IsDev,
		Logger:    logger,

		PlaceholderRefresh: services.PlaceholderRefresh,
	}, staticFS, nil
}

// staticWithCacheHeaders caches fingerprinted asset URLs for a year and asks clients
// to revalidate everything else.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "" {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		handler.ServeHTTP(w, r)
	})
}

func registerPublicRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /about", h.About)
	mux.HandleFunc("GET /contact", h.Contact)
	mux.HandleFunc("GET /department", h.Departments)
	mux.HandleFunc("GET /showDoctor", h.Doctors)
	mux.HandleFunc("GET /unauthorized", h.Unauthorized)
}

func registerAuthRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.AuthStatus)
}

// registerDashboardRoutes wires every role's pages plus the bare area prefixes, which
// redirect to the signed-in role's landing route.
func registerDashboardRoutes(mux *http.ServeMux, h *UIHandlers, reg *access.Registry) {
	registerPatientRoutes(mux, h)
	registerReceptionRoutes(mux, h)
	registerTriageRoutes(mux, h)
	registerDoctorRoutes(mux, h)
	registerLabRoutes(mux, h)
	registerAdminRoutes(mux, h)

	for _, d := range reg.Descriptors() {
		for _, prefix := range d.AllowedPrefixes {
			if prefix == d.LandingRoute {
				continue
			}
			mux.HandleFunc("GET "+prefix, h.AreaRoot)
		}
	}
}

func registerPatientRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET "+access.LandingPatient, h.DetailPage(service.ViewPatientHome))
	mux.HandleFunc("GET /user/records", h.ListPage(service.ViewPatientRecords))
	mux.HandleFunc("GET /user/prescriptions", h.ListPage(service.ViewPatientRx))
	mux.HandleFunc("GET /user/doctor", h.DetailPage(service.ViewPatientDoctor))
}

func registerReceptionRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET "+access.LandingReceptionist, h.ListPage(service.ViewReceptionSearch,
		service.Link{Label: "Register New Patient", Href: "/receptionist/newRegistration", Style: "primary"}))
	mux.HandleFunc("GET /receptionist/newRegistration", h.RegistrationForm)
	mux.HandleFunc("POST /receptionist/newRegistration", h.RegisterPatient)
	mux.HandleFunc("GET /receptionist/registered/{id}", h.RegisteredPatient)
	mux.HandleFunc("POST /receptionist/registered/{id}/initiate", h.InitiateVisit)
}

func registerTriageRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET "+access.LandingTriage, h.ListPage(service.ViewTriageQueue))
	mux.HandleFunc("GET /triage/process/{id}", h.TriageForm)
	mux.HandleFunc("POST /triage/process/{id}", h.ProcessTriage)
}

func registerDoctorRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET "+access.LandingDoctor, h.ListPage(service.ViewDoctorRecords))
	mux.HandleFunc("GET /doctor/records/{id}", h.DetailPage(service.ViewDoctorPatient))
	mux.HandleFunc("POST /doctor/records/{id}/start-treatment", h.StartTreatment)
	mux.HandleFunc("GET /doctor/records/{id}/update", h.RecordForm)
	mux.HandleFunc("POST /doctor/records/{id}/update", h.UpdateRecord)
	mux.HandleFunc("GET /doctor/records/{id}/prescription", h.PrescriptionForm)
	mux.HandleFunc("POST /doctor/records/{id}/prescription", h.AddPrescription)
	mux.HandleFunc("GET /doctor/records/{id}/lab-request", h.LabRequestForm)
	mux.HandleFunc("POST /doctor/records/{id}/lab-request", h.AddLabRequest)
}

func registerLabRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET "+access.LandingLabTechnician, h.ListPage(service.ViewLabRequests))
	mux.HandleFunc("GET /laboratorist/requests/{id}", h.LabResultForm)
	mux.HandleFunc("POST /laboratorist/requests/{id}", h.SubmitLabResult)
}

func registerAdminRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET "+access.LandingHospitalAdministrator, h.AdminOverview)
	mux.HandleFunc("GET /hospital-admin/staff-management", h.ListPage(service.ViewStaff,
		service.Link{Label: "Add New Staff", Href: "/hospital-admin/add-staff", Style: "primary"}))
	mux.HandleFunc("GET /hospital-admin/staff-management/{id}", h.DetailPage(service.ViewStaffMember))
	mux.HandleFunc("GET /hospital-admin/add-staff", h.StaffForm)
	mux.HandleFunc("POST /hospital-admin/add-staff", h.AddStaff)
}
