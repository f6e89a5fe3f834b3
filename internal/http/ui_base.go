package httpx

import (
	"bytes"
	"context"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/directory"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/clinical"
	"github.com/maf-y/ArardaHospital-Frontend/internal/fetch"
	"github.com/maf-y/ArardaHospital-Frontend/internal/http/ui/viewmodel"
	"github.com/maf-y/ArardaHospital-Frontend/internal/service"
	"github.com/maf-y/ArardaHospital-Frontend/internal/session"
)

const errMsgFixBelow = "Please fix the errors below."

// SessionResolver turns a session id into the client's current session.
type SessionResolver interface {
	Resolve(ctx context.Context, clientID string) domainauth.Session
}

// AuthService performs login and logout and hands out stored backend credentials.
type AuthService interface {
	Login(ctx context.Context, req service.LoginRequest) (*service.LoginResult, error)
	Logout(ctx context.Context, sessionID string)
	Credential(ctx context.Context, sessionID string) (domainauth.Credential, error)
}

// ShellBuilder builds the role shell around dashboard views.
type ShellBuilder interface {
	Shell(sess domainauth.Session, currentPath string) (service.Shell, error)
	Landing(sess domainauth.Session) string
}

// ViewsService loads backend-backed list and detail views.
type ViewsService interface {
	List(ctx context.Context, name string, req service.ViewRequest) (*service.ListView, error)
	Detail(ctx context.Context, name string, req service.ViewRequest) (*service.DetailView, error)
	Source(name string) (service.ViewSource, bool)
}

// ClinicalService performs the dashboards' form submissions.
type ClinicalService interface {
	RegisterPatient(ctx context.Context, cred domainauth.Credential, req clinical.PatientRegistration) error
	InitiateVisit(ctx context.Context, cred domainauth.Credential, faydaID, medicalHistory string) error
	Doctors(ctx context.Context, cred domainauth.Credential) ([]service.Option, error)
	ProcessTriage(ctx context.Context, cred domainauth.Credential, req clinical.TriageRequest) error
	StartTreatment(ctx context.Context, cred domainauth.Credential, recordID string) error
	UpdateRecord(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.RecordUpdate) error
	AddPrescription(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.PrescriptionRequest) error
	AddLabRequest(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.LabRequest) error
	SubmitLabResult(ctx context.Context, cred domainauth.Credential, requestID string, req clinical.LabResult) error
	AddStaff(ctx context.Context, cred domainauth.Credential, req clinical.StaffRequest, photo *service.Upload) error
	StaffOverview(ctx context.Context, cred domainauth.Credential) (*service.StaffOverview, error)
	PhotoUploads() bool
}

// DirectoryService serves the public department and doctor listings.
type DirectoryService interface {
	Departments() []directory.Department
	Doctors(query string) []directory.Doctor
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ SessionResolver  = (*session.Resolver)(nil)
	_ AuthService      = (*service.AuthService)(nil)
	_ ShellBuilder     = (*service.Dispatcher)(nil)
	_ ViewsService     = (*service.ViewService)(nil)
	_ ClinicalService  = (*service.ClinicalService)(nil)
	_ DirectoryService = (*directory.Directory)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T         *TemplateRenderer
	Auth      AuthService
	Shells    ShellBuilder
	Views     ViewsService
	Clinical  ClinicalService
	Directory DirectoryService
	// Fetches supersedes and cancels in-flight view loads. Optional.
	Fetches *fetch.Tracker
	Cookie  SessionCookieConfig
	IsDev   bool // Development mode flag for enhanced error reporting
	Logger  *slog.Logger

	// PlaceholderRefresh is how soon the session placeholder asks again.
	PlaceholderRefresh time.Duration
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// triggerToast sends a standardized HX-Trigger payload for toast notifications.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	HTMX(w).Trigger("showToast", map[string]any{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}
	if layout.Title == "" {
		layout.Title = layout.PageTitle
	}

	if sess := GetSessionFromContext(r.Context()); sess.IsAuthenticated() {
		layout.IsAuthenticated = true
		layout.User = &viewmodel.User{
			ID:        sess.Identity.UserID,
			Name:      sess.Identity.DisplayName(),
			Role:      string(sess.Role),
			RoleLabel: sess.Role.Label(),
		}
	}

	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"CurrentPath":     r.URL.Path,
	}
	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// page starts template data for r, including the role shell when the session has one.
func (h *UIHandlers) page(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	b := NewTemplateData(r, meta)
	if shell := h.shellFor(r); shell != nil {
		b.With("Shell", shell)
	}
	return b
}

func (h *UIHandlers) shellFor(r *http.Request) *service.Shell {
	if h.Shells == nil {
		return nil
	}
	sess := GetSessionFromContext(r.Context())
	if !sess.IsAuthenticated() {
		return nil
	}
	shell, err := h.Shells.Shell(sess, r.URL.Path)
	if err != nil {
		return nil
	}
	return &shell
}

// renderDashboardPage renders a page with proper HTMX partial support.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	h.renderPage(w, r, http.StatusOK, data)
}

// renderPage renders data as a full document, or as the content fragment plus
// out-of-band chrome updates for HTMX requests. htmx only swaps 2xx responses, so
// fragments are always sent with 200.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, status, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	layout := layoutFromMap(data)
	var buf bytes.Buffer

	// Include a <title> element so htmx updates document.title on partial swaps
	buf.WriteString(`<title>` + html.EscapeString(layout.Title) + ` · Arada Care</title>`)
	buf.WriteString(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(layout.PageTitle) + `</h1>`)

	if _, ok := data["Shell"]; ok {
		if err := h.T.execute(&buf, "shell-nav-oob", data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "partial nav render")
			return
		}
	}
	if err := h.T.execute(&buf, ContentTemplateFor(layout.CurrentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
		return
	}

	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})
	_ = h.T.write(w, ContentTemplateFor(layout.CurrentPage), http.StatusOK, &buf)
}

func layoutFromMap(data map[string]any) viewmodel.Layout {
	layout := viewmodel.Layout{}
	if v, ok := data["Title"].(string); ok {
		layout.Title = v
	}
	if v, ok := data["PageTitle"].(string); ok {
		layout.PageTitle = v
	}
	if v, ok := data["CurrentPage"].(string); ok {
		layout.CurrentPage = v
	}
	return layout
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte(`<div class="dev-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// credential returns the backend credential for the requesting client. When it is gone
// the session is ended and the client sent to the public home page.
func (h *UIHandlers) credential(w http.ResponseWriter, r *http.Request) (domainauth.Credential, bool) {
	id := SessionIDFromContext(r.Context())
	cred, err := h.Auth.Credential(r.Context(), id)
	if err != nil {
		h.logger().InfoContext(r.Context(), "session credential unavailable", "error", err)
		h.endSession(w, r)
		return domainauth.Credential{}, false
	}
	return cred, true
}

// endSession logs the client out and navigates to the public home page.
func (h *UIHandlers) endSession(w http.ResponseWriter, r *http.Request) {
	if id := SessionIDFromContext(r.Context()); id != "" {
		h.Auth.Logout(r.Context(), id)
	}
	clearSessionCookie(w, r, h.Cookie)
	Navigate(w, r, "/")
}

// beginLoad starts a tracked load. HTMX loads share one slot per client so a newer
// navigation supersedes an older one; full page loads are tracked per path.
func (h *UIHandlers) beginLoad(r *http.Request) *fetch.Ticket {
	tracker := h.Fetches
	if tracker == nil {
		tracker = fetch.NewTracker()
	}
	slot := "page:" + r.URL.Path
	if IsHTMX(r) {
		slot = "content"
	}
	return tracker.Begin(r.Context(), SessionIDFromContext(r.Context()), slot)
}

// buildPageURL returns basePath with page set, preserving the other query params.
func buildPageURL(basePath string, q url.Values, page int) string {
	qq := make(url.Values, len(q))
	for k, v := range q {
		if strings.HasPrefix(k, "hx-") || strings.HasPrefix(k, "hx_") || len(v) == 0 {
			continue
		}
		tmp := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				tmp = append(tmp, s)
			}
		}
		if len(tmp) > 0 {
			qq[k] = tmp
		}
	}
	if page > 1 {
		qq.Set("page", strconv.Itoa(page))
	} else {
		qq.Del("page")
	}
	if enc := qq.Encode(); enc != "" {
		return basePath + "?" + enc
	}
	return basePath
}

// currentPage parses the page query parameter.
func currentPage(q url.Values) int {
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		return n
	}
	return 1
}
