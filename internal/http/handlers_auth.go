package httpx

import (
	"net/http"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/http/validation"
	"github.com/maf-y/ArardaHospital-Frontend/internal/service"
)

var loginMeta = PageMeta{Title: "Sign In", PageTitle: "Sign In", CurrentPage: PageLogin}

// roleOptions lists the roles offered by the login form.
func roleOptions() []service.Option {
	roles := domainauth.AllRoles()
	out := make([]service.Option, 0, len(roles))
	for _, r := range roles {
		out = append(out, service.Option{Value: string(r), Label: r.Label()})
	}
	return out
}

// LoginPage renders the login form.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, loginMeta).With("Roles", roleOptions()).Build()
	h.renderDashboardPage(w, r, data)
}

// Login signs the client in and sends them to their role's landing route. The whole
// document is reloaded so the role shell replaces the public header.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeForm(r, &req); err != nil {
		h.renderLoginError(w, r, nil, apperrors.Validation("The form could not be read. Please check your input."))
		return
	}

	fv := validation.New().
		Validate("username", req.Username, validation.Required("Username", 254)).
		Validate("password", req.Password, validation.Required("Password", 256)).
		Validate("role", req.Role, validation.Required("Role", 64))
	if errs := fv.Errors(); len(errs) > 0 {
		h.renderLoginError(w, r, errs, nil)
		return
	}

	// A previous session for this client is ended before the new one starts.
	if prev := SessionIDFromContext(r.Context()); prev != "" {
		h.Auth.Logout(r.Context(), prev)
	}

	res, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		h.logger().InfoContext(r.Context(), "login rejected",
			"code", string(apperrors.GetCode(err)),
			"error", err,
		)
		h.renderLoginError(w, r, nil, err)
		return
	}

	setSessionCookie(w, r, h.Cookie, res.SessionID, res.ExpiresAt)
	landing := "/"
	if h.Shells != nil {
		if l := h.Shells.Landing(res.Session); l != "" {
			landing = l
		}
	}
	triggerToast(w, res.Message, "success")
	Navigate(w, r, landing)
}

func (h *UIHandlers) renderLoginError(w http.ResponseWriter, r *http.Request, fieldErrors map[string]string, err error) {
	// Wrong credentials surface on the form rather than ending a session.
	if apperrors.IsUnauthorized(err) {
		err = apperrors.Validation(apperrors.UserMessage(err))
	}
	h.RenderError(ErrorOpts{
		W:           w,
		R:           r,
		Err:         err,
		FieldErrors: fieldErrors,
		PageMeta:    loginMeta,
		Data: map[string]any{
			"Roles": roleOptions(),
			"Form":  formValues(r),
		},
	})
}

// Logout ends the client's session and returns to the public home page.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if id := SessionIDFromContext(r.Context()); id != "" {
		h.Auth.Logout(r.Context(), id)
	}
	clearSessionCookie(w, r, h.Cookie)
	Navigate(w, r, "/")
}

// AuthStatus reports the client's session as JSON. It is not guarded, so it answers
// while the session is still unresolved.
func (h *UIHandlers) AuthStatus(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	body := sessionFields(sess)
	if sess.IsAuthenticated() && h.Shells != nil {
		body["landing"] = h.Shells.Landing(sess)
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, body)
}
