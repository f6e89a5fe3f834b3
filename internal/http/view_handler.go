package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/service"
)

// viewLoader fetches a view's data under the load's context.
type viewLoader func(ctx context.Context, req service.ViewRequest) error

// loadView runs load on behalf of the requesting client and handles every failure
// path itself. It reports whether the caller should go on to render.
//
// A load superseded by a newer navigation is discarded without touching the page.
// Failures render the page's error state with a retry control.
func (h *UIHandlers) loadView(w http.ResponseWriter, r *http.Request, meta PageMeta, id string, load viewLoader) bool {
	cred, ok := h.credential(w, r)
	if !ok {
		return false
	}

	ticket := h.beginLoad(r)
	defer ticket.Done()

	sess := GetSessionFromContext(r.Context())
	err := load(ticket.Context(), service.ViewRequest{
		Credential: cred,
		UserID:     sess.Identity.UserID,
		ID:         id,
		Query:      r.URL.Query(),
	})

	if !ticket.Current() && IsHTMX(r) {
		h.logger().DebugContext(r.Context(), "discarding superseded load", "path", r.URL.Path)
		HTMX(w).Discard()
		return false
	}
	if err == nil {
		return true
	}

	switch {
	case apperrors.IsUnauthorized(err):
		h.endSession(w, r)
	case apperrors.IsNotFound(err), errors.Is(err, service.ErrUnknownView):
		h.NotFound(w, r)
	default:
		h.logger().WarnContext(r.Context(), "view load failed",
			"path", r.URL.Path,
			"code", string(apperrors.GetCode(err)),
			"error", err,
		)
		h.RenderError(ErrorOpts{W: w, R: r, Err: err, PageMeta: meta, RetryURL: r.URL.RequestURI()})
	}
	return false
}

func (h *UIHandlers) viewMeta(view, currentPage string) PageMeta {
	title := "Dashboard"
	if src, ok := h.Views.Source(view); ok && src.Title != "" {
		title = src.Title
	}
	return PageMeta{Title: title, PageTitle: title, CurrentPage: currentPage}
}

// ListPage serves a backend-backed list view. Toolbar links render above the list.
func (h *UIHandlers) ListPage(view string, toolbar ...service.Link) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meta := h.viewMeta(view, PageList)
		var list *service.ListView
		ok := h.loadView(w, r, meta, "", func(ctx context.Context, req service.ViewRequest) error {
			var err error
			list, err = h.Views.List(ctx, view, req)
			return err
		})
		if !ok {
			return
		}

		b := h.page(r, meta).With("View", list).With("Toolbar", toolbar)
		if list.Pages > 1 {
			b.WithPagination(PaginationData{
				Page:     currentPage(r.URL.Query()),
				Pages:    list.Pages,
				Total:    list.Total,
				BasePath: r.URL.Path,
			})
		}
		h.renderDashboardPage(w, r, b.Build())
	}
}

// DetailPage serves a backend-backed detail view keyed by the {id} path value.
// Views keyed by the signed-in user ignore the path.
func (h *UIHandlers) DetailPage(view string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meta := h.viewMeta(view, PageDetail)
		detail, ok := h.loadDetail(w, r, view, meta)
		if !ok {
			return
		}
		h.renderDashboardPage(w, r, h.page(r, meta).With("Detail", detail).Build())
	}
}

func (h *UIHandlers) loadDetail(w http.ResponseWriter, r *http.Request, view string, meta PageMeta) (*service.DetailView, bool) {
	var detail *service.DetailView
	ok := h.loadView(w, r, meta, r.PathValue("id"), func(ctx context.Context, req service.ViewRequest) error {
		var err error
		detail, err = h.Views.Detail(ctx, view, req)
		return err
	})
	return detail, ok
}
