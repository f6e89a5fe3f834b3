package httpx

import (
	"net/http"
	"strings"
)

// Home renders the public landing page.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	b := h.page(r, PageMeta{Title: "Arada Care", PageTitle: "Welcome", CurrentPage: PageHome})
	if h.Directory != nil {
		b.With("Departments", h.Directory.Departments())
	}
	h.renderDashboardPage(w, r, b.Build())
}

// About renders the hospital's about page.
func (h *UIHandlers) About(w http.ResponseWriter, r *http.Request) {
	h.renderDashboardPage(w, r, h.page(r, PageMeta{Title: "About Us", PageTitle: "About Us", CurrentPage: PageAbout}).Build())
}

// Contact renders the contact page.
func (h *UIHandlers) Contact(w http.ResponseWriter, r *http.Request) {
	h.renderDashboardPage(w, r, h.page(r, PageMeta{Title: "Contact", PageTitle: "Contact Us", CurrentPage: PageContact}).Build())
}

// Departments lists the hospital's departments.
func (h *UIHandlers) Departments(w http.ResponseWriter, r *http.Request) {
	b := h.page(r, PageMeta{Title: "Departments", PageTitle: "Our Departments", CurrentPage: PageDepartments})
	if h.Directory != nil {
		b.With("Departments", h.Directory.Departments())
	}
	h.renderDashboardPage(w, r, b.Build())
}

// Doctors lists the hospital's doctors, filtered by the q query parameter.
func (h *UIHandlers) Doctors(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	b := h.page(r, PageMeta{Title: "Doctors", PageTitle: "Our Doctors", CurrentPage: PageDoctors}).With("Query", q)
	if h.Directory != nil {
		b.With("Doctors", h.Directory.Doctors(q))
	}
	h.renderDashboardPage(w, r, b.Build())
}
