package httpx

import (
	"net/http"

	"github.com/maf-y/ArardaHospital-Frontend/internal/http/ui/viewmodel"
)

// PaginationData describes the page a list is on.
type PaginationData struct {
	Page     int
	Pages    int
	Total    int
	BasePath string
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{
		data: basePageData(r, meta),
		r:    r,
	}
}

// WithPagination adds pagination data and builds PrevURL/NextURL.
func (b *TemplateDataBuilder) WithPagination(opts PaginationData) *TemplateDataBuilder {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	p := viewmodel.Pagination{
		Page:    page,
		Pages:   opts.Pages,
		Total:   opts.Total,
		HasPrev: page > 1,
		HasNext: page < opts.Pages,
	}
	if p.HasPrev {
		p.PrevURL = buildPageURL(opts.BasePath, b.r.URL.Query(), page-1)
	}
	if p.HasNext {
		p.NextURL = buildPageURL(opts.BasePath, b.r.URL.Query(), page+1)
	}
	b.data["Pagination"] = p
	return b
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithRetry sets a load failure message and the URL that retries the load.
func (b *TemplateDataBuilder) WithRetry(msg, retryURL string) *TemplateDataBuilder {
	b.WithError(msg)
	b.data["RetryURL"] = retryURL
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
