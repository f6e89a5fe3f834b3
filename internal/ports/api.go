package ports

import (
	"context"
	"io"
	"net/url"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

// APIRequest describes one call to the hospital REST API.
// Path is relative to the configured base URL; Body is encoded as JSON when non-nil.
type APIRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// API performs credential-bearing JSON calls against the hospital REST API.
// out may be nil, a typed pointer, or *any for schema-less payloads.
type API interface {
	Call(ctx context.Context, cred domainauth.Credential, req APIRequest, out any) error
}

// MediaUploader pushes a file to the external media host and returns its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}
