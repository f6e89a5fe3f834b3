// Package cloudmedia uploads staff profile photos to a Cloudinary-style media host.
package cloudmedia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/metrics"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/statsd"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
)

const urlExpr = "secure_url || url"

// Options configures Uploader.
type Options struct {
	UploadURL    string
	UploadPreset string
	// MaxBytes caps the file size; larger files are rejected before upload.
	MaxBytes int64
	Timeout  time.Duration
	Client   *http.Client
	Metrics  statsd.Sink
	Logger   *slog.Logger
}

// Uploader implements ports.MediaUploader.
type Uploader struct {
	uploadURL string
	preset    string
	maxBytes  int64
	client    *http.Client
	url       jmespath.JMESPath
	metrics   statsd.Sink
	logger    *slog.Logger
}

var _ ports.MediaUploader = (*Uploader)(nil)

// New returns an Uploader for opts.UploadURL.
func New(opts Options) (*Uploader, error) {
	if strings.TrimSpace(opts.UploadURL) == "" {
		return nil, errors.New("cloudmedia: upload URL is required")
	}
	expr, err := jmespath.Compile(urlExpr)
	if err != nil {
		return nil, fmt.Errorf("cloudmedia: compile url expression: %w", err)
	}
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{
		uploadURL: strings.TrimSpace(opts.UploadURL),
		preset:    opts.UploadPreset,
		maxBytes:  maxBytes,
		client:    client,
		url:       expr,
		metrics:   opts.Metrics,
		logger:    logger.With("component", "cloudmedia"),
	}, nil
}

// MaxBytes returns the accepted file size limit.
func (u *Uploader) MaxBytes() int64 { return u.maxBytes }

// Upload sends r as the multipart "file" field and returns the hosted URL.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	start := time.Now()
	out, status, err := u.upload(ctx, filename, r)
	metrics.EmitUpstreamCall(u.metrics, metrics.UpstreamCall{
		Service:  "media",
		Method:   http.MethodPost,
		Status:   status,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		u.logger.WarnContext(ctx, "photo upload failed", "filename", filename, "status", status, "error", err)
	}
	return out, err
}

func (u *Uploader) upload(ctx context.Context, filename string, r io.Reader) (string, int, error) {
	data, err := io.ReadAll(io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return "", 0, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Could not read the uploaded file.")
	}
	if int64(len(data)) > u.maxBytes {
		return "", 0, apperrors.ValidationField("profilePhoto", fmt.Sprintf("Photo must be at most %d MB.", u.maxBytes>>20))
	}
	if len(data) == 0 {
		return "", 0, apperrors.ValidationField("profilePhoto", "Photo is empty.")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build upload")
	}
	if _, err := fw.Write(data); err != nil {
		return "", 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build upload")
	}
	if u.preset != "" {
		if err := mw.WriteField("upload_preset", u.preset); err != nil {
			return "", 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build upload")
		}
	}
	if err := mw.Close(); err != nil {
		return "", 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build upload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build upload request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", 0, apperrors.MapTransportError(err)
	}
	defer resp.Body.Close()

	var doc any
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&doc)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", resp.StatusCode, apperrors.MapStatus(resp.StatusCode, u.search(doc, "error.message"))
	}
	if decodeErr != nil {
		return "", resp.StatusCode, apperrors.Upstream("The media host returned a malformed response.")
	}

	hosted, _ := u.searchCompiled(doc).(string)
	if hosted == "" {
		return "", resp.StatusCode, apperrors.Upstream("The media host did not return a URL.")
	}
	return hosted, resp.StatusCode, nil
}

func (u *Uploader) searchCompiled(doc any) any {
	if doc == nil {
		return nil
	}
	v, err := u.url.Search(doc)
	if err != nil {
		return nil
	}
	return v
}

func (u *Uploader) search(doc any, expr string) string {
	if doc == nil {
		return ""
	}
	v, err := jmespath.Search(expr, doc)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
