package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	t.Run("no checks", func(t *testing.T) {
		w := httptest.NewRecorder()
		healthHandler(nil)(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("failing check degrades", func(t *testing.T) {
		h := healthHandler(map[string]HealthCheck{
			"redis":   func(context.Context) error { return errors.New("connection refused") },
			"backend": func(context.Context) error { return nil },
		})
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"degraded","checks":{"backend":"ok","redis":"connection refused"}}`, w.Body.String())

		w = httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodHead, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Empty(t, w.Body.String())
	})
}
