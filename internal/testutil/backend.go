package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedCall is one request seen by a FakeBackend.
type RecordedCall struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Cookies       []*http.Cookie
	Body          []byte
}

// FakeBackend is an httptest server standing in for the hospital REST API.
// Routes use net/http pattern syntax ("GET /auth/me").
type FakeBackend struct {
	Server *httptest.Server

	mux   *http.ServeMux
	mu    sync.Mutex
	calls []RecordedCall
}

// NewFakeBackend starts a fake hospital API and registers cleanup on t.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{mux: http.NewServeMux()}
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL returns the base URL of the fake API.
func (fb *FakeBackend) URL() string { return fb.Server.URL }

// Handle registers a handler for pattern.
func (fb *FakeBackend) Handle(pattern string, h http.HandlerFunc) {
	fb.mux.HandleFunc(pattern, h)
}

// JSON registers a handler that always answers with status and body encoded as JSON.
func (fb *FakeBackend) JSON(pattern string, status int, body any) {
	fb.Handle(pattern, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Calls returns a copy of every recorded request.
func (fb *FakeBackend) Calls() []RecordedCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]RecordedCall, len(fb.calls))
	copy(out, fb.calls)
	return out
}

// CallCount returns how many requests matched method and path.
func (fb *FakeBackend) CallCount(method, path string) int {
	n := 0
	for _, c := range fb.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (fb *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	fb.mu.Lock()
	fb.calls = append(fb.calls, RecordedCall{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		Cookies:       r.Cookies(),
		Body:          body,
	})
	fb.mu.Unlock()
	r.Body = io.NopCloser(bytes.NewReader(body))
	fb.mux.ServeHTTP(w, r)
}

// WriteJSON writes body as JSON with status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
