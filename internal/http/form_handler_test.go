package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/http/validation"
)

type labNote struct {
	TestType string `mapstructure:"testType"`
	Urgency  string `mapstructure:"urgency"`
}

func checkLabNote(_ *http.Request, req *labNote) map[string]string {
	return validation.New().
		Validate("testType", req.TestType, validation.Required("Test type", 50)).
		Errors()
}

func labNoteOpts(w http.ResponseWriter, r *http.Request, submit func(context.Context, labNote) error) FormHandlerOpts[labNote] {
	return FormHandlerOpts[labNote]{
		W:              w,
		R:              r,
		PageMeta:       labRequestMeta,
		Check:          checkLabNote,
		Submit:         submit,
		ExtraData:      map[string]any{"Urgencies": []string{"Normal", "STAT"}},
		SuccessURL:     "/doctor/records/p-1",
		SuccessMessage: "Lab test requested.",
	}
}

func TestHandleForm_SuccessHTMXLoadsNextView(t *testing.T) {
	h := CreateUIHandlersForTest(t)
	if h == nil {
		return
	}
	var got labNote
	r := AsHTMX(postForm("/doctor/records/p-1/lab-request", url.Values{"testType": {"CBC"}, "urgency": {"STAT"}}))
	w := httptest.NewRecorder()

	HandleForm(h, labNoteOpts(w, r, func(_ context.Context, req labNote) error {
		got = req
		return nil
	}))

	assert.Equal(t, labNote{TestType: "CBC", Urgency: "STAT"}, got)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Hx-Location"), "/doctor/records/p-1")
	assert.Contains(t, w.Header().Get("Hx-Trigger"), "Lab test requested.")
}

func TestHandleForm_SuccessPlainPostRedirects(t *testing.T) {
	h := CreateUIHandlersForTest(t)
	if h == nil {
		return
	}
	r := postForm("/doctor/records/p-1/lab-request", url.Values{"testType": {"CBC"}})
	w := httptest.NewRecorder()

	opts := labNoteOpts(w, r, func(context.Context, labNote) error { return nil })
	opts.SuccessURLFor = func(req labNote) string { return "/doctor/records/p-1?test=" + req.TestType }
	HandleForm(h, opts)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/doctor/records/p-1?test=CBC", w.Header().Get("Location"))
}

func TestHandleForm_FieldErrorsSkipSubmit(t *testing.T) {
	h := CreateUIHandlersForTest(t)
	if h == nil {
		return
	}
	called := false
	loaded := false
	r := postForm("/doctor/records/p-1/lab-request", url.Values{"urgency": {"STAT"}})
	w := httptest.NewRecorder()

	opts := labNoteOpts(w, r, func(context.Context, labNote) error {
		called = true
		return nil
	})
	opts.LoadExtra = func(context.Context) map[string]any {
		loaded = true
		return nil
	}
	HandleForm(h, opts)

	assert.False(t, called)
	assert.True(t, loaded, "extra data loads only when re-rendering")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Test type is required.")
	assert.Contains(t, body, errMsgFixBelow)
	assert.Contains(t, body, `<option value="STAT" selected>`)
}

func TestHandleForm_BackendErrorKeepsInput(t *testing.T) {
	h := CreateUIHandlersForTest(t)
	if h == nil {
		return
	}
	r := AsHTMX(postForm("/doctor/records/p-1/lab-request", url.Values{"testType": {"Lipid panel"}}))
	w := httptest.NewRecorder()

	HandleForm(h, labNoteOpts(w, r, func(context.Context, labNote) error {
		return apperrors.Conflict("A lab test of this type is already pending.")
	}))

	assert.Equal(t, http.StatusOK, w.Code, "fragments are always 200")
	body := w.Body.String()
	assert.Contains(t, body, "A lab test of this type is already pending.")
	assert.Contains(t, body, `value="Lipid panel"`)
}

func TestHandleForm_UnauthorizedEndsSession(t *testing.T) {
	h := CreateUIHandlersForTest(t)
	if h == nil {
		return
	}
	auth := &fakeAuth{}
	h.Auth = auth
	r := WithSession(postForm("/doctor/records/p-1/lab-request", url.Values{"testType": {"CBC"}}), "s-1", doctorSession)
	w := httptest.NewRecorder()

	HandleForm(h, labNoteOpts(w, r, func(context.Context, labNote) error {
		return apperrors.Unauthorized("session expired")
	}))

	assert.Equal(t, []string{"s-1"}, auth.logouts)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestHandleForm_FieldScopedBackendError(t *testing.T) {
	h := CreateUIHandlersForTest(t)
	if h == nil {
		return
	}
	r := postForm("/doctor/records/p-1/lab-request", url.Values{"testType": {"XYZ"}})
	w := httptest.NewRecorder()

	HandleForm(h, labNoteOpts(w, r, func(context.Context, labNote) error {
		return apperrors.ValidationField("testType", "Unknown test type.")
	}))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown test type.")
}

func TestHandleForm_RequiresSubmit(t *testing.T) {
	h := &UIHandlers{}
	w := httptest.NewRecorder()
	HandleForm(h, FormHandlerOpts[labNote]{W: w, R: postForm("/x", nil)})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
