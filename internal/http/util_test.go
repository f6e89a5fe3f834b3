package httpx

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/clinical"
)

func postForm(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestFormMap_NestsDottedNames(t *testing.T) {
	got := formMap(url.Values{
		"diagnosis":           {"Malaria"},
		"vitals.heartRate":    {"88"},
		"vitals.temperature":  {"38.2"},
		"medicines.1.name":    {"Coartem"},
		"medicines.0.name":    {"Paracetamol"},
		"medicines.0.dosage":  {"500mg"},
		DefaultCSRFCookieName: {"tok"},
		"tags":                {"a", "b"},
	})

	assert.Equal(t, "Malaria", got["diagnosis"])
	assert.Equal(t, map[string]any{"heartRate": "88", "temperature": "38.2"}, got["vitals"])
	assert.Equal(t, []any{
		map[string]any{"name": "Paracetamol", "dosage": "500mg"},
		map[string]any{"name": "Coartem"},
	}, got["medicines"])
	assert.Equal(t, []string{"a", "b"}, got["tags"])
	assert.NotContains(t, got, DefaultCSRFCookieName)
}

func TestDecodeForm_TriageRequest(t *testing.T) {
	r := postForm("/triage/process/rec-1", url.Values{
		"doctorId":                {"doc-1"},
		"urgency":                 {"High"},
		"diagnosis":               {"Chest pain"},
		"vitals.bloodPressure":    {"140/90"},
		"vitals.oxygenSaturation": {"97"},
	})

	var req clinical.TriageRequest
	require.NoError(t, decodeForm(r, &req))
	assert.Equal(t, "doc-1", req.DoctorID)
	assert.Equal(t, "High", req.Urgency)
	assert.Equal(t, "140/90", req.Vitals.BloodPressure)
	assert.Equal(t, "97", req.Vitals.OxygenSaturation)
	assert.Empty(t, req.RecordID, "record comes from the path")
}

func TestDecodeForm_PrescriptionRows(t *testing.T) {
	r := postForm("/doctor/records/p-1/prescription", url.Values{
		"medicines.0.name":      {"Amoxicillin"},
		"medicines.0.frequency": {"3x daily"},
		"medicines.2.name":      {"Ibuprofen"},
		"instructions":          {"After meals"},
	})

	var req clinical.PrescriptionRequest
	require.NoError(t, decodeForm(r, &req))
	require.Len(t, req.Medicines, 2)
	assert.Equal(t, "Amoxicillin", req.Medicines[0].Name)
	assert.Equal(t, "3x daily", req.Medicines[0].Frequency)
	assert.Equal(t, "Ibuprofen", req.Medicines[1].Name)
	assert.Equal(t, "After meals", req.Instructions)
}

func TestFormValues_DropsSecrets(t *testing.T) {
	r := postForm("/login", url.Values{
		"username":            {"hana"},
		"password":            {"hunter22"},
		"account.password":    {"x"},
		DefaultCSRFCookieName: {"tok"},
	})
	require.NoError(t, r.ParseForm())

	got := formValues(r)
	assert.Equal(t, map[string]string{"username": "hana"}, got)
}

func TestFormFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("firstName", "Hana"))
	fw, err := mw.CreateFormFile("photo", "hana.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	_, err = mw.CreateFormFile("empty", "empty.png")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/hospital-admin/add-staff", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, parseForm(r))
	assert.Equal(t, "Hana", r.PostForm.Get("firstName"))

	photo, err := formFile(r, "photo")
	require.NoError(t, err)
	require.NotNil(t, photo)
	defer photo.Close()
	up := photo.Upload()
	assert.Equal(t, "hana.png", up.Filename)

	empty, err := formFile(r, "empty")
	require.NoError(t, err)
	assert.Nil(t, empty)

	missing, err := formFile(r, "cv")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.Nil(t, missing.Upload())
}

func TestFormFile_URLEncodedFormHasNoFiles(t *testing.T) {
	r := postForm("/hospital-admin/add-staff", url.Values{"firstName": {"Hana"}})
	require.NoError(t, parseForm(r))
	f, err := formFile(r, "photo")
	require.NoError(t, err)
	assert.Nil(t, f)
}
