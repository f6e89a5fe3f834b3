package clinicalapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/clinical"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/mocks"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
)

var cred = domainauth.Credential{Token: "tok"}

func TestClient_WritesHitExpectedEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		call   func(c *Client) error
		method string
		path   string
	}{
		{
			name:   "register patient",
			call:   func(c *Client) error { return c.RegisterPatient(context.Background(), cred, clinical.PatientRegistration{FaydaID: " F-1 "}) },
			method: http.MethodPost,
			path:   "/reception/register-patient",
		},
		{
			name: "process triage",
			call: func(c *Client) error {
				return c.ProcessTriage(context.Background(), cred, clinical.TriageRequest{RecordID: "r1", DoctorID: "d1"})
			},
			method: http.MethodPost,
			path:   "/triage/process",
		},
		{
			name:   "start treatment",
			call:   func(c *Client) error { return c.StartTreatment(context.Background(), cred, "r/1") },
			method: http.MethodPatch,
			path:   "/records/r%2F1/start-treatment",
		},
		{
			name:   "update record",
			call:   func(c *Client) error { return c.UpdateRecord(context.Background(), cred, "r1", clinical.RecordUpdate{}) },
			method: http.MethodPut,
			path:   "/records/r1",
		},
		{
			name: "add prescription",
			call: func(c *Client) error {
				return c.AddPrescription(context.Background(), cred, "r1", clinical.PrescriptionRequest{
					Medicines: []clinical.Medicine{{Name: "Amoxicillin"}},
				})
			},
			method: http.MethodPost,
			path:   "/records/r1/prescriptions",
		},
		{
			name:   "add lab request",
			call:   func(c *Client) error { return c.AddLabRequest(context.Background(), cred, "r1", clinical.LabRequest{TestType: "CBC"}) },
			method: http.MethodPost,
			path:   "/records/r1/lab-requests",
		},
		{
			name:   "submit lab result",
			call:   func(c *Client) error { return c.SubmitLabResult(context.Background(), cred, "l1", clinical.LabResult{}) },
			method: http.MethodPut,
			path:   "/lab/requests/l1",
		},
		{
			name: "add staff",
			call: func(c *Client) error {
				return c.AddStaff(context.Background(), cred, clinical.StaffRequest{Role: "Doctor", ProfilePhoto: "https://m/p.png"})
			},
			method: http.MethodPost,
			path:   "/hospital-admin/add-staff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := mocks.NewMockAPI(ctrl)
			api.EXPECT().Call(gomock.Any(), cred, gomock.Any(), nil).DoAndReturn(
				func(_ context.Context, _ domainauth.Credential, req ports.APIRequest, _ any) error {
					assert.Equal(t, tt.method, req.Method)
					assert.Equal(t, tt.path, req.Path)
					return nil
				})

			require.NoError(t, tt.call(New(api)))
		})
	}
}

func TestClient_RegisterPatientSendsNormalizedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	api.EXPECT().Call(gomock.Any(), cred, gomock.Any(), nil).DoAndReturn(
		func(_ context.Context, _ domainauth.Credential, req ports.APIRequest, _ any) error {
			body, ok := req.Body.(clinical.PatientRegistration)
			require.True(t, ok)
			assert.Equal(t, "F-1", body.FaydaID)
			assert.Equal(t, "Abebe", body.FirstName)
			return nil
		})

	err := New(api).RegisterPatient(context.Background(), cred, clinical.PatientRegistration{FaydaID: " F-1", FirstName: "Abebe "})
	require.NoError(t, err)
}

func TestClient_RejectsBeforeCalling(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := New(mocks.NewMockAPI(ctrl))
	ctx := context.Background()

	assert.True(t, apperrors.IsValidation(c.RegisterPatient(ctx, cred, clinical.PatientRegistration{})))
	assert.True(t, apperrors.IsValidation(c.ProcessTriage(ctx, cred, clinical.TriageRequest{RecordID: "r1"})))
	assert.True(t, apperrors.IsValidation(c.StartTreatment(ctx, cred, "  ")))
	assert.True(t, apperrors.IsValidation(c.AddPrescription(ctx, cred, "r1", clinical.PrescriptionRequest{})))
	assert.True(t, apperrors.IsValidation(c.AddStaff(ctx, cred, clinical.StaffRequest{Role: "Admin"})))
}

func TestClient_FetchDecodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	api.EXPECT().Call(gomock.Any(), cred, ports.APIRequest{Method: http.MethodGet, Path: "/triage/doctors"}, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domainauth.Credential, _ ports.APIRequest, out any) error {
			*(out.(*any)) = map[string]any{"doctors": []any{}}
			return nil
		})

	doc, err := New(api).Fetch(context.Background(), cred, "/triage/doctors", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"doctors": []any{}}, doc)
}

func TestClient_FetchPropagatesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	api.EXPECT().Call(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(apperrors.NotFound("Patient not found"))

	_, err := New(api).Fetch(context.Background(), cred, "/reception/patient/x", nil)
	assert.True(t, apperrors.IsNotFound(err))
}
