package ports

import (
	"context"
	"net/url"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/clinical"
)

// Clinical is the domain collaborator: schema-less reads plus the typed writes the
// dashboards submit. Every call carries the signed-in user's credential.
type Clinical interface {
	// Fetch GETs path and returns the decoded JSON document.
	Fetch(ctx context.Context, cred domainauth.Credential, path string, query url.Values) (any, error)

	RegisterPatient(ctx context.Context, cred domainauth.Credential, req clinical.PatientRegistration) error
	ProcessTriage(ctx context.Context, cred domainauth.Credential, req clinical.TriageRequest) error
	StartTreatment(ctx context.Context, cred domainauth.Credential, recordID string) error
	UpdateRecord(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.RecordUpdate) error
	AddPrescription(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.PrescriptionRequest) error
	AddLabRequest(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.LabRequest) error
	SubmitLabResult(ctx context.Context, cred domainauth.Credential, requestID string, req clinical.LabResult) error
	AddStaff(ctx context.Context, cred domainauth.Credential, req clinical.StaffRequest) error
}
