package httpx

import (
	"context"
	"sync"
	"time"

	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/directory"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/clinical"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/service"
)

// fakeResolver resolves sessions from a fixed table. Unknown ids are Anonymous.
type fakeResolver struct {
	sessions map[string]domainauth.Session
	calls    []string
}

func (f *fakeResolver) Resolve(_ context.Context, id string) domainauth.Session {
	f.calls = append(f.calls, id)
	if id == "" {
		return domainauth.Anonymous()
	}
	if s, ok := f.sessions[id]; ok {
		return s
	}
	return domainauth.Anonymous()
}

// fakeAuth records logins and logouts and hands out a fixed credential.
type fakeAuth struct {
	mu        sync.Mutex
	loginFunc func(req service.LoginRequest) (*service.LoginResult, error)
	logins    []service.LoginRequest
	logouts   []string
	credErr   error
}

func (f *fakeAuth) Login(_ context.Context, req service.LoginRequest) (*service.LoginResult, error) {
	f.mu.Lock()
	f.logins = append(f.logins, req)
	f.mu.Unlock()
	if f.loginFunc != nil {
		return f.loginFunc(req)
	}
	role, err := domainauth.ParseRole(req.Role)
	if err != nil {
		return nil, apperrors.Validation("unknown role")
	}
	return &service.LoginResult{
		SessionID: "sess-new",
		Session:   domainauth.Authenticated(domainauth.Identity{UserID: "u-1", Name: req.Username}, role),
		ExpiresAt: time.Now().Add(time.Hour),
		Message:   "Welcome back.",
	}, nil
}

func (f *fakeAuth) Logout(_ context.Context, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts = append(f.logouts, id)
}

func (f *fakeAuth) Credential(_ context.Context, _ string) (domainauth.Credential, error) {
	if f.credErr != nil {
		return domainauth.Credential{}, f.credErr
	}
	return domainauth.Credential{Token: "tok"}, nil
}

// fakeViews serves canned list and detail views.
type fakeViews struct {
	listFunc   func(ctx context.Context, name string, req service.ViewRequest) (*service.ListView, error)
	detailFunc func(ctx context.Context, name string, req service.ViewRequest) (*service.DetailView, error)
	requests   []service.ViewRequest
}

func (f *fakeViews) List(ctx context.Context, name string, req service.ViewRequest) (*service.ListView, error) {
	f.requests = append(f.requests, req)
	if f.listFunc != nil {
		return f.listFunc(ctx, name, req)
	}
	return &service.ListView{Name: name, Empty: "No patients waiting."}, nil
}

func (f *fakeViews) Detail(ctx context.Context, name string, req service.ViewRequest) (*service.DetailView, error) {
	f.requests = append(f.requests, req)
	if f.detailFunc != nil {
		return f.detailFunc(ctx, name, req)
	}
	return &service.DetailView{
		Name: name,
		ID:   req.ID,
		Ref:  "rec-1",
		Fields: []service.Cell{
			{Key: "name", Label: "Name", Value: "Abebe Kebede"},
			{Key: "diagnosis", Label: "Diagnosis", Value: "Malaria"},
		},
	}, nil
}

func (f *fakeViews) Source(name string) (service.ViewSource, bool) {
	return service.ViewSource{Name: name, Title: "Patients"}, true
}

// fakeClinical records every submission. err, when set, is returned by every write.
type fakeClinical struct {
	err           error
	photoUploads  bool
	registered    []clinical.PatientRegistration
	visits        []string
	triage        []clinical.TriageRequest
	treatments    []string
	updates       map[string]clinical.RecordUpdate
	prescriptions map[string]clinical.PrescriptionRequest
	labRequests   map[string]clinical.LabRequest
	labResults    map[string]clinical.LabResult
	staff         []clinical.StaffRequest
	photos        []*service.Upload
}

func newFakeClinical() *fakeClinical {
	return &fakeClinical{
		updates:       map[string]clinical.RecordUpdate{},
		prescriptions: map[string]clinical.PrescriptionRequest{},
		labRequests:   map[string]clinical.LabRequest{},
		labResults:    map[string]clinical.LabResult{},
	}
}

func (f *fakeClinical) RegisterPatient(_ context.Context, _ domainauth.Credential, req clinical.PatientRegistration) error {
	f.registered = append(f.registered, req)
	return f.err
}

func (f *fakeClinical) InitiateVisit(_ context.Context, _ domainauth.Credential, faydaID, _ string) error {
	f.visits = append(f.visits, faydaID)
	return f.err
}

func (f *fakeClinical) Doctors(context.Context, domainauth.Credential) ([]service.Option, error) {
	return []service.Option{{Value: "doc-1", Label: "Dr. Hana Tesfaye"}}, nil
}

func (f *fakeClinical) ProcessTriage(_ context.Context, _ domainauth.Credential, req clinical.TriageRequest) error {
	f.triage = append(f.triage, req)
	return f.err
}

func (f *fakeClinical) StartTreatment(_ context.Context, _ domainauth.Credential, recordID string) error {
	f.treatments = append(f.treatments, recordID)
	return f.err
}

func (f *fakeClinical) UpdateRecord(_ context.Context, _ domainauth.Credential, recordID string, req clinical.RecordUpdate) error {
	f.updates[recordID] = req
	return f.err
}

func (f *fakeClinical) AddPrescription(_ context.Context, _ domainauth.Credential, recordID string, req clinical.PrescriptionRequest) error {
	f.prescriptions[recordID] = req
	return f.err
}

func (f *fakeClinical) AddLabRequest(_ context.Context, _ domainauth.Credential, recordID string, req clinical.LabRequest) error {
	f.labRequests[recordID] = req
	return f.err
}

func (f *fakeClinical) SubmitLabResult(_ context.Context, _ domainauth.Credential, requestID string, req clinical.LabResult) error {
	f.labResults[requestID] = req
	return f.err
}

func (f *fakeClinical) AddStaff(_ context.Context, _ domainauth.Credential, req clinical.StaffRequest, photo *service.Upload) error {
	f.staff = append(f.staff, req)
	f.photos = append(f.photos, photo)
	return f.err
}

func (f *fakeClinical) StaffOverview(context.Context, domainauth.Credential) (*service.StaffOverview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.StaffOverview{
		Total:  3,
		ByRole: []service.RoleCount{{Role: "Doctor", Label: "Doctor", Count: 2}, {Role: "Triage", Label: "Triage", Count: 1}},
	}, nil
}

func (f *fakeClinical) PhotoUploads() bool { return f.photoUploads }

// fakeDirectory serves a fixed department and doctor listing.
type fakeDirectory struct{}

func (fakeDirectory) Departments() []directory.Department {
	return []directory.Department{{Name: "Cardiology", Description: "Heart care"}}
}

func (fakeDirectory) Doctors(string) []directory.Doctor {
	return []directory.Doctor{{Name: "Dr. Hana Tesfaye", Specialization: "Cardiologist"}}
}

var (
	doctorSession = domainauth.Authenticated(domainauth.Identity{UserID: "d-1", Name: "Hana Tesfaye"}, domainauth.RoleDoctor)
	triageSession = domainauth.Authenticated(domainauth.Identity{UserID: "t-1", Name: "Meron Alemu"}, domainauth.RoleTriage)
	adminSession  = domainauth.Authenticated(domainauth.Identity{UserID: "a-1", Name: "Dawit Bekele"}, domainauth.RoleHospitalAdministrator)
	pharmSession  = domainauth.Authenticated(domainauth.Identity{UserID: "p-1", Name: "Sara Girma"}, domainauth.RolePharmacist)
)
