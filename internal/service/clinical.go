package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/mitchellh/mapstructure"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/clinical"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
	"github.com/maf-y/ArardaHospital-Frontend/internal/util"
)

const (
	pathReceptionPatient = "/reception/patient/%s"
	pathTriageDoctors    = "/triage/doctors"
	pathStaff            = "/hospital-admin/staff"
)

var (
	exprPatientRoot    = mustCompile("patient || data || @")
	exprDoctorList     = mustCompile("doctors || data || @")
	exprStaffList      = mustCompile("data || staff || @")
	exprDoctorID       = mustCompile("_id || id || userId")
	exprDoctorLabel    = mustCompile(exprFullName)
	exprSpecialization = mustCompile("specialization")
	exprRole           = mustCompile("role")
)

func mustCompile(expr string) jmespath.JMESPath {
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		panic(err)
	}
	return compiled
}

// Option is a value/label pair for a form select.
type Option struct {
	Value string
	Label string
}

// Upload is a file submitted with a form.
type Upload struct {
	Filename string
	Body     io.Reader
}

// RoleCount is the number of staff accounts holding one role.
type RoleCount struct {
	Role  string
	Label string
	Count int
}

// StaffOverview summarises the hospital's staff accounts.
type StaffOverview struct {
	Total  int
	ByRole []RoleCount
}

// ClinicalServiceOptions groups dependencies for ClinicalService.
type ClinicalServiceOptions struct {
	Clinical ports.Clinical
	// Media uploads staff photos. Optional; without it photo uploads are rejected.
	Media  ports.MediaUploader
	Logger *slog.Logger
}

// ClinicalService performs the dashboards' form submissions and the lookups that
// feed their selects.
type ClinicalService struct {
	clinical ports.Clinical
	media    ports.MediaUploader
	logger   *slog.Logger
}

// NewClinicalService constructs a ClinicalService.
func NewClinicalService(opts ClinicalServiceOptions) *ClinicalService {
	if opts.Clinical == nil {
		panic("ClinicalService requires a Clinical port")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ClinicalService{
		clinical: opts.Clinical,
		media:    opts.Media,
		logger:   logger.With("component", "clinical_service"),
	}
}

// PhotoUploads reports whether staff photos can be uploaded.
func (s *ClinicalService) PhotoUploads() bool { return s.media != nil }

// RegisterPatient registers a new patient.
func (s *ClinicalService) RegisterPatient(ctx context.Context, cred domainauth.Credential, req clinical.PatientRegistration) error {
	if err := s.clinical.RegisterPatient(ctx, cred, req); err != nil {
		return fmt.Errorf("register patient: %w", err)
	}
	s.logger.InfoContext(ctx, "patient registered")
	return nil
}

// InitiateVisit opens a new visit record for an already registered patient, reusing
// the stored registration and replacing its medical history note.
func (s *ClinicalService) InitiateVisit(ctx context.Context, cred domainauth.Credential, faydaID, medicalHistory string) error {
	faydaID = strings.TrimSpace(faydaID)
	if faydaID == "" {
		return apperrors.ValidationField("faydaID", "The patient's Fayda ID is missing.")
	}
	doc, err := s.clinical.Fetch(ctx, cred, fmt.Sprintf(pathReceptionPatient, url.PathEscape(faydaID)), nil)
	if err != nil {
		return fmt.Errorf("load patient: %w", err)
	}

	reg, err := decodeRegistration(search(exprPatientRoot, doc))
	if err != nil {
		return err
	}
	reg.FaydaID = faydaID
	if strings.TrimSpace(medicalHistory) != "" {
		reg.MedicalHistory = medicalHistory
	}

	if err := s.clinical.RegisterPatient(ctx, cred, reg); err != nil {
		return fmt.Errorf("initiate visit: %w", err)
	}
	return nil
}

func decodeRegistration(root any) (clinical.PatientRegistration, error) {
	var reg clinical.PatientRegistration
	m, ok := root.(map[string]any)
	if !ok {
		return reg, apperrors.NotFound("The patient record was not found.")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &reg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return reg, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build decoder")
	}
	if err := dec.Decode(m); err != nil {
		return reg, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "The patient record could not be read.")
	}
	reg.DateOfBirth = util.FormatISODate(m["dateOfBirth"])
	return reg, nil
}

// Doctors lists the doctors triage can assign a patient to.
func (s *ClinicalService) Doctors(ctx context.Context, cred domainauth.Credential) ([]Option, error) {
	doc, err := s.clinical.Fetch(ctx, cred, pathTriageDoctors, nil)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	items := asItems(search(exprDoctorList, doc))
	out := make([]Option, 0, len(items))
	for _, item := range items {
		id := util.DisplayValue(search(exprDoctorID, item))
		if id == util.Placeholder {
			continue
		}
		label := "Dr. " + util.DisplayValue(search(exprDoctorLabel, item))
		if specialty := util.DisplayValue(search(exprSpecialization, item)); specialty != util.Placeholder {
			label += " (" + specialty + ")"
		}
		out = append(out, Option{Value: id, Label: label})
	}
	return out, nil
}

// ProcessTriage records triage findings and assigns the doctor.
func (s *ClinicalService) ProcessTriage(ctx context.Context, cred domainauth.Credential, req clinical.TriageRequest) error {
	if err := s.clinical.ProcessTriage(ctx, cred, req); err != nil {
		return fmt.Errorf("process triage: %w", err)
	}
	return nil
}

// StartTreatment moves a visit record into treatment.
func (s *ClinicalService) StartTreatment(ctx context.Context, cred domainauth.Credential, recordID string) error {
	if err := s.clinical.StartTreatment(ctx, cred, recordID); err != nil {
		return fmt.Errorf("start treatment: %w", err)
	}
	return nil
}

// UpdateRecord saves the doctor's notes on a visit record.
func (s *ClinicalService) UpdateRecord(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.RecordUpdate) error {
	if err := s.clinical.UpdateRecord(ctx, cred, recordID, req); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

// AddPrescription adds a prescription to a visit record.
func (s *ClinicalService) AddPrescription(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.PrescriptionRequest) error {
	if err := s.clinical.AddPrescription(ctx, cred, recordID, req); err != nil {
		return fmt.Errorf("add prescription: %w", err)
	}
	return nil
}

// AddLabRequest orders a lab test for a visit record.
func (s *ClinicalService) AddLabRequest(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.LabRequest) error {
	if err := s.clinical.AddLabRequest(ctx, cred, recordID, req); err != nil {
		return fmt.Errorf("add lab request: %w", err)
	}
	return nil
}

// SubmitLabResult records the technician's result for a lab request.
func (s *ClinicalService) SubmitLabResult(ctx context.Context, cred domainauth.Credential, requestID string, req clinical.LabResult) error {
	if err := s.clinical.SubmitLabResult(ctx, cred, requestID, req); err != nil {
		return fmt.Errorf("submit lab result: %w", err)
	}
	return nil
}

// AddStaff onboards a staff account. A submitted photo is uploaded to the media host
// first and its public URL stored as the profile photo.
func (s *ClinicalService) AddStaff(ctx context.Context, cred domainauth.Credential, req clinical.StaffRequest, photo *Upload) error {
	if photo != nil {
		if s.media == nil {
			return apperrors.ValidationField("profilePhoto", "Photo uploads are not configured; paste an image URL instead.")
		}
		photoURL, err := s.media.Upload(ctx, photo.Filename, photo.Body)
		if err != nil {
			return fmt.Errorf("upload staff photo: %w", err)
		}
		req.ProfilePhoto = photoURL
	}
	if err := s.clinical.AddStaff(ctx, cred, req); err != nil {
		return fmt.Errorf("add staff: %w", err)
	}
	s.logger.InfoContext(ctx, "staff account added", "role", req.Role)
	return nil
}

// StaffOverview counts staff accounts per role, in role order. Roles outside the
// role set are counted under "Other".
func (s *ClinicalService) StaffOverview(ctx context.Context, cred domainauth.Credential) (*StaffOverview, error) {
	doc, err := s.clinical.Fetch(ctx, cred, pathStaff, nil)
	if err != nil {
		return nil, fmt.Errorf("load staff: %w", err)
	}

	counts := make(map[domainauth.Role]int)
	other := 0
	items := asItems(search(exprStaffList, doc))
	for _, item := range items {
		role, parseErr := domainauth.ParseRole(util.DisplayValue(search(exprRole, item)))
		if parseErr != nil {
			other++
			continue
		}
		counts[role]++
	}

	out := &StaffOverview{Total: len(items)}
	for _, role := range domainauth.AllRoles() {
		if role == domainauth.RolePatient {
			continue
		}
		out.ByRole = append(out.ByRole, RoleCount{Role: string(role), Label: role.Label(), Count: counts[role]})
	}
	if other > 0 {
		out.ByRole = append(out.ByRole, RoleCount{Role: "Other", Label: "Other", Count: other})
	}
	return out, nil
}
