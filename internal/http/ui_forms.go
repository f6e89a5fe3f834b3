package httpx

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/access"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/clinical"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/http/validation"
	"github.com/maf-y/ArardaHospital-Frontend/internal/service"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)

const defaultMedicineRows = 3

var (
	registrationMeta = PageMeta{Title: "Register Patient", PageTitle: "Patient Registration", CurrentPage: PageRegistrationForm}
	visitMeta        = PageMeta{Title: "Registered Patient", PageTitle: "Registered Patient", CurrentPage: PageVisitForm}
	triageMeta       = PageMeta{Title: "Process Patient", PageTitle: "Triage Assessment", CurrentPage: PageTriageForm}
	recordMeta       = PageMeta{Title: "Update Record", PageTitle: "Update Medical Record", CurrentPage: PageRecordForm}
	prescriptionMeta = PageMeta{Title: "Add Prescription", PageTitle: "Add Prescription", CurrentPage: PagePrescriptionForm}
	labRequestMeta   = PageMeta{Title: "Request Lab Test", PageTitle: "Request Lab Test", CurrentPage: PageLabRequestForm}
	labResultMeta    = PageMeta{Title: "Lab Request", PageTitle: "Submit Lab Result", CurrentPage: PageLabResultForm}
	staffMeta        = PageMeta{Title: "Add Staff", PageTitle: "Add New Staff", CurrentPage: PageStaffForm}
	overviewMeta     = PageMeta{Title: "Hospital Overview", PageTitle: "Hospital Overview", CurrentPage: PageAdminOverview}
)

// formDetail loads the record a form acts on. Forms still render when it cannot be
// loaded, so failures are only logged.
func (h *UIHandlers) formDetail(ctx context.Context, r *http.Request, cred domainauth.Credential, view string) *service.DetailView {
	detail, err := h.Views.Detail(ctx, view, service.ViewRequest{
		Credential: cred,
		UserID:     GetSessionFromContext(r.Context()).Identity.UserID,
		ID:         r.PathValue("id"),
	})
	if err != nil {
		h.logger().DebugContext(ctx, "form record unavailable", "view", view, "error", err)
		return nil
	}
	return detail
}

// detailForm serves the GET side of a form that acts on a loaded record. prefill maps
// the record into the form's initial values.
func (h *UIHandlers) detailForm(view string, meta PageMeta, extra map[string]any, prefill func(*service.DetailView) map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, ok := h.loadDetail(w, r, view, meta)
		if !ok {
			return
		}
		b := h.page(r, meta).With("Detail", detail).With("Record", r.URL.Query().Get("record"))
		for k, v := range extra {
			b.With(k, v)
		}
		if prefill != nil {
			b.With("Form", prefill(detail))
		}
		h.renderDashboardPage(w, r, b.Build())
	}
}

// recordRef returns the visit record a doctor form writes to.
func recordRef(r *http.Request) (string, error) {
	ref := strings.TrimSpace(r.URL.Query().Get("record"))
	if ref == "" {
		return "", apperrors.Validation("This patient has no open visit record.")
	}
	return ref, nil
}

func doctorRecordURL(r *http.Request) string {
	return "/doctor/records/" + url.PathEscape(r.PathValue("id"))
}

// RegistrationForm renders the new patient form.
func (h *UIHandlers) RegistrationForm(w http.ResponseWriter, r *http.Request) {
	h.renderDashboardPage(w, r, h.page(r, registrationMeta).With("Genders", clinical.Genders).Build())
}

// RegisterPatient submits the new patient form and shows the patient in the search.
func (h *UIHandlers) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	cred, ok := h.credential(w, r)
	if !ok {
		return
	}
	HandleForm(h, FormHandlerOpts[clinical.PatientRegistration]{
		W:        w,
		R:        r,
		PageMeta: registrationMeta,
		Check:    checkRegistration,
		Submit: func(ctx context.Context, req clinical.PatientRegistration) error {
			return h.Clinical.RegisterPatient(ctx, cred, req)
		},
		ExtraData: map[string]any{"Genders": clinical.Genders},
		SuccessURLFor: func(req clinical.PatientRegistration) string {
			return access.LandingReceptionist + "?query=" + url.QueryEscape(strings.TrimSpace(req.FaydaID))
		},
		SuccessMessage: "Patient registered.",
	})
}

func checkRegistration(_ *http.Request, req *clinical.PatientRegistration) map[string]string {
	return validation.New().
		Validate("faydaID", req.FaydaID, validation.Required("Fayda ID", 64)).
		Validate("firstName", req.FirstName, validation.Required("First name", 100)).
		Validate("lastName", req.LastName, validation.Required("Last name", 100)).
		Validate("dateOfBirth", req.DateOfBirth, validation.Date("Date of birth")).
		Validate("gender", req.Gender, validation.OptionalOneOf("Gender", clinical.Genders)).
		Validate("contactNumber", req.ContactNumber, validation.Pattern("Phone number", phonePattern)).
		Validate("address", req.Address, validation.Optional("Address", 300)).
		Validate("emergencyContact.name", req.EmergencyContact.Name, validation.Optional("Contact name", 100)).
		Validate("emergencyContact.phone", req.EmergencyContact.Phone, validation.Pattern("Contact phone", phonePattern)).
		Validate("medicalHistory", req.MedicalHistory, validation.Optional("Medical history", 4000)).
		Errors()
}

// RegisteredPatient shows a registered patient with the form that opens a new visit.
func (h *UIHandlers) RegisteredPatient(w http.ResponseWriter, r *http.Request) {
	h.detailForm(service.ViewReceptionPatient, visitMeta, nil, nil)(w, r)
}

type visitForm struct {
	MedicalHistory string `mapstructure:"medicalHistory"`
}

// InitiateVisit opens a visit record for the registered patient in the path.
func (h *UIHandlers) InitiateVisit(w http.ResponseWriter, r *http.Request) {
	cred, ok := h.credential(w, r)
	if !ok {
		return
	}
	faydaID := r.PathValue("id")
	HandleForm(h, FormHandlerOpts[visitForm]{
		W:        w,
		R:        r,
		PageMeta: visitMeta,
		Check: func(_ *http.Request, req *visitForm) map[string]string {
			return validation.New().
				Validate("medicalHistory", req.MedicalHistory, validation.Optional("Medical history", 4000)).
				Errors()
		},
		Submit: func(ctx context.Context, req visitForm) error {
			return h.Clinical.InitiateVisit(ctx, cred, faydaID, req.MedicalHistory)
		},
		LoadExtra: func(ctx context.Context) map[string]any {
			return map[string]any{"Detail": h.formDetail(ctx, r, cred, service.ViewReceptionPatient)}
		},
		SuccessURL:     access.LandingReceptionist + "?query=" + url.QueryEscape(faydaID),
		SuccessMessage: "Visit started. The patient is now in the triage queue.",
	})
}

// TriageForm shows a queued patient with the triage form and the doctors to assign.
func (h *UIHandlers) TriageForm(w http.ResponseWriter, r *http.Request) {
	var (
		detail  *service.DetailView
		doctors []service.Option
	)
	ok := h.loadView(w, r, triageMeta, r.PathValue("id"), func(ctx context.Context, req service.ViewRequest) error {
		var err error
		if detail, err = h.Views.Detail(ctx, service.ViewTriagePatient, req); err != nil {
			return err
		}
		doctors, err = h.Clinical.Doctors(ctx, req.Credential)
		return err
	})
	if !ok {
		return
	}
	data := h.page(r, triageMeta).
		With("Detail", detail).
		With("Doctors", doctors).
		With("Urgencies", clinical.TriageUrgencies).
		With("Form", map[string]string{"urgency": clinical.DefaultUrgency}).
		Build()
	h.renderDashboardPage(w, r, data)
}

// ProcessTriage records the triage assessment for the record in the path.
func (h *UIHandlers) ProcessTriage(w http.ResponseWriter, r *http.Request) {
	cred, ok := h.credential(w, r)
	if !ok {
		return
	}
	recordID := r.PathValue("id")
	HandleForm(h, FormHandlerOpts[clinical.TriageRequest]{
		W:        w,
		R:        r,
		PageMeta: triageMeta,
		Check: func(_ *http.Request, req *clinical.TriageRequest) map[string]string {
			return checkVitals(validation.New(), req.Vitals).
				Validate("doctorId", req.DoctorID, validation.Required("Doctor", 64)).
				Validate("urgency", req.Urgency, validation.OptionalOneOf("Urgency", clinical.TriageUrgencies)).
				Validate("diagnosis", req.Diagnosis, validation.Optional("Initial assessment", 2000)).
				Errors()
		},
		Submit: func(ctx context.Context, req clinical.TriageRequest) error {
			req.RecordID = recordID
			return h.Clinical.ProcessTriage(ctx, cred, req)
		},
		ExtraData: map[string]any{"Urgencies": clinical.TriageUrgencies},
		LoadExtra: func(ctx context.Context) map[string]any {
			doctors, err := h.Clinical.Doctors(ctx, cred)
			if err != nil {
				h.logger().DebugContext(ctx, "doctor list unavailable", "error", err)
			}
			return map[string]any{
				"Detail":  h.formDetail(ctx, r, cred, service.ViewTriagePatient),
				"Doctors": doctors,
			}
		},
		SuccessURL:     access.LandingTriage,
		SuccessMessage: "Patient assigned to the doctor.",
	})
}

func checkVitals(fv *validation.FieldValidator, v clinical.Vitals) *validation.FieldValidator {
	return fv.
		Validate("vitals.bloodPressure", v.BloodPressure, validation.Optional("Blood pressure", 20)).
		Validate("vitals.heartRate", v.HeartRate, validation.Optional("Heart rate", 10)).
		Validate("vitals.temperature", v.Temperature, validation.Optional("Temperature", 10)).
		Validate("vitals.oxygenSaturation", v.OxygenSaturation, validation.Optional("Oxygen saturation", 10))
}

// StartTreatment moves the patient's open visit into treatment and reloads the record.
func (h *UIHandlers) StartTreatment(w http.ResponseWriter, r *http.Request) {
	cred, ok := h.credential(w, r)
	if !ok {
		return
	}
	back := doctorRecordURL(r)

	ref, err := recordRef(r)
	if err == nil {
		err = h.Clinical.StartTreatment(r.Context(), cred, ref)
	}
	switch {
	case err == nil:
		completeForm(w, r, back, "Treatment started.")
	case apperrors.IsUnauthorized(err):
		h.endSession(w, r)
	default:
		h.logger().InfoContext(r.Context(), "start treatment rejected", "error", err)
		if !IsHTMX(r) {
			http.Redirect(w, r, back, http.StatusSeeOther)
			return
		}
		triggerToast(w, apperrors.UserMessage(err), "error")
		HTMX(w).Discard()
	}
}

// RecordForm renders the doctor's record update form, prefilled from the record.
func (h *UIHandlers) RecordForm(w http.ResponseWriter, r *http.Request) {
	h.detailForm(service.ViewDoctorPatient, recordMeta, nil, func(d *service.DetailView) map[string]string {
		return map[string]string{
			"diagnosis":               d.Field("diagnosis"),
			"treatmentPlan":           d.Field("treatmentPlan"),
			"vitals.bloodPressure":    d.Field("bloodPressure"),
			"vitals.heartRate":        d.Field("heartRate"),
			"vitals.temperature":      d.Field("temperature"),
			"vitals.oxygenSaturation": d.Field("oxygenSaturation"),
		}
	})(w, r)
}

// UpdateRecord saves the doctor's notes on the open visit.
func (h *UIHandlers) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	cred, ok := h.credential(w, r)
	if !ok {
		return
	}
	HandleForm(h, FormHandlerOpts[clinical.RecordUpdate]{
		W:        w,
		R:        r,
		PageMeta: recordMeta,
		Check: func(_ *http.Request, req *clinical.RecordUpdate) map[string]string {
			return checkVitals(validation.New(), req.Vitals).
				Validate("diagnosis", req.Diagnosis, validation.Required("Diagnosis", 2000)).
				Validate("treatmentPlan", req.TreatmentPlan, validation.Optional("Treatment plan", 4000)).
				Errors()
		},
		Submit: func(ctx context.Context, req clinical.RecordUpdate) error {
			ref, err := recordRef(r)
			if err != nil {
				return err
			}
			return h.Clinical.UpdateRecord(ctx, cred, ref, req)
		},
		ExtraData: map[string]any{"Record": r.URL.Query().Get("record")},
		LoadExtra: func(ctx context.Context) map[string]any {
			return map[string]any{"Detail": h.formDetail(ctx, r, cred, service.ViewDoctorPatient)}
		},
		SuccessURL:     doctorRecordURL(r),
		SuccessMessage: "Medical record updated.",
	})
}

// PrescriptionForm renders the prescription form.
func (h *UIHandlers) PrescriptionForm(w http.ResponseWriter, r *http.Request) {
	h.detailForm(service.ViewDoctorPatient, prescriptionMeta, map[string]any{"MedicineRows": defaultMedicineRows}, nil)(w, r)
}

// AddPrescription adds a prescription to the open visit.
func (h *UIHandlers) AddPrescription(w http.ResponseWriter, r *http.Request) {
	cred, ok := h.credential(w, r)
	if !ok {
		return
	}
	HandleForm(h, FormHandlerOpts[clinical.PrescriptionRequest]{
		W:        w,
		R:        r,
		PageMeta: prescriptionMeta,
		Check:    checkPrescription,
		Submit: func(ctx context.Context, req clinical.PrescriptionRequest) error {
			ref, err := recordRef(r)
			if err != nil {
				return err
			}
			return h.Clinical.AddPrescription(ctx, cred, ref, req)
		},
		LoadExtra: func(ctx context.Context) map[string]any {
			return map[string]any{
				"Detail":       h.formDetail(ctx, r, cred, service.ViewDoctorPatient),
				"Record":       r.URL.Query().Get("record"),
				"MedicineRows": medicineRows(r),
			}
		},
		SuccessURL:     doctorRecordURL(r),
		SuccessMessage: "Prescription added.",
	})
}

func checkPrescription(_ *http.Request, req *clinical.PrescriptionRequest) map[string]string {
	fv := validation.New().
		Validate("instructions", req.Instructions, validation.Optional("Instructions", 2000))
	named := 0
	for i, m := range req.Medicines {
		if strings.TrimSpace(m.Name) == "" {
			continue
		}
		named++
		prefix := "medicines." + strconv.Itoa(i) + "."
		fv.Validate(prefix+"name", m.Name, validation.Optional("Medicine", 200)).
			Validate(prefix+"dosage", m.Dosage, validation.Optional("Dosage", 100)).
			Validate(prefix+"frequency", m.Frequency, validation.Optional("Frequency", 100)).
			Validate(prefix+"duration", m.Duration, validation.Optional("Duration", 100))
	}
	if named == 0 {
		fv.Validate("medicines", "", validation.Required("At least one medicine", 0))
	}
	return fv.Errors()
}

// medicineRows is how many medicine rows the re-rendered prescription form shows.
func medicineRows(r *http.Request) int {
	rows := defaultMedicineRows
	for k := range r.PostForm {
		rest, ok := strings.CutPrefix(k, "medicines.")
		if !ok {
			continue
		}
		idx, _, _ := strings.Cut(rest, ".")
		if n, err := strconv.Atoi(idx); err == nil && n+1 > rows {
			rows = n + 1
		}
	}
	return rows
}

// LabRequestForm renders the lab test request form.
func (h *UIHandlers) LabRequestForm(w http.ResponseWriter, r *http.Request) {
	h.detailForm(service.ViewDoctorPatient, labRequestMeta,
		map[string]any{"Urgencies": clinical.LabUrgencies},
		func(*service.DetailView) map[string]string {
			return map[string]string{"urgency": clinical.DefaultLabUrgency}
		})(w, r)
}

// AddLabRequest orders a lab test for the open visit.
func (h *UIHandlers) AddLabRequest(w http.ResponseWriter, r *http.Request) {
	cred, ok := h.credential(w, r)
	if !ok {
		return
	}
	HandleForm(h, FormHandlerOpts[clinical.LabRequest]{
		W:        w,
		R:        r,
		PageMeta: labRequestMeta,
		Check: func(_ *http.Request, req *clinical.LabRequest) map[string]string {
			return validation.New().
				Validate("testType", req.TestType, validation.Required("Test type", 200)).
				Validate("urgency", req.Urgency, validation.OptionalOneOf("Urgency", clinical.LabUrgencies)).
				Validate("instructions", req.Instructions, validation.Optional("Instructions", 2000)).
				Errors()
		},
		Submit: func(ctx context.Context, req clinical.LabRequest) error {
			ref, err := recordRef(r)
			if err != nil {
				return err
			}
			return h.Clinical.AddLabRequest(ctx, cred, ref, req)
		},
		ExtraData: map[string]any{
			"Urgencies": clinical.LabUrgencies,
			"Record":    r.URL.Query().Get("record"),
		},
		LoadExtra: func(ctx context.Context) map[string]any {
			return map[string]any{"Detail": h.formDetail(ctx, r, cred, service.ViewDoctorPatient)}
		},
		SuccessURL:     doctorRecordURL(r),
		SuccessMessage: "Lab test requested.",
	})
}

// LabResultForm shows a lab request with the result form, prefilled with any saved result.
func (h *UIHandlers) LabResultForm(w http.ResponseWriter, r *http.Request) {
	h.detailForm(service.ViewLabRequest, labResultMeta,
		map[string]any{"Statuses": clinical.LabStatuses},
		func(d *service.DetailView) map[string]string {
			status := d.Field("status")
			if !clinical.OneOf(status, clinical.LabStatuses) {
				status = clinical.LabStatuses[0]
			}
			return map[string]string{
				"testValue":      d.Field("testValue"),
				"normalRange":    d.Field("normalRange"),
				"interpretation": d.Field("interpretation"),
				"notes":          d.Field("notes"),
				"status":         status,
			}
		})(w, r)
}

// SubmitLabResult records the result for the lab request in the path.
func (h *UIHandlers) SubmitLabResult(w http.ResponseWriter, r *http.Request) {
	cred, ok := h.credential(w, r)
	if !ok {
		return
	}
	requestID := r.PathValue("id")
	HandleForm(h, FormHandlerOpts[clinical.LabResult]{
		W:        w,
		R:        r,
		PageMeta: labResultMeta,
		Check: func(_ *http.Request, req *clinical.LabResult) map[string]string {
			return validation.New().
				Validate("testValue", req.TestValue, validation.Required("Test value", 500)).
				Validate("normalRange", req.NormalRange, validation.Optional("Normal range", 200)).
				Validate("interpretation", req.Interpretation, validation.Optional("Interpretation", 2000)).
				Validate("notes", req.Notes, validation.Optional("Notes", 2000)).
				Validate("status", req.Status, validation.OptionalOneOf("Status", clinical.LabStatuses)).
				Errors()
		},
		Submit: func(ctx context.Context, req clinical.LabResult) error {
			return h.Clinical.SubmitLabResult(ctx, cred, requestID, req)
		},
		ExtraData: map[string]any{"Statuses": clinical.LabStatuses},
		LoadExtra: func(ctx context.Context) map[string]any {
			return map[string]any{"Detail": h.formDetail(ctx, r, cred, service.ViewLabRequest)}
		},
		SuccessURL:     access.LandingLabTechnician,
		SuccessMessage: "Lab result saved.",
	})
}

// AdminOverview renders the hospital administrator's staff summary.
func (h *UIHandlers) AdminOverview(w http.ResponseWriter, r *http.Request) {
	var overview *service.StaffOverview
	ok := h.loadView(w, r, overviewMeta, "", func(ctx context.Context, req service.ViewRequest) error {
		var err error
		overview, err = h.Clinical.StaffOverview(ctx, req.Credential)
		return err
	})
	if !ok {
		return
	}
	h.renderDashboardPage(w, r, h.page(r, overviewMeta).With("Overview", overview).Build())
}

func (h *UIHandlers) staffFormData() map[string]any {
	return map[string]any{
		"StaffRoles":   clinical.StaffRoles,
		"Genders":      clinical.Genders,
		"PhotoUploads": h.Clinical.PhotoUploads(),
	}
}

// StaffForm renders the add-staff form.
func (h *UIHandlers) StaffForm(w http.ResponseWriter, r *http.Request) {
	b := h.page(r, staffMeta)
	for k, v := range h.staffFormData() {
		b.With(k, v)
	}
	h.renderDashboardPage(w, r, b.Build())
}

// AddStaff onboards a staff account. The profile photo is either uploaded with the
// form or given as an image URL.
func (h *UIHandlers) AddStaff(w http.ResponseWriter, r *http.Request) {
	cred, ok := h.credential(w, r)
	if !ok {
		return
	}
	HandleForm(h, FormHandlerOpts[clinical.StaffRequest]{
		W:        w,
		R:        r,
		PageMeta: staffMeta,
		Check:    h.checkStaff,
		Submit: func(ctx context.Context, req clinical.StaffRequest) error {
			photo, err := formFile(r, "photo")
			if err != nil {
				return apperrors.ValidationField("photo", "The photo could not be read.")
			}
			defer photo.Close()
			return h.Clinical.AddStaff(ctx, cred, req, photo.Upload())
		},
		ExtraData:      h.staffFormData(),
		SuccessURL:     "/hospital-admin/staff-management",
		SuccessMessage: "Staff member added.",
	})
}

func (h *UIHandlers) checkStaff(r *http.Request, req *clinical.StaffRequest) map[string]string {
	fv := validation.New().
		Validate("role", req.Role, validation.OneOf("Role", clinical.StaffRoles)).
		Validate("firstName", req.FirstName, validation.Required("First name", 100)).
		Validate("lastName", req.LastName, validation.Required("Last name", 100)).
		Validate("email", req.Email, validation.Email("E-mail", 254)).
		Validate("password", req.Password, validation.RequiredRange("Password", 8, 128)).
		Validate("dateOfBirth", req.DateOfBirth, validation.Date("Date of birth")).
		Validate("gender", req.Gender, validation.OptionalOneOf("Gender", clinical.Genders)).
		Validate("contactNumber", req.ContactNumber, validation.Pattern("Phone number", phonePattern)).
		Validate("address", req.Address, validation.Optional("Address", 300))
	if strings.EqualFold(strings.TrimSpace(req.Role), "Doctor") {
		fv.Validate("specialization", req.Specialization, validation.Required("Specialization", 100))
	}

	photo, err := formFile(r, "photo")
	switch {
	case err != nil:
		fv.Validate("photo", "", validation.Required("A readable photo", 0))
	case photo != nil:
		photo.Close()
		if !h.Clinical.PhotoUploads() {
			fv.Validate("photo", "", validation.Required("A photo URL", 0))
		}
	default:
		fv.Validate("profilePhoto", req.ProfilePhoto, validation.HTTPSURL("Profile photo", 2048))
	}
	return fv.Errors()
}
