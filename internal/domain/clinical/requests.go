// Package clinical defines the write requests the portal sends to the hospital API.
// Field names follow the backend's JSON; form fields use the same names.
package clinical

import (
	"errors"
	"strings"
)

// Enumerations offered by the portal's forms.
var (
	Genders         = []string{"Male", "Female", "Other"}
	TriageUrgencies = []string{"Low", "Medium", "High", "Critical"}
	LabUrgencies    = []string{"Normal", "Urgent", "STAT"}
	LabStatuses     = []string{"Pending", "In Progress", "Completed"}
	StaffRoles      = []string{"Doctor", "LabTechnician", "Pharmacist", "Receptionist", "Triage"}
)

const (
	DefaultUrgency    = "Medium"
	DefaultLabUrgency = "Normal"
)

// EmergencyContact is the person to call for a registered patient.
type EmergencyContact struct {
	Name     string `json:"name"     mapstructure:"name"`
	Relation string `json:"relation" mapstructure:"relation"`
	Phone    string `json:"phone"    mapstructure:"phone"`
}

// PatientRegistration registers a patient or initiates a visit record for one.
type PatientRegistration struct {
	FaydaID          string           `json:"faydaID"          mapstructure:"faydaID"`
	FirstName        string           `json:"firstName"        mapstructure:"firstName"`
	LastName         string           `json:"lastName"         mapstructure:"lastName"`
	DateOfBirth      string           `json:"dateOfBirth"      mapstructure:"dateOfBirth"`
	Gender           string           `json:"gender"           mapstructure:"gender"`
	ContactNumber    string           `json:"contactNumber"    mapstructure:"contactNumber"`
	Address          string           `json:"address"          mapstructure:"address"`
	EmergencyContact EmergencyContact `json:"emergencyContact" mapstructure:"emergencyContact"`
	MedicalHistory   string           `json:"medicalHistory"   mapstructure:"medicalHistory"`
}

// Normalize trims every field.
func (r *PatientRegistration) Normalize() {
	trim(&r.FaydaID, &r.FirstName, &r.LastName, &r.DateOfBirth, &r.Gender,
		&r.ContactNumber, &r.Address, &r.MedicalHistory,
		&r.EmergencyContact.Name, &r.EmergencyContact.Relation, &r.EmergencyContact.Phone)
}

// Validate checks the identifying fields.
func (r *PatientRegistration) Validate() error {
	if r.FaydaID == "" {
		return errors.New("faydaID is required")
	}
	return nil
}

// Vitals are the measurements taken at triage or during treatment.
type Vitals struct {
	BloodPressure    string `json:"bloodPressure"    mapstructure:"bloodPressure"`
	HeartRate        string `json:"heartRate"        mapstructure:"heartRate"`
	Temperature      string `json:"temperature"      mapstructure:"temperature"`
	OxygenSaturation string `json:"oxygenSaturation" mapstructure:"oxygenSaturation"`
}

func (v *Vitals) normalize() {
	trim(&v.BloodPressure, &v.HeartRate, &v.Temperature, &v.OxygenSaturation)
}

// TriageRequest records triage findings and assigns a doctor.
type TriageRequest struct {
	RecordID  string `json:"recordId"  mapstructure:"recordId"`
	Vitals    Vitals `json:"vitals"    mapstructure:"vitals"`
	Diagnosis string `json:"diagnosis" mapstructure:"diagnosis"`
	Urgency   string `json:"urgency"   mapstructure:"urgency"`
	DoctorID  string `json:"doctorId"  mapstructure:"doctorId"`
}

// Normalize trims fields and defaults the urgency.
func (r *TriageRequest) Normalize() {
	trim(&r.RecordID, &r.Diagnosis, &r.Urgency, &r.DoctorID)
	r.Vitals.normalize()
	if r.Urgency == "" {
		r.Urgency = DefaultUrgency
	}
}

// Validate checks the record and doctor references.
func (r *TriageRequest) Validate() error {
	if r.RecordID == "" {
		return errors.New("recordId is required")
	}
	if r.DoctorID == "" {
		return errors.New("doctorId is required")
	}
	return nil
}

// RecordUpdate is the doctor's edit of the current visit record.
type RecordUpdate struct {
	Diagnosis     string `json:"diagnosis"     mapstructure:"diagnosis"`
	TreatmentPlan string `json:"treatmentPlan" mapstructure:"treatmentPlan"`
	Vitals        Vitals `json:"vitals"        mapstructure:"vitals"`
}

// Normalize trims every field.
func (r *RecordUpdate) Normalize() {
	trim(&r.Diagnosis, &r.TreatmentPlan)
	r.Vitals.normalize()
}

// Medicine is one line of a prescription.
type Medicine struct {
	Name      string `json:"name"      mapstructure:"name"`
	Dosage    string `json:"dosage"    mapstructure:"dosage"`
	Frequency string `json:"frequency" mapstructure:"frequency"`
	Duration  string `json:"duration"  mapstructure:"duration"`
}

// PrescriptionRequest adds a prescription to a visit record.
type PrescriptionRequest struct {
	Medicines    []Medicine `json:"medicines"    mapstructure:"medicines"`
	Instructions string     `json:"instructions" mapstructure:"instructions"`
}

// Normalize trims fields and drops medicine rows without a name.
func (r *PrescriptionRequest) Normalize() {
	trim(&r.Instructions)
	kept := r.Medicines[:0]
	for _, m := range r.Medicines {
		trim(&m.Name, &m.Dosage, &m.Frequency, &m.Duration)
		if m.Name != "" {
			kept = append(kept, m)
		}
	}
	r.Medicines = kept
}

// Validate requires at least one medicine.
func (r *PrescriptionRequest) Validate() error {
	if len(r.Medicines) == 0 {
		return errors.New("at least one medicine is required")
	}
	return nil
}

// LabRequest orders a test for a visit record.
type LabRequest struct {
	TestType     string `json:"testType"     mapstructure:"testType"`
	Instructions string `json:"instructions" mapstructure:"instructions"`
	Urgency      string `json:"urgency"      mapstructure:"urgency"`
}

// Normalize trims fields and defaults the urgency.
func (r *LabRequest) Normalize() {
	trim(&r.TestType, &r.Instructions, &r.Urgency)
	if r.Urgency == "" {
		r.Urgency = DefaultLabUrgency
	}
}

// LabResult is the technician's update of a lab request.
type LabResult struct {
	TestValue      string `json:"testValue"      mapstructure:"testValue"`
	NormalRange    string `json:"normalRange"    mapstructure:"normalRange"`
	Interpretation string `json:"interpretation" mapstructure:"interpretation"`
	Notes          string `json:"notes"          mapstructure:"notes"`
	Status         string `json:"status"         mapstructure:"status"`
}

// Normalize trims fields and defaults the status.
func (r *LabResult) Normalize() {
	trim(&r.TestValue, &r.NormalRange, &r.Interpretation, &r.Notes, &r.Status)
	if r.Status == "" {
		r.Status = LabStatuses[0]
	}
}

// StaffRequest onboards a staff account.
type StaffRequest struct {
	Role           string `json:"role"                     mapstructure:"role"`
	FirstName      string `json:"firstName"                mapstructure:"firstName"`
	LastName       string `json:"lastName"                 mapstructure:"lastName"`
	Email          string `json:"email"                    mapstructure:"email"`
	Password       string `json:"password"                 mapstructure:"password"`
	ProfilePhoto   string `json:"profilePhoto"             mapstructure:"profilePhoto"`
	DateOfBirth    string `json:"dateOfBirth"              mapstructure:"dateOfBirth"`
	Gender         string `json:"gender"                   mapstructure:"gender"`
	ContactNumber  string `json:"contactNumber"            mapstructure:"contactNumber"`
	Address        string `json:"address"                  mapstructure:"address"`
	Specialization string `json:"specialization,omitempty" mapstructure:"specialization"`
}

// Normalize trims fields and clears the specialization for non-doctors.
func (r *StaffRequest) Normalize() {
	trim(&r.Role, &r.FirstName, &r.LastName, &r.Email, &r.ProfilePhoto, &r.DateOfBirth,
		&r.Gender, &r.ContactNumber, &r.Address, &r.Specialization)
	r.Email = strings.ToLower(r.Email)
	if r.Role != "Doctor" {
		r.Specialization = ""
	}
}

// Validate checks the role and the photo reference.
func (r *StaffRequest) Validate() error {
	if !OneOf(r.Role, StaffRoles) {
		return errors.New("role is not a staff role")
	}
	if r.ProfilePhoto == "" {
		return errors.New("profilePhoto is required")
	}
	return nil
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// OneOf reports whether v is exactly one of options.
func OneOf(v string, options []string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
