package clinical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrescriptionRequest_NormalizeDropsBlankRows(t *testing.T) {
	r := PrescriptionRequest{
		Instructions: "  after meals ",
		Medicines: []Medicine{
			{Name: " Amoxicillin ", Dosage: "500mg"},
			{Name: "  "},
			{Name: "Paracetamol", Frequency: " 3x daily "},
		},
	}
	r.Normalize()

	assert.Equal(t, "after meals", r.Instructions)
	assert.Equal(t, []Medicine{
		{Name: "Amoxicillin", Dosage: "500mg"},
		{Name: "Paracetamol", Frequency: "3x daily"},
	}, r.Medicines)
	assert.NoError(t, r.Validate())

	empty := PrescriptionRequest{Medicines: []Medicine{{}}}
	empty.Normalize()
	assert.Error(t, empty.Validate())
}

func TestStaffRequest_Normalize(t *testing.T) {
	r := StaffRequest{Role: "Triage", Email: " Nurse@Arada.ET ", Specialization: "Cardiology", ProfilePhoto: "https://m/x.png"}
	r.Normalize()
	assert.Equal(t, "nurse@arada.et", r.Email)
	assert.Empty(t, r.Specialization)
	assert.NoError(t, r.Validate())

	r.Role = "Admin"
	assert.Error(t, r.Validate())
}

func TestDefaults(t *testing.T) {
	tr := TriageRequest{RecordID: " r1 ", DoctorID: "d1"}
	tr.Normalize()
	assert.Equal(t, "r1", tr.RecordID)
	assert.Equal(t, DefaultUrgency, tr.Urgency)
	assert.NoError(t, tr.Validate())

	lr := LabRequest{TestType: "CBC"}
	lr.Normalize()
	assert.Equal(t, DefaultLabUrgency, lr.Urgency)

	res := LabResult{}
	res.Normalize()
	assert.Equal(t, "Pending", res.Status)

	pr := PatientRegistration{}
	pr.Normalize()
	assert.Error(t, pr.Validate())
}
