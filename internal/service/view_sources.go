package service

import "github.com/maf-y/ArardaHospital-Frontend/internal/domain/clinical"

// View names registered by DefaultViewSources.
const (
	ViewReceptionSearch  = "reception.search"
	ViewReceptionPatient = "reception.patient"
	ViewTriageQueue      = "triage.queue"
	ViewTriagePatient    = "triage.patient"
	ViewDoctorRecords    = "doctor.records"
	ViewDoctorPatient    = "doctor.patient"
	ViewLabRequests      = "lab.requests"
	ViewLabRequest       = "lab.request"
	ViewStaff            = "admin.staff"
	ViewStaffMember      = "admin.staff-member"
	ViewPatientHome      = "patient.home"
	ViewPatientRecords   = "patient.records"
	ViewPatientRx        = "patient.prescriptions"
	ViewPatientDoctor    = "patient.doctor"
)

const (
	exprFullName    = "join(' ', [firstName || '', lastName || ''])"
	exprPatientName = "join(' ', [patient.firstName || patientID.firstName || firstName || '', " +
		"patient.lastName || patientID.lastName || lastName || ''])"
	exprMedicines = "medicines[].name || medicineList[].name"
)

var patientProfileFields = []Field{
	{Key: "faydaID", Label: "Fayda ID"},
	{Key: "name", Label: "Name", Expr: exprFullName},
	{Key: "dateOfBirth", Label: "Date of birth", Format: FormatDate},
	{Key: "gender", Label: "Gender"},
	{Key: "contactNumber", Label: "Phone"},
	{Key: "address", Label: "Address"},
	{Key: "emergencyContact", Label: "Emergency contact", Expr: "join(' · ', [emergencyContact.name || '', emergencyContact.phone || ''])"},
	{Key: "medicalHistory", Label: "Medical history"},
}

var prescriptionFields = []Field{
	{Key: "medicines", Label: "Medicines", Expr: exprMedicines},
	{Key: "instructions", Label: "Instructions"},
	{Key: "datePrescribed", Label: "Prescribed", Expr: "datePrescribed || createdAt", Format: FormatDate},
	{Key: "isFilled", Label: "Filled"},
}

var labRequestFields = []Field{
	{Key: "testType", Label: "Test"},
	{Key: "urgency", Label: "Urgency", Format: FormatBadge},
	{Key: "status", Label: "Status", Format: FormatBadge},
	{Key: "requestDate", Label: "Requested", Expr: "requestDate || createdAt", Format: FormatDate},
	{Key: "results", Label: "Result", Expr: "results.testValue || results"},
}

// DefaultViewSources returns the dashboards' list and detail views over the hospital API.
func DefaultViewSources() []ViewSource {
	return []ViewSource{
		{
			Name:         ViewReceptionSearch,
			Title:        "Patient Registration",
			Path:         "/reception/search-patients",
			Query:        []string{"query"},
			RequireParam: "query",
			ItemsExpr:    "patients || data || @",
			IDExpr:       "faydaID",
			Fields: []Field{
				{Key: "faydaID", Label: "Fayda ID"},
				{Key: "name", Label: "Name", Expr: exprFullName},
				{Key: "gender", Label: "Gender"},
				{Key: "contactNumber", Label: "Phone"},
			},
			RowLink: "/receptionist/registered/{id}",
			Filters: []Filter{{Param: "query", Label: "Search by Fayda ID or name"}},
			Empty:   "No registered patient matches that search.",
		},
		{
			Name:  ViewReceptionPatient,
			Title: "Registered Patient",
			Detail: &DetailSource{
				Path:     "/reception/patient/{id}",
				RootExpr: "patient || data || @",
				Fields:   patientProfileFields,
			},
		},
		{
			Name:      ViewTriageQueue,
			Title:     "Unassigned Patients",
			Path:      "/triage/unassigned",
			Query:     []string{"page", "limit", "search"},
			ItemsExpr: "patients || data || @",
			IDExpr:    "_id || recordId || id",
			TotalExpr: "total",
			PagesExpr: "pages",
			Fields: []Field{
				{Key: "faydaID", Label: "Fayda ID", Expr: "faydaID || patientID.faydaID"},
				{Key: "name", Label: "Name", Expr: exprPatientName},
				{Key: "gender", Label: "Gender", Expr: "gender || patientID.gender"},
				{Key: "urgency", Label: "Urgency", Expr: "triageData.urgency || urgency", Format: FormatBadge},
				{Key: "createdAt", Label: "Registered", Format: FormatDate},
			},
			RowLink: "/triage/process/{id}",
			Actions: []Action{{Label: "Process", Href: "/triage/process/{id}"}},
			Filters: []Filter{{Param: "search", Label: "Search patients"}},
			Empty:   "No patients are waiting for triage.",
		},
		{
			Name:  ViewTriagePatient,
			Title: "Process Patient",
			Detail: &DetailSource{
				Path:     "/triage/patients/{id}",
				RootExpr: "patient || data || @",
				Fields: []Field{
					{Key: "faydaID", Label: "Fayda ID", Expr: "faydaID || patientID.faydaID"},
					{Key: "name", Label: "Name", Expr: exprPatientName},
					{Key: "gender", Label: "Gender", Expr: "gender || patientID.gender"},
					{Key: "dateOfBirth", Label: "Date of birth", Expr: "dateOfBirth || patientID.dateOfBirth", Format: FormatDate},
					{Key: "medicalHistory", Label: "Medical history", Expr: "medicalHistory || patientID.medicalHistory"},
				},
			},
		},
		{
			Name:      ViewDoctorRecords,
			Title:     "Assigned Records",
			Path:      "/doctors/patients",
			Query:     []string{"status"},
			ItemsExpr: "data || patients || @",
			Fields: []Field{
				{Key: "faydaID", Label: "Fayda ID", Expr: "faydaID || patientID.faydaID"},
				{Key: "name", Label: "Name", Expr: exprPatientName},
				{Key: "gender", Label: "Gender", Expr: "gender || patientID.gender"},
				{Key: "age", Label: "Age"},
				{Key: "condition", Label: "Condition", Expr: "condition || triageData.urgency"},
				{Key: "status", Label: "Status", Format: FormatBadge},
				{Key: "updatedAt", Label: "Last visit", Format: FormatDate},
			},
			RowLink:     "/doctor/records/{id}",
			LocalSearch: "search",
			Filters: []Filter{
				{Param: "search", Label: "Search records"},
				{Param: "status", Label: "Status", Options: []string{"Assigned", "InTreatment", "Completed"}},
			},
			Empty: "No records are assigned to you.",
		},
		{
			Name:  ViewDoctorPatient,
			Title: "Patient Record",
			Detail: &DetailSource{
				Path:     "/patients/{id}/profile",
				RootExpr: "data || @",
				RefExpr:  "currentVisit.recordId || currentVisit._id",
				Fields: []Field{
					{Key: "faydaID", Label: "Fayda ID", Expr: "basicInfo.faydaID || faydaID"},
					{Key: "name", Label: "Name", Expr: "join(' ', [basicInfo.firstName || '', basicInfo.lastName || ''])"},
					{Key: "gender", Label: "Gender", Expr: "basicInfo.gender"},
					{Key: "dateOfBirth", Label: "Date of birth", Expr: "basicInfo.dateOfBirth", Format: FormatDate},
					{Key: "bloodGroup", Label: "Blood group", Expr: "basicInfo.bloodGroup || bloodGroup"},
					{Key: "status", Label: "Visit status", Expr: "currentVisit.status", Format: FormatBadge},
					{Key: "urgency", Label: "Urgency", Expr: "currentVisit.triageData.urgency", Format: FormatBadge},
					{Key: "bloodPressure", Label: "Blood pressure", Expr: "currentVisit.triageData.vitals.bloodPressure"},
					{Key: "heartRate", Label: "Heart rate", Expr: "currentVisit.triageData.vitals.heartRate"},
					{Key: "temperature", Label: "Temperature", Expr: "currentVisit.triageData.vitals.temperature"},
					{Key: "oxygenSaturation", Label: "Oxygen saturation", Expr: "currentVisit.triageData.vitals.oxygenSaturation"},
					{Key: "diagnosis", Label: "Diagnosis", Expr: "currentVisit.doctorNotes.diagnosis || currentVisit.diagnosis"},
					{Key: "treatmentPlan", Label: "Treatment plan", Expr: "currentVisit.doctorNotes.treatmentPlan"},
				},
				Sections: []Section{
					{
						Name:      "prescriptions",
						Title:     "Prescriptions",
						Path:      "/records/{ref}/prescriptions",
						ItemsExpr: "data || prescriptions || @",
						Fields:    prescriptionFields,
						Empty:     "No prescriptions yet.",
					},
					{
						Name:      "lab-requests",
						Title:     "Lab Requests",
						Path:      "/records/{ref}/lab-requests",
						ItemsExpr: "data || labRequests || @",
						Fields:    labRequestFields,
						Empty:     "No lab requests yet.",
					},
				},
				Actions: []Action{
					{Label: "Start Treatment", Href: "/doctor/records/{id}/start-treatment?record={ref}", Method: "post", Style: "primary"},
					{Label: "Update Record", Href: "/doctor/records/{id}/update?record={ref}"},
					{Label: "Add Prescription", Href: "/doctor/records/{id}/prescription?record={ref}"},
					{Label: "Request Lab Test", Href: "/doctor/records/{id}/lab-request?record={ref}"},
				},
			},
		},
		{
			Name:      ViewLabRequests,
			Title:     "Test Requests",
			Path:      "/lab/requests",
			Query:     []string{"status", "search"},
			ItemsExpr: "data || requests || @",
			Fields: []Field{
				{Key: "patient", Label: "Patient", Expr: exprPatientName},
				{Key: "faydaID", Label: "Fayda ID", Expr: "patient.faydaID || faydaID"},
				{Key: "testType", Label: "Test"},
				{Key: "urgency", Label: "Urgency", Format: FormatBadge},
				{Key: "status", Label: "Status", Format: FormatBadge},
				{Key: "requestDate", Label: "Requested", Expr: "requestDate || createdAt", Format: FormatDate},
			},
			RowLink: "/laboratorist/requests/{id}",
			Filters: []Filter{
				{Param: "search", Label: "Search requests"},
				{Param: "status", Label: "Status", Options: clinical.LabStatuses},
			},
			Empty: "No lab requests match.",
		},
		{
			Name:  ViewLabRequest,
			Title: "Lab Result",
			Detail: &DetailSource{
				Path:     "/lab/requests/{id}",
				RootExpr: "data || @",
				Fields: []Field{
					{Key: "patient", Label: "Patient", Expr: exprPatientName},
					{Key: "testType", Label: "Test"},
					{Key: "instructions", Label: "Instructions"},
					{Key: "urgency", Label: "Urgency", Format: FormatBadge},
					{Key: "status", Label: "Status", Format: FormatBadge},
					{Key: "testValue", Label: "Test value", Expr: "results.testValue"},
					{Key: "normalRange", Label: "Normal range", Expr: "results.normalRange"},
					{Key: "interpretation", Label: "Interpretation", Expr: "results.interpretation"},
					{Key: "notes", Label: "Notes", Expr: "results.notes"},
				},
			},
		},
		{
			Name:        ViewStaff,
			Title:       "Staff Management",
			Path:        "/hospital-admin/staff",
			ItemsExpr:   "data || staff || @",
			LocalSearch: "search",
			Fields: []Field{
				{Key: "profilePhoto", Label: "", Format: FormatImage},
				{Key: "name", Label: "Name", Expr: exprFullName},
				{Key: "role", Label: "Role", Format: FormatBadge},
				{Key: "email", Label: "E-mail"},
				{Key: "contactNumber", Label: "Phone"},
				{Key: "specialization", Label: "Specialization"},
			},
			RowLink: "/hospital-admin/staff-management/{id}",
			Filters: []Filter{{Param: "search", Label: "Search staff by name"}},
			Empty:   "No staff accounts yet.",
		},
		{
			Name:  ViewStaffMember,
			Title: "Staff Member",
			Detail: &DetailSource{
				Path:     "/hospital-admin/staff/{id}",
				RootExpr: "data || staff || @",
				Fields: []Field{
					{Key: "profilePhoto", Label: "Photo", Format: FormatImage},
					{Key: "name", Label: "Name", Expr: exprFullName},
					{Key: "role", Label: "Role", Format: FormatBadge},
					{Key: "email", Label: "E-mail"},
					{Key: "contactNumber", Label: "Phone"},
					{Key: "gender", Label: "Gender"},
					{Key: "dateOfBirth", Label: "Date of birth", Format: FormatDate},
					{Key: "address", Label: "Address"},
					{Key: "specialization", Label: "Specialization"},
				},
			},
		},
		{
			Name:  ViewPatientHome,
			Title: "My Health",
			Detail: &DetailSource{
				Path:     "/user/{user}",
				RootExpr: "data || user || @",
				Fields:   patientProfileFields,
				Sections: []Section{
					{
						Name:      "doctor",
						Title:     "Assigned Doctor",
						Path:      "/user/{user}/doctor",
						ItemsExpr: "data || doctor || @",
						Fields: []Field{
							{Key: "name", Label: "Name", Expr: exprFullName},
							{Key: "specialization", Label: "Specialization"},
						},
						Empty: "No doctor is assigned yet.",
					},
				},
			},
		},
		{
			Name:      ViewPatientRecords,
			Title:     "Medical Records",
			Path:      "/user/{user}/medical-records",
			ItemsExpr: "data || records || @",
			Fields: []Field{
				{Key: "date", Label: "Date", Expr: "date || createdAt", Format: FormatDate},
				{Key: "diagnosis", Label: "Diagnosis", Expr: "doctorNotes.diagnosis || diagnosis"},
				{Key: "treatmentPlan", Label: "Treatment plan", Expr: "doctorNotes.treatmentPlan"},
				{Key: "urgency", Label: "Urgency", Expr: "triageData.urgency", Format: FormatBadge},
				{Key: "status", Label: "Status", Format: FormatBadge},
			},
			Empty: "You have no medical records yet.",
		},
		{
			Name:      ViewPatientRx,
			Title:     "Prescriptions",
			Path:      "/user/{user}/prescriptions",
			ItemsExpr: "data || prescriptions || @",
			Fields:    prescriptionFields,
			Empty:     "You have no prescriptions.",
		},
		{
			Name:  ViewPatientDoctor,
			Title: "My Doctor",
			Detail: &DetailSource{
				Path:     "/user/{user}/doctor",
				RootExpr: "data || doctor || @",
				Fields: []Field{
					{Key: "profilePhoto", Label: "Photo", Format: FormatImage},
					{Key: "name", Label: "Name", Expr: exprFullName},
					{Key: "specialization", Label: "Specialization"},
					{Key: "email", Label: "E-mail"},
					{Key: "contactNumber", Label: "Phone"},
				},
			},
		},
	}
}
