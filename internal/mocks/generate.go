// Package mocks provides gomock test doubles for the portal's ports.
//
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	identity := mocks.NewMockIdentityClient(ctrl)
//	identity.EXPECT().Me(gomock.Any(), gomock.Any()).Return(ports.Principal{Role: "Doctor"}, nil)
package mocks

// Generate mock for IdentityClient interface from internal/ports package.
// This creates MockIdentityClient with methods: Me, Login, Logout
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=identity_client_mock.go github.com/maf-y/ArardaHospital-Frontend/internal/ports IdentityClient

// Generate mock for RecordStore interface from internal/ports package.
// This creates MockRecordStore with methods: Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=record_store_mock.go github.com/maf-y/ArardaHospital-Frontend/internal/ports RecordStore

// Generate mock for API interface from internal/ports package.
// This creates MockAPI with methods: Call
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=api_mock.go github.com/maf-y/ArardaHospital-Frontend/internal/ports API

// Generate mock for MediaUploader interface from internal/ports package.
// This creates MockMediaUploader with methods: Upload
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=media_uploader_mock.go github.com/maf-y/ArardaHospital-Frontend/internal/ports MediaUploader

// Generate mock for Clinical interface from internal/ports package.
// This creates MockClinical with methods: Fetch, RegisterPatient, ProcessTriage, StartTreatment,
// UpdateRecord, AddPrescription, AddLabRequest, SubmitLabResult, AddStaff
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=clinical_mock.go github.com/maf-y/ArardaHospital-Frontend/internal/ports Clinical
