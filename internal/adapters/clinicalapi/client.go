// Package clinicalapi implements ports.Clinical over the hospital REST API.
package clinicalapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/clinical"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
)

// Write endpoints. Record and request IDs are path-escaped before substitution.
const (
	pathRegisterPatient = "/reception/register-patient"
	pathProcessTriage   = "/triage/process"
	pathStartTreatment  = "/records/%s/start-treatment"
	pathRecord          = "/records/%s"
	pathPrescriptions   = "/records/%s/prescriptions"
	pathLabRequests     = "/records/%s/lab-requests"
	pathLabRequest      = "/lab/requests/%s"
	pathAddStaff        = "/hospital-admin/add-staff"
)

// Client adapts ports.API to ports.Clinical.
type Client struct {
	api ports.API
}

var _ ports.Clinical = (*Client)(nil)

// New wraps api.
func New(api ports.API) *Client {
	if api == nil {
		panic("clinicalapi: API is required")
	}
	return &Client{api: api}
}

// Fetch GETs path and returns the decoded document.
func (c *Client) Fetch(ctx context.Context, cred domainauth.Credential, path string, query url.Values) (any, error) {
	var doc any
	if err := c.api.Call(ctx, cred, ports.APIRequest{Method: http.MethodGet, Path: path, Query: query}, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// RegisterPatient registers a new patient or initiates a visit for a known one.
func (c *Client) RegisterPatient(ctx context.Context, cred domainauth.Credential, req clinical.PatientRegistration) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return apperrors.ValidationField("faydaID", "Fayda ID is required.")
	}
	return c.post(ctx, cred, pathRegisterPatient, req)
}

// ProcessTriage records triage findings and assigns the doctor.
func (c *Client) ProcessTriage(ctx context.Context, cred domainauth.Credential, req clinical.TriageRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	return c.post(ctx, cred, pathProcessTriage, req)
}

// StartTreatment moves the visit record into treatment.
func (c *Client) StartTreatment(ctx context.Context, cred domainauth.Credential, recordID string) error {
	p, err := idPath(pathStartTreatment, recordID)
	if err != nil {
		return err
	}
	return c.api.Call(ctx, cred, ports.APIRequest{Method: http.MethodPatch, Path: p}, nil)
}

// UpdateRecord saves the doctor's edits to the visit record.
func (c *Client) UpdateRecord(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.RecordUpdate) error {
	p, err := idPath(pathRecord, recordID)
	if err != nil {
		return err
	}
	req.Normalize()
	return c.api.Call(ctx, cred, ports.APIRequest{Method: http.MethodPut, Path: p, Body: req}, nil)
}

// AddPrescription attaches a prescription to the visit record.
func (c *Client) AddPrescription(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.PrescriptionRequest) error {
	p, err := idPath(pathPrescriptions, recordID)
	if err != nil {
		return err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return apperrors.ValidationField("medicines", "Add at least one medicine.")
	}
	return c.post(ctx, cred, p, req)
}

// AddLabRequest orders a lab test for the visit record.
func (c *Client) AddLabRequest(ctx context.Context, cred domainauth.Credential, recordID string, req clinical.LabRequest) error {
	p, err := idPath(pathLabRequests, recordID)
	if err != nil {
		return err
	}
	req.Normalize()
	return c.post(ctx, cred, p, req)
}

// SubmitLabResult updates a lab request with results and status.
func (c *Client) SubmitLabResult(ctx context.Context, cred domainauth.Credential, requestID string, req clinical.LabResult) error {
	p, err := idPath(pathLabRequest, requestID)
	if err != nil {
		return err
	}
	req.Normalize()
	return c.api.Call(ctx, cred, ports.APIRequest{Method: http.MethodPut, Path: p, Body: req}, nil)
}

// AddStaff creates a staff account.
func (c *Client) AddStaff(ctx context.Context, cred domainauth.Credential, req clinical.StaffRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	return c.post(ctx, cred, pathAddStaff, req)
}

func (c *Client) post(ctx context.Context, cred domainauth.Credential, path string, body any) error {
	return c.api.Call(ctx, cred, ports.APIRequest{Method: http.MethodPost, Path: path, Body: body}, nil)
}

var errMissingID = errors.New("missing identifier")

func idPath(format, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.Wrap(errMissingID, apperrors.ErrCodeValidation, "The record identifier is missing.")
	}
	return fmt.Sprintf(format, url.PathEscape(id)), nil
}
