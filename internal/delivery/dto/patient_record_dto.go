package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreatePatientRecordRequest has no doctor or department: both come from the author.
type CreatePatientRecordRequest struct {
	Patient      uuid.UUID `json:"patient" validate:"required"`
	Diagnostics  string    `json:"diagnostics" validate:"required"`
	Observations string    `json:"observations" validate:"required"`
	Treatments   string    `json:"treatments" validate:"required"`
	Misc         *string   `json:"misc"`
}

// UpdatePatientRecordRequest merges only the fields that are present. The patient cannot change.
type UpdatePatientRecordRequest struct {
	Diagnostics  *string `json:"diagnostics" validate:"omitempty,min=1"`
	Observations *string `json:"observations" validate:"omitempty,min=1"`
	Treatments   *string `json:"treatments" validate:"omitempty,min=1"`
	Misc         *string `json:"misc"`
}

// Response DTOs

type PatientRecordResponse struct {
	RecordID     int64     `json:"record_id"`
	Patient      uuid.UUID `json:"patient"`
	CreatedDate  time.Time `json:"created_date"`
	Diagnostics  string    `json:"diagnostics"`
	Observations string    `json:"observations"`
	Treatments   string    `json:"treatments"`
	Misc         *string   `json:"misc"`
	Doctor       int       `json:"doctor"`
	Department   int       `json:"department"`
}
