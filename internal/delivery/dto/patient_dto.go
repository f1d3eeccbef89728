package dto

import "github.com/google/uuid"

// Request DTOs

type CreatePatientRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// UpdatePatientRequest merges only the fields that are present.
type UpdatePatientRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=150"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type DepartmentPatientUpdate struct {
	ID       uuid.UUID `json:"id" validate:"required"`
	Username *string   `json:"username" validate:"omitempty,min=1,max=150"`
	Email    *string   `json:"email" validate:"omitempty,email"`
	Password *string   `json:"password" validate:"omitempty,min=6"`
}

// Response DTOs

type PatientResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}
