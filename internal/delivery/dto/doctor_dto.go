package dto

import "github.com/google/uuid"

// MaskedPassword stands in for the password in every doctor payload.
const MaskedPassword = "********"

// Request DTOs

type CreateDoctorRequest struct {
	Username   string `json:"username" validate:"required,max=150"`
	Password   string `json:"password" validate:"required,min=6"`
	Email      string `json:"email" validate:"omitempty,email"`
	Department int    `json:"department" validate:"required,gt=0"`
}

// UpdateDoctorRequest merges only the fields that are present. The department cannot change.
type UpdateDoctorRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=150"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type DepartmentDoctorUpdate struct {
	ID       int     `json:"id" validate:"required,gt=0"`
	Username *string `json:"username" validate:"omitempty,min=1,max=150"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// Response DTOs

type DoctorSummaryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type DoctorResponse struct {
	ID         int       `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Department int       `json:"department"`
}
