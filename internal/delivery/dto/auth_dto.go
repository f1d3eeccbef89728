package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// RegisterRequest registers either a doctor or a patient depending on Group.
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,max=150"`
	Password   string `json:"password" validate:"required,min=6"`
	Email      string `json:"email" validate:"omitempty,email"`
	Group      string `json:"group" validate:"required,oneof=Doctors Patients"`
	Department *int   `json:"department" validate:"required_if=Group Doctors"`
	Doctor     *int   `json:"doctor" validate:"required_if=Group Patients"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
	ExpiresIn int64  `json:"expires_in"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type CurrentUserResponse struct {
	UserResponse
	DoctorID     *int `json:"doctor_id,omitempty"`
	DepartmentID *int `json:"department_id,omitempty"`
}
