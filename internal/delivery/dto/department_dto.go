package dto

// Request DTOs

type CreateDepartmentRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Diagnostics    string `json:"diagnostics"`
	Location       string `json:"location" validate:"max=100"`
	Specialization string `json:"specialization" validate:"max=100"`
}

// Response DTOs

type DepartmentResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Diagnostics    string `json:"diagnostics"`
	Location       string `json:"location"`
	Specialization string `json:"specialization"`
}

type BatchUpdateResponse struct {
	Updated int `json:"updated"`
}
