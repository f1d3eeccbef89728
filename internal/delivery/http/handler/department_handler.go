package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/delivery/http/middleware"
	"clinic-records-api/internal/usecase"
	"clinic-records-api/pkg/response"
	"clinic-records-api/pkg/validator"
)

type DepartmentHandler struct {
	departmentUsecase usecase.DepartmentUsecase
	validator         *validator.CustomValidator
}

func NewDepartmentHandler(departmentUsecase usecase.DepartmentUsecase, validator *validator.CustomValidator) *DepartmentHandler {
	return &DepartmentHandler{
		departmentUsecase: departmentUsecase,
		validator:         validator,
	}
}

func (h *DepartmentHandler) GetAllDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departmentUsecase.ListDepartments(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get departments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Departments retrieved successfully", departments, &response.Meta{Total: int64(len(departments))})
}

func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	department, err := h.departmentUsecase.CreateDepartment(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create department")
		return
	}

	response.Success(w, http.StatusCreated, "Department created successfully", department)
}

func (h *DepartmentHandler) GetDepartmentDoctors(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	departmentID, ok := intVar(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	doctors, err := h.departmentUsecase.ListDepartmentDoctors(r.Context(), userID, departmentID)
	if err != nil {
		writeError(w, err, "Failed to get department doctors")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Doctors retrieved successfully", doctors, &response.Meta{Total: int64(len(doctors))})
}

// UpdateDepartmentDoctors applies a list of doctor updates in order.
// Items before a failing one stay applied.
func (h *DepartmentHandler) UpdateDepartmentDoctors(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	departmentID, ok := intVar(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	var items []dto.DepartmentDoctorUpdate
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	updated, err := h.departmentUsecase.UpdateDepartmentDoctors(r.Context(), userID, departmentID, items)
	if err != nil {
		writeError(w, err, "Failed to update department doctors")
		return
	}

	response.Success(w, http.StatusOK, fmt.Sprintf("%d doctors updated successfully", updated), dto.BatchUpdateResponse{Updated: updated})
}

func (h *DepartmentHandler) GetDepartmentPatients(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	departmentID, ok := intVar(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	patients, err := h.departmentUsecase.ListDepartmentPatients(r.Context(), userID, departmentID)
	if err != nil {
		writeError(w, err, "Failed to get department patients")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Patients retrieved successfully", patients, &response.Meta{Total: int64(len(patients))})
}

// UpdateDepartmentPatients applies a list of patient updates in order.
// Items before a failing one stay applied.
func (h *DepartmentHandler) UpdateDepartmentPatients(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	departmentID, ok := intVar(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	var items []dto.DepartmentPatientUpdate
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	updated, err := h.departmentUsecase.UpdateDepartmentPatients(r.Context(), userID, departmentID, items)
	if err != nil {
		writeError(w, err, "Failed to update department patients")
		return
	}

	response.Success(w, http.StatusOK, fmt.Sprintf("%d patients updated successfully", updated), dto.BatchUpdateResponse{Updated: updated})
}
