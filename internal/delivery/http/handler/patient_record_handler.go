package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/delivery/http/middleware"
	"clinic-records-api/internal/usecase"
	"clinic-records-api/pkg/response"
	"clinic-records-api/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientRecordHandler struct {
	recordUsecase usecase.PatientRecordUsecase
	validator     *validator.CustomValidator
}

func NewPatientRecordHandler(recordUsecase usecase.PatientRecordUsecase, validator *validator.CustomValidator) *PatientRecordHandler {
	return &PatientRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

func recordIDVar(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// GetAllRecords lists the records of the caller's department.
func (h *PatientRecordHandler) GetAllRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	records, err := h.recordUsecase.ListRecords(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get patient records")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Patient records retrieved successfully", records, &response.Meta{Total: int64(len(records))})
}

func (h *PatientRecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePatientRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.CreateRecord(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to create patient record")
		return
	}

	response.Success(w, http.StatusCreated, "Patient record created successfully", record)
}

func (h *PatientRecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recordID, ok := recordIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	record, err := h.recordUsecase.GetRecord(r.Context(), userID, recordID)
	if err != nil {
		writeError(w, err, "Failed to get patient record")
		return
	}

	response.Success(w, http.StatusOK, "Patient record retrieved successfully", record)
}

func (h *PatientRecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recordID, ok := recordIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	var req dto.UpdatePatientRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.UpdateRecord(r.Context(), userID, recordID, &req)
	if err != nil {
		writeError(w, err, "Failed to update patient record")
		return
	}

	response.Success(w, http.StatusOK, "Patient record updated successfully", record)
}

func (h *PatientRecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recordID, ok := recordIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	if err := h.recordUsecase.DeleteRecord(r.Context(), userID, recordID); err != nil {
		writeError(w, err, "Failed to delete patient record")
		return
	}

	response.Success(w, http.StatusOK, "Patient record deleted successfully", nil)
}
