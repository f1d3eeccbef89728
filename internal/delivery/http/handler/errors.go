package handler

import (
	"net/http"
	"strconv"

	"clinic-records-api/internal/domain/apperror"
	"clinic-records-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// writeError maps a use case error to its status code. Unexpected errors
// are reported as fallback with a 500.
func writeError(w http.ResponseWriter, err error, fallback string) {
	message := apperror.Message(err)
	details := apperror.Details(err)

	switch apperror.KindOf(err) {
	case apperror.ErrNotFound:
		response.Error(w, http.StatusNotFound, message, details)
	case apperror.ErrForbidden:
		response.Error(w, http.StatusForbidden, message, details)
	case apperror.ErrValidation:
		response.Error(w, http.StatusBadRequest, message, details)
	case apperror.ErrAuthentication:
		response.Error(w, http.StatusUnauthorized, message, details)
	case apperror.ErrConflict:
		response.Error(w, http.StatusConflict, message, details)
	default:
		response.InternalServerError(w, fallback)
	}
}

// intVar reads a positive integer path variable.
func intVar(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func uuidVar(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
