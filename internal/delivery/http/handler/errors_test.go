package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-records-api/internal/domain/apperror"
	"clinic-records-api/internal/policy"
	"clinic-records-api/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", usecase.ErrRecordNotFound, http.StatusNotFound, "Patient record not found"},
		{"forbidden", policy.ErrNotDoctor, http.StatusForbidden, "User is not a doctor"},
		{"validation", usecase.ErrPatientNotAssociated, http.StatusBadRequest, "Patient is not associated with this doctor"},
		{"authentication", usecase.ErrInvalidToken, http.StatusUnauthorized, "Token is invalid or expired"},
		{"conflict", usecase.ErrUsernameTaken, http.StatusConflict, "A user with that username already exists"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "Failed to do it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err, "Failed to do it")

			assert.Equal(t, tt.status, rec.Code)
			var body struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestWriteErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, usecase.ErrInvalidBatchItem.WithDetails(map[string]string{"Email": "Email must be a valid email address"}), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Email must be a valid email address", body.Error["Email"])
	assert.True(t, errors.Is(usecase.ErrInvalidBatchItem, apperror.ErrValidation))
}
