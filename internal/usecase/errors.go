package usecase

import (
	"errors"
	"strings"

	"clinic-records-api/internal/domain/apperror"
	"clinic-records-api/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUsernameTaken        = apperror.Conflict("A user with that username already exists")
	ErrInvalidCredentials   = apperror.Authentication("No active account found with the given credentials")
	ErrInvalidToken         = service.ErrInvalidToken
	ErrInvalidGroup         = apperror.Validation("Group must be Doctors or Patients")
	ErrDepartmentRequired   = apperror.Validation("Department is required for doctors")
	ErrDoctorRequired       = apperror.Validation("Doctor is required for patients")
	ErrUnknownDepartment    = apperror.Validation("Department does not exist")
	ErrUnknownDoctor        = apperror.Validation("Doctor does not exist")
	ErrUnknownPatient       = apperror.Validation("Patient does not exist")
	ErrPatientNotAssociated = apperror.Validation("Patient is not associated with this doctor")
	ErrInvalidBatchItem     = apperror.Validation("Invalid update item")
	ErrUserNotFound         = apperror.NotFound("User not found")
	ErrDoctorNotFound       = apperror.NotFound("Doctor not found")
	ErrPatientNotFound      = apperror.NotFound("Patient not found")
	ErrRecordNotFound       = apperror.NotFound("Patient record not found")
	ErrDepartmentNotFound   = apperror.NotFound("Department not found")
	ErrAuditLogNotFound     = apperror.NotFound("Audit log not found")
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
