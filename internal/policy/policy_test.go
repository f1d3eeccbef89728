package policy

import (
	"errors"
	"testing"

	"clinic-records-api/internal/domain/apperror"
	"clinic-records-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func doctorIdentity(doctorID, departmentID int) entity.Identity {
	userID := uuid.New()
	return entity.Identity{
		UserID: userID,
		Kind:   entity.IdentityDoctor,
		Doctor: &entity.Doctor{ID: doctorID, UserID: userID, DepartmentID: departmentID},
	}
}

func patientIdentity() entity.Identity {
	return entity.Identity{UserID: uuid.New(), Kind: entity.IdentityPatient}
}

func TestCanAccessDoctorProfile(t *testing.T) {
	owner := doctorIdentity(1, 10)
	other := doctorIdentity(2, 10)

	assert.NoError(t, CanAccessDoctorProfile(owner, owner.Doctor))
	assert.ErrorIs(t, CanAccessDoctorProfile(other, owner.Doctor), apperror.ErrForbidden)
	assert.ErrorIs(t, CanAccessDoctorProfile(patientIdentity(), owner.Doctor), apperror.ErrForbidden)
}

func TestCanAccessPatient(t *testing.T) {
	patient := patientIdentity()
	doctor := doctorIdentity(1, 10)

	tests := []struct {
		name    string
		actor   entity.Identity
		related bool
		allowed bool
	}{
		{"self", patient, false, true},
		{"related doctor", doctor, true, true},
		{"unrelated doctor", doctor, false, false},
		{"other patient", patientIdentity(), false, false},
		{"other patient claiming relation", patientIdentity(), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAccessPatient(tt.actor, patient.UserID, tt.related)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperror.ErrForbidden)
			}
		})
	}
}

func TestCanAccessRecord(t *testing.T) {
	author := doctorIdentity(1, 10)
	colleague := doctorIdentity(2, 10)
	patient := patientIdentity()
	record := &entity.PatientRecord{
		PatientID:    patient.UserID,
		DoctorID:     author.Doctor.ID,
		DepartmentID: 10,
		Doctor:       *author.Doctor,
	}

	assert.NoError(t, CanAccessRecord(patient, record))
	assert.NoError(t, CanAccessRecord(author, record))
	assert.ErrorIs(t, CanAccessRecord(colleague, record), apperror.ErrForbidden)
	assert.ErrorIs(t, CanAccessRecord(patientIdentity(), record), apperror.ErrForbidden)
}

func TestRecordListScope(t *testing.T) {
	departmentID, ok := RecordListScope(doctorIdentity(1, 42))
	assert.True(t, ok)
	assert.Equal(t, 42, departmentID)

	_, ok = RecordListScope(patientIdentity())
	assert.False(t, ok)
}

func TestCanAccessDepartment(t *testing.T) {
	doctor := doctorIdentity(1, 10)

	assert.NoError(t, CanAccessDepartment(doctor, 10))
	assert.True(t, errors.Is(CanAccessDepartment(doctor, 11), ErrOtherDepartment))

	err := CanAccessDepartment(patientIdentity(), 10)
	assert.ErrorIs(t, err, ErrNotDoctor)
	assert.Equal(t, "User is not a doctor", err.Error())
}

func TestStampRecordIgnoresSuppliedAttribution(t *testing.T) {
	doctor := doctorIdentity(7, 3)
	record := &entity.PatientRecord{DoctorID: 99, DepartmentID: 99}

	assert.NoError(t, StampRecord(doctor, record))
	assert.Equal(t, 7, record.DoctorID)
	assert.Equal(t, 3, record.DepartmentID)

	assert.ErrorIs(t, StampRecord(patientIdentity(), &entity.PatientRecord{}), apperror.ErrForbidden)
}
