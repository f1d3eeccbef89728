package converter

import (
	"testing"

	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDoctorToResponseMasksPassword(t *testing.T) {
	doctor := &entity.Doctor{
		ID:           3,
		UserID:       uuid.New(),
		DepartmentID: 2,
		User:         entity.User{Username: "house", Email: "house@clinic.test", Password: "$2a$10$hash"},
	}

	response := DoctorToResponse(doctor)
	assert.Equal(t, dto.MaskedPassword, response.Password)
	assert.Equal(t, "house", response.Username)
	assert.Equal(t, 2, response.Department)
}

func TestDoctorsToSummaries(t *testing.T) {
	doctors := []entity.Doctor{
		{ID: 1, User: entity.User{Username: "house"}},
		{ID: 2, User: entity.User{Username: "wilson"}},
	}

	assert.Equal(t, []dto.DoctorSummaryResponse{{ID: 1, Name: "house"}, {ID: 2, Name: "wilson"}}, DoctorsToSummaries(doctors))
}

func TestIdentityToCurrentUser(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Username: "house", RoleID: entity.RoleIDDoctors}
	identity := &entity.Identity{UserID: user.ID, Kind: entity.IdentityDoctor, Doctor: &entity.Doctor{ID: 4, DepartmentID: 9}}

	response := IdentityToCurrentUser(user, identity)
	assert.Equal(t, entity.RoleDoctors, response.Role)
	assert.Equal(t, 4, *response.DoctorID)
	assert.Equal(t, 9, *response.DepartmentID)

	patient := &entity.User{ID: uuid.New(), RoleID: entity.RoleIDPatients}
	response = IdentityToCurrentUser(patient, &entity.Identity{UserID: patient.ID, Kind: entity.IdentityPatient})
	assert.Equal(t, entity.RolePatients, response.Role)
	assert.Nil(t, response.DoctorID)
}

func TestAuditLogWithoutUser(t *testing.T) {
	response := AuditLogToResponse(&entity.AuditLog{ID: 1, Action: entity.AuditActionDoctorDelete})
	assert.Nil(t, response.User)
}
