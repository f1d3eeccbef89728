package usecase

import (
	"context"
	"testing"

	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/domain/entity"
	"clinic-records-api/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPatientsScopedToCaller(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	cardiology := app.createDepartment(t, "Cardiology")
	houseUserID, houseID := app.registerDoctor(t, "dr_house", cardiology)
	_, wilsonID := app.registerDoctor(t, "dr_wilson", cardiology)
	alice := app.registerPatient(t, "alice", houseID)
	app.registerPatient(t, "bob", wilsonID)

	patients, err := app.patients.ListPatients(ctx, houseUserID)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, alice, patients[0].ID)

	patients, err = app.patients.ListPatients(ctx, alice)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "alice", patients[0].Username)
}

func TestCreatePatientAdmitsToCallingDoctor(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	cardiology := app.createDepartment(t, "Cardiology")
	houseUserID, houseID := app.registerDoctor(t, "dr_house", cardiology)
	alice := app.registerPatient(t, "alice", houseID)

	req := &dto.CreatePatientRequest{Username: "bob", Password: "secret123", Email: "bob@clinic.test"}
	_, err := app.patients.CreatePatient(ctx, alice, req)
	assert.Equal(t, policy.ErrNotDoctor, err)

	created, err := app.patients.CreatePatient(ctx, houseUserID, req)
	require.NoError(t, err)

	assert.EqualValues(t, 1, app.count(t, &entity.DoctorPatientRelationship{}, "doctor_id = ? AND patient_id = ?", houseID, created.ID))

	var record entity.PatientRecord
	require.NoError(t, app.db.Where("patient_id = ?", created.ID).First(&record).Error)
	assert.Equal(t, entity.AdmissionDiagnostics, record.Diagnostics)
	assert.Equal(t, cardiology, record.DepartmentID)

	_, err = app.patients.CreatePatient(ctx, houseUserID, req)
	assert.Equal(t, ErrUsernameTaken, err)
}

func TestPatientAccessRules(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	cardiology := app.createDepartment(t, "Cardiology")
	houseUserID, houseID := app.registerDoctor(t, "dr_house", cardiology)
	wilsonUserID, wilsonID := app.registerDoctor(t, "dr_wilson", cardiology)
	alice := app.registerPatient(t, "alice", houseID)
	bob := app.registerPatient(t, "bob", wilsonID)

	_, err := app.patients.GetPatient(ctx, alice, alice)
	assert.NoError(t, err)

	_, err = app.patients.GetPatient(ctx, houseUserID, alice)
	assert.NoError(t, err)

	_, err = app.patients.GetPatient(ctx, wilsonUserID, alice)
	assert.Equal(t, policy.ErrPermissionDenied, err)

	_, err = app.patients.GetPatient(ctx, bob, alice)
	assert.Equal(t, policy.ErrPermissionDenied, err)

	updated, err := app.patients.UpdatePatient(ctx, alice, alice, &dto.UpdatePatientRequest{Email: strPtr("alice@home.test")})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@home.test", updated.Email)
}

func TestDeletePatientRemovesRecords(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	cardiology := app.createDepartment(t, "Cardiology")
	houseUserID, houseID := app.registerDoctor(t, "dr_house", cardiology)
	alice := app.registerPatient(t, "alice", houseID)

	require.NoError(t, app.patients.DeletePatient(ctx, houseUserID, alice))

	assert.EqualValues(t, 0, app.count(t, &entity.User{}, "id = ?", alice))
	assert.EqualValues(t, 0, app.count(t, &entity.PatientRecord{}, "patient_id = ?", alice))
	assert.EqualValues(t, 0, app.count(t, &entity.DoctorPatientRelationship{}, "patient_id = ?", alice))

	_, err := app.patients.GetPatient(ctx, houseUserID, alice)
	assert.Equal(t, ErrPatientNotFound, err)
}
