package policy_test

import (
	"testing"

	"clinic-records-api/internal/domain/apperror"
	"clinic-records-api/internal/domain/entity"
	"clinic-records-api/internal/policy"
	"clinic-records-api/internal/repository"
	"clinic-records-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverTagsIdentity(t *testing.T) {
	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository()
	resolver := policy.NewResolver(userRepo, doctorRepo)

	department := &entity.Department{Name: "Neurology"}
	require.NoError(t, repository.NewDepartmentRepository().Create(db, department))

	doctorUser := &entity.User{Username: "strange", Password: "hash", RoleID: entity.RoleIDDoctors}
	require.NoError(t, userRepo.Create(db, doctorUser))
	doctor := &entity.Doctor{UserID: doctorUser.ID, DepartmentID: department.ID}
	require.NoError(t, doctorRepo.Create(db, doctor))

	patientUser := &entity.User{Username: "wong", Password: "hash", RoleID: entity.RoleIDPatients}
	require.NoError(t, userRepo.Create(db, patientUser))

	identity, err := resolver.Resolve(db, doctorUser.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IdentityDoctor, identity.Kind)
	assert.True(t, identity.IsDoctor())
	assert.Equal(t, doctor.ID, identity.Doctor.ID)
	assert.Equal(t, department.ID, identity.Doctor.DepartmentID)

	identity, err = resolver.Resolve(db, patientUser.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IdentityPatient, identity.Kind)
	assert.Nil(t, identity.Doctor)

	_, err = resolver.Resolve(db, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
}

func TestResolverRejectsDoctorWithoutProfile(t *testing.T) {
	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository()
	resolver := policy.NewResolver(userRepo, repository.NewDoctorRepository())

	user := &entity.User{Username: "ghost", Password: "hash", RoleID: entity.RoleIDDoctors}
	require.NoError(t, userRepo.Create(db, user))

	_, err := resolver.Resolve(db, user.ID)
	require.Error(t, err)
	assert.Nil(t, apperror.KindOf(err))
}
