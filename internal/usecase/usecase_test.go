package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-records-api/config"
	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/domain/entity"
	"clinic-records-api/internal/policy"
	"clinic-records-api/internal/repository"
	"clinic-records-api/internal/service"
	"clinic-records-api/internal/testutil"
	"clinic-records-api/pkg/jwt"
	"clinic-records-api/pkg/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	db          *gorm.DB
	redis       *miniredis.Miniredis
	jwt         *jwt.JWTService
	sessions    *service.SessionService
	auth        AuthUsecase
	doctors     DoctorUsecase
	patients    PatientUsecase
	records     PatientRecordUsecase
	departments DepartmentUsecase
	auditLogs   AuditLogUsecase
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewDB(t)
	redisClient, redisServer := testutil.NewRedis(t)
	log := testutil.NewLogger()

	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	departmentRepo := repository.NewDepartmentRepository()
	doctorRepo := repository.NewDoctorRepository()
	relationshipRepo := repository.NewDoctorPatientRelationshipRepository()
	recordRepo := repository.NewPatientRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
	sessionService := service.NewSessionService(redisClient, log)
	auditService := service.NewAuditService(log, auditLogRepo)
	resolver := policy.NewResolver(userRepo, doctorRepo)

	return &testApp{
		db:       db,
		redis:    redisServer,
		jwt:      jwtService,
		sessions: sessionService,
		auth: NewAuthUsecase(db, log, userRepo, roleRepo, departmentRepo, doctorRepo,
			relationshipRepo, recordRepo, resolver, jwtService, sessionService, auditService),
		doctors:  NewDoctorUsecase(db, log, userRepo, doctorRepo, departmentRepo, resolver, sessionService, auditService),
		patients: NewPatientUsecase(db, log, userRepo, relationshipRepo, recordRepo, resolver, sessionService, auditService),
		records:  NewPatientRecordUsecase(db, log, userRepo, recordRepo, resolver, auditService),
		departments: NewDepartmentUsecase(db, log, validator.NewValidator(), userRepo, departmentRepo, doctorRepo,
			relationshipRepo, resolver, auditService),
		auditLogs: NewAuditLogUsecase(db, log, auditLogRepo),
	}
}

func (a *testApp) createDepartment(t *testing.T, name string) int {
	t.Helper()
	department, err := a.departments.CreateDepartment(context.Background(), &dto.CreateDepartmentRequest{Name: name})
	require.NoError(t, err)
	return department.ID
}

// registerDoctor returns the doctor's user id and doctor id.
func (a *testApp) registerDoctor(t *testing.T, username string, departmentID int) (uuid.UUID, int) {
	t.Helper()
	user, err := a.auth.Register(context.Background(), &dto.RegisterRequest{
		Username:   username,
		Password:   "secret123",
		Email:      username + "@clinic.test",
		Group:      entity.RoleDoctors,
		Department: &departmentID,
	})
	require.NoError(t, err)

	var doctor entity.Doctor
	require.NoError(t, a.db.Where("user_id = ?", user.ID).First(&doctor).Error)
	return user.ID, doctor.ID
}

func (a *testApp) registerPatient(t *testing.T, username string, doctorID int) uuid.UUID {
	t.Helper()
	user, err := a.auth.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Password: "secret123",
		Email:    username + "@clinic.test",
		Group:    entity.RolePatients,
		Doctor:   &doctorID,
	})
	require.NoError(t, err)
	return user.ID
}

func (a *testApp) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, a.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func (a *testApp) placeholderRecordID(t *testing.T, patientID uuid.UUID) int64 {
	t.Helper()
	var record entity.PatientRecord
	require.NoError(t, a.db.Where("patient_id = ?", patientID).First(&record).Error)
	return record.ID
}

func strPtr(s string) *string {
	return &s
}
