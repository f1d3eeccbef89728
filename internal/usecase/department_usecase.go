package usecase

import (
	"context"
	"strconv"

	"clinic-records-api/internal/converter"
	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/domain/entity"
	"clinic-records-api/internal/domain/repository"
	"clinic-records-api/internal/policy"
	"clinic-records-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ItemValidator checks one element of a batch request.
type ItemValidator interface {
	Validate(i interface{}) error
	FormatValidationErrors(err error) map[string]string
}

type DepartmentUsecase interface {
	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	ListDepartmentDoctors(ctx context.Context, actorID uuid.UUID, departmentID int) ([]dto.DoctorResponse, error)
	UpdateDepartmentDoctors(ctx context.Context, actorID uuid.UUID, departmentID int, items []dto.DepartmentDoctorUpdate) (int, error)
	ListDepartmentPatients(ctx context.Context, actorID uuid.UUID, departmentID int) ([]dto.PatientResponse, error)
	UpdateDepartmentPatients(ctx context.Context, actorID uuid.UUID, departmentID int, items []dto.DepartmentPatientUpdate) (int, error)
}

type departmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	validator        ItemValidator
	userRepo         repository.UserRepository
	departmentRepo   repository.DepartmentRepository
	doctorRepo       repository.DoctorRepository
	relationshipRepo repository.DoctorPatientRelationshipRepository
	resolver         *policy.Resolver
	auditService     service.AuditService
}

func NewDepartmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator ItemValidator,
	userRepo repository.UserRepository,
	departmentRepo repository.DepartmentRepository,
	doctorRepo repository.DoctorRepository,
	relationshipRepo repository.DoctorPatientRelationshipRepository,
	resolver *policy.Resolver,
	auditService service.AuditService,
) DepartmentUsecase {
	return &departmentUsecase{
		db:               db,
		log:              log,
		validator:        validator,
		userRepo:         userRepo,
		departmentRepo:   departmentRepo,
		doctorRepo:       doctorRepo,
		relationshipRepo: relationshipRepo,
		resolver:         resolver,
		auditService:     auditService,
	}
}

func (u *departmentUsecase) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := u.departmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all departments: %+v", err)
		return nil, err
	}

	return converter.DepartmentsToResponses(departments), nil
}

func (u *departmentUsecase) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	department := &entity.Department{
		Name:           req.Name,
		Diagnostics:    req.Diagnostics,
		Location:       req.Location,
		Specialization: req.Specialization,
	}
	if err := u.departmentRepo.Create(tx, department); err != nil {
		u.log.Warnf("Failed to create department: %+v", err)
		return nil, err
	}

	response := converter.DepartmentToResponse(department)
	if err := u.auditService.LogCreate(ctx, tx, nil, entity.AuditActionDepartmentCreate, "department", strconv.Itoa(department.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *departmentUsecase) ListDepartmentDoctors(ctx context.Context, actorID uuid.UUID, departmentID int) ([]dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)

	if _, err := u.authorize(db, actorID, departmentID); err != nil {
		return nil, err
	}

	doctors, err := u.doctorRepo.FindByDepartment(db, departmentID)
	if err != nil {
		u.log.Warnf("Failed to find department doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToResponses(doctors), nil
}

// UpdateDepartmentDoctors applies the items in order, each in its own transaction.
// The first failing item stops the batch; items before it stay committed.
func (u *departmentUsecase) UpdateDepartmentDoctors(ctx context.Context, actorID uuid.UUID, departmentID int, items []dto.DepartmentDoctorUpdate) (int, error) {
	if _, err := u.authorize(u.db.WithContext(ctx), actorID, departmentID); err != nil {
		return 0, err
	}

	for i := range items {
		if err := u.validator.Validate(&items[i]); err != nil {
			return i, ErrInvalidBatchItem.WithDetails(u.validator.FormatValidationErrors(err))
		}
		if err := u.updateDepartmentDoctor(ctx, actorID, departmentID, &items[i]); err != nil {
			return i, err
		}
	}

	return len(items), nil
}

func (u *departmentUsecase) updateDepartmentDoctor(ctx context.Context, actorID uuid.UUID, departmentID int, item *dto.DepartmentDoctorUpdate) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByIDForUpdate(tx, item.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil || doctor.DepartmentID != departmentID {
		return ErrDoctorNotFound
	}

	oldValue := converter.DoctorToResponse(doctor)

	if err := applyUserChanges(tx, u.userRepo, &doctor.User, userChanges{Username: item.Username, Email: item.Email, Password: item.Password}); err != nil {
		return err
	}
	if err := saveUser(tx, u.userRepo, &doctor.User, false); err != nil {
		if err != ErrUsernameTaken {
			u.log.Warnf("Failed to update doctor: %+v", err)
		}
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, userIDPtr(actorID), entity.AuditActionDoctorUpdate, "doctor", strconv.Itoa(doctor.ID), oldValue, converter.DoctorToResponse(doctor)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// ListDepartmentPatients returns the patients related to the calling doctor.
func (u *departmentUsecase) ListDepartmentPatients(ctx context.Context, actorID uuid.UUID, departmentID int) ([]dto.PatientResponse, error) {
	db := u.db.WithContext(ctx)

	actor, err := u.authorize(db, actorID, departmentID)
	if err != nil {
		return nil, err
	}

	patients, err := u.relationshipRepo.FindPatientsByDoctor(db, actor.Doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to find related patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

// UpdateDepartmentPatients applies the items in order, each in its own transaction.
// Every patient must be related to the calling doctor. The first failing item
// stops the batch; items before it stay committed.
func (u *departmentUsecase) UpdateDepartmentPatients(ctx context.Context, actorID uuid.UUID, departmentID int, items []dto.DepartmentPatientUpdate) (int, error) {
	actor, err := u.authorize(u.db.WithContext(ctx), actorID, departmentID)
	if err != nil {
		return 0, err
	}

	for i := range items {
		if err := u.validator.Validate(&items[i]); err != nil {
			return i, ErrInvalidBatchItem.WithDetails(u.validator.FormatValidationErrors(err))
		}
		if err := u.updateDepartmentPatient(ctx, actor, &items[i]); err != nil {
			return i, err
		}
	}

	return len(items), nil
}

func (u *departmentUsecase) updateDepartmentPatient(ctx context.Context, actor *entity.Identity, item *dto.DepartmentPatientUpdate) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.userRepo.FindByIDAndRole(tx, item.ID, entity.RoleIDPatients)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	related, err := u.relationshipRepo.Exists(tx, actor.Doctor.ID, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to check doctor patient relationship: %+v", err)
		return err
	}
	if !related {
		return ErrPatientNotAssociated
	}

	oldValue := converter.PatientToResponse(patient)

	if err := applyUserChanges(tx, u.userRepo, patient, userChanges{Username: item.Username, Email: item.Email, Password: item.Password}); err != nil {
		return err
	}
	if err := saveUser(tx, u.userRepo, patient, false); err != nil {
		if err != ErrUsernameTaken {
			u.log.Warnf("Failed to update patient: %+v", err)
		}
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, userIDPtr(actor.UserID), entity.AuditActionPatientUpdate, "patient", patient.ID.String(), oldValue, converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// authorize requires departmentID to exist and the caller to be one of its doctors.
func (u *departmentUsecase) authorize(db *gorm.DB, actorID uuid.UUID, departmentID int) (*entity.Identity, error) {
	department, err := u.departmentRepo.FindByID(db, departmentID)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	actor, err := u.resolver.Resolve(db, actorID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanAccessDepartment(*actor, departmentID); err != nil {
		return nil, err
	}
	return actor, nil
}
