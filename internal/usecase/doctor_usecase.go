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

type DoctorUsecase interface {
	ListDoctors(ctx context.Context) ([]dto.DoctorSummaryResponse, error)
	CreateDoctor(ctx context.Context, actorID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, actorID uuid.UUID, doctorID int) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, actorID uuid.UUID, doctorID int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, actorID uuid.UUID, doctorID int) error
}

type doctorUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	doctorRepo     repository.DoctorRepository
	departmentRepo repository.DepartmentRepository
	resolver       *policy.Resolver
	sessionService *service.SessionService
	auditService   service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	departmentRepo repository.DepartmentRepository,
	resolver *policy.Resolver,
	sessionService *service.SessionService,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		doctorRepo:     doctorRepo,
		departmentRepo: departmentRepo,
		resolver:       resolver,
		sessionService: sessionService,
		auditService:   auditService,
	}
}

func (u *doctorUsecase) ListDoctors(ctx context.Context) ([]dto.DoctorSummaryResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToSummaries(doctors), nil
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, actorID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	actor, err := u.resolver.Resolve(tx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor() {
		return nil, policy.ErrNotDoctor
	}

	department, err := u.departmentRepo.FindByID(tx, req.Department)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return nil, err
	}
	if department == nil {
		return nil, ErrUnknownDepartment
	}

	if err := ensureUsernameFree(tx, u.userRepo, req.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		RoleID:   entity.RoleIDDoctors,
	}
	if err := saveUser(tx, u.userRepo, user, true); err != nil {
		if err != ErrUsernameTaken {
			u.log.Warnf("Failed to create user: %+v", err)
		}
		return nil, err
	}

	doctor := &entity.Doctor{UserID: user.ID, DepartmentID: department.ID, User: *user}
	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	response := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogCreate(ctx, tx, userIDPtr(actorID), entity.AuditActionDoctorCreate, "doctor", strconv.Itoa(doctor.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, actorID uuid.UUID, doctorID int) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)

	actor, err := u.resolver.Resolve(db, actorID)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := policy.CanAccessDoctorProfile(*actor, doctor); err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, actorID uuid.UUID, doctorID int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	actor, err := u.resolver.Resolve(tx, actorID)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByIDForUpdate(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := policy.CanAccessDoctorProfile(*actor, doctor); err != nil {
		return nil, err
	}

	changes := userChanges{Username: req.Username, Email: req.Email, Password: req.Password}
	if changes.empty() {
		return converter.DoctorToResponse(doctor), nil
	}

	oldValue := converter.DoctorToResponse(doctor)

	if err := applyUserChanges(tx, u.userRepo, &doctor.User, changes); err != nil {
		if err != ErrUsernameTaken {
			u.log.Warnf("Failed to apply doctor changes: %+v", err)
		}
		return nil, err
	}

	if err := saveUser(tx, u.userRepo, &doctor.User, false); err != nil {
		if err != ErrUsernameTaken {
			u.log.Warnf("Failed to update doctor: %+v", err)
		}
		return nil, err
	}

	newValue := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogUpdate(ctx, tx, userIDPtr(actorID), entity.AuditActionDoctorUpdate, "doctor", strconv.Itoa(doctor.ID), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

// DeleteDoctor removes the doctor's user. The doctor row and everything that
// references it go with it through the store's cascades.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, actorID uuid.UUID, doctorID int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	actor, err := u.resolver.Resolve(tx, actorID)
	if err != nil {
		return err
	}

	doctor, err := u.doctorRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if err := policy.CanAccessDoctorProfile(*actor, doctor); err != nil {
		return err
	}

	// Written before the delete so the row can still reference the user.
	if err := u.auditService.LogDelete(ctx, tx, userIDPtr(actorID), entity.AuditActionDoctorDelete, "doctor", strconv.Itoa(doctor.ID), converter.DoctorToResponse(doctor)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	affectedRows, err := u.userRepo.Delete(tx, doctor.UserID)
	if err != nil {
		u.log.Warnf("Failed delete doctor: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrDoctorNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if _, err := u.sessionService.RevokeAll(ctx, doctor.UserID); err != nil {
		u.log.Warnf("Failed to revoke tokens of deleted doctor: %+v", err)
	}

	return nil
}
