package usecase

import (
	"context"

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

type PatientUsecase interface {
	ListPatients(ctx context.Context, actorID uuid.UUID) ([]dto.PatientResponse, error)
	CreatePatient(ctx context.Context, actorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, actorID uuid.UUID, patientID uuid.UUID) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, actorID uuid.UUID, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, actorID uuid.UUID, patientID uuid.UUID) error
}

type patientUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	relationshipRepo repository.DoctorPatientRelationshipRepository
	recordRepo       repository.PatientRecordRepository
	resolver         *policy.Resolver
	sessionService   *service.SessionService
	auditService     service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	relationshipRepo repository.DoctorPatientRelationshipRepository,
	recordRepo repository.PatientRecordRepository,
	resolver *policy.Resolver,
	sessionService *service.SessionService,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		relationshipRepo: relationshipRepo,
		recordRepo:       recordRepo,
		resolver:         resolver,
		sessionService:   sessionService,
		auditService:     auditService,
	}
}

// ListPatients returns the patients related to a doctor, or only the caller for a patient.
func (u *patientUsecase) ListPatients(ctx context.Context, actorID uuid.UUID) ([]dto.PatientResponse, error) {
	db := u.db.WithContext(ctx)

	actor, err := u.resolver.Resolve(db, actorID)
	if err != nil {
		return nil, err
	}

	if !actor.IsDoctor() {
		self, err := u.userRepo.FindByIDAndRole(db, actor.UserID, entity.RoleIDPatients)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return nil, err
		}
		if self == nil {
			return []dto.PatientResponse{}, nil
		}
		return []dto.PatientResponse{*converter.PatientToResponse(self)}, nil
	}

	patients, err := u.relationshipRepo.FindPatientsByDoctor(db, actor.Doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to find related patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

// CreatePatient registers a patient on behalf of the calling doctor, relates the two
// and opens the patient's first record in the doctor's department.
func (u *patientUsecase) CreatePatient(ctx context.Context, actorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	actor, err := u.resolver.Resolve(tx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor() {
		return nil, policy.ErrNotDoctor
	}

	if err := ensureUsernameFree(tx, u.userRepo, req.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		RoleID:   entity.RoleIDPatients,
	}
	if err := saveUser(tx, u.userRepo, patient, true); err != nil {
		if err != ErrUsernameTaken {
			u.log.Warnf("Failed to create patient: %+v", err)
		}
		return nil, err
	}

	if err := admitPatient(tx, u.log, u.relationshipRepo, u.recordRepo, patient, actor.Doctor, admissionTexts); err != nil {
		return nil, err
	}

	response := converter.PatientToResponse(patient)
	if err := u.auditService.LogCreate(ctx, tx, userIDPtr(actorID), entity.AuditActionPatientCreate, "patient", patient.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, actorID uuid.UUID, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.authorize(u.db.WithContext(ctx), actorID, patientID)
	if err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, actorID uuid.UUID, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.authorize(tx, actorID, patientID)
	if err != nil {
		return nil, err
	}

	changes := userChanges{Username: req.Username, Email: req.Email, Password: req.Password}
	if changes.empty() {
		return converter.PatientToResponse(patient), nil
	}

	oldValue := converter.PatientToResponse(patient)

	if err := applyUserChanges(tx, u.userRepo, patient, changes); err != nil {
		if err != ErrUsernameTaken {
			u.log.Warnf("Failed to apply patient changes: %+v", err)
		}
		return nil, err
	}

	if err := saveUser(tx, u.userRepo, patient, false); err != nil {
		if err != ErrUsernameTaken {
			u.log.Warnf("Failed to update patient: %+v", err)
		}
		return nil, err
	}

	newValue := converter.PatientToResponse(patient)
	if err := u.auditService.LogUpdate(ctx, tx, userIDPtr(actorID), entity.AuditActionPatientUpdate, "patient", patient.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, actorID uuid.UUID, patientID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.authorize(tx, actorID, patientID)
	if err != nil {
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, userIDPtr(actorID), entity.AuditActionPatientDelete, "patient", patient.ID.String(), converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	affectedRows, err := u.userRepo.Delete(tx, patient.ID)
	if err != nil {
		u.log.Warnf("Failed delete patient: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrPatientNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if _, err := u.sessionService.RevokeAll(ctx, patient.ID); err != nil {
		u.log.Warnf("Failed to revoke tokens of deleted patient: %+v", err)
	}

	return nil
}

// authorize loads the patient and checks that actor is the patient or a related doctor.
func (u *patientUsecase) authorize(db *gorm.DB, actorID uuid.UUID, patientID uuid.UUID) (*entity.User, error) {
	actor, err := u.resolver.Resolve(db, actorID)
	if err != nil {
		return nil, err
	}

	patient, err := u.userRepo.FindByIDAndRole(db, patientID, entity.RoleIDPatients)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	related := false
	if actor.IsDoctor() {
		related, err = u.relationshipRepo.Exists(db, actor.Doctor.ID, patient.ID)
		if err != nil {
			u.log.Warnf("Failed to check doctor patient relationship: %+v", err)
			return nil, err
		}
	}

	if err := policy.CanAccessPatient(*actor, patient.ID, related); err != nil {
		return nil, err
	}

	return patient, nil
}
