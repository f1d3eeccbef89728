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

type PatientRecordUsecase interface {
	ListRecords(ctx context.Context, actorID uuid.UUID) ([]dto.PatientRecordResponse, error)
	CreateRecord(ctx context.Context, actorID uuid.UUID, req *dto.CreatePatientRecordRequest) (*dto.PatientRecordResponse, error)
	GetRecord(ctx context.Context, actorID uuid.UUID, recordID int64) (*dto.PatientRecordResponse, error)
	UpdateRecord(ctx context.Context, actorID uuid.UUID, recordID int64, req *dto.UpdatePatientRecordRequest) (*dto.PatientRecordResponse, error)
	DeleteRecord(ctx context.Context, actorID uuid.UUID, recordID int64) error
}

type patientRecordUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	recordRepo   repository.PatientRecordRepository
	resolver     *policy.Resolver
	auditService service.AuditService
}

func NewPatientRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	recordRepo repository.PatientRecordRepository,
	resolver *policy.Resolver,
	auditService service.AuditService,
) PatientRecordUsecase {
	return &patientRecordUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		recordRepo:   recordRepo,
		resolver:     resolver,
		auditService: auditService,
	}
}

// ListRecords returns every record of the calling doctor's department. Patients get an empty list.
func (u *patientRecordUsecase) ListRecords(ctx context.Context, actorID uuid.UUID) ([]dto.PatientRecordResponse, error) {
	db := u.db.WithContext(ctx)

	actor, err := u.resolver.Resolve(db, actorID)
	if err != nil {
		return nil, err
	}

	departmentID, ok := policy.RecordListScope(*actor)
	if !ok {
		return []dto.PatientRecordResponse{}, nil
	}

	records, err := u.recordRepo.FindByDepartment(db, departmentID)
	if err != nil {
		u.log.Warnf("Failed to find patient records: %+v", err)
		return nil, err
	}

	return converter.PatientRecordsToResponses(records), nil
}

// CreateRecord writes a record authored by the calling doctor. The doctor and
// department always come from the author's profile.
func (u *patientRecordUsecase) CreateRecord(ctx context.Context, actorID uuid.UUID, req *dto.CreatePatientRecordRequest) (*dto.PatientRecordResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	actor, err := u.resolver.Resolve(tx, actorID)
	if err != nil {
		return nil, err
	}

	record := &entity.PatientRecord{
		PatientID:    req.Patient,
		Diagnostics:  req.Diagnostics,
		Observations: req.Observations,
		Treatments:   req.Treatments,
		Misc:         req.Misc,
	}
	if err := policy.StampRecord(*actor, record); err != nil {
		return nil, err
	}

	patient, err := u.userRepo.FindByIDAndRole(tx, req.Patient, entity.RoleIDPatients)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrUnknownPatient
	}

	if err := u.recordRepo.Create(tx, record); err != nil {
		if isForeignKeyError(err, "patient") {
			return nil, ErrUnknownPatient
		}
		u.log.Warnf("Failed to create patient record: %+v", err)
		return nil, err
	}

	response := converter.PatientRecordToResponse(record)
	if err := u.auditService.LogCreate(ctx, tx, userIDPtr(actorID), entity.AuditActionRecordCreate, "patient_record", strconv.FormatInt(record.ID, 10), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *patientRecordUsecase) GetRecord(ctx context.Context, actorID uuid.UUID, recordID int64) (*dto.PatientRecordResponse, error) {
	db := u.db.WithContext(ctx)

	actor, err := u.resolver.Resolve(db, actorID)
	if err != nil {
		return nil, err
	}

	record, err := u.recordRepo.FindByID(db, recordID)
	if err != nil {
		u.log.Warnf("Failed to find patient record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	if err := policy.CanAccessRecord(*actor, record); err != nil {
		return nil, err
	}

	return converter.PatientRecordToResponse(record), nil
}

// UpdateRecord merges the present fields into the locked record. The patient,
// doctor, department and creation date never change here.
func (u *patientRecordUsecase) UpdateRecord(ctx context.Context, actorID uuid.UUID, recordID int64, req *dto.UpdatePatientRecordRequest) (*dto.PatientRecordResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	actor, err := u.resolver.Resolve(tx, actorID)
	if err != nil {
		return nil, err
	}

	record, err := u.recordRepo.FindByIDForUpdate(tx, recordID)
	if err != nil {
		u.log.Warnf("Failed to find patient record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	if err := policy.CanAccessRecord(*actor, record); err != nil {
		return nil, err
	}

	oldValue := converter.PatientRecordToResponse(record)

	if req.Diagnostics != nil {
		record.Diagnostics = *req.Diagnostics
	}
	if req.Observations != nil {
		record.Observations = *req.Observations
	}
	if req.Treatments != nil {
		record.Treatments = *req.Treatments
	}
	if req.Misc != nil {
		record.Misc = req.Misc
	}

	if err := u.recordRepo.Update(tx, record); err != nil {
		u.log.Warnf("Failed to update patient record: %+v", err)
		return nil, err
	}

	newValue := converter.PatientRecordToResponse(record)
	if err := u.auditService.LogUpdate(ctx, tx, userIDPtr(actorID), entity.AuditActionRecordUpdate, "patient_record", strconv.FormatInt(record.ID, 10), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *patientRecordUsecase) DeleteRecord(ctx context.Context, actorID uuid.UUID, recordID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	actor, err := u.resolver.Resolve(tx, actorID)
	if err != nil {
		return err
	}

	record, err := u.recordRepo.FindByIDForUpdate(tx, recordID)
	if err != nil {
		u.log.Warnf("Failed to find patient record: %+v", err)
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}

	if err := policy.CanAccessRecord(*actor, record); err != nil {
		return err
	}

	affectedRows, err := u.recordRepo.Delete(tx, record.ID)
	if err != nil {
		u.log.Warnf("Failed delete patient record: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrRecordNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, userIDPtr(actorID), entity.AuditActionRecordDelete, "patient_record", strconv.FormatInt(record.ID, 10), converter.PatientRecordToResponse(record)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
