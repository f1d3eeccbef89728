package repository

import (
	"errors"

	"clinic-records-api/internal/domain/entity"
	domainRepo "clinic-records-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRecordRepository struct{}

func NewPatientRecordRepository() domainRepo.PatientRecordRepository {
	return &patientRecordRepository{}
}

func (r *patientRecordRepository) Create(db *gorm.DB, record *entity.PatientRecord) error {
	return db.Omit(clause.Associations).Create(record).Error
}

func (r *patientRecordRepository) FindByID(db *gorm.DB, id int64) (*entity.PatientRecord, error) {
	var record entity.PatientRecord
	err := db.Preload("Doctor").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindByIDForUpdate locks the record row for the rest of the transaction.
func (r *patientRecordRepository) FindByIDForUpdate(db *gorm.DB, id int64) (*entity.PatientRecord, error) {
	var record entity.PatientRecord
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := db.Where("id = ?", record.DoctorID).First(&record.Doctor).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *patientRecordRepository) FindByDepartment(db *gorm.DB, departmentID int) ([]entity.PatientRecord, error) {
	var records []entity.PatientRecord
	err := db.Where("department_id = ?", departmentID).Order("id").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *patientRecordRepository) Update(db *gorm.DB, record *entity.PatientRecord) error {
	return db.Omit(clause.Associations).Save(record).Error
}

func (r *patientRecordRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.PatientRecord{})
	return result.RowsAffected, result.Error
}
