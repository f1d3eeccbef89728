package repository

import (
	"clinic-records-api/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRecordRepository interface {
	Create(db *gorm.DB, record *entity.PatientRecord) error
	FindByID(db *gorm.DB, id int64) (*entity.PatientRecord, error)
	FindByIDForUpdate(db *gorm.DB, id int64) (*entity.PatientRecord, error)
	FindByDepartment(db *gorm.DB, departmentID int) ([]entity.PatientRecord, error)
	Update(db *gorm.DB, record *entity.PatientRecord) error
	Delete(db *gorm.DB, id int64) (int64, error)
}
