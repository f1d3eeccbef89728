package repository

import (
	"clinic-records-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorPatientRelationshipRepository interface {
	Create(db *gorm.DB, relationship *entity.DoctorPatientRelationship) error
	Exists(db *gorm.DB, doctorID int, patientID uuid.UUID) (bool, error)
	FindPatientsByDoctor(db *gorm.DB, doctorID int) ([]entity.User, error)
}
