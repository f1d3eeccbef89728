package repository

import (
	"clinic-records-api/internal/domain/entity"
	domainRepo "clinic-records-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorPatientRelationshipRepository struct{}

func NewDoctorPatientRelationshipRepository() domainRepo.DoctorPatientRelationshipRepository {
	return &doctorPatientRelationshipRepository{}
}

func (r *doctorPatientRelationshipRepository) Create(db *gorm.DB, relationship *entity.DoctorPatientRelationship) error {
	return db.Omit(clause.Associations).Create(relationship).Error
}

func (r *doctorPatientRelationshipRepository) Exists(db *gorm.DB, doctorID int, patientID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorPatientRelationship{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Count(&count).Error
	return count > 0, err
}

// FindPatientsByDoctor returns each related patient once, even when the pair is stored more than once.
func (r *doctorPatientRelationshipRepository) FindPatientsByDoctor(db *gorm.DB, doctorID int) ([]entity.User, error) {
	var patients []entity.User
	err := db.Model(&entity.User{}).
		Where("id IN (?)", db.Model(&entity.DoctorPatientRelationship{}).
			Select("patient_id").
			Where("doctor_id = ?", doctorID)).
		Order("username").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}
