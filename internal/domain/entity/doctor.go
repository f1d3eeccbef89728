package entity

import "github.com/google/uuid"

// Doctor is the doctor-specific profile layered on a user
type Doctor struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	DepartmentID int       `gorm:"not null;index" json:"department_id"`

	// Relationships
	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Department Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"department,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorPatientRelationship links a doctor to a patient user. Pairs are not unique.
type DoctorPatientRelationship struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  int       `gorm:"not null;index" json:"doctor_id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`

	// Relationships
	Doctor  Doctor `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`
	Patient User   `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
}

func (DoctorPatientRelationship) TableName() string {
	return "doctor_patient_relationships"
}
