package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientRecord is a clinical entry written by a doctor for a patient.
// DepartmentID is copied from the doctor when the record is created.
type PatientRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"record_id"`
	PatientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"patient"`
	DoctorID     int       `gorm:"not null;index" json:"doctor"`
	DepartmentID int       `gorm:"not null;index" json:"department"`
	CreatedAt    time.Time `gorm:"autoCreateTime;<-:create" json:"created_date"`
	Diagnostics  string    `gorm:"type:text;not null" json:"diagnostics"`
	Observations string    `gorm:"type:text;not null" json:"observations"`
	Treatments   string    `gorm:"type:text;not null" json:"treatments"`
	Misc         *string   `gorm:"type:text" json:"misc"`

	// Relationships
	Patient    User       `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Doctor     Doctor     `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
	Department Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PatientRecord) TableName() string {
	return "patient_records"
}

// Texts written into the record created alongside a self-registered patient
const (
	RegistrationDiagnostics  = "Initial diagnosis"
	RegistrationObservations = "Initial observation"
	RegistrationTreatments   = "Initial treatment"
	RegistrationMisc         = "Miscellaneous information"
)

// Texts written into the record created when a doctor adds a patient
const (
	AdmissionDiagnostics  = "Initial diagnostics"
	AdmissionObservations = "Initial observations"
	AdmissionTreatments   = "Initial treatments"
	AdmissionMisc         = "No additional information"
)
