package usecase

import (
	"clinic-records-api/internal/domain/entity"
	"clinic-records-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type placeholderTexts struct {
	Diagnostics  string
	Observations string
	Treatments   string
	Misc         string
}

var (
	registrationTexts = placeholderTexts{
		Diagnostics:  entity.RegistrationDiagnostics,
		Observations: entity.RegistrationObservations,
		Treatments:   entity.RegistrationTreatments,
		Misc:         entity.RegistrationMisc,
	}
	admissionTexts = placeholderTexts{
		Diagnostics:  entity.AdmissionDiagnostics,
		Observations: entity.AdmissionObservations,
		Treatments:   entity.AdmissionTreatments,
		Misc:         entity.AdmissionMisc,
	}
)

// admitPatient links patient to doctor and writes the placeholder record that every
// patient starts with. The record is attributed to doctor and the doctor's department.
func admitPatient(
	tx *gorm.DB,
	log *logrus.Logger,
	relationshipRepo repository.DoctorPatientRelationshipRepository,
	recordRepo repository.PatientRecordRepository,
	patient *entity.User,
	doctor *entity.Doctor,
	texts placeholderTexts,
) error {
	relationship := &entity.DoctorPatientRelationship{
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
	}
	if err := relationshipRepo.Create(tx, relationship); err != nil {
		log.Warnf("Failed to create doctor patient relationship: %+v", err)
		return err
	}

	misc := texts.Misc
	record := &entity.PatientRecord{
		PatientID:    patient.ID,
		DoctorID:     doctor.ID,
		DepartmentID: doctor.DepartmentID,
		Diagnostics:  texts.Diagnostics,
		Observations: texts.Observations,
		Treatments:   texts.Treatments,
		Misc:         &misc,
	}
	if err := recordRepo.Create(tx, record); err != nil {
		log.Warnf("Failed to create placeholder patient record: %+v", err)
		return err
	}

	return nil
}
