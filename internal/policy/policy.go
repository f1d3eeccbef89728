// Package policy decides whether an acting identity may touch a doctor, patient,
// record or department. Every check runs before the caller mutates anything.
package policy

import (
	"clinic-records-api/internal/domain/apperror"
	"clinic-records-api/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrNotDoctor        = apperror.Forbidden("User is not a doctor")
	ErrPermissionDenied = apperror.Forbidden("You do not have permission to perform this action")
	ErrOtherDepartment  = apperror.Forbidden("You do not have access to this department")
)

// CanAccessDoctorProfile allows a doctor profile to be read or changed only by its own user.
func CanAccessDoctorProfile(actor entity.Identity, doctor *entity.Doctor) error {
	if doctor.UserID != actor.UserID {
		return ErrPermissionDenied
	}
	return nil
}

// CanAccessPatient allows the patient themself, or a doctor related to the patient.
// related reports whether a relationship row links actor's doctor profile to the patient.
func CanAccessPatient(actor entity.Identity, patientID uuid.UUID, related bool) error {
	if actor.UserID == patientID {
		return nil
	}
	if actor.IsDoctor() && related {
		return nil
	}
	return ErrPermissionDenied
}

// CanAccessRecord allows the record's patient or the user behind the record's doctor.
// record.Doctor must be loaded.
func CanAccessRecord(actor entity.Identity, record *entity.PatientRecord) error {
	if record.PatientID == actor.UserID {
		return nil
	}
	if record.Doctor.UserID == actor.UserID {
		return nil
	}
	return ErrPermissionDenied
}

// RecordListScope returns the department whose records actor may list.
// ok is false for non-doctors, who see nothing.
func RecordListScope(actor entity.Identity) (departmentID int, ok bool) {
	if !actor.IsDoctor() {
		return 0, false
	}
	return actor.Doctor.DepartmentID, true
}

// CanAccessDepartment allows only doctors that belong to the department.
func CanAccessDepartment(actor entity.Identity, departmentID int) error {
	if !actor.IsDoctor() {
		return ErrNotDoctor
	}
	if actor.Doctor.DepartmentID != departmentID {
		return ErrOtherDepartment
	}
	return nil
}

// StampRecord attributes a new record to actor's doctor profile and department,
// overwriting whatever the caller supplied.
func StampRecord(actor entity.Identity, record *entity.PatientRecord) error {
	if !actor.IsDoctor() {
		return ErrPermissionDenied
	}
	record.DoctorID = actor.Doctor.ID
	record.DepartmentID = actor.Doctor.DepartmentID
	return nil
}
