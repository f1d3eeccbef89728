package converter

import (
	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/domain/entity"
)

func PatientRecordToResponse(record *entity.PatientRecord) *dto.PatientRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.PatientRecordResponse{
		RecordID:     record.ID,
		Patient:      record.PatientID,
		CreatedDate:  record.CreatedAt,
		Diagnostics:  record.Diagnostics,
		Observations: record.Observations,
		Treatments:   record.Treatments,
		Misc:         record.Misc,
		Doctor:       record.DoctorID,
		Department:   record.DepartmentID,
	}
}

func PatientRecordsToResponses(records []entity.PatientRecord) []dto.PatientRecordResponse {
	responses := make([]dto.PatientRecordResponse, len(records))
	for i := range records {
		responses[i] = *PatientRecordToResponse(&records[i])
	}
	return responses
}
