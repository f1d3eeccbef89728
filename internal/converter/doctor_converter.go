package converter

import (
	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity with its User loaded to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:         doctor.ID,
		UserID:     doctor.UserID,
		Username:   doctor.User.Username,
		Email:      doctor.User.Email,
		Password:   dto.MaskedPassword,
		Department: doctor.DepartmentID,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorsToSummaries keeps only the id and the username of each doctor
func DoctorsToSummaries(doctors []entity.Doctor) []dto.DoctorSummaryResponse {
	summaries := make([]dto.DoctorSummaryResponse, len(doctors))
	for i, doctor := range doctors {
		summaries[i] = dto.DoctorSummaryResponse{
			ID:   doctor.ID,
			Name: doctor.User.Username,
		}
	}
	return summaries
}
