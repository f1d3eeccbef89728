package converter

import (
	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/domain/entity"
)

func PatientToResponse(user *entity.User) *dto.PatientResponse {
	if user == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

func PatientsToResponses(users []entity.User) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(users))
	for i := range users {
		responses[i] = *PatientToResponse(&users[i])
	}
	return responses
}
