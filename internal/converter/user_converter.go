package converter

import (
	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// The role name is derived from RoleID so Role does not need to be preloaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      entity.RoleNameByID(user.RoleID),
		CreatedAt: user.CreatedAt,
	}
}

// IdentityToCurrentUser adds the doctor profile keys for doctors.
func IdentityToCurrentUser(user *entity.User, identity *entity.Identity) *dto.CurrentUserResponse {
	response := &dto.CurrentUserResponse{UserResponse: *UserToResponse(user)}
	if identity.IsDoctor() {
		doctorID := identity.Doctor.ID
		departmentID := identity.Doctor.DepartmentID
		response.DoctorID = &doctorID
		response.DepartmentID = &departmentID
	}
	return response
}
