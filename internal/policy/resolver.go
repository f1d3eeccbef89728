package policy

import (
	"fmt"

	"clinic-records-api/internal/domain/apperror"
	"clinic-records-api/internal/domain/entity"
	"clinic-records-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownIdentity = apperror.Authentication("User not found")

// Resolver turns an authenticated user ID into a tagged Identity.
type Resolver struct {
	userRepo   repository.UserRepository
	doctorRepo repository.DoctorRepository
}

func NewResolver(userRepo repository.UserRepository, doctorRepo repository.DoctorRepository) *Resolver {
	return &Resolver{
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
	}
}

func (r *Resolver) Resolve(db *gorm.DB, userID uuid.UUID) (*entity.Identity, error) {
	user, err := r.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownIdentity
	}

	if !user.IsDoctor() {
		return &entity.Identity{UserID: user.ID, Kind: entity.IdentityPatient}, nil
	}

	doctor, err := r.doctorRepo.FindByUserID(db, user.ID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("user %s is in the doctors group without a doctor profile", user.ID)
	}

	return &entity.Identity{UserID: user.ID, Kind: entity.IdentityDoctor, Doctor: doctor}, nil
}
