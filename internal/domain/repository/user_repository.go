package repository

import (
	"clinic-records-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByIDAndRole(db *gorm.DB, id uuid.UUID, roleID int) (*entity.User, error)
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	ExistsByUsername(db *gorm.DB, username string) (bool, error)
	Update(db *gorm.DB, user *entity.User) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
