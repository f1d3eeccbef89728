package usecase

import (
	"clinic-records-api/internal/domain/entity"
	"clinic-records-api/internal/domain/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// userChanges holds the optional identity fields shared by doctor and patient updates.
type userChanges struct {
	Username *string
	Email    *string
	Password *string
}

func (c userChanges) empty() bool {
	return c.Username == nil && c.Email == nil && c.Password == nil
}

// applyUserChanges merges the present fields into user. Absent fields keep their values.
func applyUserChanges(tx *gorm.DB, userRepo repository.UserRepository, user *entity.User, changes userChanges) error {
	if changes.Username != nil && *changes.Username != user.Username {
		taken, err := userRepo.ExistsByUsername(tx, *changes.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		user.Username = *changes.Username
	}
	if changes.Email != nil {
		user.Email = *changes.Email
	}
	if changes.Password != nil {
		hashedPassword, err := hashPassword(*changes.Password)
		if err != nil {
			return err
		}
		user.Password = hashedPassword
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// saveUser persists user, translating a unique violation on username.
func saveUser(tx *gorm.DB, userRepo repository.UserRepository, user *entity.User, create bool) error {
	var err error
	if create {
		err = userRepo.Create(tx, user)
	} else {
		err = userRepo.Update(tx, user)
	}
	if isDuplicateKeyError(err, "username") {
		return ErrUsernameTaken
	}
	return err
}

// ensureUsernameFree rejects usernames that are already registered.
func ensureUsernameFree(tx *gorm.DB, userRepo repository.UserRepository, username string) error {
	taken, err := userRepo.ExistsByUsername(tx, username)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	return nil
}

func userIDPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
