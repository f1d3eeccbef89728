package repository

import (
	"clinic-records-api/internal/domain/entity"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(db *gorm.DB, department *entity.Department) error
	FindAll(db *gorm.DB) ([]entity.Department, error)
	FindByID(db *gorm.DB, id int) (*entity.Department, error)
}
