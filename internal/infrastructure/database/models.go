package database

import "clinic-records-api/internal/domain/entity"

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&entity.Role{},
		&entity.User{},
		&entity.Department{},
		&entity.Doctor{},
		&entity.DoctorPatientRelationship{},
		&entity.PatientRecord{},
		&entity.AuditLog{},
	}
}

// Roles are the fixed groups every installation starts with.
func Roles() []entity.Role {
	return []entity.Role{
		{ID: entity.RoleIDDoctors, RoleName: entity.RoleDoctors},
		{ID: entity.RoleIDPatients, RoleName: entity.RolePatients},
	}
}
