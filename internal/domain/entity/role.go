package entity

// Role is the group a user belongs to
type Role struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDDoctors  = 1
	RoleIDPatients = 2
)

// RoleNames constants
const (
	RoleDoctors  = "Doctors"
	RolePatients = "Patients"
)

// RoleIDByName resolves a group name to its role ID
func RoleIDByName(name string) (int, bool) {
	switch name {
	case RoleDoctors:
		return RoleIDDoctors, true
	case RolePatients:
		return RoleIDPatients, true
	}
	return 0, false
}

// RoleNameByID is the inverse of RoleIDByName
func RoleNameByID(id int) string {
	switch id {
	case RoleIDDoctors:
		return RoleDoctors
	case RoleIDPatients:
		return RolePatients
	}
	return ""
}
