package entity

import "github.com/google/uuid"

type IdentityKind int

const (
	IdentityPatient IdentityKind = iota + 1
	IdentityDoctor
)

func (k IdentityKind) String() string {
	switch k {
	case IdentityDoctor:
		return RoleDoctors
	case IdentityPatient:
		return RolePatients
	}
	return "unknown"
}

// Identity is the acting user resolved for one request.
// Doctor is set exactly when Kind is IdentityDoctor.
type Identity struct {
	UserID uuid.UUID
	Kind   IdentityKind
	Doctor *Doctor
}

func (i Identity) IsDoctor() bool {
	return i.Kind == IdentityDoctor && i.Doctor != nil
}
