package models

// Role is the capability tier of a user. It is the single role enum shared
// by the policy checks and the defect lifecycle code.
type Role string

const (
	RoleEngineer Role = "engineer"
	RoleManager  Role = "manager"
	RoleLead     Role = "lead"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEngineer, RoleManager, RoleLead, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
