package domain

import "github.com/google/uuid"

// Role of the caller, forwarded by the gateway
type Role string

const (
	RoleClient    Role = "client"
	RoleAdmin     Role = "admin"
	RoleHeadAdmin Role = "head_admin"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleAdmin, RoleHeadAdmin:
		return true
	}
	return false
}

// IsAdmin returns true for admin and head_admin
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleHeadAdmin
}

// Actor is the authenticated caller of an operation
type Actor struct {
	ID   uuid.UUID
	Role Role
}
