package shared

import "github.com/google/uuid"

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Role     string
}

// IsSuperAdmin reports whether the actor may act on every tenant
func (a Actor) IsSuperAdmin() bool {
	return a.Role == "super_admin"
}

// IsAdmin reports whether the actor administers tenant configuration
func (a Actor) IsAdmin() bool {
	return a.Role == "super_admin" || a.Role == "admin"
}
