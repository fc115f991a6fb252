package identity

import (
	"github.com/circtek/backend/internal/domain/shared"
)

// Well-known role names seeded by the initial migration
const (
	RoleSuperAdmin  = "super_admin"
	RoleAdmin       = "admin"
	RoleShopManager = "shop_manager"
	RoleManager     = "manager"
	RoleTechnician  = "technician"
	RoleStaff       = "staff"
)

// Role is a named permission level shared by all tenants
type Role struct {
	shared.BaseEntity
	Name        string
	Description string
}

// IsSuperAdmin reports whether the role crosses tenant boundaries
func (r *Role) IsSuperAdmin() bool {
	return r != nil && r.Name == RoleSuperAdmin
}

// IsShopManager reports whether the role is shop_manager
func (r *Role) IsShopManager() bool {
	return r != nil && r.Name == RoleShopManager
}

// IsAdministrative reports whether the role may manage tenant configuration
func (r *Role) IsAdministrative() bool {
	return r != nil && (r.Name == RoleSuperAdmin || r.Name == RoleAdmin)
}
