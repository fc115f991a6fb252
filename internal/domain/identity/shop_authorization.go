package identity

import (
	"github.com/circtek/backend/internal/domain/shared"
)

// Shop-login denial messages
const (
	ShopManagerDeniedMessage = "Shop managers can only sign in to the shop they manage or have been granted access to"
	ShopDeniedMessage        = "You do not have access to this shop"
)

// ErrRoleNotFound is returned when a user references a role that no longer exists
var ErrRoleNotFound = shared.NewDomainError("ROLE_NOT_FOUND", "User role configuration is invalid")

// AuthorizeShopLogin decides whether user may open a session on shop.
//
// A shop manager is limited to the shop recorded as managed by them plus any
// shop they were granted explicitly. Other roles are admitted when they own
// the shop, share its tenant, or hold an explicit grant.
func AuthorizeShopLogin(user *User, role *Role, shop *Shop, hasExplicitAccess bool) error {
	if role == nil {
		return ErrRoleNotFound
	}

	if role.IsShopManager() {
		if hasExplicitAccess || user.Manages(shop.ID) {
			return nil
		}
		return shared.NewDomainError("FORBIDDEN", ShopManagerDeniedMessage)
	}

	if shop.OwnerID == user.ID || shop.TenantID == user.TenantID || hasExplicitAccess {
		return nil
	}
	return shared.NewDomainError("FORBIDDEN", ShopDeniedMessage)
}
