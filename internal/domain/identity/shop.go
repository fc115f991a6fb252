package identity

import (
	"strings"
	"time"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Shop is a buyback storefront owned by a tenant
type Shop struct {
	shared.TenantAggregateRoot
	Name    string
	OwnerID uuid.UUID
	Active  bool
}

// NewShop creates an active shop
func NewShop(tenantID, ownerID uuid.UUID, name string) (*Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shop name cannot be empty")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shop owner is required")
	}
	return &Shop{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		OwnerID:             ownerID,
		Active:              true,
	}, nil
}

// Update changes the mutable shop fields
func (s *Shop) Update(name *string, ownerID *uuid.UUID, active *bool) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return shared.NewDomainError("INVALID_INPUT", "Shop name cannot be empty")
		}
		s.Name = n
	}
	if ownerID != nil {
		if *ownerID == uuid.Nil {
			return shared.NewDomainError("INVALID_INPUT", "Shop owner is required")
		}
		s.OwnerID = *ownerID
	}
	if active != nil {
		s.Active = *active
	}
	s.Bump()
	return nil
}

// ShopAccess grants a user explicit access to a shop
type ShopAccess struct {
	UserID    uuid.UUID
	ShopID    uuid.UUID
	TenantID  uuid.UUID
	CreatedAt time.Time
}

// NewShopAccess creates an access grant for user on shop
func NewShopAccess(shop *Shop, userID uuid.UUID) *ShopAccess {
	return &ShopAccess{
		UserID:    userID,
		ShopID:    shop.ID,
		TenantID:  shop.TenantID,
		CreatedAt: time.Now(),
	}
}
