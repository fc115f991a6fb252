package identity

import (
	"context"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines persistence for users.
// Lookups by identifier ignore tenant scope because they run before a
// tenant is known (login).
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)
	ExistsByUserName(ctx context.Context, userName string, excludeID *uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
}

// UserFilter contains filter options for querying users
type UserFilter struct {
	shared.Filter
	RoleID *uuid.UUID
	Status *UserStatus
}

// RoleRepository reads the global role table
type RoleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	FindAll(ctx context.Context) ([]*Role, error)
}

// TenantRepository defines persistence for tenants
type TenantRepository interface {
	Create(ctx context.Context, tenant *Tenant) error
	Update(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Tenant, int64, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}

// ShopRepository defines persistence for shops and explicit access grants
type ShopRepository interface {
	Create(ctx context.Context, shop *Shop) error
	Update(ctx context.Context, shop *Shop) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	// FindByIDUnscoped loads a shop regardless of the caller's tenant.
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Shop, int64, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	GrantAccess(ctx context.Context, access *ShopAccess) error
	RevokeAccess(ctx context.Context, shopID, userID uuid.UUID) error
	HasAccess(ctx context.Context, shopID, userID uuid.UUID) (bool, error)
	ListAccess(ctx context.Context, shopID uuid.UUID) ([]*ShopAccess, error)
}
