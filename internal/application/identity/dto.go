package identity

import (
	"time"

	"github.com/circtek/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains the input for password login
type LoginInput struct {
	Identifier string // user_name or email
	Password   string
}

// ShopLoginInput contains the input for signing in to a shop
type ShopLoginInput struct {
	Identifier string
	Password   string
	ShopID     uuid.UUID
}

// LoginResult contains the tokens and user of a successful login
type LoginResult struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         UserDTO   `json:"user"`
}

// RefreshResult contains a refreshed token pair
type RefreshResult struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LogoutInput identifies the access token to revoke
type LogoutInput struct {
	TokenJTI  string
	ExpiresAt time.Time
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains input for registering a user. TenantID is
// honoured for super_admin callers only; others create in their own tenant.
type CreateUserInput struct {
	TenantID      *uuid.UUID
	Name          string
	UserName      string
	Email         string
	Password      string
	RoleID        uuid.UUID
	WarehouseID   *uuid.UUID
	ManagedShopID *uuid.UUID
}

// UpdateUserInput contains the fields a patch may change
type UpdateUserInput struct {
	Name          *string
	UserName      *string
	Email         *string
	Password      *string
	RoleID        *uuid.UUID
	WarehouseID   *uuid.UUID
	ManagedShopID *uuid.UUID
	Status        *identity.UserStatus
}

// UserDTO is the public view of a user; the password hash never leaves
type UserDTO struct {
	ID            uuid.UUID  `json:"id"`
	TenantID      uuid.UUID  `json:"tenant_id"`
	Name          string     `json:"name"`
	UserName      string     `json:"user_name"`
	Email         string     `json:"email"`
	RoleID        uuid.UUID  `json:"role_id"`
	Role          string     `json:"role,omitempty"`
	WarehouseID   *uuid.UUID `json:"warehouse_id,omitempty"`
	ManagedShopID *uuid.UUID `json:"managed_shop_id,omitempty"`
	Status        string     `json:"status"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToUserDTO converts a domain user; role may be nil
func ToUserDTO(u *identity.User, role *identity.Role) UserDTO {
	dto := UserDTO{
		ID:            u.ID,
		TenantID:      u.TenantID,
		Name:          u.Name,
		UserName:      u.UserName,
		Email:         u.Email,
		RoleID:        u.RoleID,
		WarehouseID:   u.WarehouseID,
		ManagedShopID: u.ManagedShopID,
		Status:        string(u.Status),
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if role != nil {
		dto.Role = role.Name
	}
	return dto
}

// RoleDTO is the public view of a role
type RoleDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// TenantDTO is the public view of a tenant
type TenantDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTenantDTO(t *identity.Tenant) TenantDTO {
	return TenantDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// CreateTenantInput contains input for creating a tenant
type CreateTenantInput struct {
	Name        string
	Description string
}

// UpdateTenantInput contains the fields a tenant patch may change
type UpdateTenantInput struct {
	Name        *string
	Description *string
	Status      *identity.TenantStatus
}

// ShopDTO is the public view of a shop
type ShopDTO struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toShopDTO(s *identity.Shop) ShopDTO {
	return ShopDTO{
		ID:        s.ID,
		TenantID:  s.TenantID,
		Name:      s.Name,
		OwnerID:   s.OwnerID,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ShopAccessDTO is an explicit shop grant
type ShopAccessDTO struct {
	ShopID    uuid.UUID `json:"shop_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateShopInput contains input for creating a shop
type CreateShopInput struct {
	Name    string
	OwnerID uuid.UUID
}

// UpdateShopInput contains the fields a shop patch may change
type UpdateShopInput struct {
	Name    *string
	OwnerID *uuid.UUID
	Active  *bool
}
