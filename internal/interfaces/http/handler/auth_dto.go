package handler

import (
	"time"

	"github.com/google/uuid"
)

// =====================
// Auth Request DTOs
// =====================

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required,max=255" example:"jdoe"`
	Password   string `json:"password" binding:"required,max=128"`
}

// ShopLoginRequest represents the request body for signing in to a shop
type ShopLoginRequest struct {
	Identifier string    `json:"identifier" binding:"required,max=255"`
	Password   string    `json:"password" binding:"required,max=128"`
	ShopID     uuid.UUID `json:"shop_id" binding:"required"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents the request body for password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// RegisterRequest represents the request body for registering a user
type RegisterRequest struct {
	TenantID      *uuid.UUID `json:"tenant_id,omitempty"`
	Name          string     `json:"name" binding:"required,max=200"`
	UserName      string     `json:"user_name" binding:"required,min=3,max=100"`
	Email         string     `json:"email" binding:"required,email,max=255"`
	Password      string     `json:"password" binding:"required,min=8,max=128"`
	RoleID        uuid.UUID  `json:"role_id" binding:"required"`
	WarehouseID   *uuid.UUID `json:"warehouse_id,omitempty"`
	ManagedShopID *uuid.UUID `json:"managed_shop_id,omitempty"`
}

// =====================
// Auth Response DTOs
// =====================

// RefreshTokenResponse represents a refreshed token pair
type RefreshTokenResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
