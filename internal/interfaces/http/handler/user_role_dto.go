package handler

import (
	"github.com/circtek/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
)

// =====================
// User Request DTOs
// =====================

// UpdateUserRequest represents the request body for updating a user
// @Name HandlerUpdateUserRequest
type UpdateUserRequest struct {
	Name          *string    `json:"name" binding:"omitempty,min=1,max=200"`
	UserName      *string    `json:"user_name" binding:"omitempty,min=3,max=100"`
	Email         *string    `json:"email" binding:"omitempty,email,max=255"`
	Password      *string    `json:"password" binding:"omitempty,min=8,max=128"`
	RoleID        *uuid.UUID `json:"role_id"`
	WarehouseID   *uuid.UUID `json:"warehouse_id"`
	ManagedShopID *uuid.UUID `json:"managed_shop_id"`
	Status        *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UserListQuery represents query parameters for listing users
// @Name HandlerUserListQuery
type UserListQuery struct {
	dto.ListRequest
	RoleID string `form:"role_id" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// =====================
// Shop Request DTOs
// =====================

// CreateShopRequest represents the request body for creating a shop
type CreateShopRequest struct {
	Name    string    `json:"name" binding:"required,min=1,max=200"`
	OwnerID uuid.UUID `json:"owner_id" binding:"required"`
}

// UpdateShopRequest represents the request body for updating a shop
type UpdateShopRequest struct {
	Name    *string    `json:"name" binding:"omitempty,min=1,max=200"`
	OwnerID *uuid.UUID `json:"owner_id"`
	Active  *bool      `json:"active"`
}
