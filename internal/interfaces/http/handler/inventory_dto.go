package handler

import (
	"github.com/circtek/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
)

// StockListQuery represents query parameters for listing stock
type StockListQuery struct {
	dto.ListRequest
	WarehouseID       string `form:"warehouse_id" binding:"omitempty,uuid"`
	IsPart            *bool  `form:"is_part"`
	LowStockThreshold *int64 `form:"low_stock_threshold" binding:"omitempty,gte=0"`
}

// CreateStockRequest represents the request body for creating a stock row
type CreateStockRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	SKU         string    `json:"sku" binding:"required,sku" example:"SCR-IP13-BLK"`
	Description string    `json:"description" binding:"omitempty,max=500"`
	Quantity    int64     `json:"quantity" binding:"gte=0"`
	IsPart      bool      `json:"is_part"`
}

// UpdateStockRequest changes descriptive stock fields
type UpdateStockRequest struct {
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsPart      *bool   `json:"is_part"`
}

// AdjustStockRequest represents a signed stock movement
type AdjustStockRequest struct {
	Delta  int64  `json:"delta" binding:"required,ne=0" example:"-2"`
	Reason string `json:"reason" binding:"required,max=500" example:"damaged in transit"`
}

// DeviceEventListQuery represents query parameters for listing device events
type DeviceEventListQuery struct {
	dto.ListRequest
	DeviceID  string `form:"device_id" binding:"omitempty,max=100"`
	EventType string `form:"event_type" binding:"omitempty,oneof=REPAIR_CREATED REPAIR_PART_CONSUMED REPAIR_COMPLETED REPAIR_DELETED PURCHASE_RECEIVED NOTE TEST_RESULT STATUS_CHANGE SHIPPED"`
}

// CreateDeviceEventRequest records a manual device history entry
type CreateDeviceEventRequest struct {
	DeviceID  string         `json:"device_id" binding:"required,max=100" example:"356938035643809"`
	EventType string         `json:"event_type" binding:"required,oneof=NOTE TEST_RESULT STATUS_CHANGE SHIPPED" example:"NOTE"`
	Details   map[string]any `json:"details"`
}
