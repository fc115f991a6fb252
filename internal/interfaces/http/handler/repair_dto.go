package handler

import (
	"github.com/circtek/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRepairRequest represents the request body for opening a repair
type CreateRepairRequest struct {
	DeviceID    string    `json:"device_id" binding:"required,max=100" example:"356938035643809"`
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	Reason      string    `json:"reason" binding:"omitempty,max=500" example:"cracked screen"`
	Remarks     string    `json:"remarks" binding:"omitempty,max=2000"`
}

// RepairPartRequest is one consumed part
type RepairPartRequest struct {
	SKU      string          `json:"sku" binding:"required,sku" example:"SCR-IP13-BLK"`
	Quantity int64           `json:"quantity" binding:"required,gt=0" example:"1"`
	Cost     decimal.Decimal `json:"cost" swaggertype:"number" example:"39.90"`
}

// ConsumePartsRequest represents the request body for consuming parts on a repair
type ConsumePartsRequest struct {
	Items []RepairPartRequest `json:"items" binding:"required,min=1,dive"`
}

// RepairListQuery represents query parameters for listing repairs
type RepairListQuery struct {
	dto.ListRequest
	Status   string `form:"status" binding:"omitempty,oneof=pending in_progress completed"`
	DeviceID string `form:"device_id" binding:"omitempty,max=100"`
}
