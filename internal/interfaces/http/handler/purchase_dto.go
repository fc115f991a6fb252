package handler

import (
	"time"

	"github.com/circtek/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseLineRequest is one ordered line
type PurchaseLineRequest struct {
	SKU      string          `json:"sku" binding:"required,sku"`
	Quantity int64           `json:"quantity" binding:"required,gt=0"`
	Price    decimal.Decimal `json:"price" swaggertype:"number" example:"120.00"`
	IsPart   bool            `json:"is_part"`
}

// CreatePurchaseRequest represents the request body for creating a purchase
type CreatePurchaseRequest struct {
	WarehouseID          uuid.UUID             `json:"warehouse_id" binding:"required"`
	PurchaseOrderNo      string                `json:"purchase_order_no" binding:"required,max=100" example:"PO-2026-0042"`
	SupplierName         string                `json:"supplier_name" binding:"required,max=200"`
	ExpectedDeliveryDate *time.Time            `json:"expected_delivery_date"`
	Currency             string                `json:"currency" binding:"omitempty,currency_code" example:"EUR"`
	Remarks              string                `json:"remarks" binding:"omitempty,max=2000"`
	Items                []PurchaseLineRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiptLineRequest is a delivered quantity for one SKU
type ReceiptLineRequest struct {
	SKU      string `json:"sku" binding:"required,sku"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

// ReceivePurchaseRequest represents the request body for receiving purchase items
type ReceivePurchaseRequest struct {
	Items []ReceiptLineRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseListQuery represents query parameters for listing purchases
type PurchaseListQuery struct {
	dto.ListRequest
	Status      string `form:"status" binding:"omitempty,oneof=pending partially_received received"`
	WarehouseID string `form:"warehouse_id" binding:"omitempty,uuid"`
}
