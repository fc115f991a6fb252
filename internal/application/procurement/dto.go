package procurement

import (
	"time"

	"github.com/circtek/backend/internal/domain/procurement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest is the input for creating a purchase
type CreatePurchaseRequest struct {
	WarehouseID          uuid.UUID
	PurchaseOrderNo      string
	SupplierName         string
	ExpectedDeliveryDate *time.Time
	Currency             string
	Remarks              string
	Items                []procurement.Line
}

// ReceiveRequest lists delivered quantities per SKU
type ReceiveRequest struct {
	Items []procurement.Receipt
}

// PurchaseItemResponse is one ordered line
type PurchaseItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	SKU              string          `json:"sku"`
	Quantity         int64           `json:"quantity"`
	ReceivedQuantity int64           `json:"received_quantity"`
	Price            decimal.Decimal `json:"price"`
	IsPart           bool            `json:"is_part"`
}

// PurchaseResponse is a purchase with its lines
type PurchaseResponse struct {
	ID                   uuid.UUID              `json:"id"`
	TenantID             uuid.UUID              `json:"tenant_id"`
	WarehouseID          uuid.UUID              `json:"warehouse_id"`
	PurchaseOrderNo      string                 `json:"purchase_order_no"`
	SupplierName         string                 `json:"supplier_name"`
	ExpectedDeliveryDate *time.Time             `json:"expected_delivery_date,omitempty"`
	Currency             string                 `json:"currency"`
	Remarks              string                 `json:"remarks"`
	Status               string                 `json:"status"`
	TotalAmount          decimal.Decimal        `json:"total_amount"`
	CreatedBy            *uuid.UUID             `json:"created_by,omitempty"`
	Items                []PurchaseItemResponse `json:"items"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
}

func toPurchaseResponse(p *procurement.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = PurchaseItemResponse{
			ID:               item.ID,
			SKU:              item.SKU,
			Quantity:         item.Quantity,
			ReceivedQuantity: item.ReceivedQuantity,
			Price:            item.Price,
			IsPart:           item.IsPart,
		}
	}
	return PurchaseResponse{
		ID:                   p.ID,
		TenantID:             p.TenantID,
		WarehouseID:          p.WarehouseID,
		PurchaseOrderNo:      p.PurchaseOrderNo,
		SupplierName:         p.SupplierName,
		ExpectedDeliveryDate: p.ExpectedDeliveryDate,
		Currency:             p.Currency,
		Remarks:              p.Remarks,
		Status:               string(p.Status),
		TotalAmount:          p.TotalAmount(),
		CreatedBy:            p.CreatedBy,
		Items:                items,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
