package repair

import (
	"time"

	"github.com/circtek/backend/internal/domain/repair"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRepairRequest opens a repair
type CreateRepairRequest struct {
	DeviceID    string
	WarehouseID uuid.UUID
	Reason      string
	Remarks     string
}

// ConsumePartsRequest lists the parts to take from stock
type ConsumePartsRequest struct {
	Items []repair.PartUsage
}

// ItemResponse is a consumed part
type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku"`
	Quantity  int64           `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	CreatedAt time.Time       `json:"created_at"`
}

// RepairResponse is a repair with its items
type RepairResponse struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	DeviceID    string          `json:"device_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Reason      string          `json:"reason"`
	Remarks     string          `json:"remarks"`
	Status      string          `json:"status"`
	CreatedBy   *uuid.UUID      `json:"created_by,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Items       []ItemResponse  `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toRepairResponse(r *repair.Repair) RepairResponse {
	items := make([]ItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = ItemResponse{
			ID:        item.ID,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			Cost:      item.Cost,
			Subtotal:  item.Subtotal(),
			CreatedAt: item.CreatedAt,
		}
	}
	return RepairResponse{
		ID:          r.ID,
		TenantID:    r.TenantID,
		DeviceID:    r.DeviceID,
		WarehouseID: r.WarehouseID,
		Reason:      r.Reason,
		Remarks:     r.Remarks,
		Status:      string(r.Status),
		CreatedBy:   r.CreatedBy,
		CompletedAt: r.CompletedAt,
		TotalCost:   r.TotalCost(),
		Items:       items,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
