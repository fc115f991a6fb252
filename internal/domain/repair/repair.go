// Package repair models device repairs and the parts they consume.
package repair

import (
	"fmt"
	"strings"
	"time"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a repair
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Repair is work performed on one device out of one warehouse
type Repair struct {
	shared.TenantAggregateRoot
	DeviceID    string
	WarehouseID uuid.UUID
	Reason      string
	Remarks     string
	Status      Status
	CompletedAt *time.Time
	Items       []*Item
}

// Item is a part consumed by a repair
type Item struct {
	ID        uuid.UUID
	RepairID  uuid.UUID
	TenantID  uuid.UUID
	SKU       string
	Quantity  int64
	Cost      decimal.Decimal
	CreatedAt time.Time
}

// Subtotal is quantity multiplied by unit cost
func (i *Item) Subtotal() decimal.Decimal {
	return i.Cost.Mul(decimal.NewFromInt(i.Quantity))
}

// PartUsage is a request to consume a part
type PartUsage struct {
	SKU      string
	Quantity int64
	Cost     decimal.Decimal
}

// NewRepair opens a repair for deviceID
func NewRepair(tenantID, warehouseID uuid.UUID, deviceID, reason string, actorID uuid.UUID) (*Repair, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Device identifier cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse is required")
	}

	r := &Repair{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DeviceID:            deviceID,
		WarehouseID:         warehouseID,
		Reason:              strings.TrimSpace(reason),
		Status:              StatusPending,
		Items:               make([]*Item, 0),
	}
	r.SetCreatedBy(actorID)
	r.raise(inventory.DeviceEventRepairCreated, actorID, map[string]any{
		"repair_id":    r.ID.String(),
		"warehouse_id": warehouseID.String(),
		"reason":       r.Reason,
	})
	return r, nil
}

// ConsumeParts records parts used on the repair. It returns the new items and
// the stock movements that must be applied with them.
func (r *Repair) ConsumeParts(parts []PartUsage, actorID uuid.UUID) ([]*Item, []inventory.StockChange, error) {
	if r.Status == StatusCompleted {
		return nil, nil, shared.NewDomainError("INVALID_STATE", "Cannot consume parts on a completed repair")
	}
	if len(parts) == 0 {
		return nil, nil, shared.NewDomainError("INVALID_INPUT", "At least one part is required")
	}

	items := make([]*Item, 0, len(parts))
	changes := make([]inventory.StockChange, 0, len(parts))
	for _, p := range parts {
		sku, err := inventory.NormalizeSKU(p.SKU)
		if err != nil {
			return nil, nil, err
		}
		if p.Quantity <= 0 {
			return nil, nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Quantity for %s must be positive", sku))
		}
		if p.Cost.IsNegative() {
			return nil, nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Cost for %s cannot be negative", sku))
		}
		items = append(items, &Item{
			ID:        uuid.New(),
			RepairID:  r.ID,
			TenantID:  r.TenantID,
			SKU:       sku,
			Quantity:  p.Quantity,
			Cost:      p.Cost,
			CreatedAt: time.Now(),
		})
		changes = append(changes, inventory.StockChange{
			WarehouseID: r.WarehouseID,
			SKU:         sku,
			Delta:       -p.Quantity,
		})
	}

	r.Items = append(r.Items, items...)
	if r.Status == StatusPending {
		r.Status = StatusInProgress
	}
	r.touch()

	for _, item := range items {
		r.raise(inventory.DeviceEventRepairPartConsumed, actorID, map[string]any{
			"repair_id": r.ID.String(),
			"sku":       item.SKU,
			"quantity":  item.Quantity,
			"cost":      item.Cost.String(),
		})
	}
	return items, changes, nil
}

// Complete closes the repair
func (r *Repair) Complete(actorID uuid.UUID) error {
	if r.Status == StatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Repair is already completed")
	}
	now := time.Now()
	r.Status = StatusCompleted
	r.CompletedAt = &now
	r.touch()
	r.raise(inventory.DeviceEventRepairCompleted, actorID, map[string]any{
		"repair_id":  r.ID.String(),
		"total_cost": r.TotalCost().String(),
		"part_count": len(r.Items),
	})
	return nil
}

// SetRemarks updates free-text remarks
func (r *Repair) SetRemarks(remarks string) {
	r.Remarks = strings.TrimSpace(remarks)
	r.touch()
}

// PrepareDeletion returns the stock movements that put every consumed part
// back on the shelf, and records the deletion in the device history.
func (r *Repair) PrepareDeletion(actorID uuid.UUID) []inventory.StockChange {
	totals := make(map[string]int64)
	order := make([]string, 0)
	for _, item := range r.Items {
		if _, seen := totals[item.SKU]; !seen {
			order = append(order, item.SKU)
		}
		totals[item.SKU] += item.Quantity
	}

	changes := make([]inventory.StockChange, 0, len(order))
	for _, sku := range order {
		changes = append(changes, inventory.StockChange{
			WarehouseID:     r.WarehouseID,
			SKU:             sku,
			Delta:           totals[sku],
			CreateIfMissing: true,
			IsPart:          true,
		})
	}

	r.raise(inventory.DeviceEventRepairDeleted, actorID, map[string]any{
		"repair_id":      r.ID.String(),
		"restored_parts": totals,
	})
	return changes
}

// TotalCost sums the subtotal of every item
func (r *Repair) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (r *Repair) touch() {
	r.Bump()
}

func (r *Repair) raise(eventType inventory.DeviceEventType, actorID uuid.UUID, details map[string]any) {
	r.Record(&Event{
		EventMeta: shared.NewEventMeta(string(eventType), r.ID, r.TenantID),
		Device:    r.DeviceID,
		Actor:     actorPtr(actorID),
		Data:      details,
	})
}

func actorPtr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
