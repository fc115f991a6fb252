// Package procurement models purchase orders of devices and parts.
package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the receiving state of a purchase
type Status string

const (
	StatusPending           Status = "pending"
	StatusPartiallyReceived Status = "partially_received"
	StatusReceived          Status = "received"
)

// ErrHasReceipts refuses deleting a purchase that stock was received against
var ErrHasReceipts = shared.NewDomainError("CONFLICT", "Cannot delete a purchase that has received items")

// Purchase is an order placed with a supplier for delivery to a warehouse
type Purchase struct {
	shared.TenantAggregateRoot
	WarehouseID          uuid.UUID
	PurchaseOrderNo      string
	SupplierName         string
	ExpectedDeliveryDate *time.Time
	Currency             string
	Remarks              string
	Status               Status
	Items                []*Item
}

// Item is one ordered line
type Item struct {
	ID               uuid.UUID
	PurchaseID       uuid.UUID
	TenantID         uuid.UUID
	SKU              string
	Quantity         int64
	ReceivedQuantity int64
	Price            decimal.Decimal
	IsPart           bool
}

// Outstanding is the quantity still to be delivered
func (i *Item) Outstanding() int64 {
	return i.Quantity - i.ReceivedQuantity
}

// Line describes an item when creating a purchase
type Line struct {
	SKU      string
	Quantity int64
	Price    decimal.Decimal
	IsPart   bool
}

// Receipt is a delivered quantity of one SKU
type Receipt struct {
	SKU      string
	Quantity int64
}

// NewPurchase creates a pending purchase with its lines
func NewPurchase(tenantID, warehouseID uuid.UUID, poNumber, supplier, currency string, lines []Line, actorID uuid.UUID) (*Purchase, error) {
	poNumber = strings.TrimSpace(poNumber)
	if poNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase order number cannot be empty")
	}
	if strings.TrimSpace(supplier) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier name cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "A purchase needs at least one item")
	}

	p := &Purchase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		WarehouseID:         warehouseID,
		PurchaseOrderNo:     poNumber,
		SupplierName:        strings.TrimSpace(supplier),
		Currency:            strings.ToUpper(strings.TrimSpace(currency)),
		Status:              StatusPending,
	}
	p.SetCreatedBy(actorID)

	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		sku, err := inventory.NormalizeSKU(l.SKU)
		if err != nil {
			return nil, err
		}
		if seen[sku] {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("SKU %s appears more than once", sku))
		}
		seen[sku] = true
		if l.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Quantity for %s must be positive", sku))
		}
		if l.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Price for %s cannot be negative", sku))
		}
		p.Items = append(p.Items, &Item{
			ID:         uuid.New(),
			PurchaseID: p.ID,
			TenantID:   tenantID,
			SKU:        sku,
			Quantity:   l.Quantity,
			Price:      l.Price,
			IsPart:     l.IsPart,
		})
	}
	return p, nil
}

// SetExpectedDelivery sets the delivery date
func (p *Purchase) SetExpectedDelivery(date *time.Time) {
	p.ExpectedDeliveryDate = date
	p.touch()
}

// SetRemarks sets free-text remarks
func (p *Purchase) SetRemarks(remarks string) {
	p.Remarks = strings.TrimSpace(remarks)
	p.touch()
}

// Receive books delivered quantities against the open lines and returns the
// stock increments to apply in the purchase's warehouse.
func (p *Purchase) Receive(receipts []Receipt, actorID uuid.UUID) ([]inventory.StockChange, error) {
	if p.Status == StatusReceived {
		return nil, shared.NewDomainError("INVALID_STATE", "Purchase has already been fully received")
	}
	if len(receipts) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one received item is required")
	}

	bySKU := make(map[string]*Item, len(p.Items))
	for _, item := range p.Items {
		bySKU[item.SKU] = item
	}

	pending := make(map[string]int64, len(receipts))
	order := make([]string, 0, len(receipts))
	for _, r := range receipts {
		sku, err := inventory.NormalizeSKU(r.SKU)
		if err != nil {
			return nil, err
		}
		item, ok := bySKU[sku]
		if !ok {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("SKU %s is not on this purchase", sku))
		}
		if r.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Received quantity for %s must be positive", sku))
		}
		if _, dup := pending[sku]; !dup {
			order = append(order, sku)
		}
		pending[sku] += r.Quantity
		if pending[sku] > item.Outstanding() {
			return nil, shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Received quantity for %s exceeds the %d outstanding", sku, item.Outstanding()))
		}
	}

	changes := make([]inventory.StockChange, 0, len(order))
	for _, sku := range order {
		item := bySKU[sku]
		qty := pending[sku]
		item.ReceivedQuantity += qty
		changes = append(changes, inventory.StockChange{
			WarehouseID:     p.WarehouseID,
			SKU:             sku,
			Delta:           qty,
			CreateIfMissing: true,
			IsPart:          item.IsPart,
		})
		p.Record(&Event{
			EventMeta: shared.NewEventMeta(string(inventory.DeviceEventPurchaseReceived), p.ID, p.TenantID),
			Device:    sku,
			Actor:     actorPtr(actorID),
			Data: map[string]any{
				"purchase_id":       p.ID.String(),
				"purchase_order_no": p.PurchaseOrderNo,
				"quantity":          qty,
				"warehouse_id":      p.WarehouseID.String(),
			},
		})
	}

	p.Status = StatusReceived
	for _, item := range p.Items {
		if item.Outstanding() > 0 {
			p.Status = StatusPartiallyReceived
			break
		}
	}
	p.touch()
	return changes, nil
}

// HasReceipts reports whether any quantity has been received
func (p *Purchase) HasReceipts() bool {
	for _, item := range p.Items {
		if item.ReceivedQuantity > 0 {
			return true
		}
	}
	return false
}

// TotalAmount sums quantity times price over all lines
func (p *Purchase) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}

func (p *Purchase) touch() {
	p.Bump()
}

func actorPtr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
