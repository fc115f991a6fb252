package inventory

import (
	"context"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WarehouseRepository persists warehouses
type WarehouseRepository interface {
	Create(ctx context.Context, w *Warehouse) error
	Update(ctx context.Context, w *Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Warehouse, int64, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	HasStock(ctx context.Context, id uuid.UUID) (bool, error)
}

// StockFilter narrows stock listings
type StockFilter struct {
	shared.Filter
	WarehouseID       *uuid.UUID
	IsPart            *bool
	LowStockThreshold *int64
	SKUs              []string
}

// StockRepository persists stock rows
type StockRepository interface {
	Create(ctx context.Context, s *Stock) error
	Update(ctx context.Context, s *Stock) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Stock, error)
	FindBySKU(ctx context.Context, warehouseID uuid.UUID, sku string) (*Stock, error)
	FindAll(ctx context.Context, filter StockFilter) ([]*Stock, int64, error)
	// SumBySKU totals quantities per SKU across the tenant's warehouses, or a
	// single warehouse when warehouseID is set. Missing SKUs are absent from the map.
	SumBySKU(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, skus []string) (map[string]int64, error)
	// ApplyChanges moves stock atomically; a change that would go negative
	// aborts the whole batch with INSUFFICIENT_STOCK.
	ApplyChanges(ctx context.Context, tenantID uuid.UUID, changes []StockChange) error
	// SetQuantities sets each line's SKU to its quantity in one transaction.
	// Missing rows are created as parts with the line's description.
	SetQuantities(ctx context.Context, tenantID, warehouseID uuid.UUID, targets []StockLine) error
}

// DeviceEventFilter narrows device history listings
type DeviceEventFilter struct {
	shared.Filter
	DeviceID  string
	EventType *DeviceEventType
}

// DeviceEventRepository appends and reads device history
type DeviceEventRepository interface {
	Append(ctx context.Context, events ...*DeviceEvent) error
	FindAll(ctx context.Context, filter DeviceEventFilter) ([]*DeviceEvent, int64, error)
}
