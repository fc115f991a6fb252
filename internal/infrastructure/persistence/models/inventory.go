package models

import (
	"encoding/json"
	"time"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// WarehouseModel maps the warehouses table
type WarehouseModel struct {
	AggregateModel
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_warehouses_tenant_name,priority:1"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid"`
	Name        string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_warehouses_tenant_name,priority:2"`
	Description string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse
func (m *WarehouseModel) ToDomain() *inventory.Warehouse {
	return &inventory.Warehouse{
		TenantAggregateRoot: m.toTenantAggregate(m.TenantID, m.CreatedBy),
		Name:                m.Name,
		Description:         m.Description,
		Active:              m.Status == "active",
	}
}

// WarehouseModelFromDomain creates a persistence model from a domain Warehouse
func WarehouseModelFromDomain(w *inventory.Warehouse) *WarehouseModel {
	m := &WarehouseModel{
		TenantID:    w.TenantID,
		CreatedBy:   w.CreatedBy,
		Name:        w.Name,
		Description: w.Description,
		Status:      statusFromActive(w.Active),
	}
	m.fromAggregate(w.BaseAggregateRoot)
	return m
}

// StockModel maps the stock table; one row per (tenant, warehouse, sku)
type StockModel struct {
	AggregateModel
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_stock_tenant_warehouse_sku,priority:1"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid"`
	WarehouseID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_stock_tenant_warehouse_sku,priority:2"`
	SKU         string     `gorm:"column:sku;type:varchar(100);not null;uniqueIndex:idx_stock_tenant_warehouse_sku,priority:3"`
	Description string     `gorm:"type:text"`
	Quantity    int64      `gorm:"not null;default:0;check:chk_stock_quantity_non_negative,quantity >= 0"`
	IsPart      bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (StockModel) TableName() string {
	return "stock"
}

// ToDomain converts the persistence model to a domain Stock
func (m *StockModel) ToDomain() *inventory.Stock {
	return &inventory.Stock{
		TenantAggregateRoot: m.toTenantAggregate(m.TenantID, m.CreatedBy),
		WarehouseID:         m.WarehouseID,
		SKU:                 m.SKU,
		Description:         m.Description,
		Quantity:            m.Quantity,
		IsPart:              m.IsPart,
	}
}

// StockModelFromDomain creates a persistence model from a domain Stock
func StockModelFromDomain(s *inventory.Stock) *StockModel {
	m := &StockModel{
		TenantID:    s.TenantID,
		CreatedBy:   s.CreatedBy,
		WarehouseID: s.WarehouseID,
		SKU:         s.SKU,
		Description: s.Description,
		Quantity:    s.Quantity,
		IsPart:      s.IsPart,
	}
	m.fromAggregate(s.BaseAggregateRoot)
	return m
}

// DeviceEventModel maps the append-only device_events table.
// Details are stored as a JSON document.
type DeviceEventModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_device_events_tenant_device,priority:1"`
	DeviceID    string     `gorm:"type:varchar(100);not null;index:idx_device_events_tenant_device,priority:2"`
	EventType   string     `gorm:"type:varchar(50);not null;index"`
	ActorID     *uuid.UUID `gorm:"type:uuid"`
	DetailsJSON string     `gorm:"column:details;type:jsonb;not null;default:'{}'"`
	CreatedAt   time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (DeviceEventModel) TableName() string {
	return "device_events"
}

// ToDomain converts the persistence model to a domain DeviceEvent.
// A details column that fails to decode yields an empty map.
func (m *DeviceEventModel) ToDomain() *inventory.DeviceEvent {
	details := map[string]any{}
	if m.DetailsJSON != "" {
		_ = json.Unmarshal([]byte(m.DetailsJSON), &details)
	}
	return &inventory.DeviceEvent{
		ID:        m.ID,
		TenantID:  m.TenantID,
		DeviceID:  m.DeviceID,
		EventType: inventory.DeviceEventType(m.EventType),
		ActorID:   m.ActorID,
		Details:   details,
		CreatedAt: m.CreatedAt,
	}
}

// DeviceEventModelFromDomain creates a persistence model from a domain DeviceEvent
func DeviceEventModelFromDomain(e *inventory.DeviceEvent) (*DeviceEventModel, error) {
	details := e.Details
	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	return &DeviceEventModel{
		ID:          e.ID,
		TenantID:    e.TenantID,
		DeviceID:    e.DeviceID,
		EventType:   string(e.EventType),
		ActorID:     e.ActorID,
		DetailsJSON: string(raw),
		CreatedAt:   e.CreatedAt,
	}, nil
}
