package models

import (
	"time"

	"github.com/circtek/backend/internal/domain/repair"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RepairModel maps the repairs table
type RepairModel struct {
	AggregateModel
	TenantID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	CreatedBy   *uuid.UUID    `gorm:"type:uuid"`
	DeviceID    string        `gorm:"type:varchar(100);not null;index"`
	WarehouseID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Reason      string        `gorm:"type:text"`
	Remarks     string        `gorm:"type:text"`
	Status      repair.Status `gorm:"type:varchar(20);not null;default:'pending';index"`
	CompletedAt *time.Time
	Items       []RepairItemModel `gorm:"foreignKey:RepairID;references:ID"`
}

// TableName returns the table name for GORM
func (RepairModel) TableName() string {
	return "repairs"
}

// ToDomain converts the persistence model, with any preloaded items
func (m *RepairModel) ToDomain() *repair.Repair {
	r := &repair.Repair{
		TenantAggregateRoot: m.toTenantAggregate(m.TenantID, m.CreatedBy),
		DeviceID:            m.DeviceID,
		WarehouseID:         m.WarehouseID,
		Reason:              m.Reason,
		Remarks:             m.Remarks,
		Status:              m.Status,
		CompletedAt:         m.CompletedAt,
		Items:               make([]*repair.Item, len(m.Items)),
	}
	for i := range m.Items {
		r.Items[i] = m.Items[i].ToDomain()
	}
	return r
}

// RepairModelFromDomain converts the aggregate root only; items are
// written separately.
func RepairModelFromDomain(r *repair.Repair) *RepairModel {
	m := &RepairModel{
		TenantID:    r.TenantID,
		CreatedBy:   r.CreatedBy,
		DeviceID:    r.DeviceID,
		WarehouseID: r.WarehouseID,
		Reason:      r.Reason,
		Remarks:     r.Remarks,
		Status:      r.Status,
		CompletedAt: r.CompletedAt,
	}
	m.fromAggregate(r.BaseAggregateRoot)
	return m
}

// RepairItemModel maps repair_items
type RepairItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RepairID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU       string          `gorm:"column:sku;type:varchar(100);not null"`
	Quantity  int64           `gorm:"not null;check:chk_repair_items_quantity_positive,quantity > 0"`
	Cost      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RepairItemModel) TableName() string {
	return "repair_items"
}

func (m *RepairItemModel) ToDomain() *repair.Item {
	return &repair.Item{
		ID:        m.ID,
		RepairID:  m.RepairID,
		TenantID:  m.TenantID,
		SKU:       m.SKU,
		Quantity:  m.Quantity,
		Cost:      m.Cost,
		CreatedAt: m.CreatedAt,
	}
}

func RepairItemModelFromDomain(i *repair.Item) *RepairItemModel {
	return &RepairItemModel{
		ID:        i.ID,
		RepairID:  i.RepairID,
		TenantID:  i.TenantID,
		SKU:       i.SKU,
		Quantity:  i.Quantity,
		Cost:      i.Cost,
		CreatedAt: i.CreatedAt,
	}
}
