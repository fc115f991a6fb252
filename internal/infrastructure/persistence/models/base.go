package models

import (
	"time"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides the id and timestamp columns of every table
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *BaseModel) toEntity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func (m *BaseModel) fromEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel adds the optimistic-lock version of aggregate roots
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

func (m *AggregateModel) toAggregate() shared.BaseAggregateRoot {
	return shared.RestoreAggregateRoot(m.toEntity(), m.Version)
}

func (m *AggregateModel) fromAggregate(a shared.BaseAggregateRoot) {
	m.fromEntity(a.BaseEntity)
	m.Version = a.Version
}

// Tenant-owned models declare TenantID themselves so it can take part in
// composite unique indexes.

func (m *AggregateModel) toTenantAggregate(tenantID uuid.UUID, createdBy *uuid.UUID) shared.TenantAggregateRoot {
	return shared.TenantAggregateRoot{
		BaseAggregateRoot: m.toAggregate(),
		TenantID:          tenantID,
		CreatedBy:         createdBy,
	}
}

func statusFromActive(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// AllModels lists every persistence model, in dependency order. Used by
// tests that build the schema with AutoMigrate.
var AllModels = []any{
	&TenantModel{},
	&RoleModel{},
	&UserModel{},
	&ShopModel{},
	&ShopAccessModel{},
	&CurrencySymbolModel{},
	&CurrencyPreferenceModel{},
	&WarehouseModel{},
	&StockModel{},
	&DeviceEventModel{},
	&RepairModel{},
	&RepairItemModel{},
	&PurchaseModel{},
	&PurchaseItemModel{},
}
