package models

import (
	"time"

	"github.com/circtek/backend/internal/domain/procurement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseModel maps the purchases table
type PurchaseModel struct {
	AggregateModel
	TenantID             uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_tenant_po,priority:1"`
	CreatedBy            *uuid.UUID          `gorm:"type:uuid"`
	WarehouseID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	PurchaseOrderNo      string              `gorm:"type:varchar(100);not null;uniqueIndex:idx_purchases_tenant_po,priority:2"`
	SupplierName         string              `gorm:"type:varchar(200);not null"`
	ExpectedDeliveryDate *time.Time          `gorm:"type:date"`
	Currency             string              `gorm:"type:varchar(3)"`
	Remarks              string              `gorm:"type:text"`
	Status               procurement.Status  `gorm:"type:varchar(30);not null;default:'pending';index"`
	Items                []PurchaseItemModel `gorm:"foreignKey:PurchaseID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model, with any preloaded items
func (m *PurchaseModel) ToDomain() *procurement.Purchase {
	p := &procurement.Purchase{
		TenantAggregateRoot:  m.toTenantAggregate(m.TenantID, m.CreatedBy),
		WarehouseID:          m.WarehouseID,
		PurchaseOrderNo:      m.PurchaseOrderNo,
		SupplierName:         m.SupplierName,
		ExpectedDeliveryDate: m.ExpectedDeliveryDate,
		Currency:             m.Currency,
		Remarks:              m.Remarks,
		Status:               m.Status,
		Items:                make([]*procurement.Item, len(m.Items)),
	}
	for i := range m.Items {
		p.Items[i] = m.Items[i].ToDomain()
	}
	return p
}

// PurchaseModelFromDomain converts the aggregate including its items
func PurchaseModelFromDomain(p *procurement.Purchase) *PurchaseModel {
	m := &PurchaseModel{
		TenantID:             p.TenantID,
		CreatedBy:            p.CreatedBy,
		WarehouseID:          p.WarehouseID,
		PurchaseOrderNo:      p.PurchaseOrderNo,
		SupplierName:         p.SupplierName,
		ExpectedDeliveryDate: p.ExpectedDeliveryDate,
		Currency:             p.Currency,
		Remarks:              p.Remarks,
		Status:               p.Status,
		Items:                make([]PurchaseItemModel, len(p.Items)),
	}
	m.fromAggregate(p.BaseAggregateRoot)
	for i, item := range p.Items {
		m.Items[i] = *PurchaseItemModelFromDomain(item)
	}
	return m
}

// PurchaseItemModel maps purchase_items
type PurchaseItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU              string          `gorm:"column:sku;type:varchar(100);not null"`
	Quantity         int64           `gorm:"not null"`
	ReceivedQuantity int64           `gorm:"not null;default:0;check:chk_purchase_items_received,received_quantity <= quantity"`
	Price            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsPart           bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}

func (m *PurchaseItemModel) ToDomain() *procurement.Item {
	return &procurement.Item{
		ID:               m.ID,
		PurchaseID:       m.PurchaseID,
		TenantID:         m.TenantID,
		SKU:              m.SKU,
		Quantity:         m.Quantity,
		ReceivedQuantity: m.ReceivedQuantity,
		Price:            m.Price,
		IsPart:           m.IsPart,
	}
}

func PurchaseItemModelFromDomain(i *procurement.Item) *PurchaseItemModel {
	return &PurchaseItemModel{
		ID:               i.ID,
		PurchaseID:       i.PurchaseID,
		TenantID:         i.TenantID,
		SKU:              i.SKU,
		Quantity:         i.Quantity,
		ReceivedQuantity: i.ReceivedQuantity,
		Price:            i.Price,
		IsPart:           i.IsPart,
	}
}
