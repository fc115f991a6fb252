package persistence

import (
	"context"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/procurement"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/persistence/models"
	"github.com/circtek/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseRepository implements procurement.Repository
type GormPurchaseRepository struct {
	db *tenant.TenantDB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: tenant.NewTenantDB(db)}
}

// Create inserts the purchase and its items
func (r *GormPurchaseRepository) Create(ctx context.Context, p *procurement.Purchase) error {
	model := models.PurchaseModelFromDomain(p)
	err := r.db.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return translate("create purchase", err)
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return translate("create purchase items", err)
			}
		}
		return savePendingEvents(tx, p)
	})
	if err == nil {
		p.MarkStored()
		p.ClearEvents()
	}
	return err
}

func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Purchase, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sku ASC") }).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find purchase", err)
	}
	return model.ToDomain(), nil
}

func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter procurement.Filter) ([]*procurement.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`LOWER(purchase_order_no) LIKE ? ESCAPE '\' OR LOWER(supplier_name) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count purchases", err)
	}
	var rows []models.PurchaseModel
	if err := paginate(query, filter.Filter, purchaseSortFields, "created_at").
		Preload("Items").
		Find(&rows).Error; err != nil {
		return nil, 0, translate("list purchases", err)
	}
	purchases := make([]*procurement.Purchase, len(rows))
	for i := range rows {
		purchases[i] = rows[i].ToDomain()
	}
	return purchases, total, nil
}

func (r *GormPurchaseRepository) ExistsByOrderNo(ctx context.Context, tenantID uuid.UUID, poNumber string) (bool, error) {
	var count int64
	if err := r.db.DB().WithContext(ctx).Model(&models.PurchaseModel{}).
		Where("tenant_id = ? AND purchase_order_no = ?", tenantID, poNumber).
		Count(&count).Error; err != nil {
		return false, translate("check purchase order number", err)
	}
	return count > 0, nil
}

// SaveReceipt persists received quantities, stock increments, the new
// status and PURCHASE_RECEIVED history in one transaction. The purchase row
// must still be at the version it was loaded at, otherwise nothing is written
// and CONFLICT is returned.
func (r *GormPurchaseRepository) SaveReceipt(ctx context.Context, p *procurement.Purchase, changes []inventory.StockChange) error {
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.PurchaseModel{}).Scopes(r.db.ScopeFor(ctx)).
			Where("id = ? AND version = ?", p.ID, p.StoredVersion()).
			Updates(map[string]any{
				"status":     p.Status,
				"updated_at": p.UpdatedAt,
				"version":    p.Version,
			})
		if result.Error != nil {
			return translate("update purchase", result.Error)
		}
		if result.RowsAffected == 0 {
			return missingOrStale(tx, &models.PurchaseModel{}, r.db.ScopeFor(ctx), p.ID)
		}

		for _, item := range p.Items {
			if err := tx.Model(&models.PurchaseItemModel{}).
				Where("id = ? AND purchase_id = ?", item.ID, p.ID).
				Updates(map[string]any{"received_quantity": item.ReceivedQuantity}).Error; err != nil {
				return translate("update purchase item", err)
			}
		}

		if err := applyStockChanges(tx, p.TenantID, changes); err != nil {
			return err
		}
		return savePendingEvents(tx, p)
	})
	if err == nil {
		p.MarkStored()
		p.ClearEvents()
	}
	return err
}

// Delete removes a purchase and its items. A purchase with any received
// quantity is refused with CONFLICT, checked inside the transaction.
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PurchaseModel{}).Scopes(r.db.ScopeFor(ctx)).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return translate("find purchase", err)
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		var received int64
		if err := tx.Model(&models.PurchaseItemModel{}).
			Where("purchase_id = ? AND received_quantity > 0", id).
			Count(&received).Error; err != nil {
			return translate("check purchase receipts", err)
		}
		if received > 0 {
			return procurement.ErrHasReceipts
		}
		if err := tx.Where("purchase_id = ?", id).Delete(&models.PurchaseItemModel{}).Error; err != nil {
			return translate("delete purchase items", err)
		}
		return translate("delete purchase", tx.Delete(&models.PurchaseModel{}, "id = ?", id).Error)
	})
}

var _ procurement.Repository = (*GormPurchaseRepository)(nil)
