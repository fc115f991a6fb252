package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/persistence/models"
	"github.com/circtek/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockRepository implements inventory.StockRepository using GORM
type GormStockRepository struct {
	db *tenant.TenantDB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: tenant.NewTenantDB(db)}
}

func (r *GormStockRepository) Create(ctx context.Context, s *inventory.Stock) error {
	return translate("create stock", r.db.DB().WithContext(ctx).Create(models.StockModelFromDomain(s)).Error)
}

// Update writes description and part flag. Quantities only move through
// ApplyChanges and SetQuantities.
func (r *GormStockRepository) Update(ctx context.Context, s *inventory.Stock) error {
	result := r.db.WithContext(ctx).Model(&models.StockModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"description": s.Description,
			"is_part":     s.IsPart,
			"updated_at":  time.Now(),
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return translate("update stock", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormStockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StockModel{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete stock", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Stock, error) {
	var model models.StockModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find stock", err)
	}
	return model.ToDomain(), nil
}

func (r *GormStockRepository) FindBySKU(ctx context.Context, warehouseID uuid.UUID, sku string) (*inventory.Stock, error) {
	var model models.StockModel
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND sku = ?", warehouseID, sku).
		First(&model).Error; err != nil {
		return nil, translate("find stock by sku", err)
	}
	return model.ToDomain(), nil
}

func (r *GormStockRepository) FindAll(ctx context.Context, filter inventory.StockFilter) ([]*inventory.Stock, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StockModel{})
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.IsPart != nil {
		query = query.Where("is_part = ?", *filter.IsPart)
	}
	if filter.LowStockThreshold != nil {
		query = query.Where("quantity <= ?", *filter.LowStockThreshold)
	}
	if len(filter.SKUs) > 0 {
		query = query.Where("sku IN ?", filter.SKUs)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`LOWER(sku) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count stock", err)
	}
	var rows []models.StockModel
	if err := paginate(query, filter.Filter, stockSortFields, "sku").Find(&rows).Error; err != nil {
		return nil, 0, translate("list stock", err)
	}
	stock := make([]*inventory.Stock, len(rows))
	for i := range rows {
		stock[i] = rows[i].ToDomain()
	}
	return stock, total, nil
}

// SumBySKU totals quantities per SKU for the tenant
func (r *GormStockRepository) SumBySKU(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, skus []string) (map[string]int64, error) {
	totals := make(map[string]int64, len(skus))
	if len(skus) == 0 {
		return totals, nil
	}

	query := r.db.DB().WithContext(ctx).Model(&models.StockModel{}).
		Select("sku, SUM(quantity) AS total").
		Where("tenant_id = ? AND sku IN ?", tenantID, skus)
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}

	var rows []struct {
		SKU   string `gorm:"column:sku"`
		Total int64
	}
	if err := query.Group("sku").Scan(&rows).Error; err != nil {
		return nil, translate("sum stock by sku", err)
	}
	for _, row := range rows {
		totals[row.SKU] = row.Total
	}
	return totals, nil
}

// ApplyChanges moves stock for a batch of changes in one transaction
func (r *GormStockRepository) ApplyChanges(ctx context.Context, tenantID uuid.UUID, changes []inventory.StockChange) error {
	return r.db.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyStockChanges(tx, tenantID, changes)
	})
}

// SetQuantities overwrites quantities in a warehouse. SKUs without a row
// get a new part row carrying the line's description; existing rows keep
// theirs.
func (r *GormStockRepository) SetQuantities(ctx context.Context, tenantID, warehouseID uuid.UUID, targets []inventory.StockLine) error {
	return r.db.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, line := range targets {
			if line.Quantity < 0 {
				return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Quantity for SKU %s cannot be negative", line.SKU))
			}
			result := tx.Model(&models.StockModel{}).
				Where("tenant_id = ? AND warehouse_id = ? AND sku = ?", tenantID, warehouseID, line.SKU).
				Updates(map[string]any{"quantity": line.Quantity, "updated_at": now, "version": gorm.Expr("version + 1")})
			if result.Error != nil {
				return translate("set stock quantity", result.Error)
			}
			if result.RowsAffected > 0 {
				continue
			}
			stock, err := inventory.NewStock(tenantID, warehouseID, line.SKU, line.Description, line.Quantity, true)
			if err != nil {
				return err
			}
			if err := tx.Create(models.StockModelFromDomain(stock)).Error; err != nil {
				return translate("create stock", err)
			}
		}
		return nil
	})
}

// applyStockChanges runs inside the caller's transaction. Each decrement is
// a conditional update so concurrent writers can never drive a row negative.
func applyStockChanges(tx *gorm.DB, tenantID uuid.UUID, changes []inventory.StockChange) error {
	now := time.Now()
	for _, c := range changes {
		result := tx.Model(&models.StockModel{}).
			Where("tenant_id = ? AND warehouse_id = ? AND sku = ?", tenantID, c.WarehouseID, c.SKU).
			Where("quantity + ? >= 0", c.Delta).
			Updates(map[string]any{
				"quantity":   gorm.Expr("quantity + ?", c.Delta),
				"updated_at": now,
				"version":    gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return translate("apply stock change", result.Error)
		}
		if result.RowsAffected > 0 {
			continue
		}

		var existing int64
		if err := tx.Model(&models.StockModel{}).
			Where("tenant_id = ? AND warehouse_id = ? AND sku = ?", tenantID, c.WarehouseID, c.SKU).
			Count(&existing).Error; err != nil {
			return translate("find stock", err)
		}
		if existing > 0 {
			return shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock for SKU %s", c.SKU))
		}
		if !c.CreateIfMissing || c.Delta < 0 {
			return shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("No stock for SKU %s in warehouse %s", c.SKU, c.WarehouseID))
		}
		stock, err := inventory.NewStock(tenantID, c.WarehouseID, c.SKU, c.Description, c.Delta, c.IsPart)
		if err != nil {
			return err
		}
		if err := tx.Create(models.StockModelFromDomain(stock)).Error; err != nil {
			return translate("create stock", err)
		}
	}
	return nil
}

var _ inventory.StockRepository = (*GormStockRepository)(nil)
