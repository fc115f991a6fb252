package persistence

import (
	"context"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/persistence/models"
	"github.com/circtek/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements inventory.WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *tenant.TenantDB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: tenant.NewTenantDB(db)}
}

// Create inserts a warehouse
func (r *GormWarehouseRepository) Create(ctx context.Context, w *inventory.Warehouse) error {
	return translate("create warehouse", r.db.DB().WithContext(ctx).Create(models.WarehouseModelFromDomain(w)).Error)
}

// Update overwrites an existing warehouse
func (r *GormWarehouseRepository) Update(ctx context.Context, w *inventory.Warehouse) error {
	model := models.WarehouseModelFromDomain(w)
	result := r.db.WithContext(ctx).Model(model).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return translate("update warehouse", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a warehouse by ID
func (r *GormWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.WarehouseModel{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete warehouse", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	var model models.WarehouseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find warehouse", err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all warehouses matching the filter
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.Warehouse, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.WarehouseModel{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count warehouses", err)
	}
	var rows []models.WarehouseModel
	if err := paginate(query, filter, nameSortFields, "name").Find(&rows).Error; err != nil {
		return nil, 0, translate("list warehouses", err)
	}
	warehouses := make([]*inventory.Warehouse, len(rows))
	for i := range rows {
		warehouses[i] = rows[i].ToDomain()
	}
	return warehouses, total, nil
}

// ExistsByName checks if a name is taken within the tenant
func (r *GormWarehouseRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.DB().WithContext(ctx).Model(&models.WarehouseModel{}).
		Where("tenant_id = ? AND name = ?", tenantID, name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translate("check warehouse name", err)
	}
	return count > 0, nil
}

// HasStock reports whether any stock row references the warehouse
func (r *GormWarehouseRepository) HasStock(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.DB().WithContext(ctx).Model(&models.StockModel{}).
		Where("warehouse_id = ?", id).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, translate("check warehouse stock", err)
	}
	return count > 0, nil
}

var _ inventory.WarehouseRepository = (*GormWarehouseRepository)(nil)
