package persistence

import (
	"context"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/repair"
	"github.com/circtek/backend/internal/infrastructure/persistence/models"
	"github.com/circtek/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepairRepository implements repair.Repository. Pending domain events
// are written to device_events in the same transaction as the repair and
// cleared once it commits.
type GormRepairRepository struct {
	db *tenant.TenantDB
}

// NewGormRepairRepository creates a new GormRepairRepository
func NewGormRepairRepository(db *gorm.DB) *GormRepairRepository {
	return &GormRepairRepository{db: tenant.NewTenantDB(db)}
}

func (r *GormRepairRepository) Create(ctx context.Context, rep *repair.Repair) error {
	err := r.db.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(models.RepairModelFromDomain(rep)).Error; err != nil {
			return translate("create repair", err)
		}
		return savePendingEvents(tx, rep)
	})
	if err == nil {
		rep.MarkStored()
		rep.ClearEvents()
	}
	return err
}

func (r *GormRepairRepository) Update(ctx context.Context, rep *repair.Repair) error {
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := r.updateRoot(ctx, tx, rep); err != nil {
			return err
		}
		return savePendingEvents(tx, rep)
	})
	if err == nil {
		rep.MarkStored()
		rep.ClearEvents()
	}
	return err
}

// updateRoot writes the repair row only if it is still at the version the
// repair was loaded at.
func (r *GormRepairRepository) updateRoot(ctx context.Context, tx *gorm.DB, rep *repair.Repair) error {
	model := models.RepairModelFromDomain(rep)
	result := tx.Model(model).Scopes(r.db.ScopeFor(ctx)).
		Where("version = ?", rep.StoredVersion()).
		Select("*").Omit("id", "created_at", clause.Associations).
		Updates(model)
	if result.Error != nil {
		return translate("update repair", result.Error)
	}
	if result.RowsAffected == 0 {
		return missingOrStale(tx, &models.RepairModel{}, r.db.ScopeFor(ctx), rep.ID)
	}
	return nil
}

// FindByID loads a repair with its items, oldest item first
func (r *GormRepairRepository) FindByID(ctx context.Context, id uuid.UUID) (*repair.Repair, error) {
	var model models.RepairModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find repair", err)
	}
	return model.ToDomain(), nil
}

func (r *GormRepairRepository) FindAll(ctx context.Context, filter repair.Filter) ([]*repair.Repair, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RepairModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DeviceID != "" {
		query = query.Where("device_id = ?", filter.DeviceID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`LOWER(device_id) LIKE ? ESCAPE '\' OR LOWER(reason) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count repairs", err)
	}
	var rows []models.RepairModel
	if err := paginate(query, filter.Filter, repairSortFields, "created_at").
		Preload("Items").
		Find(&rows).Error; err != nil {
		return nil, 0, translate("list repairs", err)
	}
	repairs := make([]*repair.Repair, len(rows))
	for i := range rows {
		repairs[i] = rows[i].ToDomain()
	}
	return repairs, total, nil
}

// SaveConsumption decrements stock, inserts the new items and updates the
// repair. Any failure rolls back every item of the batch.
func (r *GormRepairRepository) SaveConsumption(ctx context.Context, rep *repair.Repair, items []*repair.Item, changes []inventory.StockChange) error {
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := r.updateRoot(ctx, tx, rep); err != nil {
			return err
		}
		if err := applyStockChanges(tx, rep.TenantID, changes); err != nil {
			return err
		}
		rows := make([]*models.RepairItemModel, len(items))
		for i, item := range items {
			rows[i] = models.RepairItemModelFromDomain(item)
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return translate("create repair items", err)
			}
		}
		return savePendingEvents(tx, rep)
	})
	if err == nil {
		rep.MarkStored()
		rep.ClearEvents()
	}
	return err
}

// Delete restores consumed stock and removes the repair with its items.
// The device history, including the deletion event, is kept. A repair
// changed since it was loaded is refused with CONFLICT.
func (r *GormRepairRepository) Delete(ctx context.Context, rep *repair.Repair, restores []inventory.StockChange) error {
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := applyStockChanges(tx, rep.TenantID, restores); err != nil {
			return err
		}
		if err := tx.Where("repair_id = ?", rep.ID).Delete(&models.RepairItemModel{}).Error; err != nil {
			return translate("delete repair items", err)
		}
		result := tx.Scopes(r.db.ScopeFor(ctx)).
			Delete(&models.RepairModel{}, "id = ? AND version = ?", rep.ID, rep.StoredVersion())
		if result.Error != nil {
			return translate("delete repair", result.Error)
		}
		if result.RowsAffected == 0 {
			return missingOrStale(tx, &models.RepairModel{}, r.db.ScopeFor(ctx), rep.ID)
		}
		return savePendingEvents(tx, rep)
	})
	if err == nil {
		rep.ClearEvents()
	}
	return err
}

var _ repair.Repository = (*GormRepairRepository)(nil)
