package persistence

import (
	"context"
	"time"

	"github.com/circtek/backend/internal/domain/currency"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/persistence/models"
	"github.com/circtek/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCurrencySymbolRepository implements currency.SymbolRepository
type GormCurrencySymbolRepository struct {
	db *tenant.TenantDB
}

// NewGormCurrencySymbolRepository creates a new GormCurrencySymbolRepository
func NewGormCurrencySymbolRepository(db *gorm.DB) *GormCurrencySymbolRepository {
	return &GormCurrencySymbolRepository{db: tenant.NewTenantDB(db)}
}

// Save inserts or updates a symbol. When the symbol is the default, every
// other default of its tenant is cleared in the same transaction.
func (r *GormCurrencySymbolRepository) Save(ctx context.Context, symbol *currency.Symbol) error {
	model := models.CurrencySymbolModelFromDomain(symbol)
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if model.IsDefault {
			if err := tx.Model(&models.CurrencySymbolModel{}).
				Where("tenant_id = ? AND id <> ? AND is_default = ?", model.TenantID, model.ID, true).
				Updates(map[string]any{"is_default": false, "updated_at": time.Now()}).Error; err != nil {
				return translate("clear default currency", err)
			}
		}

		var count int64
		if err := tx.Model(&models.CurrencySymbolModel{}).Scopes(r.db.ScopeFor(ctx)).
			Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return translate("find currency symbol", err)
		}
		if count == 0 {
			return translate("create currency symbol", tx.Create(model).Error)
		}
		return translate("update currency symbol",
			tx.Model(model).Select("*").Omit("id", "created_at").Updates(model).Error)
	})
}

// Delete removes a symbol. The service refuses symbols that preferences
// still point at. A preference saved after that check trips the foreign key
// of the SQL schema, which translate reports as IN_USE.
func (r *GormCurrencySymbolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CurrencySymbolModel{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete currency symbol", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCurrencySymbolRepository) FindByID(ctx context.Context, id uuid.UUID) (*currency.Symbol, error) {
	var model models.CurrencySymbolModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find currency symbol", err)
	}
	return model.ToDomain(), nil
}

func (r *GormCurrencySymbolRepository) FindAll(ctx context.Context, filter currency.SymbolFilter) ([]*currency.Symbol, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CurrencySymbolModel{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`LOWER(code) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count currency symbols", err)
	}
	var rows []models.CurrencySymbolModel
	if err := paginate(query, filter.Filter, currencySymbolSortFields, "code").Find(&rows).Error; err != nil {
		return nil, 0, translate("list currency symbols", err)
	}
	symbols := make([]*currency.Symbol, len(rows))
	for i := range rows {
		symbols[i] = rows[i].ToDomain()
	}
	return symbols, total, nil
}

// FindDefault returns the tenant's default symbol, active or not
func (r *GormCurrencySymbolRepository) FindDefault(ctx context.Context, tenantID uuid.UUID) (*currency.Symbol, error) {
	var model models.CurrencySymbolModel
	if err := r.db.DB().WithContext(ctx).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		First(&model).Error; err != nil {
		return nil, translate("find default currency", err)
	}
	return model.ToDomain(), nil
}

func (r *GormCurrencySymbolRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.DB().WithContext(ctx).Model(&models.CurrencySymbolModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, code)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translate("check currency code", err)
	}
	return count > 0, nil
}

// GormCurrencyPreferenceRepository implements currency.PreferenceRepository
type GormCurrencyPreferenceRepository struct {
	db *gorm.DB
}

// NewGormCurrencyPreferenceRepository creates a new GormCurrencyPreferenceRepository
func NewGormCurrencyPreferenceRepository(db *gorm.DB) *GormCurrencyPreferenceRepository {
	return &GormCurrencyPreferenceRepository{db: db}
}

// Save upserts the preference of (tenant, user)
func (r *GormCurrencyPreferenceRepository) Save(ctx context.Context, pref *currency.Preference) error {
	model := models.CurrencyPreferenceModelFromDomain(pref)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"currency_symbol_id", "updated_at"}),
		}).
		Create(model).Error
	return translate("save currency preference", err)
}

func (r *GormCurrencyPreferenceRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) (*currency.Preference, error) {
	var model models.CurrencyPreferenceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		First(&model).Error; err != nil {
		return nil, translate("find currency preference", err)
	}
	return model.ToDomain(), nil
}

func (r *GormCurrencyPreferenceRepository) DeleteByUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Delete(&models.CurrencyPreferenceModel{})
	if result.Error != nil {
		return translate("delete currency preference", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountBySymbol counts preferences pointing at a symbol, across tenants
func (r *GormCurrencyPreferenceRepository) CountBySymbol(ctx context.Context, symbolID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CurrencyPreferenceModel{}).
		Where("currency_symbol_id = ?", symbolID).
		Count(&count).Error; err != nil {
		return 0, translate("count currency preferences", err)
	}
	return count, nil
}

var (
	_ currency.SymbolRepository     = (*GormCurrencySymbolRepository)(nil)
	_ currency.PreferenceRepository = (*GormCurrencyPreferenceRepository)(nil)
)
