package persistence

import (
	"context"

	"github.com/circtek/backend/internal/domain/identity"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/persistence/models"
	"github.com/circtek/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShopRepository implements identity.ShopRepository
type GormShopRepository struct {
	db *tenant.TenantDB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: tenant.NewTenantDB(db)}
}

func (r *GormShopRepository) Create(ctx context.Context, shop *identity.Shop) error {
	return translate("create shop", r.db.DB().WithContext(ctx).Create(models.ShopModelFromDomain(shop)).Error)
}

func (r *GormShopRepository) Update(ctx context.Context, shop *identity.Shop) error {
	model := models.ShopModelFromDomain(shop)
	result := r.db.WithContext(ctx).Model(model).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return translate("update shop", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a shop and every access grant to it
func (r *GormShopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Scopes(r.db.ScopeFor(ctx)).Delete(&models.ShopModel{}, "id = ?", id)
		if result.Error != nil {
			return translate("delete shop", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return translate("delete shop access", tx.Where("shop_id = ?", id).Delete(&models.ShopAccessModel{}).Error)
	})
}

func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Shop, error) {
	var model models.ShopModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find shop", err)
	}
	return model.ToDomain(), nil
}

// FindByIDUnscoped is used by shop login, where the shop may belong to a
// tenant other than the user's.
func (r *GormShopRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*identity.Shop, error) {
	var model models.ShopModel
	if err := r.db.DB().WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find shop", err)
	}
	return model.ToDomain(), nil
}

func (r *GormShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.Shop, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ShopModel{})
	if filter.Search != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count shops", err)
	}
	var rows []models.ShopModel
	if err := paginate(query, filter, nameSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, translate("list shops", err)
	}
	shops := make([]*identity.Shop, len(rows))
	for i := range rows {
		shops[i] = rows[i].ToDomain()
	}
	return shops, total, nil
}

func (r *GormShopRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.DB().WithContext(ctx).Model(&models.ShopModel{}).
		Where("tenant_id = ? AND name = ?", tenantID, name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translate("check shop name", err)
	}
	return count > 0, nil
}

// GrantAccess records an explicit grant; granting twice is a no-op
func (r *GormShopRepository) GrantAccess(ctx context.Context, access *identity.ShopAccess) error {
	err := r.db.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "shop_id"}},
			DoNothing: true,
		}).
		Create(models.ShopAccessModelFromDomain(access)).Error
	return translate("grant shop access", err)
}

func (r *GormShopRepository) RevokeAccess(ctx context.Context, shopID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Delete(&models.ShopAccessModel{})
	if result.Error != nil {
		return translate("revoke shop access", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// HasAccess reports an explicit grant regardless of tenant
func (r *GormShopRepository) HasAccess(ctx context.Context, shopID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.DB().WithContext(ctx).Model(&models.ShopAccessModel{}).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Count(&count).Error; err != nil {
		return false, translate("check shop access", err)
	}
	return count > 0, nil
}

func (r *GormShopRepository) ListAccess(ctx context.Context, shopID uuid.UUID) ([]*identity.ShopAccess, error) {
	var rows []models.ShopAccessModel
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, translate("list shop access", err)
	}
	grants := make([]*identity.ShopAccess, len(rows))
	for i := range rows {
		grants[i] = rows[i].ToDomain()
	}
	return grants, nil
}

var _ identity.ShopRepository = (*GormShopRepository)(nil)
