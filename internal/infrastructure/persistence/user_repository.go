package persistence

import (
	"context"
	"strings"

	"github.com/circtek/backend/internal/domain/identity"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/persistence/models"
	"github.com/circtek/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *tenant.TenantDB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: tenant.NewTenantDB(db)}
}

// Create inserts a user. A duplicate user_name or email yields ALREADY_EXISTS.
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return translate("create user", r.db.DB().WithContext(ctx).Create(model).Error)
}

// Update overwrites every column of an existing user in the caller's tenant
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	result := r.db.WithContext(ctx).Model(model).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return translate("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a user together with its shop grants and currency preference
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Scopes(r.db.ScopeFor(ctx)).Delete(&models.UserModel{}, "id = ?", id)
		if result.Error != nil {
			return translate("delete user", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ShopAccessModel{}).Error; err != nil {
			return translate("delete user shop access", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.CurrencyPreferenceModel{}).Error; err != nil {
			return translate("delete user currency preference", err)
		}
		return nil
	})
}

// FindByID finds a user by ID within the caller's tenant
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find user", err)
	}
	return model.ToDomain(), nil
}

// FindByIDUnscoped loads a user in any tenant. A shop session's tenant is
// the shop's, which need not be the user's own.
func (r *GormUserRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.DB().WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find user", err)
	}
	return model.ToDomain(), nil
}

// FindByIdentifier looks a user up by user_name or email in any tenant
func (r *GormUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*identity.User, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, shared.ErrNotFound
	}
	var model models.UserModel
	if err := r.db.DB().WithContext(ctx).
		Where("user_name = ? OR email = ?", identifier, identifier).
		First(&model).Error; err != nil {
		return nil, translate("find user by identifier", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns the tenant's users with pagination
func (r *GormUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserModel{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR user_name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}
	if filter.RoleID != nil {
		query = query.Where("role_id = ?", *filter.RoleID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count users", err)
	}

	var rows []models.UserModel
	if err := paginate(query, filter.Filter, userSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, translate("list users", err)
	}
	users := make([]*identity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, total, nil
}

// ExistsByUserName checks user_name uniqueness across all tenants
func (r *GormUserRepository) ExistsByUserName(ctx context.Context, userName string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "user_name", strings.ToLower(userName), excludeID)
}

// ExistsByEmail checks email uniqueness across all tenants
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "email", strings.ToLower(email), excludeID)
}

func (r *GormUserRepository) exists(ctx context.Context, column, value string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.DB().WithContext(ctx).Model(&models.UserModel{}).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translate("check user "+column, err)
	}
	return count > 0, nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
