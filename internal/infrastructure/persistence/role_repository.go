package persistence

import (
	"context"

	"github.com/circtek/backend/internal/domain/identity"
	"github.com/circtek/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRoleRepository reads the global roles table
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByID finds a role by ID
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find role", err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a role by its name, e.g. "admin"
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		return nil, translate("find role by name", err)
	}
	return model.ToDomain(), nil
}

// FindAll lists all roles ordered by name
func (r *GormRoleRepository) FindAll(ctx context.Context) ([]*identity.Role, error) {
	var rows []models.RoleModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, translate("list roles", err)
	}
	roles := make([]*identity.Role, len(rows))
	for i := range rows {
		roles[i] = rows[i].ToDomain()
	}
	return roles, nil
}

var _ identity.RoleRepository = (*GormRoleRepository)(nil)
