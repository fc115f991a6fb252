package models

import (
	"time"

	"github.com/circtek/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// TenantModel maps the tenants table
type TenantModel struct {
	AggregateModel
	Name        string                `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string                `gorm:"type:text"`
	Status      identity.TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

func (TenantModel) TableName() string {
	return "tenants"
}

func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseAggregateRoot: m.toAggregate(),
		Name:              m.Name,
		Description:       m.Description,
		Status:            m.Status,
	}
}

func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{Name: t.Name, Description: t.Description, Status: t.Status}
	m.fromAggregate(t.BaseAggregateRoot)
	return m
}

// RoleModel maps the global roles table. Rows are seeded by migration.
type RoleModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

func (RoleModel) TableName() string {
	return "roles"
}

func (m *RoleModel) ToDomain() *identity.Role {
	return &identity.Role{BaseEntity: m.toEntity(), Name: m.Name, Description: m.Description}
}

func RoleModelFromDomain(r *identity.Role) *RoleModel {
	m := &RoleModel{Name: r.Name, Description: r.Description}
	m.fromEntity(r.BaseEntity)
	return m
}

// UserModel maps the users table. user_name and email are unique across
// tenants because login happens before the tenant is known.
type UserModel struct {
	AggregateModel
	TenantID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	CreatedBy     *uuid.UUID          `gorm:"type:uuid"`
	Name          string              `gorm:"type:varchar(200);not null"`
	UserName      string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email         string              `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash  string              `gorm:"type:varchar(255);not null"`
	RoleID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	WarehouseID   *uuid.UUID          `gorm:"type:uuid"`
	ManagedShopID *uuid.UUID          `gorm:"type:uuid"`
	Status        identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt   *time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		TenantAggregateRoot: m.toTenantAggregate(m.TenantID, m.CreatedBy),
		Name:                m.Name,
		UserName:            m.UserName,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		RoleID:              m.RoleID,
		WarehouseID:         m.WarehouseID,
		ManagedShopID:       m.ManagedShopID,
		Status:              m.Status,
		LastLoginAt:         m.LastLoginAt,
	}
}

func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		TenantID:      u.TenantID,
		CreatedBy:     u.CreatedBy,
		Name:          u.Name,
		UserName:      u.UserName,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		RoleID:        u.RoleID,
		WarehouseID:   u.WarehouseID,
		ManagedShopID: u.ManagedShopID,
		Status:        u.Status,
		LastLoginAt:   u.LastLoginAt,
	}
	m.fromAggregate(u.BaseAggregateRoot)
	return m
}

// ShopModel maps the shops table
type ShopModel struct {
	AggregateModel
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_shops_tenant_name,priority:1"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	Name      string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_shops_tenant_name,priority:2"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status    string     `gorm:"type:varchar(20);not null;default:'active'"`
}

func (ShopModel) TableName() string {
	return "shops"
}

func (m *ShopModel) ToDomain() *identity.Shop {
	return &identity.Shop{
		TenantAggregateRoot: m.toTenantAggregate(m.TenantID, m.CreatedBy),
		Name:                m.Name,
		OwnerID:             m.OwnerID,
		Active:              m.Status == "active",
	}
}

func ShopModelFromDomain(s *identity.Shop) *ShopModel {
	m := &ShopModel{
		TenantID:  s.TenantID,
		CreatedBy: s.CreatedBy,
		Name:      s.Name,
		OwnerID:   s.OwnerID,
		Status:    statusFromActive(s.Active),
	}
	m.fromAggregate(s.BaseAggregateRoot)
	return m
}

// ShopAccessModel maps user_shop_access, the explicit shop grants
type ShopAccessModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_shop_access,priority:1"`
	ShopID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_shop_access,priority:2"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ShopAccessModel) TableName() string {
	return "user_shop_access"
}

func (m *ShopAccessModel) ToDomain() *identity.ShopAccess {
	return &identity.ShopAccess{UserID: m.UserID, ShopID: m.ShopID, TenantID: m.TenantID, CreatedAt: m.CreatedAt}
}

func ShopAccessModelFromDomain(a *identity.ShopAccess) *ShopAccessModel {
	return &ShopAccessModel{
		ID:        uuid.New(),
		UserID:    a.UserID,
		ShopID:    a.ShopID,
		TenantID:  a.TenantID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.CreatedAt,
	}
}
