package handler

import (
	"context"

	"github.com/circtek/backend/internal/domain/identity"
	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*identity.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) ExistsByUserName(ctx context.Context, userName string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userName, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockRoleRepository struct {
	mock.Mock
}

func (m *mockRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *mockRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *mockRoleRepository) FindAll(ctx context.Context) ([]*identity.Role, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*identity.Role), args.Error(1)
}

type mockShopRepository struct {
	mock.Mock
}

func (m *mockShopRepository) Create(ctx context.Context, shop *identity.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func (m *mockShopRepository) Update(ctx context.Context, shop *identity.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func (m *mockShopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Shop), args.Error(1)
}

func (m *mockShopRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*identity.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Shop), args.Error(1)
}

func (m *mockShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.Shop, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.Shop), args.Get(1).(int64), args.Error(2)
}

func (m *mockShopRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockShopRepository) GrantAccess(ctx context.Context, access *identity.ShopAccess) error {
	return m.Called(ctx, access).Error(0)
}

func (m *mockShopRepository) RevokeAccess(ctx context.Context, shopID, userID uuid.UUID) error {
	return m.Called(ctx, shopID, userID).Error(0)
}

func (m *mockShopRepository) HasAccess(ctx context.Context, shopID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, shopID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockShopRepository) ListAccess(ctx context.Context, shopID uuid.UUID) ([]*identity.ShopAccess, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]*identity.ShopAccess), args.Error(1)
}

type mockWarehouseRepository struct {
	mock.Mock
}

func (m *mockWarehouseRepository) Create(ctx context.Context, w *inventory.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *mockWarehouseRepository) Update(ctx context.Context, w *inventory.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *mockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Warehouse), args.Error(1)
}

func (m *mockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.Warehouse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*inventory.Warehouse), args.Get(1).(int64), args.Error(2)
}

func (m *mockWarehouseRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockWarehouseRepository) HasStock(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockStockRepository struct {
	mock.Mock
}

func (m *mockStockRepository) Create(ctx context.Context, s *inventory.Stock) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStockRepository) Update(ctx context.Context, s *inventory.Stock) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Stock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *mockStockRepository) FindBySKU(ctx context.Context, warehouseID uuid.UUID, sku string) (*inventory.Stock, error) {
	args := m.Called(ctx, warehouseID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *mockStockRepository) FindAll(ctx context.Context, filter inventory.StockFilter) ([]*inventory.Stock, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*inventory.Stock), args.Get(1).(int64), args.Error(2)
}

func (m *mockStockRepository) SumBySKU(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, skus []string) (map[string]int64, error) {
	args := m.Called(ctx, tenantID, warehouseID, skus)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockStockRepository) ApplyChanges(ctx context.Context, tenantID uuid.UUID, changes []inventory.StockChange) error {
	return m.Called(ctx, tenantID, changes).Error(0)
}

func (m *mockStockRepository) SetQuantities(ctx context.Context, tenantID, warehouseID uuid.UUID, targets []inventory.StockLine) error {
	return m.Called(ctx, tenantID, warehouseID, targets).Error(0)
}
