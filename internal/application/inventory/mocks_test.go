package inventory

import (
	"context"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) Create(ctx context.Context, w *inventory.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, w *inventory.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.Warehouse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*inventory.Warehouse), args.Get(1).(int64), args.Error(2)
}

func (m *MockWarehouseRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWarehouseRepository) HasStock(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Create(ctx context.Context, s *inventory.Stock) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStockRepository) Update(ctx context.Context, s *inventory.Stock) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Stock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) FindBySKU(ctx context.Context, warehouseID uuid.UUID, sku string) (*inventory.Stock, error) {
	args := m.Called(ctx, warehouseID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) FindAll(ctx context.Context, filter inventory.StockFilter) ([]*inventory.Stock, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*inventory.Stock), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockRepository) SumBySKU(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, skus []string) (map[string]int64, error) {
	args := m.Called(ctx, tenantID, warehouseID, skus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockStockRepository) ApplyChanges(ctx context.Context, tenantID uuid.UUID, changes []inventory.StockChange) error {
	return m.Called(ctx, tenantID, changes).Error(0)
}

func (m *MockStockRepository) SetQuantities(ctx context.Context, tenantID, warehouseID uuid.UUID, targets []inventory.StockLine) error {
	return m.Called(ctx, tenantID, warehouseID, targets).Error(0)
}

type MockDeviceEventRepository struct {
	mock.Mock
}

func (m *MockDeviceEventRepository) Append(ctx context.Context, events ...*inventory.DeviceEvent) error {
	return m.Called(ctx, events).Error(0)
}

func (m *MockDeviceEventRepository) FindAll(ctx context.Context, filter inventory.DeviceEventFilter) ([]*inventory.DeviceEvent, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*inventory.DeviceEvent), args.Get(1).(int64), args.Error(2)
}
