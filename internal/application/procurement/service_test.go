package procurement

import (
	"context"
	"testing"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/procurement"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, p *procurement.Purchase) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, filter procurement.Filter) ([]*procurement.Purchase, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*procurement.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) ExistsByOrderNo(ctx context.Context, tenantID uuid.UUID, poNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, poNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) SaveReceipt(ctx context.Context, p *procurement.Purchase, changes []inventory.StockChange) error {
	return m.Called(ctx, p, changes).Error(0)
}

func (m *MockPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type stubWarehouses struct {
	inventory.WarehouseRepository
	warehouse *inventory.Warehouse
}

func (s stubWarehouses) FindByID(_ context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	if s.warehouse == nil || s.warehouse.ID != id {
		return nil, shared.ErrNotFound
	}
	return s.warehouse, nil
}

func newPurchase(t *testing.T) *procurement.Purchase {
	t.Helper()
	p, err := procurement.NewPurchase(uuid.New(), uuid.New(), "PO-1", "Parts Ltd", "eur", []procurement.Line{
		{SKU: "SCR-1", Quantity: 10, Price: decimal.RequireFromString("12.50"), IsPart: true},
		{SKU: "BAT-1", Quantity: 4, Price: decimal.RequireFromString("8")},
	}, uuid.New())
	require.NoError(t, err)
	return p
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	warehouse, err := inventory.NewWarehouse(uuid.New(), "Main", "")
	require.NoError(t, err)
	actor := shared.Actor{UserID: uuid.New(), TenantID: warehouse.TenantID}
	req := CreatePurchaseRequest{
		WarehouseID:     warehouse.ID,
		PurchaseOrderNo: "PO-7",
		SupplierName:    "Parts Ltd",
		Currency:        "eur",
		Items: []procurement.Line{
			{SKU: "SCR-1", Quantity: 3, Price: decimal.RequireFromString("10.10")},
		},
	}

	t.Run("duplicate PO number", func(t *testing.T) {
		purchases := new(MockPurchaseRepository)
		svc := NewService(purchases, stubWarehouses{warehouse: warehouse}, nil, zap.NewNop())
		purchases.On("ExistsByOrderNo", ctx, warehouse.TenantID, "PO-7").Return(true, nil)

		_, err := svc.Create(ctx, actor, req)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		purchases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("success", func(t *testing.T) {
		purchases := new(MockPurchaseRepository)
		svc := NewService(purchases, stubWarehouses{warehouse: warehouse}, nil, zap.NewNop())
		purchases.On("ExistsByOrderNo", ctx, warehouse.TenantID, "PO-7").Return(false, nil)
		purchases.On("Create", ctx, mock.AnythingOfType("*procurement.Purchase")).Return(nil)

		resp, err := svc.Create(ctx, actor, req)
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "EUR", resp.Currency)
		assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("30.30")))
	})

	t.Run("unknown warehouse", func(t *testing.T) {
		svc := NewService(new(MockPurchaseRepository), stubWarehouses{}, nil, zap.NewNop())
		_, err := svc.Create(ctx, actor, req)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestService_Receive(t *testing.T) {
	ctx := context.Background()
	actor := shared.Actor{UserID: uuid.New()}

	t.Run("partial receipt", func(t *testing.T) {
		purchases := new(MockPurchaseRepository)
		svc := NewService(purchases, stubWarehouses{}, nil, zap.NewNop())
		p := newPurchase(t)
		purchases.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		purchases.On("SaveReceipt", mock.Anything, p, []inventory.StockChange{
			{WarehouseID: p.WarehouseID, SKU: "SCR-1", Delta: 6, CreateIfMissing: true, IsPart: true},
		}).Return(nil)

		resp, err := svc.Receive(ctx, actor, p.ID, ReceiveRequest{Items: []procurement.Receipt{
			{SKU: "SCR-1", Quantity: 4},
			{SKU: "SCR-1", Quantity: 2},
		}})
		require.NoError(t, err)
		assert.Equal(t, "partially_received", resp.Status)
		assert.Equal(t, int64(6), resp.Items[0].ReceivedQuantity)
		purchases.AssertExpectations(t)
	})

	t.Run("over-receipt rejected", func(t *testing.T) {
		purchases := new(MockPurchaseRepository)
		svc := NewService(purchases, stubWarehouses{}, nil, zap.NewNop())
		p := newPurchase(t)
		purchases.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.Receive(ctx, actor, p.ID, ReceiveRequest{Items: []procurement.Receipt{{SKU: "BAT-1", Quantity: 5}}})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		purchases.AssertNotCalled(t, "SaveReceipt", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_DeleteAfterReceipt(t *testing.T) {
	ctx := context.Background()
	p := newPurchase(t)
	_, err := p.Receive([]procurement.Receipt{{SKU: "BAT-1", Quantity: 1}}, uuid.New())
	require.NoError(t, err)

	purchases := new(MockPurchaseRepository)
	svc := NewService(purchases, stubWarehouses{}, nil, zap.NewNop())
	purchases.On("FindByID", ctx, p.ID).Return(p, nil)

	err = svc.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, shared.ErrConflict)
	purchases.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
