package handler

import (
	"net/http"
	"testing"

	appInventory "github.com/circtek/backend/internal/application/inventory"
	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stockTestSetup struct {
	stock      *mockStockRepository
	warehouses *mockWarehouseRepository
	router     *gin.Engine
}

func newStockTestSetup(actor *shared.Actor) *stockTestSetup {
	s := &stockTestSetup{
		stock:      new(mockStockRepository),
		warehouses: new(mockWarehouseRepository),
	}
	h := NewStockHandler(appInventory.NewStockService(s.stock, s.warehouses, nil, zap.NewNop()))
	s.router = newTestRouter(actor)
	s.router.GET("/stock/:id", h.GetByID)
	s.router.POST("/stock/:id/adjust", h.Adjust)
	return s
}

func newHandlerTestStock(t *testing.T, tenantID uuid.UUID, quantity int64) *inventory.Stock {
	t.Helper()
	row, err := inventory.NewStock(tenantID, uuid.New(), "SCR-IP12", "iPhone 12 screen", quantity, true)
	require.NoError(t, err)
	return row
}

func TestStockHandler_Adjust(t *testing.T) {
	tenantID := uuid.New()
	actor := &shared.Actor{UserID: uuid.New(), TenantID: tenantID, Role: "stock_manager"}

	t.Run("decrement", func(t *testing.T) {
		s := newStockTestSetup(actor)
		row := newHandlerTestStock(t, tenantID, 5)
		s.stock.On("FindByID", mock.Anything, row.ID).Return(row, nil)
		s.stock.On("ApplyChanges", mock.Anything, tenantID, []inventory.StockChange{
			{WarehouseID: row.WarehouseID, SKU: "SCR-IP12", Delta: -2},
		}).Return(nil)

		w := performRequest(s.router, http.MethodPost, "/stock/"+row.ID.String()+"/adjust", AdjustStockRequest{
			Delta:  -2,
			Reason: "damaged in transit",
		})

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, float64(3), data["quantity"])
		s.stock.AssertExpectations(t)
	})

	t.Run("cannot go negative", func(t *testing.T) {
		s := newStockTestSetup(actor)
		row := newHandlerTestStock(t, tenantID, 1)
		s.stock.On("FindByID", mock.Anything, row.ID).Return(row, nil)

		w := performRequest(s.router, http.MethodPost, "/stock/"+row.ID.String()+"/adjust", AdjustStockRequest{
			Delta:  -3,
			Reason: "write-off",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "INSUFFICIENT_STOCK", decodeResponse(t, w).Error.Code)
		s.stock.AssertNotCalled(t, "ApplyChanges", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero delta rejected by validation", func(t *testing.T) {
		s := newStockTestSetup(actor)

		w := performRequest(s.router, http.MethodPost, "/stock/"+uuid.NewString()+"/adjust",
			`{"delta":0,"reason":"noop"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, w).Error.Code)
	})

	t.Run("unknown row", func(t *testing.T) {
		s := newStockTestSetup(actor)
		id := uuid.New()
		s.stock.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		w := performRequest(s.router, http.MethodPost, "/stock/"+id.String()+"/adjust", AdjustStockRequest{
			Delta:  1,
			Reason: "found in drawer",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStockHandler_GetByID(t *testing.T) {
	tenantID := uuid.New()
	s := newStockTestSetup(&shared.Actor{UserID: uuid.New(), TenantID: tenantID})
	row := newHandlerTestStock(t, tenantID, 7)
	s.stock.On("FindByID", mock.Anything, row.ID).Return(row, nil)

	w := performRequest(s.router, http.MethodGet, "/stock/"+row.ID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "SCR-IP12", data["sku"])
	assert.Equal(t, true, data["is_part"])
}
