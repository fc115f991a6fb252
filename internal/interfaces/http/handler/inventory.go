package handler

import (
	"github.com/circtek/backend/internal/application/inventory"
	domainInventory "github.com/circtek/backend/internal/domain/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles stock HTTP requests
type StockHandler struct {
	BaseHandler
	stockService *inventory.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *inventory.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// List godoc
// @ID           listStock
// @Summary      List stock
// @Tags         stock
// @Produce      json
// @Param        search query string false "Search by SKU or description"
// @Param        warehouse_id query string false "Warehouse ID" format(uuid)
// @Param        is_part query bool false "Only parts, or only devices"
// @Param        low_stock_threshold query int false "Only rows at or below this quantity"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]inventory.StockResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock [get]
func (h *StockHandler) List(c *gin.Context) {
	var query StockListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	filter := domainInventory.StockFilter{
		Filter:            query.Filter(),
		IsPart:            query.IsPart,
		LowStockThreshold: query.LowStockThreshold,
	}
	if query.WarehouseID != "" {
		warehouseID := uuid.MustParse(query.WarehouseID)
		filter.WarehouseID = &warehouseID
	}

	page, err := h.stockService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Page(&h.BaseHandler, c, page)
}

// GetByID godoc
// @ID           getStockById
// @Summary      Get a stock row
// @Tags         stock
// @Produce      json
// @Param        id path string true "Stock ID" format(uuid)
// @Success      200 {object} APIResponse[inventory.StockResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock/{id} [get]
func (h *StockHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	stock, err := h.stockService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// Create godoc
// @ID           createStock
// @Summary      Create a stock row
// @Description  One row per SKU and warehouse
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body CreateStockRequest true "Stock row"
// @Success      201 {object} APIResponse[inventory.StockResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock [post]
func (h *StockHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req CreateStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	stock, err := h.stockService.Create(c.Request.Context(), actor, inventory.CreateStockRequest{
		WarehouseID: req.WarehouseID,
		SKU:         req.SKU,
		Description: req.Description,
		Quantity:    req.Quantity,
		IsPart:      req.IsPart,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, stock)
}

// Update godoc
// @ID           updateStock
// @Summary      Update stock details
// @Description  Quantities change through the adjust endpoint
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id path string true "Stock ID" format(uuid)
// @Param        request body UpdateStockRequest true "Fields to change"
// @Success      200 {object} APIResponse[inventory.StockResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock/{id} [put]
func (h *StockHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	stock, err := h.stockService.Update(c.Request.Context(), id, inventory.UpdateStockRequest{
		Description: req.Description,
		IsPart:      req.IsPart,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// Adjust godoc
// @ID           adjustStock
// @Summary      Adjust a stock quantity
// @Description  The resulting quantity cannot go below zero
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id path string true "Stock ID" format(uuid)
// @Param        request body AdjustStockRequest true "Signed movement"
// @Success      200 {object} APIResponse[inventory.StockResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock/{id}/adjust [post]
func (h *StockHandler) Adjust(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req AdjustStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	stock, err := h.stockService.Adjust(c.Request.Context(), actor, id, inventory.AdjustStockRequest{
		Delta:  req.Delta,
		Reason: req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// Delete godoc
// @ID           deleteStock
// @Summary      Delete a stock row
// @Tags         stock
// @Produce      json
// @Param        id path string true "Stock ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock/{id} [delete]
func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.stockService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Stock deleted")
}
