package handler

import (
	"github.com/circtek/backend/internal/application/inventory"
	"github.com/circtek/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// WarehouseHandler handles warehouse HTTP requests
type WarehouseHandler struct {
	BaseHandler
	warehouseService *inventory.WarehouseService
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(warehouseService *inventory.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{
		warehouseService: warehouseService,
	}
}

// Create godoc
// @ID           createWarehouse
// @Summary      Create a warehouse
// @Description  Warehouse names are unique within a tenant
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        request body CreateWarehouseRequest true "Warehouse details"
// @Success      201 {object} APIResponse[inventory.WarehouseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req CreateWarehouseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	warehouse, err := h.warehouseService.Create(c.Request.Context(), actor, inventory.CreateWarehouseRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, warehouse)
}

// List godoc
// @ID           listWarehouses
// @Summary      List warehouses
// @Tags         warehouses
// @Produce      json
// @Param        search query string false "Search by name"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]inventory.WarehouseResponse]
// @Security     BearerAuth
// @Router       /warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	var query dto.ListRequest
	if !h.bindQuery(c, &query) {
		return
	}

	page, err := h.warehouseService.List(c.Request.Context(), query.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Page(&h.BaseHandler, c, page)
}

// GetByID godoc
// @ID           getWarehouseById
// @Summary      Get a warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[inventory.WarehouseResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	warehouse, err := h.warehouseService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Update godoc
// @ID           updateWarehouse
// @Summary      Update a warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Param        request body UpdateWarehouseRequest true "Fields to change"
// @Success      200 {object} APIResponse[inventory.WarehouseResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateWarehouseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	warehouse, err := h.warehouseService.Update(c.Request.Context(), id, inventory.UpdateWarehouseRequest{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Delete godoc
// @ID           deleteWarehouse
// @Summary      Delete a warehouse
// @Description  Rejected while the warehouse still holds stock rows
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.warehouseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Warehouse deleted")
}
