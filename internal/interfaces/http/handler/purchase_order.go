package handler

import (
	"github.com/circtek/backend/internal/application/procurement"
	domainProcurement "github.com/circtek/backend/internal/domain/procurement"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PurchaseHandler handles purchase HTTP requests
type PurchaseHandler struct {
	BaseHandler
	purchaseService *procurement.Service
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *procurement.Service) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// Create godoc
// @ID           createPurchase
// @Summary      Create a purchase
// @Description  Purchase order numbers are unique within a tenant
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        request body CreatePurchaseRequest true "Purchase"
// @Success      201 {object} APIResponse[procurement.PurchaseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req CreatePurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	lines := make([]domainProcurement.Line, len(req.Items))
	for i, item := range req.Items {
		lines[i] = domainProcurement.Line{
			SKU:      item.SKU,
			Quantity: item.Quantity,
			Price:    item.Price,
			IsPart:   item.IsPart,
		}
	}

	result, err := h.purchaseService.Create(c.Request.Context(), actor, procurement.CreatePurchaseRequest{
		WarehouseID:          req.WarehouseID,
		PurchaseOrderNo:      req.PurchaseOrderNo,
		SupplierName:         req.SupplierName,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Currency:             req.Currency,
		Remarks:              req.Remarks,
		Items:                lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List godoc
// @ID           listPurchases
// @Summary      List purchases
// @Tags         purchases
// @Produce      json
// @Param        search query string false "Search by PO number or supplier"
// @Param        status query string false "Status" Enums(pending, partially_received, received)
// @Param        warehouse_id query string false "Warehouse ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]procurement.PurchaseResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	var query PurchaseListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	filter := domainProcurement.Filter{Filter: query.Filter()}
	if query.Status != "" {
		status := domainProcurement.Status(query.Status)
		filter.Status = &status
	}
	if query.WarehouseID != "" {
		warehouseID := uuid.MustParse(query.WarehouseID)
		filter.WarehouseID = &warehouseID
	}

	page, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Page(&h.BaseHandler, c, page)
}

// GetByID godoc
// @ID           getPurchaseById
// @Summary      Get a purchase with its items
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      200 {object} APIResponse[procurement.PurchaseResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.purchaseService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Receive godoc
// @ID           receivePurchase
// @Summary      Receive purchased items
// @Description  Adds delivered quantities to stock in the purchase warehouse
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Param        request body ReceivePurchaseRequest true "Delivered quantities"
// @Success      200 {object} APIResponse[procurement.PurchaseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchases/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req ReceivePurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	receipts := make([]domainProcurement.Receipt, len(req.Items))
	for i, item := range req.Items {
		receipts[i] = domainProcurement.Receipt{SKU: item.SKU, Quantity: item.Quantity}
	}

	result, err := h.purchaseService.Receive(c.Request.Context(), actor, id, procurement.ReceiveRequest{Items: receipts})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @ID           deletePurchase
// @Summary      Delete a purchase
// @Description  Only purchases with nothing received yet can be deleted
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Purchase deleted")
}
