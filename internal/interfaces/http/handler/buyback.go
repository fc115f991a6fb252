package handler

import (
	"github.com/circtek/backend/internal/application/buyback"
	"github.com/gin-gonic/gin"
)

// UpdateBuybackStatusRequest represents the request body for changing a buyback order status
type UpdateBuybackStatusRequest struct {
	Status string `json:"status" binding:"required,max=50" example:"RECEIVED"`
}

// BuybackListQuery represents query parameters for listing buyback orders
type BuybackListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// BuybackHandler exposes Back Market buyback orders
type BuybackHandler struct {
	BaseHandler
	buybackService *buyback.Service
}

// NewBuybackHandler creates a new buyback handler
func NewBuybackHandler(buybackService *buyback.Service) *BuybackHandler {
	return &BuybackHandler{
		buybackService: buybackService,
	}
}

// ListOrders godoc
// @ID           listBuybackOrders
// @Summary      List buyback orders
// @Tags         buyback
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(50) maximum(100)
// @Success      200 {object} APIResponse[backmarket.OrderPage]
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /buyback/orders [get]
func (h *BuybackHandler) ListOrders(c *gin.Context) {
	var query BuybackListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	page, err := h.buybackService.ListOrders(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, page)
}

// GetOrder godoc
// @ID           getBuybackOrder
// @Summary      Get a buyback order
// @Tags         buyback
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[backmarket.Order]
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /buyback/orders/{id} [get]
func (h *BuybackHandler) GetOrder(c *gin.Context) {
	order, err := h.buybackService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateOrderStatus godoc
// @ID           updateBuybackOrderStatus
// @Summary      Change a buyback order status
// @Tags         buyback
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body UpdateBuybackStatusRequest true "New status"
// @Success      200 {object} APIResponse[backmarket.Order]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /buyback/orders/{id}/status [put]
func (h *BuybackHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateBuybackStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.buybackService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
