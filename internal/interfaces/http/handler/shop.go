package handler

import (
	"github.com/circtek/backend/internal/application/identity"
	"github.com/circtek/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ShopHandler handles shops and explicit shop access grants
type ShopHandler struct {
	BaseHandler
	shopService *identity.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService *identity.ShopService) *ShopHandler {
	return &ShopHandler{
		shopService: shopService,
	}
}

// Create godoc
// @ID           createShop
// @Summary      Create a shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        request body CreateShopRequest true "Shop details"
// @Success      201 {object} APIResponse[identity.ShopDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shops [post]
func (h *ShopHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req CreateShopRequest
	if !h.bindJSON(c, &req) {
		return
	}

	shop, err := h.shopService.Create(c.Request.Context(), actor, identity.CreateShopInput{
		Name:    req.Name,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, shop)
}

// List godoc
// @ID           listShops
// @Summary      List shops
// @Tags         shops
// @Produce      json
// @Param        search query string false "Search by name"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]identity.ShopDTO]
// @Security     BearerAuth
// @Router       /shops [get]
func (h *ShopHandler) List(c *gin.Context) {
	var query dto.ListRequest
	if !h.bindQuery(c, &query) {
		return
	}

	page, err := h.shopService.List(c.Request.Context(), query.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Page(&h.BaseHandler, c, page)
}

// GetByID godoc
// @ID           getShopById
// @Summary      Get a shop
// @Tags         shops
// @Produce      json
// @Param        id path string true "Shop ID" format(uuid)
// @Success      200 {object} APIResponse[identity.ShopDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shops/{id} [get]
func (h *ShopHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	shop, err := h.shopService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shop)
}

// Update godoc
// @ID           updateShop
// @Summary      Update a shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        id path string true "Shop ID" format(uuid)
// @Param        request body UpdateShopRequest true "Fields to change"
// @Success      200 {object} APIResponse[identity.ShopDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shops/{id} [put]
func (h *ShopHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateShopRequest
	if !h.bindJSON(c, &req) {
		return
	}

	shop, err := h.shopService.Update(c.Request.Context(), id, identity.UpdateShopInput{
		Name:    req.Name,
		OwnerID: req.OwnerID,
		Active:  req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shop)
}

// Delete godoc
// @ID           deleteShop
// @Summary      Delete a shop
// @Tags         shops
// @Produce      json
// @Param        id path string true "Shop ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shops/{id} [delete]
func (h *ShopHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.shopService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Shop deleted")
}

// ListAccess godoc
// @ID           listShopAccess
// @Summary      List explicit access grants of a shop
// @Tags         shops
// @Produce      json
// @Param        id path string true "Shop ID" format(uuid)
// @Success      200 {object} APIResponse[[]identity.ShopAccessDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shops/{id}/access [get]
func (h *ShopHandler) ListAccess(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	grants, err := h.shopService.ListAccess(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, grants)
}

// GrantAccess godoc
// @ID           grantShopAccess
// @Summary      Grant a user access to a shop
// @Description  Granting twice is a no-op
// @Tags         shops
// @Produce      json
// @Param        id path string true "Shop ID" format(uuid)
// @Param        userId path string true "User ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shops/{id}/access/{userId} [post]
func (h *ShopHandler) GrantAccess(c *gin.Context) {
	shopID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	userID, ok := h.uuidParam(c, "userId")
	if !ok {
		return
	}

	if err := h.shopService.GrantAccess(c.Request.Context(), shopID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Access granted")
}

// RevokeAccess godoc
// @ID           revokeShopAccess
// @Summary      Revoke a user's access to a shop
// @Tags         shops
// @Produce      json
// @Param        id path string true "Shop ID" format(uuid)
// @Param        userId path string true "User ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shops/{id}/access/{userId} [delete]
func (h *ShopHandler) RevokeAccess(c *gin.Context) {
	shopID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	userID, ok := h.uuidParam(c, "userId")
	if !ok {
		return
	}

	if err := h.shopService.RevokeAccess(c.Request.Context(), shopID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Access revoked")
}
