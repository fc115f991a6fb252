package handler

import (
	"net/http"

	"github.com/circtek/backend/internal/application/currency"
	domainCurrency "github.com/circtek/backend/internal/domain/currency"
	"github.com/circtek/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CurrencyHandler handles currency symbols, preferences and resolution
type CurrencyHandler struct {
	BaseHandler
	currencyService *currency.Service
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(currencyService *currency.Service) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
	}
}

// ListSymbols godoc
// @ID           listCurrencySymbols
// @Summary      List currency symbols
// @Tags         currency
// @Produce      json
// @Param        search query string false "Search by code or name"
// @Param        active_only query bool false "Only active symbols"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]currency.SymbolDTO]
// @Security     BearerAuth
// @Router       /currency-symbols [get]
func (h *CurrencyHandler) ListSymbols(c *gin.Context) {
	var query CurrencySymbolListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	page, err := h.currencyService.ListSymbols(c.Request.Context(), domainCurrency.SymbolFilter{
		Filter:     query.Filter(),
		ActiveOnly: query.ActiveOnly,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Page(&h.BaseHandler, c, page)
}

// GetSymbol godoc
// @ID           getCurrencySymbolById
// @Summary      Get a currency symbol
// @Tags         currency
// @Produce      json
// @Param        id path string true "Currency symbol ID" format(uuid)
// @Success      200 {object} APIResponse[currency.SymbolDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currency-symbols/{id} [get]
func (h *CurrencyHandler) GetSymbol(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	symbol, err := h.currencyService.GetSymbol(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, symbol)
}

// CreateSymbol godoc
// @ID           createCurrencySymbol
// @Summary      Create a currency symbol
// @Description  Creating a default symbol clears the previous default
// @Tags         currency
// @Accept       json
// @Produce      json
// @Param        request body CreateCurrencySymbolRequest true "Currency symbol"
// @Success      201 {object} APIResponse[currency.SymbolDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currency-symbols [post]
func (h *CurrencyHandler) CreateSymbol(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req CreateCurrencySymbolRequest
	if !h.bindJSON(c, &req) {
		return
	}

	symbol, err := h.currencyService.CreateSymbol(c.Request.Context(), actor, currency.CreateSymbolInput{
		Code:      req.Code,
		Symbol:    req.Symbol,
		Name:      req.Name,
		IsDefault: req.IsDefault,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, symbol)
}

// UpdateSymbol godoc
// @ID           updateCurrencySymbol
// @Summary      Update a currency symbol
// @Tags         currency
// @Accept       json
// @Produce      json
// @Param        id path string true "Currency symbol ID" format(uuid)
// @Param        request body UpdateCurrencySymbolRequest true "Fields to change"
// @Success      200 {object} APIResponse[currency.SymbolDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currency-symbols/{id} [put]
func (h *CurrencyHandler) UpdateSymbol(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateCurrencySymbolRequest
	if !h.bindJSON(c, &req) {
		return
	}

	symbol, err := h.currencyService.UpdateSymbol(c.Request.Context(), id, currency.UpdateSymbolInput{
		Code:      req.Code,
		Symbol:    req.Symbol,
		Name:      req.Name,
		IsDefault: req.IsDefault,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, symbol)
}

// SetDefault godoc
// @ID           setDefaultCurrencySymbol
// @Summary      Make a currency symbol the tenant default
// @Tags         currency
// @Produce      json
// @Param        id path string true "Currency symbol ID" format(uuid)
// @Success      200 {object} APIResponse[currency.SymbolDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currency-symbols/{id}/default [put]
func (h *CurrencyHandler) SetDefault(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	symbol, err := h.currencyService.SetDefault(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, symbol)
}

// DeleteSymbol godoc
// @ID           deleteCurrencySymbol
// @Summary      Delete a currency symbol
// @Description  Rejected while user preferences reference the symbol
// @Tags         currency
// @Produce      json
// @Param        id path string true "Currency symbol ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currency-symbols/{id} [delete]
func (h *CurrencyHandler) DeleteSymbol(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.currencyService.DeleteSymbol(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Currency symbol deleted")
}

// GetPreference godoc
// @ID           getMyCurrencyPreference
// @Summary      Get the caller's resolved currency
// @Tags         currency
// @Produce      json
// @Success      200 {object} APIResponse[domainCurrency.Resolved]
// @Security     BearerAuth
// @Router       /currency-preferences/me [get]
func (h *CurrencyHandler) GetPreference(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	resolved, err := h.currencyService.Resolve(c.Request.Context(), actor.TenantID, actor.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resolved)
}

// SetPreference godoc
// @ID           setMyCurrencyPreference
// @Summary      Choose the caller's display currency
// @Description  The symbol must be active and belong to the caller's tenant
// @Tags         currency
// @Accept       json
// @Produce      json
// @Param        request body SetCurrencyPreferenceRequest true "Currency symbol"
// @Success      200 {object} APIResponse[domainCurrency.Resolved]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currency-preferences/me [put]
func (h *CurrencyHandler) SetPreference(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req SetCurrencyPreferenceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resolved, err := h.currencyService.SetPreference(c.Request.Context(), actor, req.CurrencySymbolID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resolved)
}

// DeletePreference godoc
// @ID           deleteMyCurrencyPreference
// @Summary      Clear the caller's display currency
// @Tags         currency
// @Produce      json
// @Success      200 {object} MessageResponse
// @Security     BearerAuth
// @Router       /currency-preferences/me [delete]
func (h *CurrencyHandler) DeletePreference(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.currencyService.DeletePreference(c.Request.Context(), actor); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Currency preference cleared")
}

// Resolve godoc
// @ID           resolveCurrency
// @Summary      Resolve a user's display currency
// @Description  Admins may resolve any user of their tenant through user_id
// @Tags         currency
// @Produce      json
// @Param        user_id query string false "User ID" format(uuid)
// @Success      200 {object} APIResponse[domainCurrency.Resolved]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currency/resolve [get]
func (h *CurrencyHandler) Resolve(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	userID := actor.UserID
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid user_id")
			return
		}
		if id != actor.UserID && !actor.IsAdmin() {
			h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, "Only administrators may resolve another user's currency")
			return
		}
		userID = id
	}

	resolved, err := h.currencyService.Resolve(c.Request.Context(), actor.TenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resolved)
}
