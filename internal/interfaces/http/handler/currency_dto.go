package handler

import (
	"github.com/circtek/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
)

// CreateCurrencySymbolRequest represents the request body for creating a currency symbol
type CreateCurrencySymbolRequest struct {
	Code      string `json:"code" binding:"required,currency_code" example:"EUR"`
	Symbol    string `json:"symbol" binding:"required,max=10" example:"€"`
	Name      string `json:"name" binding:"omitempty,max=100" example:"Euro"`
	IsDefault bool   `json:"is_default"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateCurrencySymbolRequest represents the request body for updating a currency symbol
type UpdateCurrencySymbolRequest struct {
	Code      *string `json:"code" binding:"omitempty,currency_code"`
	Symbol    *string `json:"symbol" binding:"omitempty,min=1,max=10"`
	Name      *string `json:"name" binding:"omitempty,max=100"`
	IsDefault *bool   `json:"is_default"`
	IsActive  *bool   `json:"is_active"`
}

// CurrencySymbolListQuery represents query parameters for listing currency symbols
type CurrencySymbolListQuery struct {
	dto.ListRequest
	ActiveOnly bool `form:"active_only"`
}

// SetCurrencyPreferenceRequest selects the caller's display currency
type SetCurrencyPreferenceRequest struct {
	CurrencySymbolID uuid.UUID `json:"currency_symbol_id" binding:"required"`
}
