package currency

import (
	"time"

	"github.com/circtek/backend/internal/domain/currency"
	"github.com/google/uuid"
)

// SymbolDTO is the public view of a currency symbol
type SymbolDTO struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Code      string    `json:"code"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toSymbolDTO(s *currency.Symbol) SymbolDTO {
	return SymbolDTO{
		ID:        s.ID,
		TenantID:  s.TenantID,
		Code:      s.Code,
		Symbol:    s.Symbol,
		Name:      s.Name,
		IsDefault: s.IsDefault,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// CreateSymbolInput contains input for creating a currency symbol
type CreateSymbolInput struct {
	Code      string
	Symbol    string
	Name      string
	IsDefault bool
	IsActive  *bool
}

// UpdateSymbolInput contains the fields a symbol patch may change
type UpdateSymbolInput struct {
	Code      *string
	Symbol    *string
	Name      *string
	IsDefault *bool
	IsActive  *bool
}
