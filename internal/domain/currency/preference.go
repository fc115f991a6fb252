package currency

import (
	"time"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Preference records the currency a user chose for display
type Preference struct {
	shared.BaseEntity
	TenantID         uuid.UUID
	UserID           uuid.UUID
	CurrencySymbolID uuid.UUID
}

// NewPreference binds user to symbol. The symbol must be active and owned by
// the same tenant.
func NewPreference(tenantID, userID uuid.UUID, symbol *Symbol) (*Preference, error) {
	if err := CheckSelectable(tenantID, symbol); err != nil {
		return nil, err
	}
	return &Preference{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		UserID:           userID,
		CurrencySymbolID: symbol.ID,
	}, nil
}

// Select points the preference at another symbol
func (p *Preference) Select(symbol *Symbol) error {
	if err := CheckSelectable(p.TenantID, symbol); err != nil {
		return err
	}
	p.CurrencySymbolID = symbol.ID
	p.UpdatedAt = time.Now()
	return nil
}

// CheckSelectable verifies a symbol may be chosen by a user of tenantID
func CheckSelectable(tenantID uuid.UUID, symbol *Symbol) error {
	if symbol == nil || symbol.TenantID != tenantID {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency is not available for this tenant")
	}
	if !symbol.IsActive {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency is not active")
	}
	return nil
}
