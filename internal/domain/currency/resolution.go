package currency

import "github.com/google/uuid"

// Source names where a resolved currency came from
type Source string

const (
	SourceUserPreference Source = "user_preference"
	SourceTenantDefault  Source = "tenant_default"
	SourceSystemDefault  Source = "system_default"
)

// System fallback used when a tenant has no usable default
const (
	SystemDefaultCode   = "USD"
	SystemDefaultSymbol = "$"
)

// Resolved is the effective display currency for a user
type Resolved struct {
	Code             string     `json:"code"`
	Symbol           string     `json:"symbol"`
	Source           Source     `json:"source"`
	CurrencySymbolID *uuid.UUID `json:"currency_symbol_id,omitempty"`
}

// Resolve applies the fallback chain: the user's preferred symbol when it is
// an active symbol of tenantID, then the tenant's active default, then USD.
func Resolve(tenantID uuid.UUID, preferred, tenantDefault *Symbol) Resolved {
	if preferred != nil && CheckSelectable(tenantID, preferred) == nil {
		return fromSymbol(preferred, SourceUserPreference)
	}
	if tenantDefault != nil && tenantDefault.TenantID == tenantID &&
		tenantDefault.IsActive && tenantDefault.IsDefault {
		return fromSymbol(tenantDefault, SourceTenantDefault)
	}
	return Resolved{
		Code:   SystemDefaultCode,
		Symbol: SystemDefaultSymbol,
		Source: SourceSystemDefault,
	}
}

func fromSymbol(s *Symbol, source Source) Resolved {
	id := s.ID
	return Resolved{
		Code:             s.Code,
		Symbol:           s.Symbol,
		Source:           source,
		CurrencySymbolID: &id,
	}
}
