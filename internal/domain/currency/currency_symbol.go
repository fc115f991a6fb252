// Package currency models per-tenant display currencies and the rules used
// to pick the currency a user sees.
package currency

import (
	"regexp"
	"strings"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeCode upper-cases and validates an ISO 4217 style code
func NormalizeCode(code string) (string, error) {
	// Casers hold state and cannot be shared between goroutines.
	code = cases.Upper(language.Und).String(strings.TrimSpace(code))
	if !codePattern.MatchString(code) {
		return "", shared.NewDomainError("INVALID_CURRENCY_CODE", "Currency code must be three letters")
	}
	return code, nil
}

// Symbol is a currency a tenant has configured for display.
// At most one symbol per tenant carries IsDefault.
type Symbol struct {
	shared.TenantAggregateRoot
	Code      string
	Symbol    string
	Name      string
	IsDefault bool
	IsActive  bool
}

// NewSymbol creates an active currency symbol
func NewSymbol(tenantID uuid.UUID, code, symbol, name string) (*Symbol, error) {
	normalized, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" || len(symbol) > 10 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Symbol must be 1-10 characters")
	}
	return &Symbol{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                normalized,
		Symbol:              symbol,
		Name:                strings.TrimSpace(name),
		IsActive:            true,
	}, nil
}

// Update changes display fields
func (s *Symbol) Update(code, symbol, name *string) error {
	if code != nil {
		normalized, err := NormalizeCode(*code)
		if err != nil {
			return err
		}
		s.Code = normalized
	}
	if symbol != nil {
		v := strings.TrimSpace(*symbol)
		if v == "" || len(v) > 10 {
			return shared.NewDomainError("INVALID_INPUT", "Symbol must be 1-10 characters")
		}
		s.Symbol = v
	}
	if name != nil {
		s.Name = strings.TrimSpace(*name)
	}
	s.touch()
	return nil
}

// MarkDefault flags the symbol as the tenant default.
// The repository clears the flag on every other symbol of the tenant when saving.
func (s *Symbol) MarkDefault() error {
	if !s.IsActive {
		return shared.NewDomainError("INVALID_STATE", "An inactive currency cannot be the default")
	}
	s.IsDefault = true
	s.touch()
	return nil
}

// UnmarkDefault clears the default flag
func (s *Symbol) UnmarkDefault() {
	s.IsDefault = false
	s.touch()
}

// Activate makes the symbol selectable
func (s *Symbol) Activate() {
	s.IsActive = true
	s.touch()
}

// Deactivate hides the symbol from selection; the default cannot be deactivated
func (s *Symbol) Deactivate() error {
	if s.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "The default currency cannot be deactivated")
	}
	s.IsActive = false
	s.touch()
	return nil
}

func (s *Symbol) touch() {
	s.Bump()
}
