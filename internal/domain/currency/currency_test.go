package currency

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSymbol(t *testing.T, tenantID uuid.UUID, code, sym string) *Symbol {
	t.Helper()
	s, err := NewSymbol(tenantID, code, sym, "")
	require.NoError(t, err)
	return s
}

func TestNormalizeCode(t *testing.T) {
	code, err := NormalizeCode(" eur ")
	require.NoError(t, err)
	assert.Equal(t, "EUR", code)

	_, err = NormalizeCode("EURO")
	assert.Error(t, err)
	_, err = NormalizeCode("E1R")
	assert.Error(t, err)
}

func TestSymbol_DefaultRules(t *testing.T) {
	tenantID := uuid.New()

	t.Run("inactive symbol cannot become default", func(t *testing.T) {
		s := mustSymbol(t, tenantID, "EUR", "€")
		s.IsActive = false
		assert.Error(t, s.MarkDefault())
		assert.False(t, s.IsDefault)
	})

	t.Run("default symbol cannot be deactivated", func(t *testing.T) {
		s := mustSymbol(t, tenantID, "EUR", "€")
		require.NoError(t, s.MarkDefault())
		assert.Error(t, s.Deactivate())
		assert.True(t, s.IsActive)

		s.UnmarkDefault()
		assert.NoError(t, s.Deactivate())
	})
}

func TestResolve(t *testing.T) {
	tenantID := uuid.New()

	eur := mustSymbol(t, tenantID, "EUR", "€")
	gbp := mustSymbol(t, tenantID, "GBP", "£")
	require.NoError(t, gbp.MarkDefault())

	t.Run("user preference wins", func(t *testing.T) {
		r := Resolve(tenantID, eur, gbp)
		assert.Equal(t, "EUR", r.Code)
		assert.Equal(t, SourceUserPreference, r.Source)
		require.NotNil(t, r.CurrencySymbolID)
		assert.Equal(t, eur.ID, *r.CurrencySymbolID)
	})

	t.Run("inactive preference falls back to tenant default", func(t *testing.T) {
		inactive := mustSymbol(t, tenantID, "CHF", "Fr")
		inactive.IsActive = false

		r := Resolve(tenantID, inactive, gbp)
		assert.Equal(t, "GBP", r.Code)
		assert.Equal(t, SourceTenantDefault, r.Source)
	})

	t.Run("foreign tenant preference falls back", func(t *testing.T) {
		foreign := mustSymbol(t, uuid.New(), "JPY", "¥")

		r := Resolve(tenantID, foreign, gbp)
		assert.Equal(t, SourceTenantDefault, r.Source)
	})

	t.Run("system default when nothing configured", func(t *testing.T) {
		r := Resolve(tenantID, nil, nil)
		assert.Equal(t, Resolved{Code: "USD", Symbol: "$", Source: SourceSystemDefault}, r)
	})

	t.Run("non-default symbol is not used as tenant default", func(t *testing.T) {
		r := Resolve(tenantID, nil, eur)
		assert.Equal(t, SourceSystemDefault, r.Source)
	})
}

func TestNewPreference(t *testing.T) {
	tenantID := uuid.New()
	eur := mustSymbol(t, tenantID, "EUR", "€")

	pref, err := NewPreference(tenantID, uuid.New(), eur)
	require.NoError(t, err)
	assert.Equal(t, eur.ID, pref.CurrencySymbolID)

	_, err = NewPreference(uuid.New(), uuid.New(), eur)
	assert.Error(t, err)
}
