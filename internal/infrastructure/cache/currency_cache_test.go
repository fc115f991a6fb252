package cache

import (
	"testing"
	"time"

	"github.com/circtek/backend/internal/domain/currency"
	"github.com/circtek/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) *CurrencyCache {
	t.Helper()
	c, err := NewCurrencyCache(config.CacheConfig{Enabled: true, MaxCost: 100, TTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestCurrencyCache_GetSet(t *testing.T) {
	c := newTestCache(t)
	tenant, user := uuid.New(), uuid.New()

	_, ok := c.Get(tenant, user)
	assert.False(t, ok)

	eur := currency.Resolved{Code: "EUR", Symbol: "€", Source: currency.SourceTenantDefault}
	c.SetAt(c.Generation(tenant), tenant, user, eur)

	got, ok := c.Get(tenant, user)
	require.True(t, ok)
	assert.Equal(t, eur, got)

	_, ok = c.Get(tenant, uuid.New())
	assert.False(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}

func TestCurrencyCache_InvalidateTenant(t *testing.T) {
	c := newTestCache(t)
	tenantA, tenantB := uuid.New(), uuid.New()
	user := uuid.New()
	usd := currency.Resolved{Code: "USD", Symbol: "$", Source: currency.SourceSystemDefault}

	c.SetAt(c.Generation(tenantA), tenantA, user, usd)
	c.SetAt(c.Generation(tenantB), tenantB, user, usd)

	c.InvalidateTenant(tenantA)

	_, ok := c.Get(tenantA, user)
	assert.False(t, ok, "tenant A entries must be gone")
	_, ok = c.Get(tenantB, user)
	assert.True(t, ok, "tenant B entries must survive")

	gbp := currency.Resolved{Code: "GBP", Symbol: "£", Source: currency.SourceUserPreference}
	c.SetAt(c.Generation(tenantA), tenantA, user, gbp)
	got, ok := c.Get(tenantA, user)
	require.True(t, ok)
	assert.Equal(t, "GBP", got.Code)
}

func TestCurrencyCache_SetAtDropsStaleGeneration(t *testing.T) {
	c := newTestCache(t)
	tenant, user := uuid.New(), uuid.New()

	gen := c.Generation(tenant)
	c.InvalidateTenant(tenant)
	assert.Equal(t, gen+1, c.Generation(tenant))

	c.SetAt(gen, tenant, user, currency.Resolved{Code: "EUR", Symbol: "€", Source: currency.SourceTenantDefault})
	_, ok := c.Get(tenant, user)
	assert.False(t, ok, "a value read before the invalidation must not be served")

	c.SetAt(c.Generation(tenant), tenant, user, currency.Resolved{Code: "USD", Symbol: "$", Source: currency.SourceSystemDefault})
	got, ok := c.Get(tenant, user)
	require.True(t, ok)
	assert.Equal(t, "USD", got.Code)
}
