// Package cache holds in-process caches backed by ristretto.
package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/circtek/backend/internal/domain/currency"
	"github.com/circtek/backend/internal/infrastructure/config"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CurrencyCache caches resolved currencies per (tenant, user).
//
// Entries are never deleted one by one. Each tenant has a generation number
// that is part of the key; InvalidateTenant bumps it so every older entry of
// that tenant becomes unreachable and ages out through ristretto's eviction
// or TTL.
type CurrencyCache struct {
	store  *ristretto.Cache[string, currency.Resolved]
	ttl    time.Duration
	logger *zap.Logger

	mu          sync.RWMutex
	generations map[uuid.UUID]uint64

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCurrencyCache creates the cache. Each entry costs 1, so MaxCost is the
// maximum number of cached resolutions.
func NewCurrencyCache(cfg config.CacheConfig, logger *zap.Logger) (*CurrencyCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	numCounters := cfg.NumCounters
	if numCounters <= 0 {
		numCounters = cfg.MaxCost * 10
	}
	store, err := ristretto.NewCache(&ristretto.Config[string, currency.Resolved]{
		NumCounters: numCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
		// cost counts entries, not bytes
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create currency cache: %w", err)
	}
	logger.Info("Currency resolution cache initialized",
		zap.Int64("max_entries", cfg.MaxCost),
		zap.Duration("ttl", cfg.TTL),
	)
	return &CurrencyCache{
		store:       store,
		ttl:         cfg.TTL,
		logger:      logger,
		generations: make(map[uuid.UUID]uint64),
	}, nil
}

func key(tenantID uuid.UUID, gen uint64, userID uuid.UUID) string {
	return fmt.Sprintf("%s:%d:%s", tenantID, gen, userID)
}

// Generation returns the tenant's current generation. Callers take it
// before reading the data they will pass to SetAt.
func (c *CurrencyCache) Generation(tenantID uuid.UUID) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[tenantID]
}

// Get returns the cached resolution for the user
func (c *CurrencyCache) Get(tenantID, userID uuid.UUID) (currency.Resolved, bool) {
	v, ok := c.store.Get(key(tenantID, c.Generation(tenantID), userID))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// SetAt stores a resolution computed while the tenant was at generation
// gen. If the tenant has been invalidated since, the value is dropped. It
// waits for ristretto's write buffer so the entry is visible to the next Get.
func (c *CurrencyCache) SetAt(gen uint64, tenantID, userID uuid.UUID, resolved currency.Resolved) {
	if c.Generation(tenantID) != gen {
		c.logger.Debug("Dropping stale currency resolution",
			zap.String("tenant_id", tenantID.String()),
			zap.Uint64("generation", gen),
		)
		return
	}
	// keyed by gen, so an invalidation racing this write still hides it
	c.store.SetWithTTL(key(tenantID, gen, userID), resolved, 1, c.ttl)
	c.store.Wait()
}

// InvalidateTenant drops every cached resolution of the tenant
func (c *CurrencyCache) InvalidateTenant(tenantID uuid.UUID) {
	c.mu.Lock()
	c.generations[tenantID]++
	gen := c.generations[tenantID]
	c.mu.Unlock()
	c.logger.Debug("Currency cache invalidated",
		zap.String("tenant_id", tenantID.String()),
		zap.Uint64("generation", gen),
	)
}

// Stats returns hit and miss counts since creation
func (c *CurrencyCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Close releases ristretto's goroutines
func (c *CurrencyCache) Close() {
	c.store.Close()
}
