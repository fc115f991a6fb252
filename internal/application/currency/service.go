// Package currency implements currency symbol management and per-user
// display currency resolution.
package currency

import (
	"context"
	"fmt"

	"github.com/circtek/backend/internal/domain/currency"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ResolutionCache memoises resolved currencies per (tenant, user). Writes
// carry the tenant generation read before the lookup, so a resolution that
// raced an invalidation is never stored.
type ResolutionCache interface {
	Get(tenantID, userID uuid.UUID) (currency.Resolved, bool)
	Generation(tenantID uuid.UUID) uint64
	SetAt(gen uint64, tenantID, userID uuid.UUID, resolved currency.Resolved)
	InvalidateTenant(tenantID uuid.UUID)
}

type noopCache struct{}

func (noopCache) Get(uuid.UUID, uuid.UUID) (currency.Resolved, bool) {
	return currency.Resolved{}, false
}
func (noopCache) Generation(uuid.UUID) uint64                           { return 0 }
func (noopCache) SetAt(uint64, uuid.UUID, uuid.UUID, currency.Resolved) {}
func (noopCache) InvalidateTenant(uuid.UUID)                            {}

// Service handles currency symbols and preferences
type Service struct {
	symbols     currency.SymbolRepository
	preferences currency.PreferenceRepository
	cache       ResolutionCache
	logger      *zap.Logger
}

// NewService creates a currency service; cache may be nil
func NewService(
	symbols currency.SymbolRepository,
	preferences currency.PreferenceRepository,
	cache ResolutionCache,
	logger *zap.Logger,
) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{
		symbols:     symbols,
		preferences: preferences,
		cache:       cache,
		logger:      logger,
	}
}

// ListSymbols returns the tenant's symbols
func (s *Service) ListSymbols(ctx context.Context, filter currency.SymbolFilter) (*shared.Paginated[SymbolDTO], error) {
	filter.Filter = filter.Filter.Normalize()
	symbols, total, err := s.symbols.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]SymbolDTO, len(symbols))
	for i, sym := range symbols {
		items[i] = toSymbolDTO(sym)
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetSymbol returns a symbol by ID
func (s *Service) GetSymbol(ctx context.Context, id uuid.UUID) (*SymbolDTO, error) {
	sym, err := s.symbols.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toSymbolDTO(sym)
	return &dto, nil
}

// CreateSymbol adds a symbol to the actor's tenant
func (s *Service) CreateSymbol(ctx context.Context, actor shared.Actor, input CreateSymbolInput) (*SymbolDTO, error) {
	sym, err := currency.NewSymbol(actor.TenantID, input.Code, input.Symbol, input.Name)
	if err != nil {
		return nil, err
	}
	sym.SetCreatedBy(actor.UserID)
	if input.IsActive != nil && !*input.IsActive {
		if err := sym.Deactivate(); err != nil {
			return nil, err
		}
	}
	if input.IsDefault {
		if err := sym.MarkDefault(); err != nil {
			return nil, err
		}
	}
	if err := s.ensureUniqueCode(ctx, sym, nil); err != nil {
		return nil, err
	}
	if err := s.symbols.Save(ctx, sym); err != nil {
		if shared.IsAlreadyExists(err) {
			return nil, duplicateCode(sym.Code)
		}
		return nil, err
	}
	s.cache.InvalidateTenant(sym.TenantID)

	s.logger.Info("Currency symbol created",
		zap.String("tenant_id", sym.TenantID.String()),
		zap.String("code", sym.Code),
		zap.Bool("is_default", sym.IsDefault))
	dto := toSymbolDTO(sym)
	return &dto, nil
}

// UpdateSymbol patches a symbol. Activation is applied before the default
// flag and deactivation after it.
func (s *Service) UpdateSymbol(ctx context.Context, id uuid.UUID, input UpdateSymbolInput) (*SymbolDTO, error) {
	sym, err := s.symbols.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sym.Update(input.Code, input.Symbol, input.Name); err != nil {
		return nil, err
	}
	if input.IsActive != nil && *input.IsActive {
		sym.Activate()
	}
	if input.IsDefault != nil {
		if *input.IsDefault {
			if err := sym.MarkDefault(); err != nil {
				return nil, err
			}
		} else {
			sym.UnmarkDefault()
		}
	}
	if input.IsActive != nil && !*input.IsActive {
		if err := sym.Deactivate(); err != nil {
			return nil, err
		}
	}
	if input.Code != nil {
		if err := s.ensureUniqueCode(ctx, sym, &sym.ID); err != nil {
			return nil, err
		}
	}
	if err := s.symbols.Save(ctx, sym); err != nil {
		if shared.IsAlreadyExists(err) {
			return nil, duplicateCode(sym.Code)
		}
		return nil, err
	}
	s.cache.InvalidateTenant(sym.TenantID)
	dto := toSymbolDTO(sym)
	return &dto, nil
}

// SetDefault makes the symbol the tenant default and clears the others
func (s *Service) SetDefault(ctx context.Context, id uuid.UUID) (*SymbolDTO, error) {
	isDefault := true
	return s.UpdateSymbol(ctx, id, UpdateSymbolInput{IsDefault: &isDefault})
}

// DeleteSymbol removes a symbol no preference points at
func (s *Service) DeleteSymbol(ctx context.Context, id uuid.UUID) error {
	sym, err := s.symbols.FindByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.preferences.CountBySymbol(ctx, sym.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("IN_USE", fmt.Sprintf(
			"Currency symbol is used by %d user preference(s); reassign them before deleting", count))
	}
	if err := s.symbols.Delete(ctx, sym.ID); err != nil {
		return err
	}
	s.cache.InvalidateTenant(sym.TenantID)
	s.logger.Info("Currency symbol deleted",
		zap.String("tenant_id", sym.TenantID.String()),
		zap.String("code", sym.Code))
	return nil
}

// SetPreference records the actor's chosen currency and returns the result
// of resolving it
func (s *Service) SetPreference(ctx context.Context, actor shared.Actor, symbolID uuid.UUID) (*currency.Resolved, error) {
	sym, err := s.symbols.FindByID(ctx, symbolID)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	// a foreign or missing symbol is reported like an inactive one
	if err := currency.CheckSelectable(actor.TenantID, sym); err != nil {
		return nil, err
	}

	pref, err := currency.NewPreference(actor.TenantID, actor.UserID, sym)
	if err != nil {
		return nil, err
	}
	if err := s.preferences.Save(ctx, pref); err != nil {
		return nil, err
	}
	s.cache.InvalidateTenant(actor.TenantID)
	return s.Resolve(ctx, actor.TenantID, actor.UserID)
}

// DeletePreference removes the actor's preference
func (s *Service) DeletePreference(ctx context.Context, actor shared.Actor) error {
	if err := s.preferences.DeleteByUser(ctx, actor.TenantID, actor.UserID); err != nil {
		return err
	}
	s.cache.InvalidateTenant(actor.TenantID)
	return nil
}

// Resolve returns the display currency of userID within tenantID
func (s *Service) Resolve(ctx context.Context, tenantID, userID uuid.UUID) (result *currency.Resolved, err error) {
	gen := s.cache.Generation(tenantID)
	if cached, ok := s.cache.Get(tenantID, userID); ok {
		return &cached, nil
	}

	ctx, span := telemetry.StartSpan(ctx, "currency.resolve",
		attribute.String("tenant_id", tenantID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	var preferred *currency.Symbol
	pref, err := s.preferences.FindByUser(ctx, tenantID, userID)
	switch {
	case err == nil:
		preferred, err = s.symbols.FindByID(ctx, pref.CurrencySymbolID)
		if err != nil && !shared.IsNotFound(err) {
			return nil, err
		}
	case !shared.IsNotFound(err):
		return nil, err
	}

	tenantDefault, err := s.symbols.FindDefault(ctx, tenantID)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	err = nil

	resolved := currency.Resolve(tenantID, preferred, tenantDefault)
	s.cache.SetAt(gen, tenantID, userID, resolved)
	return &resolved, nil
}

func (s *Service) ensureUniqueCode(ctx context.Context, sym *currency.Symbol, excludeID *uuid.UUID) error {
	exists, err := s.symbols.ExistsByCode(ctx, sym.TenantID, sym.Code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return duplicateCode(sym.Code)
	}
	return nil
}

func duplicateCode(code string) error {
	return shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Currency %s already exists for this tenant", code))
}
