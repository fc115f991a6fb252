package currency

import (
	"context"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SymbolFilter narrows symbol listings
type SymbolFilter struct {
	shared.Filter
	ActiveOnly bool
}

// SymbolRepository persists currency symbols.
// Save must clear IsDefault on every other symbol of the tenant in the same
// transaction whenever the saved symbol is the default.
type SymbolRepository interface {
	Save(ctx context.Context, symbol *Symbol) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Symbol, error)
	FindAll(ctx context.Context, filter SymbolFilter) ([]*Symbol, int64, error)
	FindDefault(ctx context.Context, tenantID uuid.UUID) (*Symbol, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error)
}

// PreferenceRepository persists user currency preferences
type PreferenceRepository interface {
	Save(ctx context.Context, pref *Preference) error
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID) (*Preference, error)
	DeleteByUser(ctx context.Context, tenantID, userID uuid.UUID) error
	CountBySymbol(ctx context.Context, symbolID uuid.UUID) (int64, error)
}
