package repair

import (
	"context"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter narrows repair listings
type Filter struct {
	shared.Filter
	Status   *Status
	DeviceID string
}

// Repository persists repairs. Every write also stores the aggregate's
// pending domain events as device history in the same transaction.
type Repository interface {
	Create(ctx context.Context, r *Repair) error
	Update(ctx context.Context, r *Repair) error
	FindByID(ctx context.Context, id uuid.UUID) (*Repair, error)
	FindAll(ctx context.Context, filter Filter) ([]*Repair, int64, error)
	// SaveConsumption applies the stock changes, inserts items and updates
	// the repair atomically.
	SaveConsumption(ctx context.Context, r *Repair, items []*Item, changes []inventory.StockChange) error
	// Delete restores stock and removes the repair with its items atomically.
	Delete(ctx context.Context, r *Repair, restores []inventory.StockChange) error
}
