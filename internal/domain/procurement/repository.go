package procurement

import (
	"context"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter narrows purchase listings
type Filter struct {
	shared.Filter
	Status      *Status
	WarehouseID *uuid.UUID
}

// Repository persists purchases together with their items
type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, filter Filter) ([]*Purchase, int64, error)
	ExistsByOrderNo(ctx context.Context, tenantID uuid.UUID, poNumber string) (bool, error)
	// SaveReceipt updates received quantities, applies the stock increments
	// and stores the pending device events atomically.
	SaveReceipt(ctx context.Context, p *Purchase, changes []inventory.StockChange) error
	Delete(ctx context.Context, id uuid.UUID) error
}
