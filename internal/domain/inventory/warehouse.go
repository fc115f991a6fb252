package inventory

import (
	"strings"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Warehouse is a physical location holding stock
type Warehouse struct {
	shared.TenantAggregateRoot
	Name        string
	Description string
	Active      bool
}

// NewWarehouse creates an active warehouse
func NewWarehouse(tenantID uuid.UUID, name, description string) (*Warehouse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse name cannot exceed 200 characters")
	}
	return &Warehouse{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Description:         strings.TrimSpace(description),
		Active:              true,
	}, nil
}

// Update changes mutable warehouse fields
func (w *Warehouse) Update(name, description *string, active *bool) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return shared.NewDomainError("INVALID_INPUT", "Warehouse name cannot be empty")
		}
		w.Name = n
	}
	if description != nil {
		w.Description = strings.TrimSpace(*description)
	}
	if active != nil {
		w.Active = *active
	}
	w.Bump()
	return nil
}
