package identity

import (
	"strings"

	"github.com/circtek/backend/internal/domain/shared"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
)

// Tenant is a customer organisation; every scoped row references one
type Tenant struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	Status      TenantStatus
}

// NewTenant creates an active tenant
func NewTenant(name, description string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant name cannot exceed 200 characters")
	}
	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       strings.TrimSpace(description),
		Status:            TenantStatusActive,
	}, nil
}

// Update changes the mutable tenant fields
func (t *Tenant) Update(name, description *string, status *TenantStatus) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return shared.NewDomainError("INVALID_INPUT", "Tenant name cannot be empty")
		}
		t.Name = n
	}
	if description != nil {
		t.Description = strings.TrimSpace(*description)
	}
	if status != nil {
		if *status != TenantStatusActive && *status != TenantStatusInactive {
			return shared.NewDomainError("INVALID_INPUT", "Status must be active or inactive")
		}
		t.Status = *status
	}
	t.Bump()
	return nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
