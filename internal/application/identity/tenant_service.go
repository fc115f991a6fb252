package identity

import (
	"context"

	"github.com/circtek/backend/internal/domain/identity"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantService manages tenants. Every route is super_admin only.
type TenantService struct {
	tenantRepo identity.TenantRepository
	logger     *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo identity.TenantRepository, logger *zap.Logger) *TenantService {
	return &TenantService{tenantRepo: tenantRepo, logger: logger}
}

// Create creates a tenant with a unique name
func (s *TenantService) Create(ctx context.Context, input CreateTenantInput) (*TenantDTO, error) {
	tenant, err := identity.NewTenant(input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, tenant.Name, nil); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	s.logger.Info("Tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("name", tenant.Name))
	dto := toTenantDTO(tenant)
	return &dto, nil
}

// List returns a page of tenants
func (s *TenantService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[TenantDTO], error) {
	filter = filter.Normalize()
	tenants, total, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]TenantDTO, len(tenants))
	for i, t := range tenants {
		items[i] = toTenantDTO(t)
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns a tenant by ID
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toTenantDTO(tenant)
	return &dto, nil
}

// Update patches a tenant
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.Update(input.Name, input.Description, input.Status); err != nil {
		return nil, err
	}
	if input.Name != nil {
		if err := s.ensureUniqueName(ctx, tenant.Name, &tenant.ID); err != nil {
			return nil, err
		}
	}
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	dto := toTenantDTO(tenant)
	return &dto, nil
}

// Delete removes a tenant
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Tenant deleted", zap.String("tenant_id", id.String()))
	return nil
}

func (s *TenantService) ensureUniqueName(ctx context.Context, name string, excludeID *uuid.UUID) error {
	exists, err := s.tenantRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Tenant name already exists")
	}
	return nil
}
