package inventory

import (
	"context"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WarehouseService handles warehouse CRUD
type WarehouseService struct {
	warehouseRepo inventory.WarehouseRepository
	logger        *zap.Logger
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo inventory.WarehouseRepository, logger *zap.Logger) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo, logger: logger}
}

// Create creates a warehouse in the actor's tenant
func (s *WarehouseService) Create(ctx context.Context, actor shared.Actor, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := inventory.NewWarehouse(actor.TenantID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, w, nil); err != nil {
		return nil, err
	}
	w.SetCreatedBy(actor.UserID)
	if err := s.warehouseRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(w)
	return &resp, nil
}

// List returns warehouses in the caller's tenant
func (s *WarehouseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[WarehouseResponse], error) {
	filter = filter.Normalize()
	warehouses, total, err := s.warehouseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]WarehouseResponse, len(warehouses))
	for i, w := range warehouses {
		items[i] = toWarehouseResponse(w)
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns a warehouse by ID
func (s *WarehouseService) Get(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	w, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(w)
	return &resp, nil
}

// Update patches a warehouse
func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.Update(req.Name, req.Description, req.Active); err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := s.ensureUniqueName(ctx, w, &w.ID); err != nil {
			return nil, err
		}
	}
	if err := s.warehouseRepo.Update(ctx, w); err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(w)
	return &resp, nil
}

// Delete removes an empty warehouse
func (s *WarehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	w, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	hasStock, err := s.warehouseRepo.HasStock(ctx, w.ID)
	if err != nil {
		return err
	}
	if hasStock {
		return shared.NewDomainError("CONFLICT", "Warehouse still holds stock; remove it before deleting")
	}
	if err := s.warehouseRepo.Delete(ctx, w.ID); err != nil {
		return err
	}
	s.logger.Info("Warehouse deleted",
		zap.String("warehouse_id", w.ID.String()),
		zap.String("tenant_id", w.TenantID.String()))
	return nil
}

func (s *WarehouseService) ensureUniqueName(ctx context.Context, w *inventory.Warehouse, excludeID *uuid.UUID) error {
	exists, err := s.warehouseRepo.ExistsByName(ctx, w.TenantID, w.Name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Warehouse name already exists")
	}
	return nil
}
