// Package repair implements repair workflows: opening a repair, consuming
// parts out of stock, completing and deleting.
package repair

import (
	"context"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/repair"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Service handles repairs
type Service struct {
	repairRepo    repair.Repository
	warehouseRepo inventory.WarehouseRepository
	metrics       *telemetry.BusinessMetrics
	logger        *zap.Logger
}

// NewService creates a repair service; metrics may be nil
func NewService(
	repairRepo repair.Repository,
	warehouseRepo inventory.WarehouseRepository,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		repairRepo:    repairRepo,
		warehouseRepo: warehouseRepo,
		metrics:       metrics,
		logger:        logger,
	}
}

// Create opens a repair on a device in one of the tenant's warehouses
func (s *Service) Create(ctx context.Context, actor shared.Actor, req CreateRepairRequest) (*RepairResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("NOT_FOUND", "Warehouse not found")
		}
		return nil, err
	}

	rep, err := repair.NewRepair(warehouse.TenantID, warehouse.ID, req.DeviceID, req.Reason, actor.UserID)
	if err != nil {
		return nil, err
	}
	if req.Remarks != "" {
		rep.SetRemarks(req.Remarks)
	}
	if err := s.repairRepo.Create(ctx, rep); err != nil {
		return nil, err
	}
	s.logger.Info("Repair created",
		zap.String("repair_id", rep.ID.String()),
		zap.String("device_id", rep.DeviceID))
	resp := toRepairResponse(rep)
	return &resp, nil
}

// List returns repairs matching filter
func (s *Service) List(ctx context.Context, filter repair.Filter) (*shared.Paginated[RepairResponse], error) {
	filter.Filter = filter.Filter.Normalize()
	repairs, total, err := s.repairRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]RepairResponse, len(repairs))
	for i, r := range repairs {
		items[i] = toRepairResponse(r)
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns a repair with its items
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*RepairResponse, error) {
	rep, err := s.repairRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toRepairResponse(rep)
	return &resp, nil
}

// ConsumeParts takes every requested part out of the repair's warehouse.
// Either all items are booked or none.
func (s *Service) ConsumeParts(ctx context.Context, actor shared.Actor, id uuid.UUID, req ConsumePartsRequest) (resp *RepairResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, "repair.consume_parts",
		attribute.String("repair_id", id.String()),
		attribute.Int("items", len(req.Items)))
	defer func() { telemetry.EndSpan(span, err) }()

	rep, err := s.repairRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, changes, err := rep.ConsumeParts(req.Items, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.repairRepo.SaveConsumption(ctx, rep, items, changes); err != nil {
		s.logger.Warn("Part consumption rolled back",
			zap.String("repair_id", rep.ID.String()),
			zap.Error(err))
		return nil, err
	}

	var units int64
	for _, item := range items {
		units += item.Quantity
	}
	s.metrics.RecordPartsConsumed(ctx, rep.TenantID.String(), units)

	out := toRepairResponse(rep)
	return &out, nil
}

// Complete closes a repair
func (s *Service) Complete(ctx context.Context, actor shared.Actor, id uuid.UUID) (*RepairResponse, error) {
	rep, err := s.repairRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rep.Complete(actor.UserID); err != nil {
		return nil, err
	}
	if err := s.repairRepo.Update(ctx, rep); err != nil {
		return nil, err
	}
	s.logger.Info("Repair completed",
		zap.String("repair_id", rep.ID.String()),
		zap.String("total_cost", rep.TotalCost().String()))
	resp := toRepairResponse(rep)
	return &resp, nil
}

// Delete removes a repair and returns its parts to stock
func (s *Service) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	rep, err := s.repairRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	restores := rep.PrepareDeletion(actor.UserID)
	if err := s.repairRepo.Delete(ctx, rep, restores); err != nil {
		return err
	}
	s.logger.Info("Repair deleted",
		zap.String("repair_id", rep.ID.String()),
		zap.Int("restored_skus", len(restores)))
	return nil
}
