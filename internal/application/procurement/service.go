// Package procurement implements purchase creation and receiving.
package procurement

import (
	"context"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/procurement"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Service handles purchases
type Service struct {
	purchaseRepo  procurement.Repository
	warehouseRepo inventory.WarehouseRepository
	metrics       *telemetry.BusinessMetrics
	logger        *zap.Logger
}

// NewService creates a purchase service; metrics may be nil
func NewService(
	purchaseRepo procurement.Repository,
	warehouseRepo inventory.WarehouseRepository,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		purchaseRepo:  purchaseRepo,
		warehouseRepo: warehouseRepo,
		metrics:       metrics,
		logger:        logger,
	}
}

// Create places a purchase. The PO number is unique per tenant.
func (s *Service) Create(ctx context.Context, actor shared.Actor, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("NOT_FOUND", "Warehouse not found")
		}
		return nil, err
	}

	p, err := procurement.NewPurchase(warehouse.TenantID, warehouse.ID, req.PurchaseOrderNo, req.SupplierName, req.Currency, req.Items, actor.UserID)
	if err != nil {
		return nil, err
	}
	if req.ExpectedDeliveryDate != nil {
		p.SetExpectedDelivery(req.ExpectedDeliveryDate)
	}
	if req.Remarks != "" {
		p.SetRemarks(req.Remarks)
	}

	exists, err := s.purchaseRepo.ExistsByOrderNo(ctx, p.TenantID, p.PurchaseOrderNo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Purchase order number already exists")
	}

	if err := s.purchaseRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Purchase created",
		zap.String("purchase_id", p.ID.String()),
		zap.String("purchase_order_no", p.PurchaseOrderNo),
		zap.String("total_amount", p.TotalAmount().String()))
	resp := toPurchaseResponse(p)
	return &resp, nil
}

// List returns purchases matching filter
func (s *Service) List(ctx context.Context, filter procurement.Filter) (*shared.Paginated[PurchaseResponse], error) {
	filter.Filter = filter.Filter.Normalize()
	purchases, total, err := s.purchaseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]PurchaseResponse, len(purchases))
	for i, p := range purchases {
		items[i] = toPurchaseResponse(p)
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns a purchase with its items
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPurchaseResponse(p)
	return &resp, nil
}

// Receive books delivered quantities and increments stock in the purchase
// warehouse in one transaction
func (s *Service) Receive(ctx context.Context, actor shared.Actor, id uuid.UUID, req ReceiveRequest) (resp *PurchaseResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, "purchase.receive",
		attribute.String("purchase_id", id.String()),
		attribute.Int("items", len(req.Items)))
	defer func() { telemetry.EndSpan(span, err) }()

	p, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	changes, err := p.Receive(req.Items, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.SaveReceipt(ctx, p, changes); err != nil {
		return nil, err
	}

	var units int64
	for _, c := range changes {
		units += c.Delta
	}
	s.metrics.RecordPurchaseReceived(ctx, p.TenantID.String(), units)
	s.logger.Info("Purchase received",
		zap.String("purchase_id", p.ID.String()),
		zap.String("status", string(p.Status)),
		zap.Int64("units", units))

	out := toPurchaseResponse(p)
	return &out, nil
}

// Delete removes a purchase nothing has been received against
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.HasReceipts() {
		return procurement.ErrHasReceipts
	}
	return s.purchaseRepo.Delete(ctx, p.ID)
}
