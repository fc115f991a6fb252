package inventory

import (
	"context"
	"strings"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockService handles stock rows and manual adjustments
type StockService struct {
	stockRepo     inventory.StockRepository
	warehouseRepo inventory.WarehouseRepository
	metrics       *telemetry.BusinessMetrics
	logger        *zap.Logger
}

// NewStockService creates a new StockService; metrics may be nil
func NewStockService(
	stockRepo inventory.StockRepository,
	warehouseRepo inventory.WarehouseRepository,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		metrics:       metrics,
		logger:        logger,
	}
}

// List returns stock rows matching filter
func (s *StockService) List(ctx context.Context, filter inventory.StockFilter) (*shared.Paginated[StockResponse], error) {
	filter.Filter = filter.Filter.Normalize()
	if filter.LowStockThreshold != nil && *filter.LowStockThreshold < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "low_stock_threshold cannot be negative")
	}
	rows, total, err := s.stockRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]StockResponse, len(rows))
	for i, row := range rows {
		items[i] = toStockResponse(row)
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns a stock row by ID
func (s *StockService) Get(ctx context.Context, id uuid.UUID) (*StockResponse, error) {
	row, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStockResponse(row)
	return &resp, nil
}

// Create adds a stock row; (warehouse, sku) is unique
func (s *StockService) Create(ctx context.Context, actor shared.Actor, req CreateStockRequest) (*StockResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("NOT_FOUND", "Warehouse not found")
		}
		return nil, err
	}
	row, err := inventory.NewStock(warehouse.TenantID, warehouse.ID, req.SKU, req.Description, req.Quantity, req.IsPart)
	if err != nil {
		return nil, err
	}

	existing, err := s.stockRepo.FindBySKU(ctx, warehouse.ID, row.SKU)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "SKU "+row.SKU+" already exists in this warehouse")
	}

	row.SetCreatedBy(actor.UserID)
	if err := s.stockRepo.Create(ctx, row); err != nil {
		return nil, err
	}
	resp := toStockResponse(row)
	return &resp, nil
}

// Update changes the description and part flag
func (s *StockService) Update(ctx context.Context, id uuid.UUID, req UpdateStockRequest) (*StockResponse, error) {
	row, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Describe(req.Description, req.IsPart)
	if err := s.stockRepo.Update(ctx, row); err != nil {
		return nil, err
	}
	resp := toStockResponse(row)
	return &resp, nil
}

// Adjust moves the quantity by a signed delta. The resulting quantity must
// stay non-negative.
func (s *StockService) Adjust(ctx context.Context, actor shared.Actor, id uuid.UUID, req AdjustStockRequest) (*StockResponse, error) {
	if req.Delta == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Delta cannot be zero")
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Reason is required")
	}

	row, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// validate against the loaded row for a precise message; the repository
	// re-checks atomically
	if err := row.Adjust(req.Delta); err != nil {
		return nil, err
	}
	change := inventory.StockChange{WarehouseID: row.WarehouseID, SKU: row.SKU, Delta: req.Delta}
	if err := s.stockRepo.ApplyChanges(ctx, row.TenantID, []inventory.StockChange{change}); err != nil {
		return nil, err
	}

	s.metrics.RecordStockAdjustment(ctx, row.TenantID.String(), row.WarehouseID.String(), reason)
	s.logger.Info("Stock adjusted",
		zap.String("stock_id", row.ID.String()),
		zap.String("sku", row.SKU),
		zap.Int64("delta", req.Delta),
		zap.String("reason", reason),
		zap.String("user_id", actor.UserID.String()))

	updated, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStockResponse(updated)
	return &resp, nil
}

// Delete removes a stock row
func (s *StockService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.stockRepo.Delete(ctx, id)
}
