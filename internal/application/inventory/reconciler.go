package inventory

import (
	"context"
	"fmt"
	"io"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/csvimport"
	"github.com/circtek/backend/internal/infrastructure/logger"
	"github.com/circtek/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// LineSource opens a CSV by reference: a local path or s3://bucket/key
type LineSource interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// StockReconciler compares and resets stock against CSV exports
type StockReconciler struct {
	stockRepo     inventory.StockRepository
	warehouseRepo inventory.WarehouseRepository
	source        LineSource
	logger        *zap.Logger
}

// NewStockReconciler creates a new StockReconciler
func NewStockReconciler(
	stockRepo inventory.StockRepository,
	warehouseRepo inventory.WarehouseRepository,
	source LineSource,
	logger *zap.Logger,
) *StockReconciler {
	return &StockReconciler{
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		source:        source,
		logger:        logger,
	}
}

// LoadLines reads stock lines from ref
func (r *StockReconciler) LoadLines(ctx context.Context, ref string) ([]inventory.StockLine, error) {
	rc, err := r.source.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	lines, err := csvimport.ReadStockLines(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	r.logger.Info("Loaded stock lines", zap.String("source", ref), zap.Int("rows", len(lines)))
	return lines, nil
}

// CheckRepairParts reports, per SKU, whether stock covers the required
// quantity. Without a warehouse the tenant's stock is summed.
func (r *StockReconciler) CheckRepairParts(ctx context.Context, lines []inventory.StockLine, tenantID uuid.UUID, warehouseID *uuid.UUID) (report *PartsReport, err error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	ctx, span := telemetry.StartSpan(ctx, "stock.check_repair_parts",
		attribute.String("tenant_id", tenantID.String()),
		attribute.Int("lines", len(lines)))
	defer func() { telemetry.EndSpan(span, err) }()

	if warehouseID != nil {
		if err := r.ensureWarehouse(ctx, *warehouseID, tenantID); err != nil {
			return nil, err
		}
	}

	merged := inventory.MergeLines(lines)
	onHand, err := r.stockRepo.SumBySKU(ctx, tenantID, warehouseID, inventory.SKUs(merged))
	if err != nil {
		return nil, err
	}

	report = &PartsReport{
		TenantID:    tenantID,
		WarehouseID: warehouseID,
		Checks:      inventory.CheckParts(merged, onHand),
	}
	for _, c := range report.Checks {
		switch c.Status {
		case inventory.PartOK:
			report.OK++
		case inventory.PartShort:
			report.Short++
		case inventory.PartMissing:
			report.Missing++
		}
	}
	return report, nil
}

// ResetStock sets every CSV SKU in the warehouse to its CSV quantity,
// creating absent rows as parts. A dry run only reports the plan; otherwise
// all writes happen in one transaction.
func (r *StockReconciler) ResetStock(ctx context.Context, lines []inventory.StockLine, warehouseID, tenantID uuid.UUID, dryRun bool) (report *ResetReport, err error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	ctx, span := telemetry.StartSpan(ctx, "stock.reset",
		attribute.String("tenant_id", tenantID.String()),
		attribute.String("warehouse_id", warehouseID.String()),
		attribute.Bool("dry_run", dryRun))
	defer func() { telemetry.EndSpan(span, err) }()

	if err := r.ensureWarehouse(ctx, warehouseID, tenantID); err != nil {
		return nil, err
	}

	merged := inventory.MergeLines(lines)
	current, err := r.stockRepo.SumBySKU(ctx, tenantID, &warehouseID, inventory.SKUs(merged))
	if err != nil {
		return nil, err
	}

	report = &ResetReport{
		TenantID:    tenantID,
		WarehouseID: warehouseID,
		DryRun:      dryRun,
		Changes:     inventory.PlanReset(merged, current),
	}
	descriptions := make(map[string]string, len(merged))
	for _, l := range merged {
		descriptions[l.SKU] = l.Description
	}
	var targets []inventory.StockLine
	for _, c := range report.Changes {
		switch c.Action {
		case inventory.ResetCreated:
			report.Created++
			targets = append(targets, inventory.StockLine{SKU: c.SKU, Quantity: c.Target, Description: descriptions[c.SKU]})
		case inventory.ResetUpdated:
			report.Updated++
			targets = append(targets, inventory.StockLine{SKU: c.SKU, Quantity: c.Target, Description: descriptions[c.SKU]})
		case inventory.ResetUnchanged:
			report.Unchanged++
		}
	}

	if dryRun || len(targets) == 0 {
		return report, nil
	}
	if err := r.stockRepo.SetQuantities(ctx, tenantID, warehouseID, targets); err != nil {
		return nil, err
	}
	r.logger.Info("Stock reset applied",
		zap.String("tenant_id", tenantID.String()),
		zap.String("warehouse_id", warehouseID.String()),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated))
	return report, nil
}

func (r *StockReconciler) ensureWarehouse(ctx context.Context, warehouseID, tenantID uuid.UUID) error {
	w, err := r.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("NOT_FOUND", "Warehouse not found in tenant")
		}
		return err
	}
	if w.TenantID != tenantID {
		return shared.NewDomainError("NOT_FOUND", "Warehouse not found in tenant")
	}
	return nil
}
