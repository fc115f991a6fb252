package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/circtek/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

const defaultExportInterval = 60 * time.Second

// MeterProvider wraps the SDK meter provider with lifecycle management
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider exports metrics periodically over OTLP gRPC. Metrics
// follow the tracing switch and can be turned off on their own.
func NewMeterProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger}
	if !cfg.Enabled || !cfg.MetricsEnabled {
		logger.Info("Metrics disabled, using no-op meter provider")
		return mp, nil
	}

	interval := cfg.MetricsInterval
	if interval <= 0 {
		interval = defaultExportInterval
	}
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}
	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(mp.provider)

	logger.Info("OpenTelemetry meter provider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("export_interval", interval),
	)
	return mp, nil
}

// Meter returns a named meter, falling back to the global provider
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

// IsEnabled reports whether metrics are exported
func (mp *MeterProvider) IsEnabled() bool {
	return mp.provider != nil
}

// Shutdown flushes pending metrics
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	return shutdownWithTimeout(ctx, "meter provider", mp.logger, mp.provider.Shutdown)
}

// Attribute keys shared by business metrics
var (
	AttrTenantID    = attribute.Key("tenant_id")
	AttrWarehouseID = attribute.Key("warehouse_id")
	AttrOutcome     = attribute.Key("outcome")
	AttrLoginKind   = attribute.Key("login_kind")
	AttrReason      = attribute.Key("reason")
)

// BusinessMetrics counts the domain activity operators watch: sign-ins,
// stock movements, consumed parts and received purchases. A nil
// *BusinessMetrics records nothing.
type BusinessMetrics struct {
	logins            metric.Int64Counter
	stockAdjustments  metric.Int64Counter
	partsConsumed     metric.Int64Counter
	purchasesReceived metric.Int64Counter
	httpDuration      metric.Float64Histogram
}

// HTTPDurationBuckets are request duration boundaries in seconds
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// NewBusinessMetrics registers the business instruments on meter
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	var (
		m   BusinessMetrics
		err error
	)
	if m.logins, err = meter.Int64Counter("circtek.auth.logins",
		metric.WithDescription("Sign-in attempts by outcome"), metric.WithUnit("{attempt}")); err != nil {
		return nil, fmt.Errorf("failed to create logins counter: %w", err)
	}
	if m.stockAdjustments, err = meter.Int64Counter("circtek.stock.adjustments",
		metric.WithDescription("Manual stock adjustments"), metric.WithUnit("{adjustment}")); err != nil {
		return nil, fmt.Errorf("failed to create stock adjustments counter: %w", err)
	}
	if m.partsConsumed, err = meter.Int64Counter("circtek.repair.parts_consumed",
		metric.WithDescription("Units of parts consumed by repairs"), metric.WithUnit("{unit}")); err != nil {
		return nil, fmt.Errorf("failed to create parts consumed counter: %w", err)
	}
	if m.purchasesReceived, err = meter.Int64Counter("circtek.purchase.units_received",
		metric.WithDescription("Units booked in from purchase receipts"), metric.WithUnit("{unit}")); err != nil {
		return nil, fmt.Errorf("failed to create purchases received counter: %w", err)
	}
	if m.httpDuration, err = meter.Float64Histogram("circtek.http.server.duration",
		metric.WithDescription("HTTP request duration"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(HTTPDurationBuckets...)); err != nil {
		return nil, fmt.Errorf("failed to create http duration histogram: %w", err)
	}
	return &m, nil
}

// RecordLogin counts a sign-in attempt; kind is "password" or "shop"
func (m *BusinessMetrics) RecordLogin(ctx context.Context, kind string, success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.logins.Add(ctx, 1, metric.WithAttributes(AttrLoginKind.String(kind), AttrOutcome.String(outcome)))
}

// RecordStockAdjustment counts one adjustment in a tenant's warehouse
func (m *BusinessMetrics) RecordStockAdjustment(ctx context.Context, tenantID, warehouseID, reason string) {
	if m == nil {
		return
	}
	m.stockAdjustments.Add(ctx, 1, metric.WithAttributes(
		AttrTenantID.String(tenantID), AttrWarehouseID.String(warehouseID), AttrReason.String(reason)))
}

// RecordPartsConsumed adds units consumed by a repair
func (m *BusinessMetrics) RecordPartsConsumed(ctx context.Context, tenantID string, units int64) {
	if m == nil || units <= 0 {
		return
	}
	m.partsConsumed.Add(ctx, units, metric.WithAttributes(AttrTenantID.String(tenantID)))
}

// RecordPurchaseReceived adds units booked in from a purchase receipt
func (m *BusinessMetrics) RecordPurchaseReceived(ctx context.Context, tenantID string, units int64) {
	if m == nil || units <= 0 {
		return
	}
	m.purchasesReceived.Add(ctx, units, metric.WithAttributes(AttrTenantID.String(tenantID)))
}

// RecordHTTPRequest observes one served request
func (m *BusinessMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	))
}
