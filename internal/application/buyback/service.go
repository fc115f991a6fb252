// Package buyback exposes Back Market buyback orders to administrators.
package buyback

import (
	"context"
	"errors"
	"strings"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/backmarket"
	"go.uber.org/zap"
)

// OrderGateway is the upstream buyback API
type OrderGateway interface {
	ListOrders(ctx context.Context, page, limit int) (*backmarket.OrderPage, error)
	GetOrder(ctx context.Context, id string) (*backmarket.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*backmarket.Order, error)
}

const maxPageLimit = 100

var errUnavailable = shared.NewDomainError("SERVICE_UNAVAILABLE", "Back Market integration is not configured")

// Service proxies buyback orders. A nil gateway makes every call fail with
// SERVICE_UNAVAILABLE.
type Service struct {
	gateway OrderGateway
	logger  *zap.Logger
}

// NewService creates a buyback service
func NewService(gateway OrderGateway, logger *zap.Logger) *Service {
	return &Service{gateway: gateway, logger: logger}
}

// Enabled reports whether an upstream client is configured
func (s *Service) Enabled() bool {
	return s.gateway != nil
}

// ListOrders returns one page of upstream orders
func (s *Service) ListOrders(ctx context.Context, page, limit int) (*backmarket.OrderPage, error) {
	if !s.Enabled() {
		return nil, errUnavailable
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	out, err := s.gateway.ListOrders(ctx, page, limit)
	if err != nil {
		return nil, s.upstream("list orders", err)
	}
	return out, nil
}

// GetOrder returns one upstream order
func (s *Service) GetOrder(ctx context.Context, id string) (*backmarket.Order, error) {
	if !s.Enabled() {
		return nil, errUnavailable
	}
	out, err := s.gateway.GetOrder(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, s.upstream("get order", err)
	}
	return out, nil
}

// UpdateOrderStatus changes an order's status upstream
func (s *Service) UpdateOrderStatus(ctx context.Context, id, status string) (*backmarket.Order, error) {
	if !s.Enabled() {
		return nil, errUnavailable
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Status is required")
	}
	out, err := s.gateway.UpdateOrderStatus(ctx, strings.TrimSpace(id), status)
	if err != nil {
		return nil, s.upstream("update order status", err)
	}
	s.logger.Info("Buyback order status updated", zap.String("order_id", id), zap.String("status", status))
	return out, nil
}

// upstream keeps domain errors (404, bad input) and turns transport or
// upstream failures into SERVICE_UNAVAILABLE
func (s *Service) upstream(op string, err error) error {
	if shared.IsNotFound(err) {
		return shared.WrapDomainError("NOT_FOUND", "Buyback order not found", err)
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	s.logger.Error("Back Market request failed", zap.String("op", op), zap.Error(err))
	return shared.WrapDomainError("SERVICE_UNAVAILABLE", "Back Market request failed: "+err.Error(), err)
}
