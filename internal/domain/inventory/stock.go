package inventory

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var skuPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-/]{0,99}$`)

// NormalizeSKU trims and validates a stock keeping unit
func NormalizeSKU(sku string) (string, error) {
	sku = strings.TrimSpace(sku)
	if !skuPattern.MatchString(sku) {
		return "", shared.NewDomainError("INVALID_SKU", fmt.Sprintf("Invalid SKU %q", sku))
	}
	return sku, nil
}

// Stock is the on-hand quantity of one SKU in one warehouse
type Stock struct {
	shared.TenantAggregateRoot
	WarehouseID uuid.UUID
	SKU         string
	Description string
	Quantity    int64
	IsPart      bool
}

// NewStock creates a stock row
func NewStock(tenantID, warehouseID uuid.UUID, sku, description string, quantity int64, isPart bool) (*Stock, error) {
	normalized, err := NormalizeSKU(sku)
	if err != nil {
		return nil, err
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse is required")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}
	return &Stock{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		WarehouseID:         warehouseID,
		SKU:                 normalized,
		Description:         strings.TrimSpace(description),
		Quantity:            quantity,
		IsPart:              isPart,
	}, nil
}

// Adjust applies a signed delta; quantity never drops below zero
func (s *Stock) Adjust(delta int64) error {
	if s.Quantity+delta < 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %s: %d on hand, %d requested", s.SKU, s.Quantity, -delta))
	}
	s.Quantity += delta
	s.touch()
	return nil
}

// SetQuantity overwrites the on-hand quantity
func (s *Stock) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}
	s.Quantity = quantity
	s.touch()
	return nil
}

// Describe updates descriptive fields
func (s *Stock) Describe(description *string, isPart *bool) {
	if description != nil {
		s.Description = strings.TrimSpace(*description)
	}
	if isPart != nil {
		s.IsPart = *isPart
	}
	s.touch()
}

func (s *Stock) touch() {
	s.Bump()
}

// StockChange is a signed quantity movement for one SKU in one warehouse
type StockChange struct {
	WarehouseID uuid.UUID
	SKU         string
	Delta       int64
	// CreateIfMissing adds a row when none exists; only valid for positive
	// deltas. Description and IsPart seed the new row.
	CreateIfMissing bool
	Description     string
	IsPart          bool
}
