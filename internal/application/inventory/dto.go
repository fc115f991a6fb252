package inventory

import (
	"time"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toWarehouseResponse(w *inventory.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:          w.ID,
		TenantID:    w.TenantID,
		Name:        w.Name,
		Description: w.Description,
		Active:      w.Active,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// CreateWarehouseRequest is the input for creating a warehouse
type CreateWarehouseRequest struct {
	Name        string
	Description string
}

// UpdateWarehouseRequest is the input for patching a warehouse
type UpdateWarehouseRequest struct {
	Name        *string
	Description *string
	Active      *bool
}

// StockResponse represents a stock row in API responses
type StockResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	Quantity    int64     `json:"quantity"`
	IsPart      bool      `json:"is_part"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

func toStockResponse(s *inventory.Stock) StockResponse {
	return StockResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		WarehouseID: s.WarehouseID,
		SKU:         s.SKU,
		Description: s.Description,
		Quantity:    s.Quantity,
		IsPart:      s.IsPart,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
}

// CreateStockRequest is the input for creating a stock row
type CreateStockRequest struct {
	WarehouseID uuid.UUID
	SKU         string
	Description string
	Quantity    int64
	IsPart      bool
}

// UpdateStockRequest changes descriptive fields only; quantities move
// through Adjust
type UpdateStockRequest struct {
	Description *string
	IsPart      *bool
}

// AdjustStockRequest is a signed quantity movement
type AdjustStockRequest struct {
	Delta  int64
	Reason string
}

// DeviceEventResponse represents a device history entry
type DeviceEventResponse struct {
	ID        uuid.UUID      `json:"id"`
	DeviceID  string         `json:"device_id"`
	EventType string         `json:"event_type"`
	ActorID   *uuid.UUID     `json:"actor_id,omitempty"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

func toDeviceEventResponse(e *inventory.DeviceEvent) DeviceEventResponse {
	return DeviceEventResponse{
		ID:        e.ID,
		DeviceID:  e.DeviceID,
		EventType: string(e.EventType),
		ActorID:   e.ActorID,
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
}

// CreateDeviceEventRequest records a manual history entry
type CreateDeviceEventRequest struct {
	DeviceID  string
	EventType inventory.DeviceEventType
	Details   map[string]any
}

// PartsReport is the result of checking repair parts against stock
type PartsReport struct {
	TenantID    uuid.UUID             `json:"tenant_id"`
	WarehouseID *uuid.UUID            `json:"warehouse_id,omitempty"`
	Checks      []inventory.PartCheck `json:"checks"`
	OK          int                   `json:"ok"`
	Short       int                   `json:"short"`
	Missing     int                   `json:"missing"`
}

// ResetReport is the result of resetting stock from a CSV
type ResetReport struct {
	TenantID    uuid.UUID               `json:"tenant_id"`
	WarehouseID uuid.UUID               `json:"warehouse_id"`
	DryRun      bool                    `json:"dry_run"`
	Changes     []inventory.ResetChange `json:"changes"`
	Created     int                     `json:"created"`
	Updated     int                     `json:"updated"`
	Unchanged   int                     `json:"unchanged"`
}
