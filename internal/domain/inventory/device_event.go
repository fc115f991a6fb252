package inventory

import (
	"strings"
	"time"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeviceEventType classifies an entry in a device's history
type DeviceEventType string

const (
	DeviceEventRepairCreated      DeviceEventType = "REPAIR_CREATED"
	DeviceEventRepairPartConsumed DeviceEventType = "REPAIR_PART_CONSUMED"
	DeviceEventRepairCompleted    DeviceEventType = "REPAIR_COMPLETED"
	DeviceEventRepairDeleted      DeviceEventType = "REPAIR_DELETED"
	DeviceEventPurchaseReceived   DeviceEventType = "PURCHASE_RECEIVED"
	DeviceEventNote               DeviceEventType = "NOTE"
	DeviceEventTestResult         DeviceEventType = "TEST_RESULT"
	DeviceEventStatusChange       DeviceEventType = "STATUS_CHANGE"
	DeviceEventShipped            DeviceEventType = "SHIPPED"
)

// IsManual reports whether users may record this type directly
func (t DeviceEventType) IsManual() bool {
	switch t {
	case DeviceEventNote, DeviceEventTestResult, DeviceEventStatusChange, DeviceEventShipped:
		return true
	}
	return false
}

// DeviceEvent is one append-only entry in a device's history
type DeviceEvent struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	DeviceID  string
	EventType DeviceEventType
	ActorID   *uuid.UUID
	Details   map[string]any
	CreatedAt time.Time
}

// NewDeviceEvent creates a history entry for deviceID
func NewDeviceEvent(tenantID uuid.UUID, deviceID string, eventType DeviceEventType, actorID *uuid.UUID, details map[string]any) (*DeviceEvent, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Device identifier cannot be empty")
	}
	if len(deviceID) > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Device identifier cannot exceed 100 characters")
	}
	if details == nil {
		details = map[string]any{}
	}
	return &DeviceEvent{
		ID:        uuid.New(),
		TenantID:  tenantID,
		DeviceID:  deviceID,
		EventType: eventType,
		ActorID:   actorID,
		Details:   details,
		CreatedAt: time.Now(),
	}, nil
}

// DeviceTrackedEvent is a domain event that also belongs in a device history
type DeviceTrackedEvent interface {
	shared.DomainEvent
	DeviceID() string
	ActorID() *uuid.UUID
	Details() map[string]any
}

// DeviceEventsFrom converts the device-tracked events among events into
// history entries; other events are skipped.
func DeviceEventsFrom(events []shared.DomainEvent) []*DeviceEvent {
	out := make([]*DeviceEvent, 0, len(events))
	for _, e := range events {
		tracked, ok := e.(DeviceTrackedEvent)
		if !ok || tracked.DeviceID() == "" {
			continue
		}
		out = append(out, &DeviceEvent{
			ID:        e.EventID(),
			TenantID:  e.TenantID(),
			DeviceID:  tracked.DeviceID(),
			EventType: DeviceEventType(e.EventType()),
			ActorID:   tracked.ActorID(),
			Details:   tracked.Details(),
			CreatedAt: e.OccurredAt(),
		})
	}
	return out
}
