package repair

import (
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event is raised by a repair and lands in the device history
type Event struct {
	shared.EventMeta
	Device string
	Actor  *uuid.UUID
	Data   map[string]any
}

// DeviceID implements inventory.DeviceTrackedEvent
func (e *Event) DeviceID() string { return e.Device }

// ActorID implements inventory.DeviceTrackedEvent
func (e *Event) ActorID() *uuid.UUID { return e.Actor }

// Details implements inventory.DeviceTrackedEvent
func (e *Event) Details() map[string]any { return e.Data }
