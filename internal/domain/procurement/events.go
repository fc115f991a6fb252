package procurement

import (
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event is raised when goods are received. Device is the received SKU, so
// the history of a part number shows its inbound deliveries.
type Event struct {
	shared.EventMeta
	Device string
	Actor  *uuid.UUID
	Data   map[string]any
}

func (e *Event) DeviceID() string        { return e.Device }
func (e *Event) ActorID() *uuid.UUID     { return e.Actor }
func (e *Event) Details() map[string]any { return e.Data }
