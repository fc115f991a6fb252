package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact raised by an aggregate while handling a command
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	SourceID() uuid.UUID
	TenantID() uuid.UUID
}

// EventMeta is embedded by concrete events. Source is the raising aggregate.
type EventMeta struct {
	ID     uuid.UUID `json:"id"`
	Type   string    `json:"type"`
	At     time.Time `json:"occurred_at"`
	Source uuid.UUID `json:"source_id"`
	Tenant uuid.UUID `json:"tenant_id"`
}

func NewEventMeta(eventType string, sourceID, tenantID uuid.UUID) EventMeta {
	return EventMeta{
		ID:     uuid.New(),
		Type:   eventType,
		At:     time.Now(),
		Source: sourceID,
		Tenant: tenantID,
	}
}

func (m EventMeta) EventID() uuid.UUID    { return m.ID }
func (m EventMeta) EventType() string     { return m.Type }
func (m EventMeta) OccurredAt() time.Time { return m.At }
func (m EventMeta) SourceID() uuid.UUID   { return m.Source }
func (m EventMeta) TenantID() uuid.UUID   { return m.Tenant }
