package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseAggregateRoot is a versioned entity. Events it raises stay pending
// until its repository writes them in the same transaction as the aggregate.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
	stored  int
	pending []DomainEvent
}

// NewBaseAggregateRoot starts a new aggregate at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// RestoreAggregateRoot rebuilds an aggregate loaded at the given version.
func RestoreAggregateRoot(entity BaseEntity, version int) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: entity, Version: version, stored: version}
}

// StoredVersion is the version the aggregate had when it was loaded or last
// saved. Zero for aggregates never persisted.
func (a *BaseAggregateRoot) StoredVersion() int {
	return a.stored
}

// MarkStored records that the current version has been persisted.
func (a *BaseAggregateRoot) MarkStored() {
	a.stored = a.Version
}

// Bump records a modification.
func (a *BaseAggregateRoot) Bump() {
	a.UpdatedAt = time.Now()
	a.Version++
}

func (a *BaseAggregateRoot) Record(event DomainEvent) {
	a.pending = append(a.pending, event)
}

func (a *BaseAggregateRoot) PendingEvents() []DomainEvent {
	return a.pending
}

func (a *BaseAggregateRoot) ClearEvents() {
	a.pending = nil
}

// EventSource is an aggregate with events waiting to be saved
type EventSource interface {
	PendingEvents() []DomainEvent
	ClearEvents()
}

// TenantAggregateRoot is an aggregate owned by one tenant
type TenantAggregateRoot struct {
	BaseAggregateRoot
	TenantID  uuid.UUID
	CreatedBy *uuid.UUID
}

func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{BaseAggregateRoot: NewBaseAggregateRoot(), TenantID: tenantID}
}

// SetCreatedBy records the creating user. uuid.Nil (system actions) leaves
// the creator empty.
func (t *TenantAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	if userID == uuid.Nil {
		t.CreatedBy = nil
		return
	}
	t.CreatedBy = &userID
}
