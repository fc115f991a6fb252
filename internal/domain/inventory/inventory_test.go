package inventory

import (
	"testing"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSKU(t *testing.T) {
	sku, err := NormalizeSKU("  IPH13-SCREEN-BLK ")
	require.NoError(t, err)
	assert.Equal(t, "IPH13-SCREEN-BLK", sku)

	_, err = NormalizeSKU("")
	assert.Error(t, err)
	_, err = NormalizeSKU("has space")
	assert.Error(t, err)
}

func TestStock_Adjust(t *testing.T) {
	s, err := NewStock(uuid.New(), uuid.New(), "BAT-01", "Battery", 5, true)
	require.NoError(t, err)

	require.NoError(t, s.Adjust(-3))
	assert.Equal(t, int64(2), s.Quantity)

	err = s.Adjust(-3)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, int64(2), s.Quantity)

	require.NoError(t, s.Adjust(10))
	assert.Equal(t, int64(12), s.Quantity)
}

func TestNewStock_RejectsNegative(t *testing.T) {
	_, err := NewStock(uuid.New(), uuid.New(), "BAT-01", "", -1, true)
	assert.Error(t, err)
}

type trackedEvent struct {
	shared.EventMeta
	device string
}

func (e *trackedEvent) DeviceID() string        { return e.device }
func (e *trackedEvent) ActorID() *uuid.UUID     { return nil }
func (e *trackedEvent) Details() map[string]any { return map[string]any{"k": "v"} }

type untrackedEvent struct {
	shared.EventMeta
}

func TestDeviceEventsFrom(t *testing.T) {
	tenantID := uuid.New()
	base := shared.NewEventMeta("REPAIR_CREATED", uuid.New(), tenantID)

	events := []shared.DomainEvent{
		&trackedEvent{EventMeta: base, device: "356938035643809"},
		&untrackedEvent{EventMeta: shared.NewEventMeta("OTHER", uuid.New(), tenantID)},
	}

	out := DeviceEventsFrom(events)
	require.Len(t, out, 1)
	assert.Equal(t, "356938035643809", out[0].DeviceID)
	assert.Equal(t, DeviceEventRepairCreated, out[0].EventType)
	assert.Equal(t, tenantID, out[0].TenantID)
	assert.Equal(t, base.ID, out[0].ID)
}

func TestDeviceEventType_IsManual(t *testing.T) {
	assert.True(t, DeviceEventNote.IsManual())
	assert.False(t, DeviceEventRepairCreated.IsManual())
}
