package repair

import (
	"testing"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepair(t *testing.T) *Repair {
	t.Helper()
	r, err := NewRepair(uuid.New(), uuid.New(), "356938035643809", "cracked screen", uuid.New())
	require.NoError(t, err)
	return r
}

func TestNewRepair(t *testing.T) {
	r := newTestRepair(t)

	assert.Equal(t, StatusPending, r.Status)
	require.Len(t, r.PendingEvents(), 1)
	ev := r.PendingEvents()[0].(*Event)
	assert.Equal(t, string(inventory.DeviceEventRepairCreated), ev.EventType())
	assert.Equal(t, "356938035643809", ev.DeviceID())

	_, err := NewRepair(uuid.New(), uuid.New(), " ", "", uuid.Nil)
	assert.Error(t, err)
}

func TestRepair_ConsumeParts(t *testing.T) {
	t.Run("produces items, negative stock changes and events", func(t *testing.T) {
		r := newTestRepair(t)
		r.ClearEvents()

		items, changes, err := r.ConsumeParts([]PartUsage{
			{SKU: "SCR-IP13", Quantity: 1, Cost: decimal.RequireFromString("45.50")},
			{SKU: "ADH-01", Quantity: 2, Cost: decimal.RequireFromString("1.25")},
		}, uuid.New())

		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, StatusInProgress, r.Status)
		assert.Equal(t, int64(-1), changes[0].Delta)
		assert.Equal(t, r.WarehouseID, changes[1].WarehouseID)
		assert.Len(t, r.PendingEvents(), 2)
		assert.True(t, decimal.RequireFromString("48").Equal(r.TotalCost()))
	})

	t.Run("rejects non-positive quantity without side effects", func(t *testing.T) {
		r := newTestRepair(t)
		r.ClearEvents()

		_, _, err := r.ConsumeParts([]PartUsage{
			{SKU: "SCR-IP13", Quantity: 1},
			{SKU: "ADH-01", Quantity: 0},
		}, uuid.New())

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Empty(t, r.Items)
		assert.Empty(t, r.PendingEvents())
		assert.Equal(t, StatusPending, r.Status)
	})

	t.Run("completed repair rejects consumption", func(t *testing.T) {
		r := newTestRepair(t)
		require.NoError(t, r.Complete(uuid.New()))

		_, _, err := r.ConsumeParts([]PartUsage{{SKU: "SCR-IP13", Quantity: 1}}, uuid.New())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestRepair_PrepareDeletion(t *testing.T) {
	r := newTestRepair(t)
	_, _, err := r.ConsumeParts([]PartUsage{
		{SKU: "SCR-IP13", Quantity: 1},
		{SKU: "ADH-01", Quantity: 2},
		{SKU: "SCR-IP13", Quantity: 2},
	}, uuid.New())
	require.NoError(t, err)
	r.ClearEvents()

	changes := r.PrepareDeletion(uuid.New())

	require.Len(t, changes, 2)
	assert.Equal(t, "SCR-IP13", changes[0].SKU)
	assert.Equal(t, int64(3), changes[0].Delta)
	assert.True(t, changes[0].CreateIfMissing)
	assert.Equal(t, int64(2), changes[1].Delta)
	require.Len(t, r.PendingEvents(), 1)
	assert.Equal(t, string(inventory.DeviceEventRepairDeleted), r.PendingEvents()[0].EventType())
}

func TestRepair_Complete(t *testing.T) {
	r := newTestRepair(t)
	require.NoError(t, r.Complete(uuid.New()))
	assert.Equal(t, StatusCompleted, r.Status)
	assert.NotNil(t, r.CompletedAt)
	assert.Error(t, r.Complete(uuid.New()))
}
