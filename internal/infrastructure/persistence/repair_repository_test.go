package persistence

import (
	"testing"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/repair"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repairFixture struct {
	repairs     *GormRepairRepository
	stock       *GormStockRepository
	events      *GormDeviceEventRepository
	tenantID    uuid.UUID
	warehouseID uuid.UUID
	actorID     uuid.UUID
}

func newRepairFixture(t *testing.T) *repairFixture {
	db := setupTestDB(t)
	return &repairFixture{
		repairs:     NewGormRepairRepository(db),
		stock:       NewGormStockRepository(db),
		events:      NewGormDeviceEventRepository(db),
		tenantID:    uuid.New(),
		warehouseID: uuid.New(),
		actorID:     uuid.New(),
	}
}

func (f *repairFixture) deviceHistory(t *testing.T, deviceID string) []*inventory.DeviceEvent {
	t.Helper()
	events, _, err := f.events.FindAll(tenantCtx(f.tenantID), inventory.DeviceEventFilter{
		Filter:   shared.Filter{PageSize: 100, OrderBy: "created_at", OrderDir: "asc"},
		DeviceID: deviceID,
	})
	require.NoError(t, err)
	return events
}

func TestRepairRepository_CreateStoresHistory(t *testing.T) {
	f := newRepairFixture(t)
	ctx := tenantCtx(f.tenantID)

	r, err := repair.NewRepair(f.tenantID, f.warehouseID, "IMEI-1001", "cracked screen", f.actorID)
	require.NoError(t, err)
	require.NoError(t, f.repairs.Create(ctx, r))
	assert.Empty(t, r.PendingEvents())

	found, err := f.repairs.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "IMEI-1001", found.DeviceID)
	assert.Equal(t, repair.StatusPending, found.Status)

	history := f.deviceHistory(t, "IMEI-1001")
	require.Len(t, history, 1)
	assert.Equal(t, inventory.DeviceEventRepairCreated, history[0].EventType)
	assert.Equal(t, r.ID.String(), history[0].Details["repair_id"])
	require.NotNil(t, history[0].ActorID)
	assert.Equal(t, f.actorID, *history[0].ActorID)
}

func TestRepairRepository_SaveConsumption(t *testing.T) {
	f := newRepairFixture(t)
	ctx := tenantCtx(f.tenantID)
	seedStock(t, f.stock, f.tenantID, f.warehouseID, "LCD-A", 2)
	seedStock(t, f.stock, f.tenantID, f.warehouseID, "BAT-A", 1)

	r, err := repair.NewRepair(f.tenantID, f.warehouseID, "IMEI-2002", "", f.actorID)
	require.NoError(t, err)
	require.NoError(t, f.repairs.Create(ctx, r))

	t.Run("consumes parts and decrements stock", func(t *testing.T) {
		items, changes, err := r.ConsumeParts([]repair.PartUsage{
			{SKU: "LCD-A", Quantity: 1, Cost: decimal.NewFromInt(40)},
		}, f.actorID)
		require.NoError(t, err)
		require.NoError(t, f.repairs.SaveConsumption(ctx, r, items, changes))

		lcd, err := f.stock.FindBySKU(ctx, f.warehouseID, "LCD-A")
		require.NoError(t, err)
		assert.Equal(t, int64(1), lcd.Quantity)

		found, err := f.repairs.FindByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, repair.StatusInProgress, found.Status)
		require.Len(t, found.Items, 1)
		assert.True(t, decimal.NewFromInt(40).Equal(found.TotalCost()))
	})

	t.Run("insufficient stock leaves nothing behind", func(t *testing.T) {
		reloaded, err := f.repairs.FindByID(ctx, r.ID)
		require.NoError(t, err)
		items, changes, err := reloaded.ConsumeParts([]repair.PartUsage{
			{SKU: "LCD-A", Quantity: 1},
			{SKU: "BAT-A", Quantity: 2},
		}, f.actorID)
		require.NoError(t, err)

		err = f.repairs.SaveConsumption(ctx, reloaded, items, changes)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.NotEmpty(t, reloaded.PendingEvents())

		lcd, err := f.stock.FindBySKU(ctx, f.warehouseID, "LCD-A")
		require.NoError(t, err)
		assert.Equal(t, int64(1), lcd.Quantity)

		found, err := f.repairs.FindByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Len(t, found.Items, 1)
	})

	history := f.deviceHistory(t, "IMEI-2002")
	require.Len(t, history, 2)
	assert.Equal(t, inventory.DeviceEventRepairPartConsumed, history[1].EventType)
	assert.Equal(t, "LCD-A", history[1].Details["sku"])
}

func TestRepairRepository_DeleteRestoresStock(t *testing.T) {
	f := newRepairFixture(t)
	ctx := tenantCtx(f.tenantID)
	seedStock(t, f.stock, f.tenantID, f.warehouseID, "CAM-B", 3)

	r, err := repair.NewRepair(f.tenantID, f.warehouseID, "IMEI-3003", "", f.actorID)
	require.NoError(t, err)
	require.NoError(t, f.repairs.Create(ctx, r))
	items, changes, err := r.ConsumeParts([]repair.PartUsage{{SKU: "CAM-B", Quantity: 2}}, f.actorID)
	require.NoError(t, err)
	require.NoError(t, f.repairs.SaveConsumption(ctx, r, items, changes))

	loaded, err := f.repairs.FindByID(ctx, r.ID)
	require.NoError(t, err)
	restores := loaded.PrepareDeletion(f.actorID)
	require.NoError(t, f.repairs.Delete(ctx, loaded, restores))

	cam, err := f.stock.FindBySKU(ctx, f.warehouseID, "CAM-B")
	require.NoError(t, err)
	assert.Equal(t, int64(3), cam.Quantity)

	_, err = f.repairs.FindByID(ctx, r.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	history := f.deviceHistory(t, "IMEI-3003")
	require.Len(t, history, 3)
	assert.Equal(t, inventory.DeviceEventRepairDeleted, history[2].EventType)
}

func TestRepairRepository_FindAllFilters(t *testing.T) {
	f := newRepairFixture(t)
	ctx := tenantCtx(f.tenantID)

	for _, device := range []string{"IMEI-A", "IMEI-B", "SERIAL-C"} {
		r, err := repair.NewRepair(f.tenantID, f.warehouseID, device, "", f.actorID)
		require.NoError(t, err)
		require.NoError(t, f.repairs.Create(ctx, r))
	}
	other, err := repair.NewRepair(uuid.New(), f.warehouseID, "IMEI-A", "", f.actorID)
	require.NoError(t, err)
	require.NoError(t, f.repairs.Create(tenantCtx(other.TenantID), other))

	all, total, err := f.repairs.FindAll(ctx, repair.Filter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	byDevice, total, err := f.repairs.FindAll(ctx, repair.Filter{Filter: shared.DefaultFilter(), DeviceID: "IMEI-A"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "IMEI-A", byDevice[0].DeviceID)

	filter := shared.DefaultFilter()
	filter.Search = "imei"
	_, total, err = f.repairs.FindAll(ctx, repair.Filter{Filter: filter})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestRepairRepository_StaleCopyIsRejected(t *testing.T) {
	f := newRepairFixture(t)
	ctx := tenantCtx(f.tenantID)
	seedStock(t, f.stock, f.tenantID, f.warehouseID, "LCD-C", 2)

	r, err := repair.NewRepair(f.tenantID, f.warehouseID, "IMEI-4004", "", f.actorID)
	require.NoError(t, err)
	require.NoError(t, f.repairs.Create(ctx, r))

	completing, err := f.repairs.FindByID(ctx, r.ID)
	require.NoError(t, err)
	consuming, err := f.repairs.FindByID(ctx, r.ID)
	require.NoError(t, err)

	require.NoError(t, completing.Complete(f.actorID))
	require.NoError(t, f.repairs.Update(ctx, completing))

	items, changes, err := consuming.ConsumeParts([]repair.PartUsage{{SKU: "LCD-C", Quantity: 1}}, f.actorID)
	require.NoError(t, err)
	err = f.repairs.SaveConsumption(ctx, consuming, items, changes)
	assert.ErrorIs(t, err, shared.ErrConflict)

	found, err := f.repairs.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, repair.StatusCompleted, found.Status)
	assert.Empty(t, found.Items)

	lcd, err := f.stock.FindBySKU(ctx, f.warehouseID, "LCD-C")
	require.NoError(t, err)
	assert.Equal(t, int64(2), lcd.Quantity)

	consuming.SetRemarks("late edit")
	assert.ErrorIs(t, f.repairs.Update(ctx, consuming), shared.ErrConflict)

	restores := consuming.PrepareDeletion(f.actorID)
	assert.ErrorIs(t, f.repairs.Delete(ctx, consuming, restores), shared.ErrConflict)
	lcd, err = f.stock.FindBySKU(ctx, f.warehouseID, "LCD-C")
	require.NoError(t, err)
	assert.Equal(t, int64(2), lcd.Quantity)

	history := f.deviceHistory(t, "IMEI-4004")
	require.Len(t, history, 2)
	assert.Equal(t, inventory.DeviceEventRepairCompleted, history[1].EventType)

	// the committed copy keeps saving
	completing.SetRemarks("shipped back")
	require.NoError(t, f.repairs.Update(ctx, completing))
}

func TestRepairRepository_UpdateMissing(t *testing.T) {
	f := newRepairFixture(t)
	r, err := repair.NewRepair(f.tenantID, f.warehouseID, "IMEI-5005", "", f.actorID)
	require.NoError(t, err)
	r.SetRemarks("never stored")
	assert.ErrorIs(t, f.repairs.Update(tenantCtx(f.tenantID), r), shared.ErrNotFound)
}
