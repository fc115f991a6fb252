package persistence

import (
	"context"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/persistence/models"
	"github.com/circtek/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormDeviceEventRepository implements inventory.DeviceEventRepository.
// The table is append-only: there is no update or delete.
type GormDeviceEventRepository struct {
	db *tenant.TenantDB
}

// NewGormDeviceEventRepository creates a new GormDeviceEventRepository
func NewGormDeviceEventRepository(db *gorm.DB) *GormDeviceEventRepository {
	return &GormDeviceEventRepository{db: tenant.NewTenantDB(db)}
}

// Append inserts events in one statement
func (r *GormDeviceEventRepository) Append(ctx context.Context, events ...*inventory.DeviceEvent) error {
	return appendDeviceEvents(r.db.DB().WithContext(ctx), events)
}

// FindAll lists history newest first unless another order is requested
func (r *GormDeviceEventRepository) FindAll(ctx context.Context, filter inventory.DeviceEventFilter) ([]*inventory.DeviceEvent, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DeviceEventModel{})
	if filter.DeviceID != "" {
		query = query.Where("device_id = ?", filter.DeviceID)
	}
	if filter.EventType != nil {
		query = query.Where("event_type = ?", string(*filter.EventType))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count device events", err)
	}
	var rows []models.DeviceEventModel
	if err := paginate(query, filter.Filter, deviceEventSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, translate("list device events", err)
	}
	events := make([]*inventory.DeviceEvent, len(rows))
	for i := range rows {
		events[i] = rows[i].ToDomain()
	}
	return events, total, nil
}

func appendDeviceEvents(tx *gorm.DB, events []*inventory.DeviceEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]*models.DeviceEventModel, 0, len(events))
	for _, e := range events {
		row, err := models.DeviceEventModelFromDomain(e)
		if err != nil {
			return translate("encode device event", err)
		}
		rows = append(rows, row)
	}
	return translate("append device events", tx.Create(&rows).Error)
}

// savePendingEvents stores the device-tracked domain events of an aggregate
// inside the caller's transaction.
func savePendingEvents(tx *gorm.DB, aggregate shared.EventSource) error {
	return appendDeviceEvents(tx, inventory.DeviceEventsFrom(aggregate.PendingEvents()))
}

var _ inventory.DeviceEventRepository = (*GormDeviceEventRepository)(nil)
