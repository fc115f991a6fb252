package inventory

import (
	"context"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DeviceEventService reads device history and records manual entries
type DeviceEventService struct {
	eventRepo inventory.DeviceEventRepository
	logger    *zap.Logger
}

// NewDeviceEventService creates a new DeviceEventService
func NewDeviceEventService(eventRepo inventory.DeviceEventRepository, logger *zap.Logger) *DeviceEventService {
	return &DeviceEventService{eventRepo: eventRepo, logger: logger}
}

// List returns events, newest first
func (s *DeviceEventService) List(ctx context.Context, filter inventory.DeviceEventFilter) (*shared.Paginated[DeviceEventResponse], error) {
	filter.Filter = filter.Filter.Normalize()
	events, total, err := s.eventRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]DeviceEventResponse, len(events))
	for i, e := range events {
		items[i] = toDeviceEventResponse(e)
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Create appends a manual event. System event types are rejected.
func (s *DeviceEventService) Create(ctx context.Context, actor shared.Actor, req CreateDeviceEventRequest) (*DeviceEventResponse, error) {
	if !req.EventType.IsManual() {
		return nil, shared.NewDomainError("INVALID_INPUT",
			"event_type must be one of NOTE, TEST_RESULT, STATUS_CHANGE, SHIPPED")
	}
	actorID := actor.UserID
	event, err := inventory.NewDeviceEvent(actor.TenantID, req.DeviceID, req.EventType, &actorID, req.Details)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Debug("Device event recorded",
		zap.String("device_id", event.DeviceID),
		zap.String("event_type", string(event.EventType)))
	resp := toDeviceEventResponse(event)
	return &resp, nil
}
