package handler

import (
	"github.com/circtek/backend/internal/application/inventory"
	domainInventory "github.com/circtek/backend/internal/domain/inventory"
	"github.com/circtek/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DeviceEventHandler serves the append-only device history
type DeviceEventHandler struct {
	BaseHandler
	eventService *inventory.DeviceEventService
}

// NewDeviceEventHandler creates a new device event handler
func NewDeviceEventHandler(eventService *inventory.DeviceEventService) *DeviceEventHandler {
	return &DeviceEventHandler{
		eventService: eventService,
	}
}

// List godoc
// @ID           listDeviceEvents
// @Summary      List device events
// @Description  Newest first
// @Tags         device-events
// @Produce      json
// @Param        device_id query string false "IMEI or serial"
// @Param        event_type query string false "Event type"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]inventory.DeviceEventResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /device-events [get]
func (h *DeviceEventHandler) List(c *gin.Context) {
	var query DeviceEventListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	h.list(c, query.ListRequest, query.DeviceID, query.EventType)
}

// ListByDevice godoc
// @ID           listDeviceEventsByDevice
// @Summary      History of one device
// @Tags         device-events
// @Produce      json
// @Param        deviceId path string true "IMEI or serial"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]inventory.DeviceEventResponse]
// @Security     BearerAuth
// @Router       /device-events/device/{deviceId} [get]
func (h *DeviceEventHandler) ListByDevice(c *gin.Context) {
	var query dto.ListRequest
	if !h.bindQuery(c, &query) {
		return
	}
	h.list(c, query, c.Param("deviceId"), "")
}

func (h *DeviceEventHandler) list(c *gin.Context, query dto.ListRequest, deviceID, eventType string) {
	filter := domainInventory.DeviceEventFilter{
		Filter:   query.Filter(),
		DeviceID: deviceID,
	}
	if eventType != "" {
		t := domainInventory.DeviceEventType(eventType)
		filter.EventType = &t
	}

	page, err := h.eventService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Page(&h.BaseHandler, c, page)
}

// Create godoc
// @ID           createDeviceEvent
// @Summary      Record a device event
// @Description  Only NOTE, TEST_RESULT, STATUS_CHANGE and SHIPPED may be recorded manually
// @Tags         device-events
// @Accept       json
// @Produce      json
// @Param        request body CreateDeviceEventRequest true "Event"
// @Success      201 {object} APIResponse[inventory.DeviceEventResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /device-events [post]
func (h *DeviceEventHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req CreateDeviceEventRequest
	if !h.bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), actor, inventory.CreateDeviceEventRequest{
		DeviceID:  req.DeviceID,
		EventType: domainInventory.DeviceEventType(req.EventType),
		Details:   req.Details,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, event)
}
