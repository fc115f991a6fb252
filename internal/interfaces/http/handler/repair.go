package handler

import (
	"github.com/circtek/backend/internal/application/repair"
	domainRepair "github.com/circtek/backend/internal/domain/repair"
	"github.com/gin-gonic/gin"
)

// RepairHandler handles repair HTTP requests
type RepairHandler struct {
	BaseHandler
	repairService *repair.Service
}

// NewRepairHandler creates a new repair handler
func NewRepairHandler(repairService *repair.Service) *RepairHandler {
	return &RepairHandler{
		repairService: repairService,
	}
}

// Create godoc
// @ID           createRepair
// @Summary      Open a repair
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        request body CreateRepairRequest true "Repair"
// @Success      201 {object} APIResponse[repair.RepairResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /repairs [post]
func (h *RepairHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req CreateRepairRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.repairService.Create(c.Request.Context(), actor, repair.CreateRepairRequest{
		DeviceID:    req.DeviceID,
		WarehouseID: req.WarehouseID,
		Reason:      req.Reason,
		Remarks:     req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List godoc
// @ID           listRepairs
// @Summary      List repairs
// @Tags         repairs
// @Produce      json
// @Param        status query string false "Status" Enums(pending, in_progress, completed)
// @Param        device_id query string false "IMEI or serial"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]repair.RepairResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /repairs [get]
func (h *RepairHandler) List(c *gin.Context) {
	var query RepairListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	filter := domainRepair.Filter{
		Filter:   query.Filter(),
		DeviceID: query.DeviceID,
	}
	if query.Status != "" {
		status := domainRepair.Status(query.Status)
		filter.Status = &status
	}

	page, err := h.repairService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Page(&h.BaseHandler, c, page)
}

// GetByID godoc
// @ID           getRepairById
// @Summary      Get a repair with its items
// @Tags         repairs
// @Produce      json
// @Param        id path string true "Repair ID" format(uuid)
// @Success      200 {object} APIResponse[repair.RepairResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /repairs/{id} [get]
func (h *RepairHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.repairService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ConsumeParts godoc
// @ID           consumeRepairParts
// @Summary      Consume parts on a repair
// @Description  Decrements stock in the repair's warehouse. All items succeed or none do.
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        id path string true "Repair ID" format(uuid)
// @Param        request body ConsumePartsRequest true "Parts"
// @Success      200 {object} APIResponse[repair.RepairResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /repairs/{id}/items [post]
func (h *RepairHandler) ConsumeParts(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req ConsumePartsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	items := make([]domainRepair.PartUsage, len(req.Items))
	for i, item := range req.Items {
		items[i] = domainRepair.PartUsage{
			SKU:      item.SKU,
			Quantity: item.Quantity,
			Cost:     item.Cost,
		}
	}

	result, err := h.repairService.ConsumeParts(c.Request.Context(), actor, id, repair.ConsumePartsRequest{Items: items})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Complete godoc
// @ID           completeRepair
// @Summary      Complete a repair
// @Tags         repairs
// @Produce      json
// @Param        id path string true "Repair ID" format(uuid)
// @Success      200 {object} APIResponse[repair.RepairResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /repairs/{id}/complete [post]
func (h *RepairHandler) Complete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.repairService.Complete(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @ID           deleteRepair
// @Summary      Delete a repair
// @Description  Consumed parts are returned to stock
// @Tags         repairs
// @Produce      json
// @Param        id path string true "Repair ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /repairs/{id} [delete]
func (h *RepairHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.repairService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Repair deleted")
}
