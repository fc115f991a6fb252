package handler

// CreateWarehouseRequest represents the request body for creating a warehouse
// @Name HandlerCreateWarehouseRequest
type CreateWarehouseRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200" example:"Main Warehouse"`
	Description string `json:"description" binding:"omitempty,max=1000" example:"Refurbishment floor"`
}

// UpdateWarehouseRequest represents the request body for updating a warehouse
// @Name HandlerUpdateWarehouseRequest
type UpdateWarehouseRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Active      *bool   `json:"active"`
}
