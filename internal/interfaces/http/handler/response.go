package handler

import "github.com/circtek/backend/internal/interfaces/http/dto"

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Data    T         `json:"data"`
	Message string    `json:"message" example:"OK"`
	Status  int       `json:"status" example:"200"`
	Meta    *dto.Meta `json:"meta,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Data    any            `json:"data"`
	Message string         `json:"message" example:"Resource not found"`
	Status  int            `json:"status" example:"404"`
	Error   *dto.ErrorInfo `json:"error"`
}

// MessageResponse represents a success response without data
// @Description Success response without data
type MessageResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message" example:"Deleted"`
	Status  int    `json:"status" example:"200"`
}
