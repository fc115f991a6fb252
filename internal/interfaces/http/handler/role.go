package handler

import (
	"github.com/circtek/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// RoleHandler handles role HTTP requests. Roles are seeded by migrations
// and read-only over the API.
type RoleHandler struct {
	BaseHandler
	roleService *identity.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *identity.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// List godoc
//
//	@ID				listRoles
//	@Summary		List roles
//	@Tags			roles
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]identity.RoleDTO]
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, roles)
}
