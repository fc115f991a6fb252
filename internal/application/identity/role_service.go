package identity

import (
	"context"

	"github.com/circtek/backend/internal/domain/identity"
)

// RoleService exposes the global role table
type RoleService struct {
	roleRepo identity.RoleRepository
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo identity.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// List returns every role
func (s *RoleService) List(ctx context.Context) ([]RoleDTO, error) {
	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RoleDTO, len(roles))
	for i, r := range roles {
		out[i] = RoleDTO{ID: r.ID, Name: r.Name, Description: r.Description}
	}
	return out, nil
}
