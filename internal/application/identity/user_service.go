package identity

import (
	"context"

	"github.com/circtek/backend/internal/domain/identity"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// Register creates a user. Admins create users in their own tenant only and
// can never hand out super_admin.
func (s *UserService) Register(ctx context.Context, actor shared.Actor, input CreateUserInput) (*UserDTO, error) {
	tenantID := actor.TenantID
	if input.TenantID != nil && *input.TenantID != actor.TenantID {
		if !actor.IsSuperAdmin() {
			return nil, shared.NewDomainError("FORBIDDEN", "Admins can only create users in their own tenant")
		}
		tenantID = *input.TenantID
	}

	s.logger.Info("Registering user",
		zap.String("user_name", input.UserName),
		zap.String("tenant_id", tenantID.String()))

	role, err := s.loadAssignableRole(ctx, actor, input.RoleID)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(tenantID, role.ID, input.Name, input.UserName, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, user.UserName, user.Email, nil); err != nil {
		return nil, err
	}
	user.AssignWarehouse(input.WarehouseID)
	user.AssignManagedShop(input.ManagedShopID)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if shared.IsAlreadyExists(err) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "User name or email already exists")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, err
	}

	dto := ToUserDTO(user, role)
	return &dto, nil
}

// List returns users in the caller's tenant
func (s *UserService) List(ctx context.Context, filter identity.UserFilter) (*shared.Paginated[UserDTO], error) {
	filter.Filter = filter.Filter.Normalize()
	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	roles := s.roleIndex(ctx)
	items := make([]UserDTO, len(users))
	for i, u := range users {
		items[i] = ToUserDTO(u, roles[u.RoleID])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns a single user
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := s.roleRepo.FindByID(ctx, user.RoleID)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	dto := ToUserDTO(user, role)
	return &dto, nil
}

// Update applies a patch to a user
func (s *UserService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := user.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.UserName != nil {
		if err := user.SetUserName(*input.UserName); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.UserName != nil || input.Email != nil {
		if err := s.ensureUnique(ctx, user.UserName, user.Email, &user.ID); err != nil {
			return nil, err
		}
	}
	if input.Password != nil {
		if err := user.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}
	if input.RoleID != nil {
		if _, err := s.loadAssignableRole(ctx, actor, *input.RoleID); err != nil {
			return nil, err
		}
		if err := user.AssignRole(*input.RoleID); err != nil {
			return nil, err
		}
	}
	if input.WarehouseID != nil {
		user.AssignWarehouse(input.WarehouseID)
	}
	if input.ManagedShopID != nil {
		user.AssignManagedShop(input.ManagedShopID)
	}
	if input.Status != nil {
		if err := user.SetStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if shared.IsAlreadyExists(err) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "User name or email already exists")
		}
		return nil, err
	}
	return s.Get(ctx, user.ID)
}

// Delete removes a user. Nobody may delete their own account.
func (s *UserService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if actor.UserID == id {
		return shared.NewDomainError("FORBIDDEN", "You cannot delete your own account")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted",
		zap.String("user_id", id.String()),
		zap.String("deleted_by", actor.UserID.String()))
	return nil
}

func (s *UserService) loadAssignableRole(ctx context.Context, actor shared.Actor, roleID uuid.UUID) (*identity.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Role does not exist")
		}
		return nil, err
	}
	if role.IsSuperAdmin() && !actor.IsSuperAdmin() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only super admins can assign the super_admin role")
	}
	return role, nil
}

func (s *UserService) ensureUnique(ctx context.Context, userName, email string, excludeID *uuid.UUID) error {
	exists, err := s.userRepo.ExistsByUserName(ctx, userName, excludeID)
	if err != nil {
		s.logger.Error("Failed to check user name existence", zap.Error(err))
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "User name already exists")
	}
	exists, err = s.userRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Email already exists")
	}
	return nil
}

func (s *UserService) roleIndex(ctx context.Context) map[uuid.UUID]*identity.Role {
	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		s.logger.Warn("Failed to load roles for user listing", zap.Error(err))
		return nil
	}
	index := make(map[uuid.UUID]*identity.Role, len(roles))
	for _, r := range roles {
		index[r.ID] = r
	}
	return index
}
