package identity

import (
	"context"

	"github.com/circtek/backend/internal/domain/identity"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShopService manages shops and explicit shop access grants
type ShopService struct {
	shopRepo identity.ShopRepository
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewShopService creates a new shop service
func NewShopService(shopRepo identity.ShopRepository, userRepo identity.UserRepository, logger *zap.Logger) *ShopService {
	return &ShopService{shopRepo: shopRepo, userRepo: userRepo, logger: logger}
}

// Create creates a shop in the caller's tenant
func (s *ShopService) Create(ctx context.Context, actor shared.Actor, input CreateShopInput) (*ShopDTO, error) {
	shop, err := identity.NewShop(actor.TenantID, input.OwnerID, input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, shop.TenantID, shop.Name, nil); err != nil {
		return nil, err
	}
	shop.SetCreatedBy(actor.UserID)
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}
	s.logger.Info("Shop created",
		zap.String("shop_id", shop.ID.String()),
		zap.String("tenant_id", shop.TenantID.String()))
	dto := toShopDTO(shop)
	return &dto, nil
}

// List returns shops visible to the caller
func (s *ShopService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ShopDTO], error) {
	filter = filter.Normalize()
	shops, total, err := s.shopRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]ShopDTO, len(shops))
	for i, shop := range shops {
		items[i] = toShopDTO(shop)
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns a shop by ID
func (s *ShopService) Get(ctx context.Context, id uuid.UUID) (*ShopDTO, error) {
	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toShopDTO(shop)
	return &dto, nil
}

// Update patches a shop
func (s *ShopService) Update(ctx context.Context, id uuid.UUID, input UpdateShopInput) (*ShopDTO, error) {
	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shop.Update(input.Name, input.OwnerID, input.Active); err != nil {
		return nil, err
	}
	if input.Name != nil {
		if err := s.ensureUniqueName(ctx, shop.TenantID, shop.Name, &shop.ID); err != nil {
			return nil, err
		}
	}
	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	dto := toShopDTO(shop)
	return &dto, nil
}

// Delete removes a shop together with its grants
func (s *ShopService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.shopRepo.Delete(ctx, id)
}

// GrantAccess gives userID explicit access to the shop. Granting twice is
// a no-op.
func (s *ShopService) GrantAccess(ctx context.Context, shopID, userID uuid.UUID) error {
	shop, err := s.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.FindByIDUnscoped(ctx, userID); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return err
	}
	if err := s.shopRepo.GrantAccess(ctx, identity.NewShopAccess(shop, userID)); err != nil {
		return err
	}
	s.logger.Info("Shop access granted",
		zap.String("shop_id", shopID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// RevokeAccess removes an explicit grant
func (s *ShopService) RevokeAccess(ctx context.Context, shopID, userID uuid.UUID) error {
	if _, err := s.shopRepo.FindByID(ctx, shopID); err != nil {
		return err
	}
	return s.shopRepo.RevokeAccess(ctx, shopID, userID)
}

// ListAccess lists the explicit grants on a shop
func (s *ShopService) ListAccess(ctx context.Context, shopID uuid.UUID) ([]ShopAccessDTO, error) {
	if _, err := s.shopRepo.FindByID(ctx, shopID); err != nil {
		return nil, err
	}
	grants, err := s.shopRepo.ListAccess(ctx, shopID)
	if err != nil {
		return nil, err
	}
	out := make([]ShopAccessDTO, len(grants))
	for i, g := range grants {
		out[i] = ShopAccessDTO{ShopID: g.ShopID, UserID: g.UserID, CreatedAt: g.CreatedAt}
	}
	return out, nil
}

func (s *ShopService) ensureUniqueName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) error {
	exists, err := s.shopRepo.ExistsByName(ctx, tenantID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Shop name already exists")
	}
	return nil
}
