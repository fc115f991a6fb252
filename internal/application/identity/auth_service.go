package identity

import (
	"context"
	"errors"
	"time"

	"github.com/circtek/backend/internal/domain/identity"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/auth"
	"github.com/circtek/backend/internal/infrastructure/logger"
	"github.com/circtek/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")
	errAccountInactive    = shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
)

// AuthService handles sign-in, token refresh and the caller's own account
type AuthService struct {
	users     identity.UserRepository
	roles     identity.RoleRepository
	shops     identity.ShopRepository
	tokens    *auth.JWTService
	blacklist auth.TokenBlacklist
	metrics   *telemetry.BusinessMetrics
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service. blacklist and
// metrics may be nil.
func NewAuthService(
	users identity.UserRepository,
	roles identity.RoleRepository,
	shops identity.ShopRepository,
	tokens *auth.JWTService,
	blacklist auth.TokenBlacklist,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *AuthService {
	if blacklist == nil {
		blacklist = auth.NoopTokenBlacklist{}
	}
	return &AuthService{
		users:     users,
		roles:     roles,
		shops:     shops,
		tokens:    tokens,
		blacklist: blacklist,
		metrics:   metrics,
		logger:    logger,
	}
}

// Login authenticates by user_name or email. Unknown identifiers and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.authenticate(ctx, input.Identifier, input.Password)
	if err != nil {
		s.metrics.RecordLogin(ctx, "password", false)
		return nil, err
	}
	role, err := s.resolveRole(ctx, user)
	if err != nil {
		s.metrics.RecordLogin(ctx, "password", false)
		return nil, err
	}

	result, err := s.issue(ctx, user, role, auth.TokenSubject{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Username: user.UserName,
		Role:     role.Name,
		RoleID:   role.ID,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLogin(ctx, "password", true)
	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", user.TenantID.String()))
	return result, nil
}

// ShopLogin authenticates and opens a session on a shop. The session's
// tenant is the shop's tenant.
func (s *AuthService) ShopLogin(ctx context.Context, input ShopLoginInput) (result *LoginResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "auth.shop_login", attribute.String("shop_id", input.ShopID.String()))
	defer func() {
		telemetry.EndSpan(span, err)
		s.metrics.RecordLogin(ctx, "shop", err == nil)
	}()

	user, err := s.authenticate(ctx, input.Identifier, input.Password)
	if err != nil {
		return nil, err
	}
	shop, err := s.shops.FindByIDUnscoped(ctx, input.ShopID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("NOT_FOUND", "Shop not found")
		}
		return nil, err
	}
	role, err := s.resolveRole(ctx, user)
	if err != nil {
		return nil, err
	}
	hasAccess, err := s.shops.HasAccess(ctx, shop.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if err := identity.AuthorizeShopLogin(user, role, shop, hasAccess); err != nil {
		s.logger.Warn("Shop login denied",
			zap.String("user_id", user.ID.String()),
			zap.String("shop_id", shop.ID.String()),
			zap.String("role", role.Name))
		return nil, err
	}

	shopID := shop.ID
	return s.issue(ctx, user, role, auth.TokenSubject{
		UserID:      user.ID,
		TenantID:    shop.TenantID,
		Username:    user.UserName,
		Role:        role.Name,
		RoleID:      role.ID,
		WarehouseID: user.WarehouseID,
		ShopID:      &shopID,
	})
}

// authenticate checks credentials first and account status second, so an
// inactive account is only revealed to someone who knows its password
func (s *AuthService) authenticate(ctx context.Context, identifier, password string) (*identity.User, error) {
	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Warn("Login with unknown identifier")
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(password) {
		s.logger.Warn("Login with wrong password", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}
	if !user.IsActive() {
		return nil, errAccountInactive
	}
	return user, nil
}

func (s *AuthService) resolveRole(ctx context.Context, user *identity.User) (*identity.Role, error) {
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Error("User references a missing role",
				zap.String("user_id", user.ID.String()),
				zap.String("role_id", user.RoleID.String()))
			return nil, identity.ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

func (s *AuthService) issue(ctx context.Context, user *identity.User, role *identity.Role, subject auth.TokenSubject) (*LoginResult, error) {
	pair, err := s.tokens.GenerateTokenPair(subject)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin()
	if err := s.users.Update(logger.WithTenantID(ctx, user.TenantID.String()), user); err != nil {
		// the session is valid without the timestamp
		s.logger.Error("Failed to record last login", zap.Error(err))
	}

	return &LoginResult{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessTokenExpiresAt,
		User:         ToUserDTO(user, role),
	}, nil
}

// Refresh exchanges a refresh token for a new pair with the same tenant,
// warehouse and shop context
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, mapTokenError(auth.ErrTokenBlacklisted)
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, mapTokenError(auth.ErrInvalidClaims)
	}
	user, err := s.users.FindByIDUnscoped(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Token user no longer exists")
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, errAccountInactive
	}

	pair, _, err := s.tokens.RefreshTokenPair(refreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}
	return &RefreshResult{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessTokenExpiresAt,
	}, nil
}

// Logout revokes the access token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, input.TokenJTI, time.Until(input.ExpiresAt)); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return shared.WrapDomainError("INTERNAL_ERROR", "Failed to revoke token", err)
	}
	return nil
}

// Me returns the caller's own account
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.users.FindByIDUnscoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	dto := ToUserDTO(user, role)
	return &dto, nil
}

// ChangePassword verifies the current password and sets a new one
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.users.FindByIDUnscoped(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}
	if err := s.users.Update(logger.WithTenantID(ctx, user.TenantID.String()), user); err != nil {
		return err
	}
	s.logger.Info("User password changed", zap.String("user_id", user.ID.String()))
	return nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	case errors.Is(err, auth.ErrInvalidTokenType):
		return shared.NewDomainError("TOKEN_INVALID", "Wrong token type")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	}
}
