package auth

import (
	"errors"
	"time"

	"github.com/circtek/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType represents the type of JWT token
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingTenantID  = errors.New("missing tenant_id in claims")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims represents custom JWT claims.
// WarehouseID and ShopID are set only for tokens minted by shop login.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string    `json:"user_id"`
	TenantID    string    `json:"tenant_id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	RoleID      string    `json:"role_id"`
	WarehouseID string    `json:"warehouse_id,omitempty"`
	ShopID      string    `json:"shop_id,omitempty"`
	TokenType   TokenType `json:"token_type"`
}

// TokenPair represents an access and refresh token pair
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"` // Bearer
}

// JWTService handles JWT token operations
type JWTService struct {
	accessSecret      []byte
	refreshSecret     []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	issuer            string
	now               func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := []byte(cfg.RefreshSecret)
	if cfg.RefreshSecret == "" {
		refreshSecret = []byte(cfg.Secret)
	}

	return &JWTService{
		accessSecret:      []byte(cfg.Secret),
		refreshSecret:     refreshSecret,
		accessExpiration:  cfg.AccessTokenExpiration,
		refreshExpiration: cfg.RefreshTokenExpiration,
		issuer:            cfg.Issuer,
		now:               time.Now,
	}
}

// TokenSubject describes who a token pair is minted for
type TokenSubject struct {
	UserID      uuid.UUID
	TenantID    uuid.UUID
	Username    string
	Role        string
	RoleID      uuid.UUID
	WarehouseID *uuid.UUID
	ShopID      *uuid.UUID
}

// GenerateTokenPair generates both access and refresh tokens
func (s *JWTService) GenerateTokenPair(subject TokenSubject) (*TokenPair, error) {
	now := s.now()

	access := s.claimsFor(subject, TokenTypeAccess, now, s.accessExpiration)
	accessToken, err := s.sign(access, s.accessSecret)
	if err != nil {
		return nil, err
	}

	refresh := s.claimsFor(subject, TokenTypeRefresh, now, s.refreshExpiration)
	refreshToken, err := s.sign(refresh, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  now.Add(s.accessExpiration),
		RefreshTokenExpiresAt: now.Add(s.refreshExpiration),
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) claimsFor(subject TokenSubject, typ TokenType, now time.Time, ttl time.Duration) *Claims {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   subject.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    subject.UserID.String(),
		TenantID:  subject.TenantID.String(),
		Username:  subject.Username,
		Role:      subject.Role,
		RoleID:    subject.RoleID.String(),
		TokenType: typ,
	}
	if subject.WarehouseID != nil {
		claims.WarehouseID = subject.WarehouseID.String()
	}
	if subject.ShopID != nil {
		claims.ShopID = subject.ShopID.String()
	}
	return claims
}

func (s *JWTService) sign(claims *Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken validates an access token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.accessSecret, TokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token and returns its claims
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret, TokenTypeRefresh)
}

func (s *JWTService) validateToken(tokenString string, secret []byte, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.TokenType != expectedType {
		return nil, ErrInvalidTokenType
	}
	if claims.TenantID == "" {
		return nil, ErrMissingTenantID
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	return claims, nil
}

// RefreshTokenPair exchanges a refresh token for a new pair.
// Tenant, role and shop context are carried over unchanged.
func (s *JWTService) RefreshTokenPair(refreshToken string) (*TokenPair, *Claims, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, err
	}
	subject, err := claims.Subject()
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.GenerateTokenPair(subject)
	if err != nil {
		return nil, nil, err
	}
	return pair, claims, nil
}

// Subject rebuilds the TokenSubject the claims were minted from
func (c *Claims) Subject() (TokenSubject, error) {
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return TokenSubject{}, ErrInvalidClaims
	}
	tenantID, err := uuid.Parse(c.TenantID)
	if err != nil {
		return TokenSubject{}, ErrInvalidClaims
	}
	roleID, err := uuid.Parse(c.RoleID)
	if err != nil {
		return TokenSubject{}, ErrInvalidClaims
	}
	subject := TokenSubject{
		UserID:   userID,
		TenantID: tenantID,
		Username: c.Username,
		Role:     c.Role,
		RoleID:   roleID,
	}
	if subject.WarehouseID, err = parseOptional(c.WarehouseID); err != nil {
		return TokenSubject{}, ErrInvalidClaims
	}
	if subject.ShopID, err = parseOptional(c.ShopID); err != nil {
		return TokenSubject{}, ErrInvalidClaims
	}
	return subject, nil
}

func parseOptional(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// GetTenantUUID extracts and parses the tenant ID from claims
func (c *Claims) GetTenantUUID() (uuid.UUID, error) {
	return uuid.Parse(c.TenantID)
}

// GetUserUUID extracts and parses the user ID from claims
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetAccessTokenExpiration returns the access token expiration duration
func (s *JWTService) GetAccessTokenExpiration() time.Duration {
	return s.accessExpiration
}
