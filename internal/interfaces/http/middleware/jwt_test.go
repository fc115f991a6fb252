package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/auth"
	"github.com/circtek/backend/internal/infrastructure/config"
	"github.com/circtek/backend/internal/infrastructure/logger"
	"github.com/circtek/backend/internal/infrastructure/persistence/tenant"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService(accessTTL time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "circtek-test",
	})
}

func issue(t *testing.T, svc *auth.JWTService, role string) (*auth.TokenPair, auth.TokenSubject) {
	t.Helper()
	subject := auth.TokenSubject{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Username: "tech01",
		Role:     role,
		RoleID:   uuid.New(),
	}
	pair, err := svc.GenerateTokenPair(subject)
	require.NoError(t, err)
	return pair, subject
}

type fakeBlacklist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeBlacklist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	f.revoked[jti] = true
	return nil
}

func (f *fakeBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], f.err
}

func serveWithToken(mw []gin.HandlerFunc, token string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(RequestID())
	router.Use(mw...)
	router.GET("/test", handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func okHandler(c *gin.Context) { c.Status(http.StatusOK) }

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	pair, subject := issue(t, svc, "technician")

	var (
		actor       shared.Actor
		ctxTenant   string
		crossTenant bool
	)
	w := serveWithToken([]gin.HandlerFunc{JWTAuth(JWTMiddlewareConfig{JWTService: svc})}, pair.AccessToken, func(c *gin.Context) {
		actor, _ = GetActor(c)
		ctxTenant = logger.GetTenantID(c.Request.Context())
		crossTenant = tenant.IsCrossTenant(c.Request.Context())
		c.Status(http.StatusOK)
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, subject.UserID, actor.UserID)
	assert.Equal(t, subject.TenantID, actor.TenantID)
	assert.Equal(t, "technician", actor.Role)
	assert.Equal(t, subject.TenantID.String(), ctxTenant)
	assert.False(t, crossTenant)
}

func TestJWTAuth_SuperAdminIsCrossTenant(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	pair, _ := issue(t, svc, "super_admin")

	var crossTenant bool
	w := serveWithToken([]gin.HandlerFunc{JWTAuth(JWTMiddlewareConfig{JWTService: svc})}, pair.AccessToken, func(c *gin.Context) {
		crossTenant = tenant.IsCrossTenant(c.Request.Context())
		c.Status(http.StatusOK)
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, crossTenant)
}

func TestJWTAuth_Rejections(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	pair, _ := issue(t, svc, "staff")
	expiredPair, _ := issue(t, newTestJWTService(-time.Minute), "staff")

	tests := []struct {
		name      string
		token     string
		blacklist auth.TokenBlacklist
		wantCode  string
	}{
		{"missing header", "", nil, `"code":"UNAUTHORIZED"`},
		{"garbage token", "not-a-jwt", nil, `"code":"TOKEN_INVALID"`},
		{"refresh token", pair.RefreshToken, nil, `"code":"TOKEN_INVALID"`},
		{"expired token", expiredPair.AccessToken, nil, `"code":"TOKEN_EXPIRED"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := JWTAuth(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: tt.blacklist})
			w := serveWithToken([]gin.HandlerFunc{mw}, tt.token, okHandler)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
			assert.Contains(t, w.Body.String(), `"status":401`)
		})
	}
}

func TestJWTAuth_Blacklist(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	pair, _ := issue(t, svc, "staff")
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	t.Run("revoked token is rejected", func(t *testing.T) {
		bl := &fakeBlacklist{revoked: map[string]bool{claims.ID: true}}
		w := serveWithToken([]gin.HandlerFunc{JWTAuth(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: bl})}, pair.AccessToken, okHandler)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"TOKEN_REVOKED"`)
	})

	t.Run("blacklist errors fail open", func(t *testing.T) {
		bl := &fakeBlacklist{revoked: map[string]bool{}, err: errors.New("redis down")}
		w := serveWithToken([]gin.HandlerFunc{JWTAuth(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: bl})}, pair.AccessToken, okHandler)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	jwtMW := JWTAuth(JWTMiddlewareConfig{JWTService: svc})

	t.Run("admin passes admin guard", func(t *testing.T) {
		pair, _ := issue(t, svc, "admin")
		w := serveWithToken([]gin.HandlerFunc{jwtMW, RequireAdmin()}, pair.AccessToken, okHandler)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("technician is forbidden", func(t *testing.T) {
		pair, _ := issue(t, svc, "technician")
		w := serveWithToken([]gin.HandlerFunc{jwtMW, RequireAdmin()}, pair.AccessToken, okHandler)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"FORBIDDEN"`)
	})

	t.Run("admin is not super admin", func(t *testing.T) {
		pair, _ := issue(t, svc, "admin")
		w := serveWithToken([]gin.HandlerFunc{jwtMW, RequireSuperAdmin()}, pair.AccessToken, okHandler)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("guard without authentication", func(t *testing.T) {
		w := serveWithToken([]gin.HandlerFunc{RequireAdmin()}, "", okHandler)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
