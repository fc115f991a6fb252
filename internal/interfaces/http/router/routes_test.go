package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/circtek/backend/internal/domain/identity"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/interfaces/http/handler"
	"github.com/circtek/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoleHeader = "X-Test-Role"

// stubAuthenticate treats the X-Test-Role header as a verified token
func stubAuthenticate(c *gin.Context) {
	role := c.GetHeader(testRoleHeader)
	if role == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Set(middleware.JWTActorKey, shared.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: role})
	c.Next()
}

// newAPIEngine wires every route over handlers without services; tests only
// reach code paths that stop before a service call
func newAPIEngine(t *testing.T) *gin.Engine {
	t.Helper()
	engine := gin.New()
	h := Handlers{
		Auth:        handler.NewAuthHandler(nil, nil),
		User:        handler.NewUserHandler(nil),
		Role:        handler.NewRoleHandler(nil),
		Tenant:      handler.NewTenantHandler(nil),
		Shop:        handler.NewShopHandler(nil),
		Currency:    handler.NewCurrencyHandler(nil),
		Warehouse:   handler.NewWarehouseHandler(nil),
		Stock:       handler.NewStockHandler(nil),
		DeviceEvent: handler.NewDeviceEventHandler(nil),
		Repair:      handler.NewRepairHandler(nil),
		Purchase:    handler.NewPurchaseHandler(nil),
		Buyback:     handler.NewBuybackHandler(nil),
		System:      handler.NewSystemHandler("circtek", "test", nil),
	}
	NewRouter(engine).
		Register(DomainGroups(h, Guards{Authenticate: stubAuthenticate})...).
		Setup()
	return engine
}

func request(engine *gin.Engine, method, path, role string) int {
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		req.Header.Set(testRoleHeader, role)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestDomainGroups_RouteTable(t *testing.T) {
	engine := newAPIEngine(t)

	registered := make(map[string]bool)
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	expected := []string{
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/shop-login",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"PUT /api/v1/auth/password",
		"GET /api/v1/users",
		"DELETE /api/v1/users/:id",
		"GET /api/v1/roles",
		"POST /api/v1/tenants",
		"POST /api/v1/shops/:id/access/:userId",
		"DELETE /api/v1/shops/:id/access/:userId",
		"PUT /api/v1/currency-symbols/:id/default",
		"PUT /api/v1/currency-preferences/me",
		"GET /api/v1/currency/resolve",
		"DELETE /api/v1/warehouses/:id",
		"POST /api/v1/stock/:id/adjust",
		"GET /api/v1/device-events/device/:deviceId",
		"POST /api/v1/repairs/:id/items",
		"POST /api/v1/repairs/:id/complete",
		"POST /api/v1/purchases/:id/receive",
		"PUT /api/v1/buyback/orders/:id/status",
		"GET /api/v1/system/ping",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestDomainGroups_Guards(t *testing.T) {
	engine := newAPIEngine(t)
	id := uuid.NewString()

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		status int
	}{
		{"stock requires a token", http.MethodGet, "/api/v1/stock", "", http.StatusUnauthorized},
		{"register requires a token", http.MethodPost, "/api/v1/auth/register", "", http.StatusUnauthorized},
		{"register is admin only", http.MethodPost, "/api/v1/auth/register", identity.RoleTechnician, http.StatusForbidden},
		{"users are admin only", http.MethodGet, "/api/v1/users", identity.RoleStaff, http.StatusForbidden},
		{"tenants are super admin only", http.MethodGet, "/api/v1/tenants", identity.RoleAdmin, http.StatusForbidden},
		{"shop writes are admin only", http.MethodPost, "/api/v1/shops", identity.RoleShopManager, http.StatusForbidden},
		{"shop access grants are admin only", http.MethodPost, "/api/v1/shops/" + id + "/access/" + id, identity.RoleManager, http.StatusForbidden},
		{"currency writes are admin only", http.MethodPost, "/api/v1/currency-symbols", identity.RoleTechnician, http.StatusForbidden},
		{"warehouse writes are admin only", http.MethodDelete, "/api/v1/warehouses/" + id, identity.RoleTechnician, http.StatusForbidden},
		{"buyback is admin only", http.MethodGet, "/api/v1/buyback/orders", identity.RoleManager, http.StatusForbidden},
		{"login is public", http.MethodPost, "/api/v1/auth/login", "", http.StatusBadRequest},
		{"refresh is public", http.MethodPost, "/api/v1/auth/refresh", "", http.StatusBadRequest},
		{"admin passes the guard", http.MethodGet, "/api/v1/users/not-a-uuid", identity.RoleAdmin, http.StatusBadRequest},
		{"system ping is public", http.MethodGet, "/api/v1/system/ping", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, request(engine, tt.method, tt.path, tt.role))
		})
	}
}

func TestGuards_SignInLimit(t *testing.T) {
	var limited []string
	g := Guards{
		Authenticate: stubAuthenticate,
		SignInLimit: func(c *gin.Context) {
			limited = append(limited, c.FullPath())
			c.AbortWithStatus(http.StatusTooManyRequests)
		},
	}
	engine := gin.New()
	h := Handlers{
		Auth:   handler.NewAuthHandler(nil, nil),
		System: handler.NewSystemHandler("circtek", "test", nil),
	}
	NewRouter(engine).Register(DomainGroups(h, g)...).Setup()

	assert.Equal(t, http.StatusTooManyRequests, request(engine, http.MethodPost, "/api/v1/auth/login", ""))
	assert.Equal(t, http.StatusTooManyRequests, request(engine, http.MethodPost, "/api/v1/auth/shop-login", ""))
	assert.Equal(t, http.StatusBadRequest, request(engine, http.MethodPost, "/api/v1/auth/refresh", ""))

	require.Len(t, limited, 2)
	for _, p := range limited {
		assert.True(t, strings.HasPrefix(p, "/api/v1/auth/"))
	}
}
