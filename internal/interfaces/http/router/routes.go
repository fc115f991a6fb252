package router

import (
	"github.com/circtek/backend/internal/interfaces/http/handler"
	"github.com/circtek/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the HTTP handlers served under /api/v1
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Role        *handler.RoleHandler
	Tenant      *handler.TenantHandler
	Shop        *handler.ShopHandler
	Currency    *handler.CurrencyHandler
	Warehouse   *handler.WarehouseHandler
	Stock       *handler.StockHandler
	DeviceEvent *handler.DeviceEventHandler
	Repair      *handler.RepairHandler
	Purchase    *handler.PurchaseHandler
	Buyback     *handler.BuybackHandler
	System      *handler.SystemHandler
}

// Guards are the authentication middlewares applied per route. Authenticate
// must populate the caller (middleware.JWTAuth); SignInLimit throttles
// credential checks and may be nil.
type Guards struct {
	Authenticate gin.HandlerFunc
	SignInLimit  gin.HandlerFunc
}

func (g Guards) signIn(h gin.HandlerFunc) []gin.HandlerFunc {
	if g.SignInLimit == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{g.SignInLimit, h}
}

// DomainGroups builds every API route group. Public routes are limited to
// sign-in, token refresh and system probes.
func DomainGroups(h Handlers, g Guards) []RouteRegistrar {
	admin := middleware.RequireAdmin()
	superAdmin := middleware.RequireSuperAdmin()

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", g.signIn(h.Auth.Login)...)
	authRoutes.POST("/shop-login", g.signIn(h.Auth.ShopLogin)...)
	authRoutes.POST("/refresh", h.Auth.RefreshToken)
	authRoutes.POST("/register", g.Authenticate, admin, h.Auth.Register)
	authRoutes.POST("/logout", g.Authenticate, h.Auth.Logout)
	authRoutes.GET("/me", g.Authenticate, h.Auth.GetCurrentUser)
	authRoutes.PUT("/password", g.Authenticate, h.Auth.ChangePassword)

	userRoutes := NewDomainGroup("users", "/users").Use(g.Authenticate, admin)
	userRoutes.GET("", h.User.List)
	userRoutes.GET("/:id", h.User.GetByID)
	userRoutes.PUT("/:id", h.User.Update)
	userRoutes.DELETE("/:id", h.User.Delete)

	roleRoutes := NewDomainGroup("roles", "/roles").Use(g.Authenticate)
	roleRoutes.GET("", h.Role.List)

	tenantRoutes := NewDomainGroup("tenants", "/tenants").Use(g.Authenticate, superAdmin)
	tenantRoutes.POST("", h.Tenant.Create)
	tenantRoutes.GET("", h.Tenant.List)
	tenantRoutes.GET("/:id", h.Tenant.GetByID)
	tenantRoutes.PUT("/:id", h.Tenant.Update)
	tenantRoutes.DELETE("/:id", h.Tenant.Delete)

	shopRoutes := NewDomainGroup("shops", "/shops").Use(g.Authenticate)
	shopRoutes.GET("", h.Shop.List)
	shopRoutes.GET("/:id", h.Shop.GetByID)
	shopRoutes.POST("", admin, h.Shop.Create)
	shopRoutes.PUT("/:id", admin, h.Shop.Update)
	shopRoutes.DELETE("/:id", admin, h.Shop.Delete)
	shopRoutes.GET("/:id/access", admin, h.Shop.ListAccess)
	shopRoutes.POST("/:id/access/:userId", admin, h.Shop.GrantAccess)
	shopRoutes.DELETE("/:id/access/:userId", admin, h.Shop.RevokeAccess)

	symbolRoutes := NewDomainGroup("currency-symbols", "/currency-symbols").Use(g.Authenticate)
	symbolRoutes.GET("", h.Currency.ListSymbols)
	symbolRoutes.GET("/:id", h.Currency.GetSymbol)
	symbolRoutes.POST("", admin, h.Currency.CreateSymbol)
	symbolRoutes.PUT("/:id", admin, h.Currency.UpdateSymbol)
	symbolRoutes.PUT("/:id/default", admin, h.Currency.SetDefault)
	symbolRoutes.DELETE("/:id", admin, h.Currency.DeleteSymbol)

	preferenceRoutes := NewDomainGroup("currency-preferences", "/currency-preferences").Use(g.Authenticate)
	preferenceRoutes.GET("/me", h.Currency.GetPreference)
	preferenceRoutes.PUT("/me", h.Currency.SetPreference)
	preferenceRoutes.DELETE("/me", h.Currency.DeletePreference)

	currencyRoutes := NewDomainGroup("currency", "/currency").Use(g.Authenticate)
	currencyRoutes.GET("/resolve", h.Currency.Resolve)

	warehouseRoutes := NewDomainGroup("warehouses", "/warehouses").Use(g.Authenticate)
	warehouseRoutes.GET("", h.Warehouse.List)
	warehouseRoutes.GET("/:id", h.Warehouse.GetByID)
	warehouseRoutes.POST("", admin, h.Warehouse.Create)
	warehouseRoutes.PUT("/:id", admin, h.Warehouse.Update)
	warehouseRoutes.DELETE("/:id", admin, h.Warehouse.Delete)

	stockRoutes := NewDomainGroup("stock", "/stock").Use(g.Authenticate)
	stockRoutes.GET("", h.Stock.List)
	stockRoutes.GET("/:id", h.Stock.GetByID)
	stockRoutes.POST("", h.Stock.Create)
	stockRoutes.PUT("/:id", h.Stock.Update)
	stockRoutes.POST("/:id/adjust", h.Stock.Adjust)
	stockRoutes.DELETE("/:id", admin, h.Stock.Delete)

	eventRoutes := NewDomainGroup("device-events", "/device-events").Use(g.Authenticate)
	eventRoutes.GET("", h.DeviceEvent.List)
	eventRoutes.GET("/device/:deviceId", h.DeviceEvent.ListByDevice)
	eventRoutes.POST("", h.DeviceEvent.Create)

	repairRoutes := NewDomainGroup("repairs", "/repairs").Use(g.Authenticate)
	repairRoutes.POST("", h.Repair.Create)
	repairRoutes.GET("", h.Repair.List)
	repairRoutes.GET("/:id", h.Repair.GetByID)
	repairRoutes.POST("/:id/items", h.Repair.ConsumeParts)
	repairRoutes.POST("/:id/complete", h.Repair.Complete)
	repairRoutes.DELETE("/:id", h.Repair.Delete)

	purchaseRoutes := NewDomainGroup("purchases", "/purchases").Use(g.Authenticate)
	purchaseRoutes.POST("", h.Purchase.Create)
	purchaseRoutes.GET("", h.Purchase.List)
	purchaseRoutes.GET("/:id", h.Purchase.GetByID)
	purchaseRoutes.POST("/:id/receive", h.Purchase.Receive)
	purchaseRoutes.DELETE("/:id", h.Purchase.Delete)

	buybackRoutes := NewDomainGroup("buyback", "/buyback").Use(g.Authenticate, admin)
	buybackRoutes.GET("/orders", h.Buyback.ListOrders)
	buybackRoutes.GET("/orders/:id", h.Buyback.GetOrder)
	buybackRoutes.PUT("/orders/:id/status", h.Buyback.UpdateOrderStatus)

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", h.System.GetSystemInfo)
	systemRoutes.GET("/ping", h.System.Ping)

	return []RouteRegistrar{
		authRoutes,
		userRoutes,
		roleRoutes,
		tenantRoutes,
		shopRoutes,
		symbolRoutes,
		preferenceRoutes,
		currencyRoutes,
		warehouseRoutes,
		stockRoutes,
		eventRoutes,
		repairRoutes,
		purchaseRoutes,
		buybackRoutes,
		systemRoutes,
	}
}
