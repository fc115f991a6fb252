package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	buybackapp "github.com/circtek/backend/internal/application/buyback"
	currencyapp "github.com/circtek/backend/internal/application/currency"
	identityapp "github.com/circtek/backend/internal/application/identity"
	inventoryapp "github.com/circtek/backend/internal/application/inventory"
	procurementapp "github.com/circtek/backend/internal/application/procurement"
	repairapp "github.com/circtek/backend/internal/application/repair"
	"github.com/circtek/backend/internal/infrastructure/auth"
	"github.com/circtek/backend/internal/infrastructure/backmarket"
	"github.com/circtek/backend/internal/infrastructure/cache"
	"github.com/circtek/backend/internal/infrastructure/config"
	"github.com/circtek/backend/internal/infrastructure/logger"
	"github.com/circtek/backend/internal/infrastructure/persistence"
	"github.com/circtek/backend/internal/infrastructure/telemetry"
	"github.com/circtek/backend/internal/interfaces/http/handler"
	"github.com/circtek/backend/internal/interfaces/http/middleware"
	"github.com/circtek/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	_ "github.com/circtek/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Circtek Backend API
//	@version		1.0
//	@description	Multi-tenant backend for device refurbishment: identity, stock, repairs, purchases, currency and Back Market buyback.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	tel, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	// Tee application logs to the collector once the log pipeline is up
	if tel.Logs.IsEnabled() {
		log, err = logger.New(logCfg, tel.Logs.ZapCore(logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	zap.ReplaceGlobals(log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Circtek Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	metrics, err := telemetry.NewBusinessMetrics(tel.Meter.Meter("circtek"))
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel), cfg.Database.SlowThreshold)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, otel.GetTracerProvider(), log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Token blacklist; without Redis logout is client side only
	var blacklist auth.TokenBlacklist = auth.NoopTokenBlacklist{}
	var redisBlacklist *auth.RedisTokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err = auth.NewRedisTokenBlacklist(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		log.Warn("Redis disabled, logout will not revoke tokens server side")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	symbolRepo := persistence.NewGormCurrencySymbolRepository(db.DB)
	preferenceRepo := persistence.NewGormCurrencyPreferenceRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	deviceEventRepo := persistence.NewGormDeviceEventRepository(db.DB)
	repairRepo := persistence.NewGormRepairRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)

	// Currency resolution cache
	var resolutionCache currencyapp.ResolutionCache
	if cfg.Cache.Enabled {
		currencyCache, err := cache.NewCurrencyCache(cfg.Cache, log)
		if err != nil {
			log.Fatal("Failed to create currency cache", zap.Error(err))
		}
		defer currencyCache.Close()
		resolutionCache = currencyCache
	}

	// Back Market gateway; the buyback endpoints answer 503 without one
	var gateway buybackapp.OrderGateway
	if cfg.BackMarket.Enabled() {
		client, err := backmarket.NewClient(cfg.BackMarket, backmarket.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to create Back Market client", zap.Error(err))
		}
		gateway = client
	} else {
		log.Info("Back Market token not configured, buyback endpoints disabled")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, roleRepo, shopRepo, jwtService, blacklist, metrics, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, log)
	roleService := identityapp.NewRoleService(roleRepo)
	tenantService := identityapp.NewTenantService(tenantRepo, log)
	shopService := identityapp.NewShopService(shopRepo, userRepo, log)
	currencyService := currencyapp.NewService(symbolRepo, preferenceRepo, resolutionCache, log)
	warehouseService := inventoryapp.NewWarehouseService(warehouseRepo, log)
	stockService := inventoryapp.NewStockService(stockRepo, warehouseRepo, metrics, log)
	deviceEventService := inventoryapp.NewDeviceEventService(deviceEventRepo, log)
	repairService := repairapp.NewService(repairRepo, warehouseRepo, metrics, log)
	purchaseService := procurementapp.NewService(purchaseRepo, warehouseRepo, metrics, log)
	buybackService := buybackapp.NewService(gateway, log)

	// Health checks
	checks := map[string]handler.HealthCheck{
		"database": db.Ping,
	}
	if redisBlacklist != nil {
		checks["redis"] = redisBlacklist.Ping
	}

	// HTTP handlers
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService, userService),
		User:        handler.NewUserHandler(userService),
		Role:        handler.NewRoleHandler(roleService),
		Tenant:      handler.NewTenantHandler(tenantService),
		Shop:        handler.NewShopHandler(shopService),
		Currency:    handler.NewCurrencyHandler(currencyService),
		Warehouse:   handler.NewWarehouseHandler(warehouseService),
		Stock:       handler.NewStockHandler(stockService),
		DeviceEvent: handler.NewDeviceEventHandler(deviceEventService),
		Repair:      handler.NewRepairHandler(repairService),
		Purchase:    handler.NewPurchaseHandler(purchaseService),
		Buyback:     handler.NewBuybackHandler(buybackService),
		System:      handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion, checks),
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: tracing first so request logs carry trace ids, then
	// request id, recovery, logging, metrics, security headers, CORS, body
	// limit and the general rate limit.
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tel.Tracer.IsEnabled(),
		SkipPaths:   []string{"/health", "/swagger"},
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(metrics))
	engine.Use(middleware.Profiling(tel.Profiler.IsEnabled()))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimit, cfg.HTTP.AuthRateWindow)
	defer authLimiter.Stop()

	engine.GET("/health", handlers.System.Health)
	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(cfg.Swagger),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}

	guards := router.Guards{
		Authenticate: middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		}),
		SignInLimit: middleware.AuthRateLimit(authLimiter),
	}
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.DomainGroups(handlers, guards)...).
		Setup()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
