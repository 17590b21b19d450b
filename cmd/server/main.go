package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jubilee-retail/backoffice/internal/application/catalog"
	appidentity "github.com/jubilee-retail/backoffice/internal/application/identity"
	"github.com/jubilee-retail/backoffice/internal/application/partner"
	"github.com/jubilee-retail/backoffice/internal/application/report"
	"github.com/jubilee-retail/backoffice/internal/application/trade"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/auth"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/config"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/logger"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/notify"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/persistence"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/handler"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/middleware"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/router"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	gormLogLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormLogLevel))
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Connected to database", zap.String("host", cfg.Database.Host), zap.String("dbname", cfg.Database.DBName))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return err
	}
	log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr()))

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	menuRepo := persistence.NewGormMenuRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	agentRepo := persistence.NewGormAgentRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	cityRepo := persistence.NewGormCityRepository(db.DB)
	courierRepo := persistence.NewGormCourierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewRedisTokenBlacklist(redisClient)
	pendingStore := auth.NewRedisPendingLoginStore(redisClient)

	dispatcher := buildOtpDispatcher(cfg, log)

	// Application services
	authService := appidentity.NewAuthService(userRepo, menuRepo, pendingStore, jwtService, blacklist, dispatcher,
		appidentity.AuthServiceConfig{
			MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
			LockDuration:     cfg.Auth.LockoutDuration,
		}, log)
	menuService := appidentity.NewMenuService(menuRepo, roleRepo, log)
	userService := appidentity.NewUserService(userRepo, roleRepo, log)
	roleService := appidentity.NewRoleService(roleRepo, log)
	branchService := partner.NewBranchService(branchRepo, cityRepo, log)
	agentService := partner.NewAgentService(agentRepo, branchRepo, log)
	clientService := partner.NewClientService(clientRepo, cityRepo, log)
	lookupService := partner.NewLookupService(cityRepo, courierRepo, log)
	productService := catalog.NewProductService(productRepo, planRepo, log)
	couponService := catalog.NewCouponService(couponRepo, log)
	orderService := trade.NewOrderService(orderRepo, clientRepo, agentRepo, planRepo, couponRepo, txManager, log)
	dashboardService := report.NewDashboardService(orderRepo, clientRepo, agentRepo, log)

	lookupHandler := handler.NewLookupHandler(lookupService, log)
	catalogHandler := handler.NewCatalogHandler(productService, log)

	engine := buildEngine(cfg, jwtService, blacklist, log)

	r := router.New(engine)
	guard := func(resource string, registrar router.RouteRegistrar) router.RouteRegistrar {
		return router.Guard(registrar, middleware.MenuRights(menuService, resource, log))
	}
	r.Register(
		handler.NewSystemHandler(cfg.App.Name, version, log),
		handler.NewAuthHandler(authService, userService, menuService, log),
		handler.NewDashboardHandler(dashboardService, log),
		guard("/users", handler.NewUserHandler(userService, log)),
		guard("/roles", handler.NewRoleHandler(roleService, log)),
		guard("/menus", handler.NewMenuHandler(menuService, log)),
		guard("/branches", handler.NewBranchHandler(branchService, log)),
		guard("/agents", handler.NewAgentHandler(agentService, log)),
		guard("/clients", handler.NewClientHandler(clientService, log)),
		guard("/cities", router.RouteRegistrarFunc(lookupHandler.RegisterCityRoutes)),
		guard("/couriers", router.RouteRegistrarFunc(lookupHandler.RegisterCourierRoutes)),
		guard("/products", router.RouteRegistrarFunc(catalogHandler.RegisterProductRoutes)),
		guard("/plans", router.RouteRegistrarFunc(catalogHandler.RegisterPlanRoutes)),
		guard("/coupons", handler.NewCouponHandler(couponService, log)),
		guard("/orders", handler.NewOrderHandler(orderService, log)),
	)
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr), zap.String("env", cfg.App.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}

// buildOtpDispatcher wires the real email and SMS senders in production
// and log senders everywhere else, so development never needs an SMTP
// server or an SMS gateway account.
func buildOtpDispatcher(cfg *config.Config, log *zap.Logger) *notify.Dispatcher {
	if cfg.IsProduction() {
		return notify.NewDispatcher(
			notify.NewEmailSender(cfg.Mail),
			notify.NewSMSSender(cfg.SMS),
		)
	}
	return notify.NewDispatcher(
		notify.NewLogSender(identity.OtpChannelEmail, log),
		notify.NewLogSender(identity.OtpChannelSMS, log),
	)
}

func buildEngine(cfg *config.Config, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure(middleware.SecureConfig{HSTS: cfg.IsProduction()}))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(limiter.Middleware())
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		// The login flow gets a much tighter allowance than the rest of the API
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authPaths := map[string]struct{}{
			"/api/v1/auth/login":      {},
			"/api/v1/auth/otp/send":   {},
			"/api/v1/auth/otp/verify": {},
		}
		limit := authLimiter.Middleware()
		engine.Use(func(c *gin.Context) {
			if _, ok := authPaths[c.Request.URL.Path]; ok {
				limit(c)
				return
			}
			c.Next()
		})
	}

	engine.Use(middleware.JWT(jwtService, blacklist, middleware.DefaultJWTConfig(), log))
	return engine
}
