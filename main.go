package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workshopcart/config"
	"workshopcart/cron"
	"workshopcart/handlers"
	"workshopcart/middleware"
	"workshopcart/routes"
	"workshopcart/services/catalog"
	"workshopcart/services/gateway"
	"workshopcart/services/session"
	"workshopcart/services/workshop"
	"workshopcart/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if os.Getenv("ENV") != "production" {
		// A missing .env is fine; the environment may already be set.
		_ = godotenv.Overload(".env")
	}
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := config.AppConfig

	// remote backend.
	gw := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayTimeout, logger)

	// stores.
	catalogCache := newCatalogCache(cfg, logger)
	sessionStore := newSessionStore(cfg, logger)

	// services.
	controller := session.NewController(gw, gw, logger, cfg.GatewayTimeout)
	catalogService := catalog.NewDefaultCatalogService(gw, catalogCache, logger)
	cartService := workshop.NewDefaultCartSessionService(controller, catalogService, gw, sessionStore, logger)

	// background jobs.
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()
	cron.StartCatalogRefresher(jobsCtx, catalogService, cfg.CatalogRefresh, logger)

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewCartHandler(cartService),
		handlers.NewInventoryHandler(catalogService),
		&handlers.HealthHandler{},
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle, config.Origins())

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stopJobs()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	utils.CloseRedis()

	logger.Sugar().Info("main: server stopped gracefully")
}

func newCatalogCache(cfg config.Config, logger *zap.Logger) catalog.Cache {
	if cfg.CacheBackend == config.BackendRedis {
		client, err := utils.GetCacheClient()
		if err == nil {
			logger.Info("main: catalog cache on redis", zap.Int("db", cfg.RedisCacheDB))
			return catalog.NewRedisCache(client, cfg.CatalogTTL)
		}
		logger.Warn("main: redis catalog cache unavailable, using memory", zap.Error(err))
	}
	return catalog.NewMemoryCache(cfg.CatalogTTL)
}

// An unreachable redis session store is fatal; the catalog cache is not.
func newSessionStore(cfg config.Config, logger *zap.Logger) workshop.SessionStore {
	if cfg.SessionBackend == config.BackendRedis {
		client, err := utils.GetSessionCacheClient()
		if err != nil {
			logger.Fatal("main: failed to connect session store", zap.Error(err))
		}
		return workshop.NewRedisSessionStore(client, cfg.SessionTTL)
	}
	return workshop.NewMemorySessionStore(cfg.SessionTTL)
}
