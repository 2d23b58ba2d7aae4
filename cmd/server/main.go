package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"
	"stockroom/internal/core/services"
	httphandlers "stockroom/internal/handlers/http"
	"stockroom/internal/infrastructure/assets"
	"stockroom/internal/infrastructure/events"
	"stockroom/internal/infrastructure/middleware"
	"stockroom/internal/infrastructure/monitoring"
	repositories "stockroom/internal/infrastructure/repositories"
	"stockroom/pkg/config"
	"stockroom/pkg/logger"
	"stockroom/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Try multiple config paths
	configPaths := []string{
		"configs/config.yaml",
		"./configs/config.yaml",
		"/etc/stockroom/config.yaml",
		"config.yaml",
	}

	var cfg *config.Config
	var err error

	for _, path := range configPaths {
		cfg, err = config.Load(path)
		if err == nil {
			break
		}
	}
	if err != nil {
		cfg = config.DefaultConfig()
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	// Tracing
	tp, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "stockroom",
		JaegerURL:   cfg.Tracing.JaegerURL,
		Environment: cfg.Tracing.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		log.Fatalw("failed to initialize tracing", "error", err)
	}

	// Repositories
	repoFactory, err := repositories.NewRepositoryFactory(cfg, log)
	if err != nil {
		log.Fatalw("failed to create repository factory", "error", err)
	}
	defer repoFactory.Close()

	inventoryRepo := repoFactory.CreateInventoryRepository()
	roleRepo := repoFactory.CreateRoleRepository()
	sessionRepo := repoFactory.CreateSessionRepository()

	// Monitoring
	collector := monitoring.NewPrometheusCollector()

	// Live updates feed
	feed := events.NewFeed(log)
	feed.OnCountChange(collector.SetFeedClients)

	// External collaborators
	verifier := services.NewJWTVerifier(cfg.Auth.TokenSecret)
	var uploader ports.AssetUploader
	if cfg.Assets.Enabled {
		uploader = assets.NewHTTPUploader(cfg.Assets.UploadURL, cfg.Assets.APIKey, cfg.Assets.Timeout, log)
	}

	// Services
	sessionService := services.NewSessionService(verifier, roleRepo, sessionRepo, cfg.Auth.SessionTTL, collector, log)
	inventoryService := services.NewInventoryService(inventoryRepo, uploader, feed, collector, log)

	// Handlers
	authHandler := httphandlers.NewAuthHandler(sessionService, cfg.Auth.SessionTTL, cfg.Auth.TokenCookieTTL, cfg.Auth.SecureCookies)
	inventoryHandler := httphandlers.NewInventoryHandler(inventoryService)

	// Configure Gin
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.NewRateLimitMiddleware(cfg))
	router.Use(middleware.MetricsMiddleware(collector))
	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware())
	}

	authCfg := middleware.AuthConfig{
		SecureCookies: cfg.Auth.SecureCookies,
		SessionTTL:    cfg.Auth.SessionTTL,
	}
	requireAuth := middleware.RequireAuth(sessionService, authCfg, log)
	editors := middleware.RequireRoles(domain.RoleEditor, domain.RoleAdmin)
	admins := middleware.RequireRoles(domain.RoleAdmin)

	// Public routes
	authHandler.SetupRoutes(router)
	router.GET("/", middleware.OptionalAuth(sessionService, authCfg, log), inventoryHandler.Landing)

	// Authenticated routes
	router.GET("/items", requireAuth, inventoryHandler.ListItems)
	router.GET("/dashboard", requireAuth, inventoryHandler.Dashboard)
	router.GET("/ws/updates", requireAuth, feed.HandleWS)
	router.POST("/add", requireAuth, editors, inventoryHandler.AddItem)
	router.POST("/update_quantity/:id", requireAuth, editors, inventoryHandler.UpdateQuantity)
	router.DELETE("/delete/:id", requireAuth, admins, inventoryHandler.DeleteItem)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"uptime":    time.Since(startTime).String(),
		})
	})

	// Readiness endpoint: verifies the backing store is reachable
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := repoFactory.HealthCheck(ctx); err != nil {
			c.JSON(503, gin.H{
				"status":       "not_ready",
				"timestamp":    time.Now(),
				"dependencies": "unhealthy",
				"error":        err.Error(),
			})
			return
		}
		c.JSON(200, gin.H{
			"status":       "ready",
			"timestamp":    time.Now(),
			"dependencies": "ok",
		})
	})

	// Prometheus metrics endpoint
	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("Prometheus metrics enabled")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting Stockroom server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("Received shutdown signal", "signal", sig)
	}

	log.Info("Shutting down Stockroom server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error during server shutdown", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			log.Errorw("Error force closing server", "error", closeErr)
		}
	} else {
		log.Info("Server shutdown gracefully")
	}

	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error shutting down tracer provider", "error", err)
	}
}
