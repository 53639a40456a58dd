package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/app"
	"github.com/bivex/creatorhub/internal/application/command"
	"github.com/bivex/creatorhub/internal/application/middleware"
	"github.com/bivex/creatorhub/internal/application/query"
	"github.com/bivex/creatorhub/internal/infrastructure/cache"
	"github.com/bivex/creatorhub/internal/infrastructure/config"
	"github.com/bivex/creatorhub/internal/infrastructure/logging"
	"github.com/bivex/creatorhub/internal/infrastructure/persistence/pool"
	"github.com/bivex/creatorhub/internal/interfaces/http/handlers"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logging.Init(&cfg.Sentry); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	logging.Logger.Info("Starting creatorhub API server",
		zap.Int("port", cfg.Server.Port),
		zap.String("environment", cfg.Sentry.Environment),
	)

	ctx := context.Background()
	dbPool, err := app.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		logging.Logger.Fatal("Database unavailable", zap.Error(err))
	}
	defer pool.Close(dbPool)

	redisClient, err := app.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logging.Logger.Fatal("Redis unavailable", zap.Error(err))
	}
	defer redisClient.Close()

	asynqClient := asynq.NewClientFromRedisClient(redisClient)
	defer asynqClient.Close()

	services := app.NewServices(cfg, dbPool, redisClient, logging.Logger)

	// Middleware
	jwtMiddleware := middleware.NewJWTMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer, cache.NewTokenBlocklist(redisClient))
	rateLimiter := middleware.NewRateLimiter(redisClient, true)

	webhookHandler, err := handlers.NewWebhookHandler(cfg.Webhook.Secret, cfg.Webhook.AllowedCIDRs, asynqClient)
	if err != nil {
		logging.Logger.Fatal("Invalid webhook configuration", zap.Error(err))
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	routes := &handlers.Router{
		Logger:         logging.Logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		JWT:            jwtMiddleware,
		RateLimiter:    rateLimiter,
		Access: handlers.NewAccessHandler(
			query.NewCheckAccessQuery(services.Entitlements),
			command.NewConsumeAccessCommand(services.Entitlements),
		),
		Tiers: handlers.NewTierHandler(
			query.NewTierPricingQuery(services.Entitlements),
			command.NewCreateTierCommand(services.Tiers),
			command.NewTierDiscountCommand(services.Tiers),
			command.NewRetireTierCommand(services.Tiers),
		),
		Subscriptions: handlers.NewSubscriptionHandler(
			query.NewGetSubscriptionQuery(services.Subscriptions),
			command.NewCreateSubscriptionCommand(services.Subscriptions),
			command.NewCancelSubscriptionCommand(services.Subscriptions),
		),
		Payments: handlers.NewPaymentHandler(
			command.NewCreatePaymentCommand(services.Payments),
			command.NewSettlePaymentCommand(services.Payments),
		),
		Content:  handlers.NewContentHandler(command.NewContentCommand(services.Content)),
		Creators: handlers.NewCreatorHandler(command.NewCreatorProfileCommand(services.Creators)),
		Admin: handlers.NewAdminHandler(
			command.NewGrantAccessCommand(services.Grants),
			command.NewRevokeAccessCommand(services.Grants),
			command.NewApplyEarningsCommand(services.Creators),
		),
		Webhook: webhookHandler,
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"postgres": dbPool,
			"redis":    services.TierCache,
		}),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logging.Logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("Server exited")
}
