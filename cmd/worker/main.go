package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/app"
	"github.com/bivex/creatorhub/internal/infrastructure/config"
	"github.com/bivex/creatorhub/internal/infrastructure/logging"
	"github.com/bivex/creatorhub/internal/infrastructure/persistence/pool"
	"github.com/bivex/creatorhub/internal/worker/tasks"
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

	logging.Logger.Info("Starting creatorhub worker")

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

	services := app.NewServices(cfg, dbPool, redisClient, logging.Logger)
	logger := logging.WithComponent("worker")

	// Initialize Asynq server
	server := asynq.NewServerFromRedisClient(redisClient, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
		Queues: map[string]int{
			tasks.QueueCritical: 6,
			tasks.QueueDefault:  3,
			tasks.QueueLow:      1,
		},
		RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
			// Exponential backoff: 2^n seconds
			return time.Duration(1<<uint(n)) * time.Second
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("task failed", zap.String("type", task.Type()), zap.Error(err))
		}),
	})

	// Register task handlers
	mux := asynq.NewServeMux()
	tasks.RegisterHandlers(mux, tasks.Handlers{
		Sweeps:   tasks.NewSweepJobHandler(services.Subscriptions, services.Grants, cfg.Worker.BatchSize, logger),
		Creators: tasks.NewCreatorJobHandler(services.Creators, logger),
		Payments: tasks.NewPaymentJobHandler(services.Payments, logger),
	})

	// Start server in background
	if err := server.Start(mux); err != nil {
		logger.Fatal("Failed to start worker", zap.Error(err))
	}

	// Register scheduled tasks
	scheduler := asynq.NewSchedulerFromRedisClient(redisClient, &asynq.SchedulerOpts{Location: time.UTC})
	if err := tasks.RegisterScheduledTasks(scheduler); err != nil {
		logger.Fatal("Failed to register scheduled tasks", zap.Error(err))
	}

	// Start scheduler
	if err := scheduler.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	logger.Info("Worker started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")

	scheduler.Shutdown()
	server.Shutdown()

	logger.Info("Worker exited")
}
