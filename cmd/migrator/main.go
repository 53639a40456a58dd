package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/infrastructure/logging"
	"github.com/bivex/creatorhub/internal/infrastructure/persistence/migrator"
)

func main() {
	var databaseURL string
	flag.StringVar(&databaseURL, "database", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	flag.Parse()

	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logging.Logger = logger

	args := flag.Args()
	if len(args) < 1 {
		logger.Fatal("Command required: up, down, steps N, force N, version")
	}

	m, err := migrator.New(databaseURL)
	if err != nil {
		logger.Fatal("Migration setup failed", zap.Error(err))
	}
	defer m.Close()

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil {
			logger.Fatal("Migration up failed", zap.Error(err))
		}
	case "down":
		if err := m.Down(); err != nil {
			logger.Fatal("Migration down failed", zap.Error(err))
		}
	case "steps":
		if err := m.Steps(intArg(logger, args)); err != nil {
			logger.Fatal("Migration steps failed", zap.Error(err))
		}
	case "force":
		if err := m.Force(intArg(logger, args)); err != nil {
			logger.Fatal("Migration force failed", zap.Error(err))
		}
	case "version":
	default:
		logger.Fatal("Unknown command", zap.String("command", args[0]))
	}

	version, dirty, err := m.Version()
	if err != nil {
		logger.Fatal("Failed to read migration version", zap.Error(err))
	}
	logger.Info("Migrations done", zap.Uint("version", version), zap.Bool("dirty", dirty))
}

func intArg(logger *zap.Logger, args []string) int {
	if len(args) < 2 {
		logger.Fatal("Numeric argument required", zap.String("command", args[0]))
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		logger.Fatal("Invalid numeric argument", zap.String("value", args[1]), zap.Error(err))
	}
	return n
}
