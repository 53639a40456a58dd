package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bivex/creatorhub/internal/infrastructure/config"
)

var Logger = zap.NewNop()

// Init initializes the global logger
func Init(cfg *config.SentryConfig) error {
	var err error
	var zapConfig zap.Config

	// Use development config in dev/staging, production in prod
	environment := "production"
	if cfg != nil && cfg.Environment != "" {
		environment = cfg.Environment
	}

	if environment == "development" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	// Output to stdout by default
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	var opts []zap.Option
	if cfg != nil && cfg.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.DSN,
			Environment: environment,
			Release:     cfg.Release,
		}); err != nil {
			return fmt.Errorf("failed to init sentry: %w", err)
		}
		opts = append(opts, zap.Hooks(SentryHook(sentry.CurrentHub())))
	}

	Logger, err = zapConfig.Build(opts...)
	if err != nil {
		return err
	}

	return nil
}

// SentryHub is the part of *sentry.Hub the log hook needs
type SentryHub interface {
	WithScope(f func(scope *sentry.Scope))
	CaptureMessage(message string) *sentry.EventID
}

// SentryHook forwards error-level and above entries to Sentry
func SentryHook(hub SentryHub) func(zapcore.Entry) error {
	return func(entry zapcore.Entry) error {
		if entry.Level < zapcore.ErrorLevel || hub == nil {
			return nil
		}
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("logger", entry.LoggerName)
			scope.SetTag("caller", entry.Caller.TrimmedPath())
			level := sentry.LevelError
			if entry.Level >= zapcore.DPanicLevel {
				level = sentry.LevelFatal
			}
			scope.SetLevel(level)
			hub.CaptureMessage(entry.Message)
		})
		return nil
	}
}

// Sync flushes any buffered log entries and pending Sentry events
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
	sentry.Flush(2 * time.Second)
}

// WithComponent creates a child logger with a component field
func WithComponent(component string) *zap.Logger {
	return Logger.With(zap.String("component", component))
}

// WithRequestID creates a child logger with a request_id field
func WithRequestID(requestID string) *zap.Logger {
	return Logger.With(zap.String("request_id", requestID))
}

// WithUserID creates a child logger with a user_id field
func WithUserID(userID string) *zap.Logger {
	return Logger.With(zap.String("user_id", userID))
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
	os.Exit(1)
}
