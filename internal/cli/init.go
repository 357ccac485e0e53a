// Package cli consolidates the initialization steps shared by the
// fils and fils-worker binaries.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fils/internal/config"
	applog "fils/internal/log"
	"fils/internal/storage"
)

// SetupLogger initializes structured logging and sets the default
// logger.
func SetupLogger() *slog.Logger {
	return applog.Setup(slog.LevelInfo)
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored; the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and exits the process on
// validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitArchive opens the transaction archive or exits the process.
func InitArchive(logger *slog.Logger, dbPath string) *storage.Repository {
	repo, err := storage.NewRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize transaction archive", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}

// ShutdownContext returns a context cancelled on SIGINT/SIGTERM.
func ShutdownContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()
	return ctx, cancel
}
