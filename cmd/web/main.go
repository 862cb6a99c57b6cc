package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g main.go -o ../../docs --parseDependency --parseInternal

import (
	"context"
	"horoscopus-web/internal/config"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "horoscopus-web/docs" // Import generated docs
)

// @title Horoscopus Web API
// @version 0.1.0
// @description Location autocomplete and birth data validation for the Horoscopus web client
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	logger.Info("starting server", "addr", cfg.GetServerAddr())
	runErr := app.Run(ctx, cfg.GetServerAddr())
	if err := app.Close(); err != nil {
		logger.Warn("failed to release resources", "error", err)
	}
	if runErr != nil {
		logger.Error("server failed", "error", runErr)
		stop()
		os.Exit(1)
	}
	logger.Info("server stopped")
}
