package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g main.go -o ../../docs --parseDependency

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"history-map/internal/config"

	_ "history-map/docs" // Import generated docs
)

// @title History Map API
// @version 1.0
// @description Interactive world map session: country highlighting, historical facts, narration, canvas outlines and user location.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create app
	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	defer func() { _ = app.Close() }()

	// Start server
	logger.Info("starting server", "addr", cfg.GetServerAddr())
	if err := app.Run(ctx, cfg.GetServerAddr()); err != nil {
		logger.Error("server failed", "error", err)
		log.Fatal(err)
	}
}
