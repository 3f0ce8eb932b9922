package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"history-map/internal/config"
	"history-map/internal/session"

	"github.com/gin-gonic/gin"
)

// App encapsulates application dependencies
type App struct {
	router  *gin.Engine
	logger  *slog.Logger
	session *session.Session
	cfg     *config.Config
}

// NewApp creates a new application with injected dependencies. A failure to
// load the country data is logged and the map is served without its
// country layer.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...session.Option) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Only configured proxies may set the client address
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	sess, err := session.New(ctx, cfg, logger, opts...)
	if err != nil {
		return nil, err
	}
	if err := sess.Init(ctx); err != nil {
		logger.Warn("serving tile-only map", "error", err)
	}

	app := &App{
		router:  router,
		logger:  logger,
		session: sess,
		cfg:     cfg,
	}

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Run starts the HTTP server and shuts it down when ctx is done
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		app.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Close releases session resources
func (app *App) Close() error {
	return app.session.Close()
}
