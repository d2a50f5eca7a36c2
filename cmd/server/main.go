// Command server runs the weather MCP server: tool calls over stdio plus an
// operational HTTP listener for health, readiness, and metrics.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-mcp-service/internal/adapter/httpadapter"
	"github.com/couchcryptid/weather-mcp-service/internal/adapter/imagegen"
	"github.com/couchcryptid/weather-mcp-service/internal/adapter/mcptool"
	"github.com/couchcryptid/weather-mcp-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-mcp-service/internal/auth"
	"github.com/couchcryptid/weather-mcp-service/internal/config"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
	"github.com/couchcryptid/weather-mcp-service/internal/query"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	geocoding := openmeteo.NewGeocodingClient(cfg.GeocodingAPIURL, cfg.UpstreamTimeout, metrics, logger)
	forecasts := openmeteo.NewForecastClient(cfg.WeatherAPIURL, cfg.UpstreamTimeout, metrics, logger)

	resolver := query.NewResolver(geocoding, nil, logger)
	queries := query.NewService(resolver, forecasts, metrics, logger)

	// Image generation is feature-flagged via IMAGE_ENABLED / IMAGE_API_TOKEN.
	var images *imagegen.Client
	if cfg.ImageEnabled {
		images = imagegen.NewClient(cfg.ImageAPIURL, cfg.ImageAPIToken, cfg.ImageTimeout, metrics, logger)
		logger.Info("image generation enabled", "allowed_users", len(cfg.ImageAllowedUsers), "timeout", cfg.ImageTimeout)
	} else {
		logger.Info("image generation disabled")
	}

	toolServer := mcptool.NewServer(queries, images, auth.NewAllowList(cfg.ImageAllowedUsers), cfg.CallerID, version, metrics, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, toolServer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start ops HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Serve tool calls until the client disconnects or a signal arrives.
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := toolServer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("mcp server error", "error", err)
		}
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
