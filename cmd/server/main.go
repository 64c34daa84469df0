package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-proxy/internal/api"
	"weather-proxy/internal/config"
	"weather-proxy/internal/scheduler"
	"weather-proxy/internal/services"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if level, err := zapcore.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger = newLogger(level)
		zap.ReplaceGlobals(logger)
	} else {
		logger.Warn("Unknown log level, keeping info", zap.String("level", cfg.Server.LogLevel))
	}

	logger.Info("Starting weather forecast proxy",
		zap.Duration("forecast_delay", cfg.Forecast.Delay),
		zap.Bool("api_key_set", cfg.Upstream.APIKey != ""))

	forecasts := services.NewForecastService(cfg, logger)

	// Upstream probe
	var probe *scheduler.Probe
	if cfg.Probe.Schedule != "" {
		probe = scheduler.NewProbe(forecasts, cfg.Probe.Schedule, cfg.Upstream.Timeout, logger)
		if err := probe.Start(); err != nil {
			logger.Error("Failed to start upstream probe", zap.Error(err))
			probe = nil
		}
	}

	app := api.NewApp(cfg)

	// Setup handlers and routes
	handler := api.NewHandler(forecasts, probe, logger)
	api.SetupRoutes(app, cfg, handler, logger)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if probe != nil {
		probe.Stop()
	}

	// Shutdown Fiber app
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func newLogger(level zapcore.Level) *zap.Logger {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapConfig.Build()
	if err != nil {
		return zap.L()
	}
	return logger
}
