package api

import (
	"net/url"
	"time"

	"weather-proxy/internal/scheduler"
	"weather-proxy/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	forecasts *services.ForecastService
	probe     *scheduler.Probe
	logger    *zap.Logger
}

// NewHandler builds the HTTP handlers. probe may be nil when the upstream
// probe is disabled.
func NewHandler(forecasts *services.ForecastService, probe *scheduler.Probe, logger *zap.Logger) *Handler {
	return &Handler{
		forecasts: forecasts,
		probe:     probe,
		logger:    logger,
	}
}

// GetForecast handles GET /forecast, /forecast/ and /forecast/:location.
// It always answers 200; FakeData tells the client whether upstream data was used.
func (h *Handler) GetForecast(c *fiber.Ctx) error {
	location := c.Params("location")
	if unescaped, err := url.PathUnescape(location); err == nil {
		location = unescaped
	}

	h.logger.Debug("Fetching forecast", zap.String("location", location))

	// RequestCtx is done on server shutdown only, not on client disconnect.
	forecast := h.forecasts.GetForecast(c.Context(), location)

	return c.JSON(forecast)
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	response := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
		"stats":     h.forecasts.Stats(),
	}

	if h.probe != nil {
		response["probe"] = h.probe.GetStatus()
	}

	return c.JSON(response)
}

var startTime = time.Now()
