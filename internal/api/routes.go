package api

import (
	"time"

	"weather-proxy/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// NewApp creates the fiber app with the server settings from cfg.
func NewApp(cfg *config.Config) *fiber.App {
	return fiber.New(fiber.Config{
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
}

func SetupRoutes(app *fiber.App, cfg *config.Config, handler *Handler, log *zap.Logger) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())

	if cfg.Server.RedirectHTTPS {
		app.Use(RedirectToHTTPS(cfg.Server.RedirectIgnoreHosts, log))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,HEAD",
	}))

	// Access log for each request
	app.Use(logger.New(logger.Config{
		Format:     "${ip} - ${time} - \"${method} ${path}\" ${status} ${locals:requestid}\n",
		TimeFormat: time.RFC3339,
	}))

	// Forecast data
	app.Get("/forecast/:location", handler.GetForecast)
	app.Get("/forecast", handler.GetForecast)

	// Health check
	api := app.Group("/api/v1")
	api.Get("/health", handler.GetHealth)

	// Static files
	if cfg.Server.StaticDir != "" {
		app.Static("/", cfg.Server.StaticDir)
	}

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
			"path":  c.Path(),
		})
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	// Default to 500 status code
	code := fiber.StatusInternalServerError

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}
