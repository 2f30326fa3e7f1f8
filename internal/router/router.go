package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tsalign/tsalign/internal/config"
	"github.com/tsalign/tsalign/internal/handlers"
	"github.com/tsalign/tsalign/internal/logging"
	"github.com/tsalign/tsalign/internal/middleware"
	"github.com/tsalign/tsalign/internal/utils"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, cfg config.Config) *handlers.Handler {
	h := handlers.New(logger, cfg.Align)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Series Routes
	v1.Post("/series/align", h.Align)
	v1.Post("/series/merge", h.Merge)
	v1.Post("/series/resolution", h.Resolution)
	v1.Post("/series/export", h.Export)

	// Date Range Routes
	v1.Get("/daterange", h.DateRangeGet)
	v1.Post("/daterange", h.DateRange)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "TSAlign Service",
		DisableStartupMessage: true,
		ReadTimeout:           utils.DefaultRequestTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, cfg)

	return app
}
