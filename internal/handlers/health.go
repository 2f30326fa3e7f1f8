package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tsalign/tsalign/internal/models"
)

// Version is set at build time via ldflags
var Version = "dev"

// Health handles health check requests
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "healthy",
		Service:   "tsalign",
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// NotFound handles 404 errors
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Route not found",
			Path:    c.Path(),
		},
	})
}
