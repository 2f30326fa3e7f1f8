// Package handlers contains the HTTP handlers for the alignment service.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tsalign/tsalign/internal/config"
	"github.com/tsalign/tsalign/internal/logging"
	"github.com/tsalign/tsalign/internal/models"
	"github.com/tsalign/tsalign/internal/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger       *logging.Logger
	alignService *services.AlignService
}

// New creates a new handler instance
func New(logger *logging.Logger, cfg config.AlignConfig) *Handler {
	return &Handler{
		logger:       logger,
		alignService: services.NewAlignService(logger, cfg),
	}
}

// invalidJSON renders the response for an unparseable request body
func invalidJSON(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_JSON",
			Message: "Failed to parse JSON body",
			Details: map[string]interface{}{"error": err.Error()},
		},
	})
}
