package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tsalign/tsalign/internal/models"
)

// Resolution handles resolution detection requests
// POST /v1/series/resolution
func (h *Handler) Resolution(c *fiber.Ctx) error {
	var req models.ResolutionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c, err)
	}

	resp, err := h.alignService.Resolution(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
