package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tsalign/tsalign/internal/models"
)

// Align handles series alignment requests
// POST /v1/series/align
func (h *Handler) Align(c *fiber.Ctx) error {
	var req models.AlignRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c, err)
	}

	resp, err := h.alignService.Align(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
