package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tsalign/tsalign/internal/models"
)

// Merge handles series merge requests
// POST /v1/series/merge
func (h *Handler) Merge(c *fiber.Ctx) error {
	var req models.MergeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c, err)
	}

	resp, err := h.alignService.Merge(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
