package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tsalign/tsalign/internal/models"
)

// Export handles series export requests. When compression is requested the
// body is snappy-encoded and flagged via the X-Compression header.
// POST /v1/series/export
func (h *Handler) Export(c *fiber.Ctx) error {
	var req models.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c, err)
	}

	body, compressed, err := h.alignService.Export(c.UserContext(), &req)
	if err != nil {
		return err
	}

	if compressed {
		c.Set("X-Compression", "snappy")
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	return c.Send(body)
}
