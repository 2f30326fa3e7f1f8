package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tsalign/tsalign/internal/models"
)

// DateRange handles timestamp sequence generation requests
// POST /v1/daterange
func (h *Handler) DateRange(c *fiber.Ctx) error {
	var req models.DateRangeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c, err)
	}

	resp, err := h.alignService.DateRange(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DateRangeGet handles timestamp sequence generation via query parameters
// GET /v1/daterange?from=xxx&to=xxx&num_points=xxx&resolution=xxx
func (h *Handler) DateRangeGet(c *fiber.Ctx) error {
	numPoints := 0
	if s := c.Query("num_points"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			h.logger.Warn("Failed to parse num_points parameter, using default 0",
				"num_points", s,
				"error", err)
		} else {
			numPoints = n
		}
	}

	req := models.DateRangeRequest{
		From:         c.Query("from"),
		To:           c.Query("to"),
		NumPoints:    numPoints,
		Resolution:   c.Query("resolution"),
		ExcludeStart: c.Query("exclude_start") == "true",
		Layout:       c.Query("layout"),
		Timezone:     c.Query("timezone"),
	}

	resp, err := h.alignService.DateRange(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
