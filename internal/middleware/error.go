package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tsalign/tsalign/internal/logging"
	"github.com/tsalign/tsalign/internal/models"
	"github.com/tsalign/tsalign/internal/services"
)

// statusForCode maps service error codes onto HTTP statuses. Codes not
// listed here are treated as client errors.
func statusForCode(code string) int {
	switch code {
	case services.CodePayloadTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case services.CodeInternal:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// ErrorHandler returns a custom error handler middleware. Service errors
// keep their code and message on the wire; fiber errors pass their status
// through; anything else becomes a 500.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		detail := models.ErrorDetail{
			Code:    services.CodeInternal,
			Message: "Internal Server Error",
		}

		var svcErr *services.ServiceError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &svcErr):
			status = statusForCode(svcErr.Code)
			detail.Code = svcErr.Code
			detail.Message = svcErr.Message
			detail.Details = svcErr.Details
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			detail.Code = "ERROR"
			detail.Message = fiberErr.Message
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("Request error",
				"path", c.Path(),
				"method", c.Method(),
				"status", status,
				"error", err)
		} else {
			logger.Warn("Request rejected",
				"path", c.Path(),
				"method", c.Method(),
				"status", status,
				"code", detail.Code)
		}

		return c.Status(status).JSON(models.ErrorResponse{Error: detail})
	}
}
