package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsalign/tsalign/internal/models"
	"github.com/tsalign/tsalign/internal/services"
)

func errorApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(testLogger()),
	})
	app.Get("/boom", handler)
	return app
}

func TestErrorHandler_ServiceError(t *testing.T) {
	app := errorApp(func(c *fiber.Ctx) error {
		return services.NewServiceError(services.CodeDuplicateKey, "key temp already exists")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var out models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, services.CodeDuplicateKey, out.Error.Code)
	assert.Equal(t, "key temp already exists", out.Error.Message)
}

func TestErrorHandler_PayloadTooLarge(t *testing.T) {
	app := errorApp(func(c *fiber.Ctx) error {
		return services.NewServiceError(services.CodePayloadTooLarge, "series exceeds point limit")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestErrorHandler_FiberError(t *testing.T) {
	app := errorApp(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "no such route")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var out models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ERROR", out.Error.Code)
}

func TestErrorHandler_UnknownError(t *testing.T) {
	app := errorApp(func(c *fiber.Ctx) error {
		return assert.AnError
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var out models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, services.CodeInternal, out.Error.Code)
}
