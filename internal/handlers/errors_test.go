package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"cookbook/internal/apperrors"
	"cookbook/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_StatusByKind(t *testing.T) {
	storeErr := errors.New(`pq: duplicate key value violates unique constraint "idx_ingredients_name"`)
	tests := []struct {
		name      string
		err       error
		status    int
		wantError string
	}{
		{"not found", apperrors.NotFound("recipe"), fiber.StatusNotFound, "recipe not found"},
		{"permission", apperrors.PermissionDenied("update recipe"), fiber.StatusForbidden, "permission denied to update recipe"},
		{"validation", apperrors.Validation(map[string]string{"title": "required"}), fiber.StatusBadRequest, "validation failed"},
		{"conflict hides store detail", apperrors.Conflict("ingredient", "name", storeErr), fiber.StatusConflict, "ingredient with this name already exists"},
		{"referential", apperrors.Referential("category is still used by recipes", nil), fiber.StatusConflict, "referential conflict: category is still used by recipes"},
		{"transient", apperrors.Transient("", storeErr), fiber.StatusServiceUnavailable, "transient failure, retry the operation"},
		{"unexpected", storeErr, fiber.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, logger.Nop(), tt.err) })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["message"])
			if tt.wantError == "" {
				assert.NotContains(t, body, "error")
			} else {
				assert.Equal(t, tt.wantError, body["error"])
			}
			if tt.status == fiber.StatusServiceUnavailable {
				assert.Equal(t, "1", resp.Header.Get(fiber.HeaderRetryAfter))
			}
		})
	}
}

func TestErrorHandler_FiberError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.Nop())})
	app.Get("/", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}
