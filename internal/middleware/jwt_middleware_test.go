package middleware_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"cookbook/internal/logger"
	"cookbook/internal/middleware"
	"cookbook/internal/services"
	"cookbook/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRequired(t *testing.T) {
	store, db := testutil.NewStore(t)
	authService := services.NewAuthService(store.Users, "secret", time.Hour, nil)
	user := testutil.CreateUser(t, db, "alice")

	_, token, err := authService.LoginUser(context.Background(), user.Email, "password123")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", middleware.AuthRequired(authService, logger.Nop()), func(c *fiber.Ctx) error {
		return c.SendString(middleware.UserID(c))
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", fiber.StatusUnauthorized},
		{"valid token", "Bearer " + token, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, user.ID, string(body))
			}
		})
	}
}

func TestAuthRequired_DeletedUser(t *testing.T) {
	store, db := testutil.NewStore(t)
	authService := services.NewAuthService(store.Users, "secret", time.Hour, nil)
	user := testutil.CreateUser(t, db, "bob")
	_, token, err := authService.LoginUser(context.Background(), user.Email, "password123")
	require.NoError(t, err)

	require.NoError(t, db.Exec("DELETE FROM users WHERE id = ?", user.ID).Error)

	app := fiber.New()
	app.Get("/me", middleware.AuthRequired(authService, logger.Nop()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
