package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/zkpulse/zkpulse/internal/apperr"
	"github.com/zkpulse/zkpulse/internal/auth"
	"github.com/zkpulse/zkpulse/internal/config"
)

func newTokenTestApp(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler(nil)})
	app.Get("/protected", RequireToken(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"customerId": AuthenticatedCustomer(c)})
	})
	return app
}

func TestRequireTokenMissing(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	app := newTokenTestApp(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireTokenMalformed(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	app := newTokenTestApp(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireTokenExpired(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	app := newTokenTestApp(t, cfg)

	expired, err := auth.Sign("alice", []byte(cfg.JWTSecret), -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireTokenWrongSecret(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	app := newTokenTestApp(t, cfg)

	forged, err := auth.Sign("alice", []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+forged)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireTokenValid(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	app := newTokenTestApp(t, cfg)

	signed, err := auth.Sign("alice", []byte(cfg.JWTSecret), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalTokenAnonymousPassesThrough(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler(nil)})
	app.Get("/maybe", OptionalToken(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"customerId": AuthenticatedCustomer(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalTokenStillRejectsInvalid(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler(nil)})
	app.Get("/maybe", OptionalToken(cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
