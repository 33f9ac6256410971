package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/zkpulse/zkpulse/internal/apperr"
	"github.com/zkpulse/zkpulse/internal/auth"
	"github.com/zkpulse/zkpulse/internal/config"
)

func newOwnerTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}

	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler(nil)})
	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }
	app.Get("/data/:customerId", RequireToken(cfg), RequireOwnerParam("customerId"), ok)
	app.Post("/data", RequireToken(cfg), RequireOwnerBody(), ok)

	token, err := auth.Sign("alice", []byte(cfg.JWTSecret), time.Hour)
	require.NoError(t, err)
	return app, token
}

func TestOwnerParamMatch(t *testing.T) {
	app, token := newOwnerTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/data/alice", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// The guard rejects a mismatched target whether or not that customer exists.
func TestOwnerParamMismatch(t *testing.T) {
	app, token := newOwnerTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/data/bob", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOwnerBodyMatch(t *testing.T) {
	app, token := newOwnerTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/data", strings.NewReader(`{"customerId":"alice"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOwnerBodyMismatch(t *testing.T) {
	app, token := newOwnerTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/data", strings.NewReader(`{"customerId":"bob"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOwnerBodyMissingCustomerID(t *testing.T) {
	app, token := newOwnerTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/data", strings.NewReader(`{}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
