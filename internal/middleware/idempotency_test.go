package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/zkpulse/zkpulse/internal/logging"
)

const testCustomerHeader = "X-Test-Customer"

// setupIdempotencyApp mimics the production chain: a middleware attaches the
// authenticated customer to Locals before Idempotency runs.
func setupIdempotencyApp(t *testing.T) *fiber.App {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	calls := 0
	app := fiber.New()
	app.Post("/payments",
		func(c *fiber.Ctx) error {
			if subject := c.Get(testCustomerHeader); subject != "" {
				c.Locals(CustomerIDKey, subject)
			}
			return c.Next()
		},
		Idempotency(cache, time.Minute, logging.Discard()),
		func(c *fiber.Ctx) error {
			calls++
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{
				"call":       calls,
				"customerId": AuthenticatedCustomer(c),
			})
		})
	return app
}

func idempotentPost(t *testing.T, app *fiber.App, customer, key string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/payments", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if customer != "" {
		req.Header.Set(testCustomerHeader, customer)
	}
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode, string(payload)
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	app := setupIdempotencyApp(t)

	status, _ := idempotentPost(t, app, "alice", "")
	require.Equal(t, fiber.StatusBadRequest, status)
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	app := setupIdempotencyApp(t)

	status, payload := idempotentPost(t, app, "alice", "pay-123")
	require.Equal(t, fiber.StatusCreated, status)

	// Second request with the same key replays the stored response without
	// invoking the handler again.
	status, replayed := idempotentPost(t, app, "alice", "pay-123")
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, payload, replayed)
}

func TestIdempotencyDistinctKeysHitHandler(t *testing.T) {
	app := setupIdempotencyApp(t)

	_, first := idempotentPost(t, app, "alice", "pay-a")
	_, second := idempotentPost(t, app, "alice", "pay-b")
	require.NotEqual(t, first, second)
}

// One customer's key must never replay another customer's stored response.
func TestIdempotencyKeysScopedByCustomer(t *testing.T) {
	app := setupIdempotencyApp(t)

	status, alicePayload := idempotentPost(t, app, "alice", "shared-key")
	require.Equal(t, fiber.StatusCreated, status)
	require.Contains(t, alicePayload, `"customerId":"alice"`)

	status, bobPayload := idempotentPost(t, app, "bob", "shared-key")
	require.Equal(t, fiber.StatusCreated, status)
	require.Contains(t, bobPayload, `"customerId":"bob"`)
	require.NotEqual(t, alicePayload, bobPayload)

	// Each customer still replays their own response.
	_, aliceReplay := idempotentPost(t, app, "alice", "shared-key")
	require.Equal(t, alicePayload, aliceReplay)
}
