package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/zkpulse/zkpulse/internal/apperr"
	"github.com/zkpulse/zkpulse/internal/auth"
	"github.com/zkpulse/zkpulse/internal/config"
	"github.com/zkpulse/zkpulse/internal/metrics"
)

// CustomerIDKey is the fiber Locals key holding the authenticated customer
// identifier for the current request.
const CustomerIDKey = "customer_id"

// RequireToken validates the bearer token and stores its subject in Locals.
// A missing token is 401; a present but malformed, forged, or expired token
// is 403, as a distinct condition.
func RequireToken(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, ok := bearerToken(c)
		if !ok {
			metrics.PipelineRejections.WithLabelValues("missing_token").Inc()
			return apperr.Authentication(http.StatusUnauthorized, "missing bearer token")
		}

		sub, err := auth.Subject(tokenStr, []byte(cfg.JWTSecret))
		if err != nil {
			metrics.PipelineRejections.WithLabelValues("invalid_token").Inc()
			return apperr.Authentication(http.StatusForbidden, "invalid or expired token")
		}

		c.Locals(CustomerIDKey, sub)
		return c.Next()
	}
}

// OptionalToken behaves like RequireToken when a token is present but lets
// anonymous requests through. Used by the PIN registration route, where the
// first-ever registration for a customer legitimately arrives without a
// token. An invalid token is still rejected.
func OptionalToken(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}

		sub, err := auth.Subject(tokenStr, []byte(cfg.JWTSecret))
		if err != nil {
			metrics.PipelineRejections.WithLabelValues("invalid_token").Inc()
			return apperr.Authentication(http.StatusForbidden, "invalid or expired token")
		}

		c.Locals(CustomerIDKey, sub)
		return c.Next()
	}
}

// AuthenticatedCustomer returns the customer identifier attached by the token
// middleware, or "" when the request is anonymous.
func AuthenticatedCustomer(c *fiber.Ctx) string {
	id, _ := c.Locals(CustomerIDKey).(string)
	return id
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authz := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(authz[len("Bearer "):])
	if token == "" {
		return "", false
	}
	return token, true
}
