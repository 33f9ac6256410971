package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zkpulse/zkpulse/internal/apperr"
	"github.com/zkpulse/zkpulse/internal/metrics"
)

// The ownership guards run after RequireToken and reject any request whose
// target customer differs from the token subject, whether or not the target
// exists. They are applied to every customer-scoped route, list endpoints
// included.

// RequireOwnerParam checks the path parameter against the authenticated
// customer.
func RequireOwnerParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := c.Params(param)
		if target == "" {
			return apperr.Validation("missing " + param + " path parameter")
		}
		return checkOwner(c, target)
	}
}

// RequireOwnerBody checks the customerId field of the JSON body against the
// authenticated customer.
func RequireOwnerBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			CustomerID string `json:"customerId"`
		}
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("invalid request body")
		}
		if body.CustomerID == "" {
			return apperr.Validation("customerId is required")
		}
		return checkOwner(c, body.CustomerID)
	}
}

func checkOwner(c *fiber.Ctx, target string) error {
	authed := AuthenticatedCustomer(c)
	if authed == "" || authed != target {
		metrics.PipelineRejections.WithLabelValues("ownership_mismatch").Inc()
		return apperr.Authorization("customer mismatch")
	}
	return c.Next()
}
