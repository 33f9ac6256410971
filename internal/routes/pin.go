package routes

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/zkpulse/zkpulse/internal/apperr"
	"github.com/zkpulse/zkpulse/internal/config"
	"github.com/zkpulse/zkpulse/internal/credential"
	"github.com/zkpulse/zkpulse/internal/middleware"
)

// RegisterPINRoutes wires PIN registration and status endpoints.
//
// Registration is the one place the usual token chain bends: the very first
// registration for a customer has no credential to log in against, so it is
// accepted anonymously. Once a record exists, overwriting it requires a valid
// token whose subject is that customer. A token presented during bootstrap is
// still verified and ownership-checked.
func RegisterPINRoutes(r fiber.Router, cfg config.Config, creds *credential.Service, logger *slog.Logger) {
	r.Post("/register-pin", middleware.OptionalToken(cfg), func(c *fiber.Ctx) error {
		var req struct {
			CustomerID string `json:"customerId"`
			PINHash    string `json:"pinHash"`
			Salt       string `json:"salt"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperr.Validation("invalid request body")
		}
		if req.CustomerID == "" || req.PINHash == "" || req.Salt == "" {
			return apperr.Validation("customerId, pinHash and salt are required")
		}

		// Registered and Register are two store calls: concurrent anonymous
		// first registrations for one customer can both pass this gate, and
		// the store's last-writer-wins semantics pick the survivor.
		registered, err := creds.Registered(c.UserContext(), req.CustomerID)
		if err != nil {
			return apperr.Internal(err)
		}

		authed := middleware.AuthenticatedCustomer(c)
		switch {
		case registered && authed == "":
			return apperr.Authentication(http.StatusUnauthorized, "missing bearer token")
		case authed != "" && authed != req.CustomerID:
			return apperr.Authorization("customer mismatch")
		}

		if err := creds.Register(c.UserContext(), req.CustomerID, req.PINHash, req.Salt); err != nil {
			return apperr.Internal(err)
		}

		logger.Info("pin registered",
			slog.String("customer_id", req.CustomerID),
			slog.Bool("overwrite", registered),
		)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "pin_registered",
			"customerId": req.CustomerID,
		})
	})

	r.Get("/check-pin/:customerId",
		middleware.RequireToken(cfg),
		middleware.RequireOwnerParam("customerId"),
		func(c *fiber.Ctx) error {
			customerID := c.Params("customerId")
			registered, err := creds.Registered(c.UserContext(), customerID)
			if err != nil {
				return apperr.Internal(err)
			}
			return c.Status(http.StatusOK).JSON(fiber.Map{
				"customerId": customerID,
				"registered": registered,
			})
		})
}
