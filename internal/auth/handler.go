package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/zkpulse/zkpulse/internal/apperr"
	"github.com/zkpulse/zkpulse/internal/credential"
	"github.com/zkpulse/zkpulse/internal/metrics"
)

// Handler exposes the login endpoint.
type Handler struct {
	svc    *Service
	creds  *credential.Service
	logger *slog.Logger
}

// NewHandler builds the auth handler.
func NewHandler(svc *Service, creds *credential.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, creds: creds, logger: logger}
}

type loginRequest struct {
	CustomerID string `json:"customerId"`
	PINHash    string `json:"pinHash"`
}

// Login validates the PIN hash and returns a signed token. Unknown customer
// and wrong hash produce the same response body; only the log line differs.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid_request").Inc()
		return apperr.Validation("invalid request body")
	}
	if req.CustomerID == "" || req.PINHash == "" {
		metrics.LoginAttempts.WithLabelValues("invalid_request").Inc()
		return apperr.Validation("customerId and pinHash are required")
	}

	token, err := h.svc.Login(c.UserContext(), req.CustomerID, req.PINHash)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			if registered, rerr := h.creds.Registered(c.UserContext(), req.CustomerID); rerr == nil && !registered {
				h.logger.Info("login rejected", slog.String("customer_id", req.CustomerID), slog.String("cause", "unregistered"))
			} else {
				h.logger.Info("login rejected", slog.String("customer_id", req.CustomerID), slog.String("cause", "hash_mismatch"))
			}
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			return apperr.Authentication(http.StatusUnauthorized, "invalid credentials")
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return apperr.Internal(err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	h.logger.Info("login succeeded", slog.String("customer_id", req.CustomerID))
	return c.Status(http.StatusOK).JSON(token)
}
