package payment

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/zkpulse/zkpulse/internal/apperr"
	"github.com/zkpulse/zkpulse/internal/middleware"
)

// Handler exposes payment recording and query endpoints. Both sit behind the
// token and ownership middleware.
type Handler struct {
	svc *Service
}

// NewHandler builds the payment handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type recordRequest struct {
	CustomerID string `json:"customerId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	Reference  string `json:"reference"`
}

// Record stores a verified payment for the authenticated customer.
func (h *Handler) Record(c *fiber.Ctx) error {
	var req recordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.Amount <= 0 {
		return apperr.Validation("amount must be positive")
	}

	p, err := h.svc.Record(c.UserContext(), RecordInput{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Reference:  req.Reference,
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return c.Status(http.StatusCreated).JSON(p)
}

// List returns the authenticated customer's payments.
func (h *Handler) List(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	payments, err := h.svc.ListByCustomer(c.UserContext(), customerID)
	if err != nil {
		return apperr.Internal(err)
	}
	if payments == nil {
		payments = []Payment{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"customerId": middleware.AuthenticatedCustomer(c),
		"payments":   payments,
	})
}
