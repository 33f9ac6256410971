package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zkpulse/zkpulse/internal/middleware"
	"github.com/zkpulse/zkpulse/internal/payment"
)

// RegisterPaymentRoutes wires payment endpoints behind the full token +
// ownership chain. Recording gains Redis-backed idempotent replay when a
// cache is configured; the ownership check runs before the replay so a
// cached response is only ever served to a request that passed the guard
// itself.
func RegisterPaymentRoutes(r fiber.Router, d Deps, h *payment.Handler) {
	tokenMW := middleware.RequireToken(d.Cfg)

	if d.Cache != nil {
		r.Post("/payments", tokenMW, middleware.RequireOwnerBody(),
			middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger),
			h.Record)
	} else {
		r.Post("/payments", tokenMW, middleware.RequireOwnerBody(), h.Record)
	}

	r.Get("/payments/:customerId", tokenMW, middleware.RequireOwnerParam("customerId"), h.List)
}
