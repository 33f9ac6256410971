package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/zkpulse/zkpulse/internal/auth"
	"github.com/zkpulse/zkpulse/internal/config"
	"github.com/zkpulse/zkpulse/internal/credential"
	"github.com/zkpulse/zkpulse/internal/middleware"
	"github.com/zkpulse/zkpulse/internal/payment"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a database
// the stores fall back to in-memory implementations; without Redis the rate
// limit and idempotency middlewares are skipped.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	RegisterHealthRoutes(app, d)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	var credStore credential.Store
	if d.DB != nil {
		credStore = credential.NewPostgresStore(d.DB)
	} else {
		credStore = credential.NewMemoryStore()
	}
	credSvc := credential.NewService(credStore)

	var paymentRepo payment.Repository
	if d.DB != nil {
		paymentRepo = payment.NewPostgresRepository(d.DB)
	} else {
		paymentRepo = payment.NewMemoryRepository()
	}
	paymentSvc := payment.NewService(paymentRepo)

	authSvc := auth.NewService(d.Cfg, credSvc)
	authHandler := auth.NewHandler(authSvc, credSvc, d.Logger)
	paymentHandler := payment.NewHandler(paymentSvc)

	api := app.Group("/api")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRateLimit)
	RegisterAuthRoutes(api, authHandler, rateLimiter)
	RegisterPINRoutes(api, d.Cfg, credSvc, d.Logger)
	RegisterPaymentRoutes(api, d, paymentHandler)

	return nil
}
