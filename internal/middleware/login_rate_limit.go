package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimit throttles login attempts per customer identifier (falling
// back to client IP) using Redis. Without Redis it returns nil so callers
// skip it entirely, and cache errors fail open: throttling is protection,
// not a correctness requirement.
func LoginRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if cache == nil {
		return nil
	}
	if maxPerMin <= 0 {
		maxPerMin = 5
	}
	return func(c *fiber.Ctx) error {
		var req struct {
			CustomerID string `json:"customerId"`
		}
		_ = c.BodyParser(&req)
		subject := strings.TrimSpace(req.CustomerID)
		if subject == "" {
			subject = c.IP()
		}
		key := "rl:login:" + subject
		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err != nil {
			return c.Next()
		}
		if cnt == 1 {
			cache.Expire(c.UserContext(), key, time.Minute)
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "too many login attempts, try again later")
		}
		return c.Next()
	}
}
