package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit creates a rate limiter keyed by identity when available and
// by client IP otherwise. Used on the public auth endpoints.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if identity, ok := IdentityFromContext(c); ok {
				return fmt.Sprintf("%s:%d", identifier, identity.AccountID)
			}
			return fmt.Sprintf("%s:%s", identifier, c.IP())
		},
	})
}
