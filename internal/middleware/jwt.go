package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

// AccountResolver loads the current account record for an authenticated
// subject.
type AccountResolver interface {
	GetByID(ctx context.Context, id uint) (models.Account, error)
}

// Authenticate returns a middleware that validates JWT bearer tokens and
// re-resolves the account from the store. Tokens carry only the account
// id, so role and campus are always current; a demotion or suspension
// takes effect on the next request, not at token expiry.
func Authenticate(secret string, accounts AccountResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		accountID, ok := subjectFromClaims(claims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token subject")
		}

		account, err := accounts.GetByID(c.Context(), accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendError(c, fiber.StatusUnauthorized, "account no longer exists")
			}
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve account")
		}

		if account.Status == models.AccountStatusSuspended {
			return utils.SendError(c, fiber.StatusForbidden, "account suspended")
		}

		c.Locals("identity", service.Identity{
			AccountID: account.ID,
			Role:      account.Role,
			Campus:    account.Campus,
			Mode:      account.ActiveMode,
		})

		return c.Next()
	}
}

func subjectFromClaims(claims jwt.MapClaims) (uint, bool) {
	value, ok := claims["sub"]
	if !ok {
		return 0, false
	}

	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}

// IdentityFromContext returns the identity attached by Authenticate.
func IdentityFromContext(c *fiber.Ctx) (service.Identity, bool) {
	if v := c.Locals("identity"); v != nil {
		if identity, ok := v.(service.Identity); ok {
			return identity, true
		}
	}
	return service.Identity{}, false
}
