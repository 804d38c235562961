package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/models"
)

type stubResolver struct {
	accounts map[uint]models.Account
}

func (s *stubResolver) GetByID(_ context.Context, id uint) (models.Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, gorm.ErrRecordNotFound
	}
	return account, nil
}

const testSecret = "test-secret"

func signToken(t *testing.T, accountID uint, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": float64(accountID),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthApp(resolver *stubResolver) *fiber.App {
	app := fiber.New()
	app.Use(Authenticate(testSecret, resolver))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		return c.JSON(identity)
	})
	return app
}

func TestAuthenticateResolvesIdentityFromStore(t *testing.T) {
	resolver := &stubResolver{accounts: map[uint]models.Account{
		42: {ID: 42, Role: models.RoleCampusAuthority, Campus: "State University", Status: models.AccountStatusActive},
	}}
	app := newAuthApp(resolver)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 42, testSecret))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthenticateRejectsMissingOrBadTokens(t *testing.T) {
	app := newAuthApp(&stubResolver{accounts: map[uint]models.Account{}})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 42, "wrong-secret"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateRejectsDeletedAccount(t *testing.T) {
	app := newAuthApp(&stubResolver{accounts: map[uint]models.Account{}})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 42, testSecret))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateBlocksSuspendedAccount(t *testing.T) {
	resolver := &stubResolver{accounts: map[uint]models.Account{
		42: {ID: 42, Role: models.RoleStudent, Campus: "State University", Status: models.AccountStatusSuspended},
	}}
	app := newAuthApp(resolver)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 42, testSecret))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
