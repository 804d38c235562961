package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/handler"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/repository"
	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Campus{},
		&models.CampusRequest{},
		&models.Opportunity{},
		&models.Application{},
		&models.Report{},
		&models.ActionLog{},
	))
	return db
}

func decodeResponse(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := setupHandlerDB(t)
	validate := validator.New(validator.WithRequiredStructEnabled())
	accounts := repository.NewAccountRepository(db)
	authService := service.NewAuthService(accounts, validate, "test-secret", time.Hour, zerolog.Nop())

	app := fiber.New()
	handler.NewAuthHandler(authService, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))
	return app, db
}

func TestAuthHandlerRegisterAndAdmissionGate(t *testing.T) {
	app, db := newAuthApp(t)

	register := dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.edu",
		Password: "super-secret",
		Role:     models.RoleStudent,
		Campus:   "State University",
	}

	resp := postJSON(t, app, "/api/v1/auth/register", register)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Success bool                `json:"success"`
		Data    dto.AccountResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.True(t, created.Success)
	require.Equal(t, models.AccountStatusPending, created.Data.Status)
	require.False(t, created.Data.Verified)

	// Pending accounts cannot log in yet.
	resp = postJSON(t, app, "/api/v1/auth/login", dto.LoginRequest{Email: "jane@example.edu", Password: "super-secret"})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	require.NoError(t, db.Model(&models.Account{}).
		Where("email = ?", "jane@example.edu").
		Updates(map[string]interface{}{"status": models.AccountStatusActive, "verified": true}).Error)

	resp = postJSON(t, app, "/api/v1/auth/login", dto.LoginRequest{Email: "jane@example.edu", Password: "super-secret"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var session struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	decodeResponse(t, resp, &session)
	require.True(t, session.Success)
	require.NotEmpty(t, session.Data.Token)
	require.Equal(t, "jane@example.edu", session.Data.Account.Email)
}

func TestAuthHandlerDuplicateEmailConflicts(t *testing.T) {
	app, _ := newAuthApp(t)

	register := dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.edu",
		Password: "super-secret",
		Role:     models.RoleStudent,
		Campus:   "State University",
	}

	resp := postJSON(t, app, "/api/v1/auth/register", register)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/auth/register", register)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAuthHandlerValidationErrors(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := postJSON(t, app, "/api/v1/auth/register", dto.RegisterRequest{
		Name:     "J",
		Email:    "not-an-email",
		Password: "short",
		Role:     "superuser",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var failure struct {
		Success bool               `json:"success"`
		Errors  []utils.FieldError `json:"errors"`
	}
	decodeResponse(t, resp, &failure)
	require.False(t, failure.Success)
	require.NotEmpty(t, failure.Errors)
}
