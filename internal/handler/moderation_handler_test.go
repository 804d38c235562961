package handler_test

import (
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/handler"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/repository"
	"github.com/campusgig/campusgig-api/internal/service"
)

func newModerationApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := setupHandlerDB(t)
	validate := validator.New(validator.WithRequiredStructEnabled())
	audit := service.NewAuditService(repository.NewActionLogRepository(db), zerolog.Nop())
	moderation := service.NewModerationService(
		repository.NewReportRepository(db),
		repository.NewAccountRepository(db),
		validate,
		audit,
		zerolog.Nop(),
	)

	app := fiber.New()
	admin := app.Group("/api/v1/admin/moderation", func(c *fiber.Ctx) error {
		c.Locals("identity", service.Identity{AccountID: 1, Role: models.RoleAdmin})
		return c.Next()
	})
	handler.NewModerationHandler(moderation, audit, zerolog.New(io.Discard)).RegisterAdmin(admin)
	return app, db
}

func seedModerationTarget(t *testing.T, db *gorm.DB, name, email, role, status string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Status:       status,
		Campus:       "State University",
	}).Error)
}

func TestModerationHandlerBanOutcomes(t *testing.T) {
	app, db := newModerationApp(t)

	seedModerationTarget(t, db, "Bad Actor", "bad@example.edu", models.RoleStudent, models.AccountStatusActive)
	seedModerationTarget(t, db, "Root Admin", "root@example.edu", models.RoleAdmin, models.AccountStatusActive)
	seedModerationTarget(t, db, "Sam Smith", "sam.one@example.edu", models.RoleStudent, models.AccountStatusActive)
	seedModerationTarget(t, db, "Sam Smith", "sam.two@example.edu", models.RoleStudent, models.AccountStatusActive)

	resp := postJSON(t, app, "/api/v1/admin/moderation/ban", dto.BanRequest{Target: "bad@example.edu", Reason: "spam"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Banning the same account again is a conflict, not a no-op.
	resp = postJSON(t, app, "/api/v1/admin/moderation/ban", dto.BanRequest{Target: "bad@example.edu", Reason: "spam"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/admin/moderation/ban", dto.BanRequest{Target: "root@example.edu", Reason: "test"})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/admin/moderation/ban", dto.BanRequest{Target: "nobody@example.edu", Reason: "test"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/admin/moderation/ban", dto.BanRequest{Target: "Sam Smith", Reason: "test"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestModerationHandlerWarnAppendsActionLog(t *testing.T) {
	app, db := newModerationApp(t)
	seedModerationTarget(t, db, "Jane Doe", "jane@example.edu", models.RoleStudent, models.AccountStatusActive)

	resp := postJSON(t, app, "/api/v1/admin/moderation/warn", dto.WarnRequest{Target: "jane@example.edu", Message: "tone it down"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.ActionLog{}).Where("type = ?", models.ActionTypeWarning).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
