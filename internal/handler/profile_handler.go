package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

// ProfileHandler wires endpoints for the authenticated account itself.
type ProfileHandler struct {
	accounts service.AccountService
	auth     service.AuthService
	logger   zerolog.Logger
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(accounts service.AccountService, auth service.AuthService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		accounts: accounts,
		auth:     auth,
		logger:   logger.With().Str("component", "profile_handler").Logger(),
	}
}

// Register attaches profile routes to the router group.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Patch("", h.update)
	router.Post("/password", h.changePassword)
	router.Post("/mode", h.switchMode)
}

func (h *ProfileHandler) get(c *fiber.Ctx) error {
	identity := identityFromContext(c)

	profile, err := h.accounts.Profile(c.Context(), identity.AccountID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch profile")
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *ProfileHandler) update(c *fiber.Ctx) error {
	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	profile, err := h.accounts.UpdateProfile(c.Context(), identity.AccountID, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update profile")
	}

	return utils.SendSuccess(c, "profile updated", profile)
}

func (h *ProfileHandler) changePassword(c *fiber.Ctx) error {
	var payload dto.ChangePasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	if err := h.auth.ChangePassword(c.Context(), identity.AccountID, payload); err != nil {
		return sendServiceError(c, h.logger, err, "failed to change password")
	}

	return utils.SendSuccess(c, "password changed", nil)
}

func (h *ProfileHandler) switchMode(c *fiber.Ctx) error {
	var payload dto.SwitchModeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	profile, err := h.accounts.SwitchMode(c.Context(), identity.AccountID, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to switch mode")
	}

	return utils.SendSuccess(c, "mode switched", profile)
}
