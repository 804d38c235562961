package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

// AuthHandler wires public registration and login endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches auth routes to the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	account, err := h.service.Register(c.Context(), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to register account")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "registration submitted, awaiting verification", account)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.Login(c.Context(), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to login")
	}

	return utils.SendSuccess(c, "login successful", session)
}
