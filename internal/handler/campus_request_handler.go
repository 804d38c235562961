package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

// CampusRequestHandler wires the public campus request intake.
type CampusRequestHandler struct {
	campuses service.CampusService
	logger   zerolog.Logger
}

// NewCampusRequestHandler constructs the handler.
func NewCampusRequestHandler(campuses service.CampusService, logger zerolog.Logger) *CampusRequestHandler {
	return &CampusRequestHandler{
		campuses: campuses,
		logger:   logger.With().Str("component", "campus_request_handler").Logger(),
	}
}

// Register attaches the intake route to the router group.
func (h *CampusRequestHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *CampusRequestHandler) submit(c *fiber.Ctx) error {
	var payload dto.CampusRequestSubmission
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	request, err := h.campuses.SubmitRequest(c.Context(), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to submit campus request")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "campus request submitted", request)
}
