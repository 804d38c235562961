package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

// AdminCampusHandler wires campus provisioning and campus request
// review endpoints.
type AdminCampusHandler struct {
	campuses service.CampusService
	logger   zerolog.Logger
}

// NewAdminCampusHandler constructs the handler.
func NewAdminCampusHandler(campuses service.CampusService, logger zerolog.Logger) *AdminCampusHandler {
	return &AdminCampusHandler{
		campuses: campuses,
		logger:   logger.With().Str("component", "admin_campus_handler").Logger(),
	}
}

// Register attaches campus administration routes to the router group.
func (h *AdminCampusHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.remove)
}

// RegisterRequests attaches campus request review routes.
func (h *AdminCampusHandler) RegisterRequests(router fiber.Router) {
	router.Get("", h.listRequests)
	router.Post("/:id/approve", h.approveRequest)
	router.Post("/:id/reject", h.rejectRequest)
}

func (h *AdminCampusHandler) list(c *fiber.Ctx) error {
	campuses, err := h.campuses.List(c.Context(), c.Query("status"))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list campuses")
	}

	return utils.SendSuccess(c, "campuses retrieved", campuses)
}

func (h *AdminCampusHandler) create(c *fiber.Ctx) error {
	var payload dto.CampusCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	campus, err := h.campuses.Create(c.Context(), identity, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create campus")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "campus created", campus)
}

func (h *AdminCampusHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid campus id")
	}

	campus, err := h.campuses.Get(c.Context(), id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch campus")
	}

	return utils.SendSuccess(c, "campus retrieved", campus)
}

func (h *AdminCampusHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid campus id")
	}

	var payload dto.CampusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	campus, err := h.campuses.Update(c.Context(), identity, id, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update campus")
	}

	return utils.SendSuccess(c, "campus updated", campus)
}

func (h *AdminCampusHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid campus id")
	}

	identity := identityFromContext(c)
	if err := h.campuses.Delete(c.Context(), identity, id); err != nil {
		return sendServiceError(c, h.logger, err, "failed to delete campus")
	}

	return utils.SendSuccess(c, "campus deleted", nil)
}

func (h *AdminCampusHandler) listRequests(c *fiber.Ctx) error {
	requests, err := h.campuses.ListRequests(c.Context(), c.Query("status"))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list campus requests")
	}

	return utils.SendSuccess(c, "campus requests retrieved", requests)
}

func (h *AdminCampusHandler) approveRequest(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request id")
	}

	var payload dto.CampusRequestReview
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	identity := identityFromContext(c)
	campus, err := h.campuses.ApproveRequest(c.Context(), identity, id, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to approve campus request")
	}

	return utils.SendSuccess(c, "campus request approved", campus)
}

func (h *AdminCampusHandler) rejectRequest(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request id")
	}

	var payload dto.CampusRequestReview
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	identity := identityFromContext(c)
	request, err := h.campuses.RejectRequest(c.Context(), identity, id, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to reject campus request")
	}

	return utils.SendSuccess(c, "campus request rejected", request)
}
