package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/middleware"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

// OpportunityHandler wires the opportunity pipeline. Listing and
// fetching are open to every authenticated role in the caller's
// campus, write operations are attached to authority groups by the
// router.
type OpportunityHandler struct {
	opportunities service.OpportunityService
	applications  service.ApplicationService
	logger        zerolog.Logger
}

// NewOpportunityHandler constructs the handler.
func NewOpportunityHandler(opportunities service.OpportunityService, applications service.ApplicationService, logger zerolog.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		opportunities: opportunities,
		applications:  applications,
		logger:        logger.With().Str("component", "opportunity_handler").Logger(),
	}
}

// Register attaches read routes plus the student apply route. The apply
// route carries its own role gate; the service additionally requires an
// active freelancer mode.
func (h *OpportunityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("/:id/apply", middleware.RequireRole(models.RoleStudent), h.apply)
}

// RegisterManage attaches write routes for campus authorities.
func (h *OpportunityHandler) RegisterManage(router fiber.Router) {
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Post("/:id/close", h.close)
	router.Delete("/:id", h.remove)
	router.Get("/:id/applications", h.listApplicants)
}

// RegisterApplicationReview attaches the pipeline transition route.
// Mounted apart from the opportunity tree so the path never collides
// with the ":id" parameter routes.
func (h *OpportunityHandler) RegisterApplicationReview(router fiber.Router) {
	router.Patch("/:id", h.transition)
}

// RegisterOwnApplications attaches the student's own application list.
func (h *OpportunityHandler) RegisterOwnApplications(router fiber.Router) {
	router.Get("", h.listOwn)
}

func (h *OpportunityHandler) list(c *fiber.Ctx) error {
	page, pageSize, err := paging(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination")
	}

	identity := identityFromContext(c)
	opportunities, err := h.opportunities.List(c.Context(), identity, dto.OpportunityListRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list opportunities")
	}

	return utils.SendSuccess(c, "opportunities retrieved", opportunities)
}

func (h *OpportunityHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid opportunity id")
	}

	identity := identityFromContext(c)
	opportunity, err := h.opportunities.Get(c.Context(), identity, id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch opportunity")
	}

	return utils.SendSuccess(c, "opportunity retrieved", opportunity)
}

func (h *OpportunityHandler) create(c *fiber.Ctx) error {
	var payload dto.OpportunityCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	opportunity, err := h.opportunities.Post(c.Context(), identity, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to post opportunity")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "opportunity posted", opportunity)
}

func (h *OpportunityHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid opportunity id")
	}

	var payload dto.OpportunityUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	opportunity, err := h.opportunities.Update(c.Context(), identity, id, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update opportunity")
	}

	return utils.SendSuccess(c, "opportunity updated", opportunity)
}

func (h *OpportunityHandler) close(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid opportunity id")
	}

	identity := identityFromContext(c)
	opportunity, err := h.opportunities.Close(c.Context(), identity, id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to close opportunity")
	}

	return utils.SendSuccess(c, "opportunity closed", opportunity)
}

func (h *OpportunityHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid opportunity id")
	}

	identity := identityFromContext(c)
	if err := h.opportunities.Delete(c.Context(), identity, id); err != nil {
		return sendServiceError(c, h.logger, err, "failed to delete opportunity")
	}

	return utils.SendSuccess(c, "opportunity deleted", nil)
}

func (h *OpportunityHandler) apply(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid opportunity id")
	}

	var payload dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	identity := identityFromContext(c)
	application, err := h.applications.Apply(c.Context(), identity, id, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to apply")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "application submitted", application)
}

func (h *OpportunityHandler) listApplicants(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid opportunity id")
	}

	identity := identityFromContext(c)
	applications, err := h.applications.ListForOpportunity(c.Context(), identity, id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list applications")
	}

	return utils.SendSuccess(c, "applications retrieved", applications)
}

func (h *OpportunityHandler) listOwn(c *fiber.Ctx) error {
	identity := identityFromContext(c)
	applications, err := h.applications.ListOwn(c.Context(), identity)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list applications")
	}

	return utils.SendSuccess(c, "applications retrieved", applications)
}

func (h *OpportunityHandler) transition(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid application id")
	}

	var payload dto.ApplicationStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	application, err := h.applications.Transition(c.Context(), identity, id, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update application")
	}

	return utils.SendSuccess(c, "application updated", application)
}
