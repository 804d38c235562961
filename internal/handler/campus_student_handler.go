package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

// CampusStudentHandler wires roster management for campus authorities.
// Every operation is confined to the caller's own campus partition.
type CampusStudentHandler struct {
	accounts service.AccountService
	logger   zerolog.Logger
}

// NewCampusStudentHandler constructs the handler.
func NewCampusStudentHandler(accounts service.AccountService, logger zerolog.Logger) *CampusStudentHandler {
	return &CampusStudentHandler{
		accounts: accounts,
		logger:   logger.With().Str("component", "campus_student_handler").Logger(),
	}
}

// Register attaches roster routes to the router group.
func (h *CampusStudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.invite)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.remove)
	router.Post("/:id/approve", h.approve)
	router.Post("/:id/reject", h.reject)
}

func (h *CampusStudentHandler) list(c *fiber.Ctx) error {
	page, pageSize, err := paging(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination")
	}

	identity := identityFromContext(c)
	students, err := h.accounts.List(c.Context(), identity, dto.AccountListRequest{
		Page:     page,
		PageSize: pageSize,
		Role:     models.RoleStudent,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list students")
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *CampusStudentHandler) invite(c *fiber.Ctx) error {
	var payload dto.InviteStudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	student, err := h.accounts.InviteStudent(c.Context(), identity, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to invite student")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student invited", student)
}

func (h *CampusStudentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	identity := identityFromContext(c)
	student, err := h.accounts.Get(c.Context(), identity, id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch student")
	}

	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *CampusStudentHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var payload dto.StudentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	student, err := h.accounts.UpdateStudent(c.Context(), identity, id, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update student")
	}

	return utils.SendSuccess(c, "student updated", student)
}

func (h *CampusStudentHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	identity := identityFromContext(c)
	if err := h.accounts.RemoveStudent(c.Context(), identity, id); err != nil {
		return sendServiceError(c, h.logger, err, "failed to remove student")
	}

	return utils.SendSuccess(c, "student removed", nil)
}

func (h *CampusStudentHandler) approve(c *fiber.Ctx) error {
	return h.lifecycle(c, h.accounts.Approve, "student approved")
}

func (h *CampusStudentHandler) reject(c *fiber.Ctx) error {
	return h.lifecycle(c, h.accounts.Reject, "student rejected")
}

func (h *CampusStudentHandler) lifecycle(c *fiber.Ctx, fn func(ctx context.Context, actor service.Identity, accountID uint) (dto.AccountResponse, error), message string) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	identity := identityFromContext(c)
	student, err := fn(c.Context(), identity, id)
	if err != nil {
		return sendServiceError(c, h.logger, err, message+" failed")
	}

	return utils.SendSuccess(c, message, student)
}
