package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

// ModerationHandler wires report triage, moderation actions, and the
// action log.
type ModerationHandler struct {
	moderation service.ModerationService
	audit      service.AuditService
	logger     zerolog.Logger
}

// NewModerationHandler constructs the handler.
func NewModerationHandler(moderation service.ModerationService, audit service.AuditService, logger zerolog.Logger) *ModerationHandler {
	return &ModerationHandler{
		moderation: moderation,
		audit:      audit,
		logger:     logger.With().Str("component", "moderation_handler").Logger(),
	}
}

// RegisterReports attaches report filing for any authenticated account.
func (h *ModerationHandler) RegisterReports(router fiber.Router) {
	router.Post("", h.fileReport)
}

// RegisterAdmin attaches triage and enforcement routes for admins.
func (h *ModerationHandler) RegisterAdmin(router fiber.Router) {
	router.Get("/reports", h.listReports)
	router.Post("/reports/:id/investigate", h.investigate)
	router.Post("/reports/:id/resolve", h.resolve)
	router.Post("/reports/:id/dismiss", h.dismiss)
	router.Post("/ban", h.ban)
	router.Post("/warn", h.warn)
	router.Post("/message", h.message)
	router.Get("/actions", h.listActions)
}

func (h *ModerationHandler) fileReport(c *fiber.Ctx) error {
	var payload dto.FileReportRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	report, err := h.moderation.FileReport(c.Context(), identity, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to file report")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "report filed", report)
}

func (h *ModerationHandler) listReports(c *fiber.Ctx) error {
	page, pageSize, err := paging(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination")
	}

	reports, err := h.moderation.ListReports(c.Context(), dto.ReportListRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Severity: c.Query("severity"),
	})
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list reports")
	}

	return utils.SendSuccess(c, "reports retrieved", reports)
}

func (h *ModerationHandler) investigate(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid report id")
	}

	identity := identityFromContext(c)
	report, err := h.moderation.StartInvestigation(c.Context(), identity, id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to start investigation")
	}

	return utils.SendSuccess(c, "investigation started", report)
}

func (h *ModerationHandler) resolve(c *fiber.Ctx) error {
	return h.closeReport(c, h.moderation.Resolve, "report resolved")
}

func (h *ModerationHandler) dismiss(c *fiber.Ctx) error {
	return h.closeReport(c, h.moderation.Dismiss, "report dismissed")
}

func (h *ModerationHandler) closeReport(c *fiber.Ctx, fn func(ctx context.Context, actor service.Identity, reportID uint, review dto.ReportReview) (dto.ReportResponse, error), message string) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid report id")
	}

	var payload dto.ReportReview
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	identity := identityFromContext(c)
	report, err := fn(c.Context(), identity, id, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, message+" failed")
	}

	return utils.SendSuccess(c, message, report)
}

func (h *ModerationHandler) ban(c *fiber.Ctx) error {
	var payload dto.BanRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	account, err := h.moderation.BanAccount(c.Context(), identity, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to ban account")
	}

	return utils.SendSuccess(c, "account banned", account)
}

func (h *ModerationHandler) warn(c *fiber.Ctx) error {
	var payload dto.WarnRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	if err := h.moderation.Warn(c.Context(), identity, payload); err != nil {
		return sendServiceError(c, h.logger, err, "failed to warn account")
	}

	return utils.SendSuccess(c, "warning recorded", nil)
}

func (h *ModerationHandler) message(c *fiber.Ctx) error {
	var payload dto.MessageRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	identity := identityFromContext(c)
	if err := h.moderation.MessageUser(c.Context(), identity, payload); err != nil {
		return sendServiceError(c, h.logger, err, "failed to message account")
	}

	return utils.SendSuccess(c, "message recorded", nil)
}

func (h *ModerationHandler) listActions(c *fiber.Ctx) error {
	page, pageSize, err := paging(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination")
	}

	actorID, err := parseQueryInt(c, "actor_id")
	if err != nil || actorID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid actor id")
	}

	entries, err := h.audit.List(c.Context(), dto.ActionLogListRequest{
		Page:     page,
		PageSize: pageSize,
		Type:     c.Query("type"),
		ActorID:  uint(actorID),
	})
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list action log")
	}

	return utils.SendSuccess(c, "action log retrieved", entries)
}
