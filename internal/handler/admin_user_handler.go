package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

// AdminUserHandler wires platform-wide account lifecycle endpoints.
type AdminUserHandler struct {
	accounts service.AccountService
	logger   zerolog.Logger
}

// NewAdminUserHandler constructs the handler.
func NewAdminUserHandler(accounts service.AccountService, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		accounts: accounts,
		logger:   logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register attaches account administration routes to the router group.
func (h *AdminUserHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("/:id/approve", h.approve)
	router.Post("/:id/reject", h.reject)
	router.Post("/:id/suspend", h.suspend)
	router.Post("/:id/reactivate", h.reactivate)
	router.Delete("/:id", h.remove)
}

func (h *AdminUserHandler) list(c *fiber.Ctx) error {
	page, pageSize, err := paging(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination")
	}

	identity := identityFromContext(c)
	accounts, err := h.accounts.List(c.Context(), identity, dto.AccountListRequest{
		Page:     page,
		PageSize: pageSize,
		Role:     c.Query("role"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list accounts")
	}

	return utils.SendSuccess(c, "accounts retrieved", accounts)
}

func (h *AdminUserHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid account id")
	}

	identity := identityFromContext(c)
	account, err := h.accounts.Get(c.Context(), identity, id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch account")
	}

	return utils.SendSuccess(c, "account retrieved", account)
}

func (h *AdminUserHandler) approve(c *fiber.Ctx) error {
	return h.lifecycle(c, h.accounts.Approve, "account approved")
}

func (h *AdminUserHandler) reject(c *fiber.Ctx) error {
	return h.lifecycle(c, h.accounts.Reject, "account rejected")
}

func (h *AdminUserHandler) suspend(c *fiber.Ctx) error {
	return h.lifecycle(c, h.accounts.Suspend, "account suspended")
}

func (h *AdminUserHandler) reactivate(c *fiber.Ctx) error {
	return h.lifecycle(c, h.accounts.Reactivate, "account reactivated")
}

func (h *AdminUserHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid account id")
	}

	identity := identityFromContext(c)
	if err := h.accounts.Delete(c.Context(), identity, id); err != nil {
		return sendServiceError(c, h.logger, err, "failed to delete account")
	}

	return utils.SendSuccess(c, "account deleted", nil)
}

func (h *AdminUserHandler) lifecycle(c *fiber.Ctx, fn func(ctx context.Context, actor service.Identity, accountID uint) (dto.AccountResponse, error), message string) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid account id")
	}

	identity := identityFromContext(c)
	account, err := fn(c.Context(), identity, id)
	if err != nil {
		return sendServiceError(c, h.logger, err, message+" failed")
	}

	return utils.SendSuccess(c, message, account)
}
