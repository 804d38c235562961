package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

// DashboardHandler wires the aggregated summary endpoints.
type DashboardHandler struct {
	dashboards service.DashboardService
	logger     zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(dashboards service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboards: dashboards,
		logger:     logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// RegisterAdmin attaches the platform-wide summary.
func (h *DashboardHandler) RegisterAdmin(router fiber.Router) {
	router.Get("/dashboard", h.adminSummary)
}

// RegisterCampus attaches the campus partition summary.
func (h *DashboardHandler) RegisterCampus(router fiber.Router) {
	router.Get("/dashboard", h.campusSummary)
}

func (h *DashboardHandler) adminSummary(c *fiber.Ctx) error {
	summary, err := h.dashboards.AdminSummary(c.Context())
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to build dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", summary)
}

func (h *DashboardHandler) campusSummary(c *fiber.Ctx) error {
	identity := identityFromContext(c)
	summary, err := h.dashboards.CampusSummary(c.Context(), identity)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to build dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", summary)
}
