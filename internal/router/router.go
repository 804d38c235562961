package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusgig/campusgig-api/internal/config"
	"github.com/campusgig/campusgig-api/internal/handler"
	"github.com/campusgig/campusgig-api/internal/middleware"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler          *handler.AuthHandler
	ProfileHandler       *handler.ProfileHandler
	AdminUserHandler     *handler.AdminUserHandler
	AdminCampusHandler   *handler.AdminCampusHandler
	CampusRequestHandler *handler.CampusRequestHandler
	CampusStudentHandler *handler.CampusStudentHandler
	OpportunityHandler   *handler.OpportunityHandler
	ModerationHandler    *handler.ModerationHandler
	DashboardHandler     *handler.DashboardHandler
	Authenticate         fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided auth middleware, or a no-op if nil
	authenticate := deps.Authenticate
	if authenticate == nil {
		authenticate = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Public intake
	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", cfg.LoginRateLimit, 0))
		deps.AuthHandler.Register(auth)
	}
	if deps.CampusRequestHandler != nil {
		requests := api.Group("/campus-requests", middleware.RateLimit("campus-requests", cfg.LoginRateLimit, 0))
		deps.CampusRequestHandler.Register(requests)
	}

	// Authenticated surface
	if deps.ProfileHandler != nil {
		profile := api.Group("/profile", authenticate)
		deps.ProfileHandler.Register(profile)
	}

	if deps.OpportunityHandler != nil {
		opportunities := api.Group("/opportunities", authenticate)
		deps.OpportunityHandler.Register(opportunities)

		manage := opportunities.Group("", middleware.RequireRole(models.RoleCampusAuthority, models.RoleAdmin))
		deps.OpportunityHandler.RegisterManage(manage)

		review := api.Group("/applications", authenticate)
		own := review.Group("", middleware.RequireRole(models.RoleStudent))
		deps.OpportunityHandler.RegisterOwnApplications(own)

		pipeline := review.Group("", middleware.RequireRole(models.RoleCampusAuthority, models.RoleAdmin))
		deps.OpportunityHandler.RegisterApplicationReview(pipeline)
	}

	if deps.ModerationHandler != nil {
		reports := api.Group("/reports", authenticate)
		deps.ModerationHandler.RegisterReports(reports)
	}

	// Admin surface
	admin := api.Group("/admin", authenticate, middleware.RequireRole(models.RoleAdmin))
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(admin.Group("/users"))
	}
	if deps.AdminCampusHandler != nil {
		deps.AdminCampusHandler.Register(admin.Group("/campuses"))
		deps.AdminCampusHandler.RegisterRequests(admin.Group("/campus-requests"))
	}
	if deps.ModerationHandler != nil {
		deps.ModerationHandler.RegisterAdmin(admin.Group("/moderation"))
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterAdmin(admin)
	}

	// Campus authority surface
	campus := api.Group("/campus", authenticate, middleware.RequireRole(models.RoleCampusAuthority))
	if deps.CampusStudentHandler != nil {
		deps.CampusStudentHandler.Register(campus.Group("/students"))
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterCampus(campus)
	}
}
