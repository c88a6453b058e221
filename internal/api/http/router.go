package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SD-18/irs-backend/internal/api/http/handlers"
	"github.com/SD-18/irs-backend/internal/auth"
	"github.com/SD-18/irs-backend/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Issues         *handlers.IssuesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role guards are evaluated uniformly:
// routes open to all authenticated callers list every role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/users/register", cfg.Users.Register)
	api.Post("/auth/login", cfg.Auth.Login)

	anyRole := auth.RequireRoles(domain.RoleStudent, domain.RoleTeacher, domain.RoleAdmin)
	adminOnly := auth.RequireRoles(domain.RoleAdmin)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/auth/me", anyRole, cfg.Auth.Me)

	protected.Post("/issues", anyRole, cfg.Issues.Create)
	protected.Get("/issues/user", anyRole, cfg.Issues.ListMine)
	protected.Get("/issues", adminOnly, cfg.Issues.ListAll)
	protected.Patch("/issues/:id/status", adminOnly, cfg.Issues.UpdateStatus)
	protected.Delete("/issues/:id", adminOnly, cfg.Issues.Delete)

	protected.Get("/users", adminOnly, cfg.Users.List)
	protected.Patch("/users/:id/role", adminOnly, cfg.Users.UpdateRole)
	protected.Delete("/users/:id", adminOnly, cfg.Users.Delete)
}
