package routes

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/internal/controllers"
	"leave-backend/internal/middleware"
	"leave-backend/internal/models"
)

type Handlers struct {
	Leaves        *controllers.LeaveHandler
	Users         *controllers.UserHandler
	Organizations *controllers.OrganizationHandler
}

var (
	supervisorOnly = middleware.RequireRoles(models.RoleSupervisor, models.RoleSuperUser)
	superUserOnly  = middleware.RequireRoles(models.RoleSuperUser)
)

// Setup mounts the API. authn runs on every /api route except login.
func Setup(app *fiber.App, h Handlers, authn ...fiber.Handler) {
	SetupAuth(app, h.Users)

	api := app.Group("/api", authn...)
	SetupRoutesLeave(api, h.Leaves)
	SetupRoutesUser(api, h.Users)
	SetupRoutesOrganization(api, h.Organizations)
}

// SetupAuth registers the only public API route.
func SetupAuth(app *fiber.App, h *controllers.UserHandler) {
	app.Post("/api/users/login", h.Login)
	// curl -X POST http://127.0.0.1:3000/api/users/login -d '{"email":"a@b.c","uid":"..."}'
}
