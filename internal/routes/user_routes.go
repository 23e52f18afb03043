package routes

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/internal/controllers"
)

func SetupRoutesUser(api fiber.Router, h *controllers.UserHandler) {
	users := api.Group("/users")

	users.Get("/me", h.Me)
	users.Get("/", h.List)
	users.Get("/search/:name", h.Search)

	users.Post("/register", superUserOnly, h.Register)
	users.Put("/update/:userId", superUserOnly, h.UpdateRoleSupervisor)
	users.Put("/assign-supervisor/:userId", superUserOnly, h.AssignSupervisor)
	users.Put("/organization/:userId", superUserOnly, h.UpdateOrganization)
	users.Patch("/:userId", superUserOnly, h.UpdateDetails)
	users.Delete("/:userId", superUserOnly, h.Delete)
}
