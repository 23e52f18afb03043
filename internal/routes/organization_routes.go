package routes

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/internal/controllers"
)

func SetupRoutesOrganization(api fiber.Router, h *controllers.OrganizationHandler) {
	orgs := api.Group("/organizations")

	orgs.Get("/", h.List)
	// organization_id, not _id
	orgs.Get("/leaveTypes/:organizationId", h.LeaveTypes)

	orgs.Post("/", superUserOnly, h.Create)
	// _id of the organization document
	orgs.Put("/:organizationId", superUserOnly, h.AddLeaveType)
	orgs.Delete("/:organizationId", superUserOnly, h.Delete)
}
