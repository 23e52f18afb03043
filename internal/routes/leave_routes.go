package routes

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/internal/controllers"
)

func SetupRoutesLeave(api fiber.Router, h *controllers.LeaveHandler) {
	leaves := api.Group("/leaves")

	leaves.Post("/", h.Create)
	leaves.Get("/", h.List)
	leaves.Get("/user/:userId", h.ListByUser)
	leaves.Get("/remaining/:userId", h.Remaining)

	leaves.Get("/date-range", supervisorOnly, h.ByDateRange)
	// GET /api/leaves/date-range?start_date=2024-03-01&end_date=2024-03-31

	leaves.Get("/pending/supervisor/:supervisorId", supervisorOnly, h.PendingBySupervisor)
	leaves.Get("/history/supervisor/:supervisorId", supervisorOnly, h.HistoryBySupervisor)

	leaves.Put("/:leaveId", supervisorOnly, h.UpdateStatus)
	leaves.Patch("/approve/:leaveId", supervisorOnly, h.Approve)
	leaves.Patch("/reject/:leaveId", supervisorOnly, h.Reject)

	// reversals between Approved and Rejected
	leaves.Patch("/update/approved/:leaveId", supervisorOnly, h.ReverseApprove)
	leaves.Patch("/update/rejected/:leaveId", supervisorOnly, h.ReverseReject)
}
