package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/dto"
	"leave-backend/internal/middleware"
	"leave-backend/internal/models"
	"leave-backend/internal/services"
)

type LeaveHandler struct {
	Leaves   services.LeaveService
	Reports  services.ReportService
	Balances services.BalanceService
}

// Create godoc
// @Summary      Submit a leave request
// @Description  Creates a Pending leave request. user_id defaults to the caller.
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateLeaveReq  true  "Leave request"
// @Success      201   {object}  models.LeaveRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse "user not found"
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/leaves [post]
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return err
	}

	var body dto.CreateLeaveReq
	if err := bind(c, &body); err != nil {
		return err
	}

	l, err := h.Leaves.Create(c.UserContext(), uid, body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(l)
}

// UpdateStatus godoc
// @Summary      Overwrite the status of a leave request
// @Description  Sets the status label only; approval and rejection details are kept as they are.
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        leaveId  path      string                    true  "Leave ID (hex ObjectID)"
// @Param        body     body      dto.UpdateLeaveStatusReq  true  "New status"
// @Success      200      {object}  models.LeaveRequest
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/leaves/{leaveId} [put]
func (h *LeaveHandler) UpdateStatus(c *fiber.Ctx) error {
	var body dto.UpdateLeaveStatusReq
	if err := bind(c, &body); err != nil {
		return err
	}

	l, err := h.Leaves.SetStatus(c.UserContext(), c.Params("leaveId"), body.Status)
	if err != nil {
		return err
	}
	return c.JSON(l)
}

// List godoc
// @Summary      List all leave requests
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.LeaveRequest
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/leaves [get]
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	leaves, err := h.Leaves.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(leaves)
}

// ListByUser godoc
// @Summary      Leave requests of one user
// @Description  Dates are replaced by no_of_days, the number of whole days between start and end.
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID (hex ObjectID)"
// @Success      200     {array}   dto.UserLeaveView
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/leaves/user/{userId} [get]
func (h *LeaveHandler) ListByUser(c *fiber.Ctx) error {
	rows, err := h.Reports.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// Remaining godoc
// @Summary      Remaining leave per leave type
// @Description  Allowance of each leave type of the user's organization minus the approved days.
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID (hex ObjectID)"
// @Success      200     {array}   dto.RemainingLeave
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/leaves/remaining/{userId} [get]
func (h *LeaveHandler) Remaining(c *fiber.Ctx) error {
	rows, err := h.Balances.Remaining(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// PendingBySupervisor godoc
// @Summary      Pending requests of a supervisor's direct reports
// @Description  A SuperUser id returns every pending request.
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Param        supervisorId  path      string  true  "Supervisor ID (hex ObjectID)"
// @Success      200           {array}   dto.PendingLeaveView
// @Failure      403           {object}  dto.ErrorResponse
// @Router       /api/leaves/pending/supervisor/{supervisorId} [get]
func (h *LeaveHandler) PendingBySupervisor(c *fiber.Ctx) error {
	rows, err := h.Reports.PendingBySupervisor(c.UserContext(), c.Params("supervisorId"))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// HistoryBySupervisor godoc
// @Summary      Approved and rejected requests of a supervisor's direct reports
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Param        supervisorId  path      string  true  "Supervisor ID (hex ObjectID)"
// @Success      200           {array}   dto.EvaluatedLeaveView
// @Failure      403           {object}  dto.ErrorResponse
// @Router       /api/leaves/history/supervisor/{supervisorId} [get]
func (h *LeaveHandler) HistoryBySupervisor(c *fiber.Ctx) error {
	rows, err := h.Reports.HistoryBySupervisor(c.UserContext(), c.Params("supervisorId"))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// Approve godoc
// @Summary      Approve a pending or rejected request
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        leaveId  path      string               true   "Leave ID (hex ObjectID)"
// @Param        body     body      dto.ApproveLeaveReq  false  "Approver, defaults to the caller"
// @Success      200      {object}  models.LeaveRequest
// @Failure      400      {object}  dto.ErrorResponse "invalid state"
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/leaves/approve/{leaveId} [patch]
func (h *LeaveHandler) Approve(c *fiber.Ctx) error {
	return h.approve(c, h.Leaves.Approve)
}

// ReverseApprove godoc
// @Summary      Turn a rejected request into an approved one
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        leaveId  path      string               true   "Leave ID (hex ObjectID)"
// @Param        body     body      dto.ApproveLeaveReq  false  "Approver, defaults to the caller"
// @Success      200      {object}  models.LeaveRequest
// @Failure      400      {object}  dto.ErrorResponse "invalid state"
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/leaves/update/approved/{leaveId} [patch]
func (h *LeaveHandler) ReverseApprove(c *fiber.Ctx) error {
	return h.approve(c, h.Leaves.ReverseApprove)
}

// Reject godoc
// @Summary      Reject a pending or approved request
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        leaveId  path      string              true   "Leave ID (hex ObjectID)"
// @Param        body     body      dto.RejectLeaveReq  false  "Rejecter and reason"
// @Success      200      {object}  models.LeaveRequest
// @Failure      400      {object}  dto.ErrorResponse "invalid state"
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/leaves/reject/{leaveId} [patch]
func (h *LeaveHandler) Reject(c *fiber.Ctx) error {
	return h.reject(c, h.Leaves.Reject)
}

// ReverseReject godoc
// @Summary      Turn an approved request into a rejected one
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        leaveId  path      string              true   "Leave ID (hex ObjectID)"
// @Param        body     body      dto.RejectLeaveReq  false  "Rejecter and reason"
// @Success      200      {object}  models.LeaveRequest
// @Failure      400      {object}  dto.ErrorResponse "invalid state"
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/leaves/update/rejected/{leaveId} [patch]
func (h *LeaveHandler) ReverseReject(c *fiber.Ctx) error {
	return h.reject(c, h.Leaves.ReverseReject)
}

type approveFunc = func(ctx context.Context, leaveID string, by bson.ObjectID) (*models.LeaveRequest, error)

func (h *LeaveHandler) approve(c *fiber.Ctx, do approveFunc) error {
	var body dto.ApproveLeaveReq
	if err := bindOptional(c, &body); err != nil {
		return err
	}
	by, err := actorID(c, body.ApprovedBy, "Approved By")
	if err != nil {
		return err
	}

	l, err := do(c.UserContext(), c.Params("leaveId"), by)
	if err != nil {
		return err
	}
	return c.JSON(l)
}

type rejectFunc = func(ctx context.Context, leaveID string, by bson.ObjectID, reason string) (*models.LeaveRequest, error)

func (h *LeaveHandler) reject(c *fiber.Ctx, do rejectFunc) error {
	var body dto.RejectLeaveReq
	if err := bindOptional(c, &body); err != nil {
		return err
	}
	by, err := actorID(c, body.RejectedBy, "Rejected By")
	if err != nil {
		return err
	}

	l, err := do(c.UserContext(), c.Params("leaveId"), by, body.RejectedReason)
	if err != nil {
		return err
	}
	return c.JSON(l)
}

// ByDateRange godoc
// @Summary      Requests overlapping a date range
// @Description  start_date and end_date come from the query string or the JSON body; any status is returned.
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "YYYY-MM-DD or RFC3339"
// @Param        end_date    query     string  false  "YYYY-MM-DD or RFC3339"
// @Success      200         {array}   dto.DateRangeLeaveView
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/leaves/date-range [get]
func (h *LeaveHandler) ByDateRange(c *fiber.Ctx) error {
	var q dto.DateRangeReq
	if err := c.QueryParser(&q); err != nil {
		return errInvalidBody
	}
	if q.StartDate == "" || q.EndDate == "" {
		var body dto.DateRangeReq
		if err := bindOptional(c, &body); err != nil {
			return err
		}
		if q.StartDate == "" {
			q.StartDate = body.StartDate
		}
		if q.EndDate == "" {
			q.EndDate = body.EndDate
		}
	}

	rows, err := h.Reports.ByDateRange(c.UserContext(), q.StartDate, q.EndDate)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}
