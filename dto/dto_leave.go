package dto

import "go.mongodb.org/mongo-driver/v2/bson"

// -- Request --

// POST /api/leaves
// user_id defaults to the caller when omitted.
type CreateLeaveReq struct {
	UserID    string `json:"user_id" validate:"omitempty,mongodb"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	LeaveType string `json:"leave_type" validate:"required,max=100"`
	Reason    string `json:"reason" validate:"max=2000"`
}

// PUT /api/leaves/:leaveId
type UpdateLeaveStatusReq struct {
	Status string `json:"status" validate:"required,oneof=Pending Approved Rejected"`
}

// PATCH /api/leaves/approve/:leaveId and /update/approved/:leaveId
type ApproveLeaveReq struct {
	ApprovedBy string `json:"approved_by" validate:"omitempty,mongodb"`
}

// PATCH /api/leaves/reject/:leaveId and /update/rejected/:leaveId
type RejectLeaveReq struct {
	RejectedBy     string `json:"rejected_by" validate:"omitempty,mongodb"`
	RejectedReason string `json:"rejected_reason" validate:"max=2000"`
}

// GET /api/leaves/date-range, from the query string or the body.
type DateRangeReq struct {
	StartDate string `json:"start_date" query:"start_date"`
	EndDate   string `json:"end_date" query:"end_date"`
}

// -- Response --

type RemainingLeave struct {
	LeaveTypeName string `json:"leave_type_name"`
	RemainingDays int    `json:"remaining_days"`
}

// UserLeaveView is one row of GET /api/leaves/user/:userId.
type UserLeaveView struct {
	ID             bson.ObjectID  `json:"_id"`
	LeaveType      string         `json:"leave_type"`
	Status         string         `json:"status"`
	Reason         string         `json:"reason,omitempty"`
	DateOfRequest  string         `json:"date_of_request"`
	ApprovedDate   *string        `json:"approved_date,omitempty"`
	ApprovedBy     *bson.ObjectID `json:"approved_by,omitempty"`
	RejectedDate   *string        `json:"rejected_date,omitempty"`
	RejectedBy     *bson.ObjectID `json:"rejected_by,omitempty"`
	RejectedReason *string        `json:"rejected_reason,omitempty"`
	NoOfDays       int            `json:"no_of_days"`
}

// PendingLeaveView is one row of the pending-by-supervisor report.
type PendingLeaveView struct {
	ID             bson.ObjectID `json:"_id"`
	LeaveStartDate string        `json:"leave_start_date"`
	LeaveType      string        `json:"leave_type"`
	Reason         string        `json:"reason"`
	DateOfRequest  string        `json:"date_of_request"`
	UserID         bson.ObjectID `json:"user_id"`
	UserName       string        `json:"user_name"`
	UserRole       string        `json:"user_role"`
	UserPhotoURL   string        `json:"user_photoURL"`
	Organization   string        `json:"organization"`
	NoOfDays       int64         `json:"no_of_days"`
}

// Decider identifies the user who approved or rejected a request.
type Decider struct {
	ID           bson.ObjectID `json:"_id"`
	Name         string        `json:"name"`
	Role         string        `json:"role"`
	PhotoURL     string        `json:"photoURL"`
	Organization string        `json:"organization"`
}

// EvaluatedLeaveView is one row of the evaluated-history report.
// Only the block matching Status is populated; the other fields are null.
type EvaluatedLeaveView struct {
	ID             bson.ObjectID `json:"_id"`
	LeaveStartDate string        `json:"leave_start_date"`
	LeaveType      string        `json:"leave_type"`
	Reason         string        `json:"reason"`
	DateOfRequest  string        `json:"date_of_request"`
	Status         string        `json:"status"`
	UserID         bson.ObjectID `json:"user_id"`
	UserName       string        `json:"user_name"`
	UserRole       string        `json:"user_role"`
	UserPhotoURL   string        `json:"user_photoURL"`
	Organization   string        `json:"organization"`
	NoOfDays       float64       `json:"no_of_days"`

	ApprovedDate   *string  `json:"approved_date"`
	ApprovedBy     *Decider `json:"approved_by"`
	RejectedDate   *string  `json:"rejected_date"`
	RejectedBy     *Decider `json:"rejected_by"`
	RejectedReason *string  `json:"rejected_reason"`
}

// DateRangeLeaveView is one row of the date-range report. Timestamps are RFC3339.
type DateRangeLeaveView struct {
	ID               bson.ObjectID `json:"_id"`
	UserID           bson.ObjectID `json:"user_id"`
	StartDate        string        `json:"start_date"`
	EndDate          string        `json:"end_date"`
	LeaveType        string        `json:"leave_type"`
	Status           string        `json:"status"`
	Reason           string        `json:"reason,omitempty"`
	DateOfRequest    string        `json:"date_of_request"`
	RejectedDate     *string       `json:"rejected_date,omitempty"`
	ApprovedDate     *string       `json:"approved_date,omitempty"`
	UserName         string        `json:"user_name"`
	UserEmail        string        `json:"user_email"`
	UserRole         string        `json:"user_role"`
	UserPhotoURL     string        `json:"user_photoURL"`
	UserOrganization string        `json:"user_organization"`
}
