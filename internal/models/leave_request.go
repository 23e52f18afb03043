package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// LeaveRequest document stored in "leaverequests".
// The approved_* block is only set while Approved and the rejected_* block only while Rejected,
// except after a plain status overwrite.
type LeaveRequest struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID        bson.ObjectID `bson:"user_id" json:"user_id"`
	StartDate     time.Time     `bson:"start_date" json:"start_date"`
	EndDate       time.Time     `bson:"end_date" json:"end_date"`
	LeaveType     string        `bson:"leave_type" json:"leave_type"`
	Status        string        `bson:"status" json:"status"`
	Reason        string        `bson:"reason,omitempty" json:"reason,omitempty"`
	DateOfRequest time.Time     `bson:"date_of_request" json:"date_of_request"`

	ApprovedDate *time.Time     `bson:"approved_date,omitempty" json:"approved_date,omitempty"`
	ApprovedBy   *bson.ObjectID `bson:"approved_by,omitempty" json:"approved_by,omitempty"`

	RejectedDate   *time.Time     `bson:"rejected_date,omitempty" json:"rejected_date,omitempty"`
	RejectedBy     *bson.ObjectID `bson:"rejected_by,omitempty" json:"rejected_by,omitempty"`
	RejectedReason *string        `bson:"rejected_reason,omitempty" json:"rejected_reason,omitempty"`
}

// LeaveWithUsers is a leave request joined with its requester and, when loaded,
// the users referenced by approved_by / rejected_by.
type LeaveWithUsers struct {
	LeaveRequest `bson:",inline"`
	User         User  `bson:"user"`
	Approver     *User `bson:"approved_supervisor,omitempty"`
	Rejecter     *User `bson:"rejected_supervisor,omitempty"`
}
