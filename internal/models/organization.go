package models

import "go.mongodb.org/mongo-driver/v2/bson"

// LeaveType is embedded in its organization and has no identity of its own.
type LeaveType struct {
	LeaveTypeID         string `bson:"leave_type_id" json:"leave_type_id"`
	LeaveTypeName       string `bson:"leave_type_name" json:"leave_type_name"`
	NumberOfDaysAllowed int    `bson:"number_of_days_allowed" json:"number_of_days_allowed"`
}

type Organization struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OrganizationID string        `bson:"organization_id" json:"organization_id"`
	LeaveTypes     []LeaveType   `bson:"leaveTypes" json:"leaveTypes"`
}
