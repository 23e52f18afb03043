package dto

type LeaveTypeReq struct {
	LeaveTypeID         string `json:"leave_type_id"`
	LeaveTypeName       string `json:"leave_type_name" validate:"required,max=100"`
	NumberOfDaysAllowed int    `json:"number_of_days_allowed" validate:"gte=0"`
}

type CreateOrganizationReq struct {
	OrganizationID string         `json:"organization_id"`
	LeaveTypes     []LeaveTypeReq `json:"leaveTypes" validate:"dive"`
}

// POST /api/organizations takes a batch.
type CreateOrganizationsReq []CreateOrganizationReq

// PUT /api/organizations/:organizationId
type AddLeaveTypeReq struct {
	LeaveType LeaveTypeReq `json:"leaveType"`
}
