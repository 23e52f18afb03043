package controllers

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/dto"
	"leave-backend/internal/apperror"
	"leave-backend/internal/services"
)

type OrganizationHandler struct {
	Orgs services.OrganizationService
}

// Create godoc
// @Summary      Create organizations
// @Description  Takes a batch. organization_id and leave_type_id are generated when omitted.
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []dto.CreateOrganizationReq  true  "Organizations"
// @Success      201   {array}   models.Organization
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateOrganizationsReq
	if err := c.BodyParser(&body); err != nil {
		return errInvalidBody
	}
	for i := range body {
		if err := apperror.ValidateStruct(body[i]); err != nil {
			return err
		}
	}

	orgs, err := h.Orgs.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(orgs)
}

// List godoc
// @Summary      List organizations
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Organization
// @Router       /api/organizations [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	orgs, err := h.Orgs.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orgs)
}

// LeaveTypes godoc
// @Summary      Leave type names of an organization
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Param        organizationId  path      string  true  "organization_id"
// @Success      200             {array}   string
// @Failure      404             {object}  dto.ErrorResponse
// @Router       /api/organizations/leaveTypes/{organizationId} [get]
func (h *OrganizationHandler) LeaveTypes(c *fiber.Ctx) error {
	names, err := h.Orgs.LeaveTypeNames(c.UserContext(), c.Params("organizationId"))
	if err != nil {
		return err
	}
	return c.JSON(names)
}

// AddLeaveType godoc
// @Summary      Append a leave type
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        organizationId  path      string               true  "Organization _id (hex ObjectID)"
// @Param        body            body      dto.AddLeaveTypeReq  true  "Leave type"
// @Success      200             {object}  models.Organization
// @Failure      404             {object}  dto.ErrorResponse
// @Router       /api/organizations/{organizationId} [put]
func (h *OrganizationHandler) AddLeaveType(c *fiber.Ctx) error {
	var body dto.AddLeaveTypeReq
	if err := bind(c, &body); err != nil {
		return err
	}
	org, err := h.Orgs.AddLeaveType(c.UserContext(), c.Params("organizationId"), body.LeaveType)
	if err != nil {
		return err
	}
	return c.JSON(org)
}

// Delete godoc
// @Summary      Delete an organization
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Param        organizationId  path      string  true  "Organization _id (hex ObjectID)"
// @Success      200             {object}  dto.MessageResponse
// @Failure      404             {object}  dto.ErrorResponse
// @Router       /api/organizations/{organizationId} [delete]
func (h *OrganizationHandler) Delete(c *fiber.Ctx) error {
	if err := h.Orgs.Delete(c.UserContext(), c.Params("organizationId")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Organization removed"})
}
