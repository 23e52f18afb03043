package controllers

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/dto"
	"leave-backend/internal/middleware"
	"leave-backend/internal/services"
)

type UserHandler struct {
	Users services.UserService
}

// Login godoc
// @Summary      Log in with email and uid
// @Description  The first login stores the uid as the credential; later logins must present the same uid.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginReq  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse "invalid credentials"
// @Router       /api/users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var body dto.LoginReq
	if err := bind(c, &body); err != nil {
		return err
	}
	res, err := h.Users.Login(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Register godoc
// @Summary      Register a user
// @Description  SuperUser only. Fails when the email is already registered.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.RegisterUserReq  true  "New user"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse "user already exists"
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var body dto.RegisterUserReq
	if err := bind(c, &body); err != nil {
		return err
	}
	u, err := h.Users.Register(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{Msg: "User created successfully", User: *u})
}

// Me godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	v, err := middleware.ViewerFromLocals(c)
	if err != nil {
		return err
	}
	return c.JSON(v)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.User
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Search godoc
// @Summary      Search users by name
// @Description  Case-insensitive substring match.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Name fragment"
// @Success      200   {array}   models.User
// @Router       /api/users/search/{name} [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	users, err := h.Users.Search(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Delete godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID (hex ObjectID)"
// @Success      200     {object}  dto.MessageResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/users/{userId} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.Users.Delete(c.UserContext(), c.Params("userId")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User removed"})
}

// UpdateRoleSupervisor godoc
// @Summary      Change role and/or supervisor
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string                       true  "User ID (hex ObjectID)"
// @Param        body    body      dto.UpdateRoleSupervisorReq  true  "Role and supervisor"
// @Success      200     {object}  models.User
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/users/update/{userId} [put]
func (h *UserHandler) UpdateRoleSupervisor(c *fiber.Ctx) error {
	var body dto.UpdateRoleSupervisorReq
	if err := bind(c, &body); err != nil {
		return err
	}
	u, err := h.Users.UpdateRoleSupervisor(c.UserContext(), c.Params("userId"), body)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// AssignSupervisor godoc
// @Summary      Assign a supervisor
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string                   true  "User ID (hex ObjectID)"
// @Param        body    body      dto.AssignSupervisorReq  true  "Supervisor"
// @Success      200     {object}  models.User
// @Failure      404     {object}  dto.ErrorResponse "user or supervisor not found"
// @Router       /api/users/assign-supervisor/{userId} [put]
func (h *UserHandler) AssignSupervisor(c *fiber.Ctx) error {
	var body dto.AssignSupervisorReq
	if err := bind(c, &body); err != nil {
		return err
	}
	u, err := h.Users.AssignSupervisor(c.UserContext(), c.Params("userId"), body)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// UpdateOrganization godoc
// @Summary      Move a user to another organization
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string                     true  "User ID (hex ObjectID)"
// @Param        body    body      dto.UpdateOrganizationReq  true  "Organization"
// @Success      200     {object}  models.User
// @Router       /api/users/organization/{userId} [put]
func (h *UserHandler) UpdateOrganization(c *fiber.Ctx) error {
	var body dto.UpdateOrganizationReq
	if err := bind(c, &body); err != nil {
		return err
	}
	u, err := h.Users.UpdateOrganization(c.UserContext(), c.Params("userId"), body)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// UpdateDetails godoc
// @Summary      Update user details
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string             true  "User ID (hex ObjectID)"
// @Param        body    body      dto.UpdateUserReq  true  "Fields to change"
// @Success      200     {object}  models.User
// @Router       /api/users/{userId} [patch]
func (h *UserHandler) UpdateDetails(c *fiber.Ctx) error {
	var body dto.UpdateUserReq
	if err := bind(c, &body); err != nil {
		return err
	}
	u, err := h.Users.UpdateDetails(c.UserContext(), c.Params("userId"), body)
	if err != nil {
		return err
	}
	return c.JSON(u)
}
