package dto

import "leave-backend/internal/models"

// -- Request --

type LoginReq struct {
	Email string `json:"email" validate:"required,email"`
	UID   string `json:"uid" validate:"required"`
}

// POST /api/users/register
type RegisterUserReq struct {
	Name         string `json:"name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Role         string `json:"role" validate:"omitempty,oneof=Normal Supervisor SuperUser"`
	PhotoURL     string `json:"photoURL" validate:"omitempty,url"`
	Supervisor   string `json:"supervisor" validate:"omitempty,mongodb"`
	Organization string `json:"organization" validate:"required"`
	Gender       string `json:"gender" validate:"required,oneof=Male Female Other"`
}

// PUT /api/users/update/:userId
// An empty supervisor leaves the link unchanged.
type UpdateRoleSupervisorReq struct {
	Role         string `json:"role" validate:"omitempty,oneof=Normal Supervisor SuperUser"`
	SupervisorID string `json:"supervisorId" validate:"omitempty,mongodb"`
}

// PUT /api/users/assign-supervisor/:userId
type AssignSupervisorReq struct {
	SupervisorID string `json:"supervisorId" validate:"required,mongodb"`
}

// PUT /api/users/organization/:userId
type UpdateOrganizationReq struct {
	Organization string `json:"organization" validate:"required"`
}

// PATCH /api/users/:userId; nil fields are left as they are.
type UpdateUserReq struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Role         *string `json:"role" validate:"omitempty,oneof=Normal Supervisor SuperUser"`
	PhotoURL     *string `json:"photoURL" validate:"omitempty,url"`
	Organization *string `json:"organization" validate:"omitempty,min=1"`
	Gender       *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
}

// -- Response --

type LoginResponse struct {
	Token        string `json:"token"`
	UserID       string `json:"userId"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhotoURL     string `json:"photoURL"`
	Organization string `json:"organization"`
}

type RegisterResponse struct {
	Msg  string      `json:"msg"`
	User models.User `json:"newUserWithoutPassword"`
}
