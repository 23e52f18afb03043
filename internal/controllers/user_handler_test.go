package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/dto"
	"leave-backend/internal/controllers"
	"leave-backend/internal/models"
	"leave-backend/internal/services"
)

type fakeUserService struct {
	services.UserService

	LoginFn    func(ctx context.Context, req dto.LoginReq) (*dto.LoginResponse, error)
	RegisterFn func(ctx context.Context, req dto.RegisterUserReq) (*models.User, error)
	DeleteFn   func(ctx context.Context, userID string) error
}

func (f *fakeUserService) Login(ctx context.Context, req dto.LoginReq) (*dto.LoginResponse, error) {
	return f.LoginFn(ctx, req)
}
func (f *fakeUserService) Register(ctx context.Context, req dto.RegisterUserReq) (*models.User, error) {
	return f.RegisterFn(ctx, req)
}
func (f *fakeUserService) Delete(ctx context.Context, userID string) error {
	return f.DeleteFn(ctx, userID)
}

func TestUserHandler_Login(t *testing.T) {
	svc := &fakeUserService{
		LoginFn: func(ctx context.Context, req dto.LoginReq) (*dto.LoginResponse, error) {
			if req.UID != "right" {
				return nil, services.ErrInvalidCredentials
			}
			return &dto.LoginResponse{Token: "tok", Email: req.Email}, nil
		},
	}
	app := newApp(bson.NewObjectID())
	app.Post("/login", (&controllers.UserHandler{Users: svc}).Login)

	status, body := send(t, app, http.MethodPost, "/login", `{"email":"a@example.com","uid":"right"}`)
	require.Equal(t, http.StatusOK, status)
	var res dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "tok", res.Token)

	status, body = send(t, app, http.MethodPost, "/login", `{"email":"a@example.com","uid":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid Credentials", errorOf(t, body).Error)

	status, body = send(t, app, http.MethodPost, "/login", `{"email":"not-an-email","uid":"right"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email is invalid", errorOf(t, body).Error)
}

func TestUserHandler_Register(t *testing.T) {
	svc := &fakeUserService{
		RegisterFn: func(ctx context.Context, req dto.RegisterUserReq) (*models.User, error) {
			if req.Email == "taken@example.com" {
				return nil, services.ErrUserExists
			}
			return &models.User{ID: bson.NewObjectID(), Name: req.Name, Email: req.Email, PasswordHash: "secret"}, nil
		},
	}
	app := newApp(bson.NewObjectID())
	app.Post("/register", (&controllers.UserHandler{Users: svc}).Register)

	status, body := send(t, app, http.MethodPost, "/register",
		`{"name":"Ann","email":"ann@example.com","organization":"ORG1","gender":"Female"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.NotContains(t, string(body), "secret")
	var res map[string]any
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "User created successfully", res["msg"])
	assert.Contains(t, res, "newUserWithoutPassword")

	status, body = send(t, app, http.MethodPost, "/register",
		`{"name":"Ann","email":"taken@example.com","organization":"ORG1","gender":"Female"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", errorOf(t, body).Error)

	status, body = send(t, app, http.MethodPost, "/register",
		`{"name":"Ann","email":"ann@example.com","organization":"ORG1","gender":"Robot"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Gender is invalid", errorOf(t, body).Error)
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	svc := &fakeUserService{
		DeleteFn: func(ctx context.Context, id string) error { return services.ErrUserNotFound },
	}
	app := newApp(bson.NewObjectID())
	app.Delete("/users/:userId", (&controllers.UserHandler{Users: svc}).Delete)

	status, body := send(t, app, http.MethodDelete, "/users/"+bson.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", errorOf(t, body).Error)
}
