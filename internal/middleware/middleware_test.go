package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"leave-backend/internal/apperror"
	"leave-backend/internal/middleware"
	"leave-backend/internal/models"
	"leave-backend/internal/repository/memory"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func claimsFor(uid string, exp time.Time) middleware.MyClaims {
	return middleware.MyClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

// errorApp mirrors the production error rendering closely enough to read statuses.
func errorApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				return c.Status(appErr.HTTPStatus).SendString(appErr.Code)
			}
			return c.Status(http.StatusInternalServerError).SendString(err.Error())
		},
	})
}

func get(t *testing.T, app *fiber.App, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestJWTUidOnly(t *testing.T) {
	app := errorApp()
	app.Get("/", middleware.JWTUidOnly(secret), func(c *fiber.Ctx) error {
		uid, err := middleware.UIDFromLocals(c)
		if err != nil {
			return err
		}
		return c.SendString(uid)
	})

	valid := sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("abc123", time.Now().Add(time.Hour)))
	subjectOnly := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{
		Subject:   "from-sub",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	tests := []struct {
		name   string
		token  string
		status int
		body   string
	}{
		{"valid", valid, http.StatusOK, "abc123"},
		{"subject fallback", subjectOnly, http.StatusOK, "from-sub"},
		{"missing", "", http.StatusUnauthorized, apperror.CodeUnauthorized},
		{"garbage", "abc.def.ghi", http.StatusUnauthorized, apperror.CodeUnauthorized},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), claimsFor("abc123", time.Now().Add(time.Hour))), http.StatusUnauthorized, apperror.CodeUnauthorized},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("abc123", time.Now().Add(-time.Minute))), http.StatusUnauthorized, apperror.CodeUnauthorized},
		{"wrong algorithm", sign(t, jwt.SigningMethodHS512, []byte(secret), claimsFor("abc123", time.Now().Add(time.Hour))), http.StatusUnauthorized, apperror.CodeUnauthorized},
		{"no uid", sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("", time.Now().Add(time.Hour))), http.StatusUnauthorized, apperror.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, body := get(t, app, tt.token)
			assert.Equal(t, tt.status, res.StatusCode)
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestInjectViewerAndRequireRoles(t *testing.T) {
	db := memory.NewDB()
	store := db.Store()

	normal := &models.User{Name: "N", Email: "n@example.com", Role: models.RoleNormal}
	boss := &models.User{Name: "B", Email: "b@example.com", Role: models.RoleSupervisor}
	require.NoError(t, store.Users.Register(context.Background(), normal))
	require.NoError(t, store.Users.Register(context.Background(), boss))

	app := errorApp()
	app.Get("/",
		middleware.JWTUidOnly(secret),
		middleware.InjectViewer(store.Users),
		middleware.RequireRoles(models.RoleSupervisor, models.RoleSuperUser),
		func(c *fiber.Ctx) error {
			v, err := middleware.ViewerFromLocals(c)
			if err != nil {
				return err
			}
			return c.SendString(v.Email)
		},
	)

	token := func(id bson.ObjectID) string {
		return sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor(id.Hex(), time.Now().Add(time.Hour)))
	}

	res, body := get(t, app, token(boss.ID))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "b@example.com", body)

	res, body = get(t, app, token(normal.ID))
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, apperror.CodeForbidden, body)

	res, _ = get(t, app, token(bson.NewObjectID()))
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	notHex := sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("firebase-uid", time.Now().Add(time.Hour)))
	res, _ = get(t, app, notHex)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestRequestID(t *testing.T) {
	app := errorApp()
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(middleware.RequestIDFrom(c.UserContext()))
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return apperror.ErrForbidden
	})

	res, body := get(t, app, "")
	rid := res.Header.Get(middleware.HeaderRequestID)
	assert.NotEmpty(t, rid)
	assert.Equal(t, rid, body)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderRequestID, "given-id")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "given-id", res.Header.Get(middleware.HeaderRequestID))

	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestRequestLogger_OneLinePerFailedRequest(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	app := errorApp()
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(zap.New(core)))
	app.Use(recover.New())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/forbidden", func(c *fiber.Ctx) error { return apperror.ErrForbidden })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("kaboom") })

	tests := []struct {
		path     string
		status   int
		level    zapcore.Level
		hasError bool
	}{
		{"/ok", http.StatusOK, zapcore.InfoLevel, false},
		{"/forbidden", http.StatusForbidden, zapcore.WarnLevel, true},
		{"/panic", http.StatusInternalServerError, zapcore.ErrorLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			logs.TakeAll()

			res, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.StatusCode)

			entries := logs.TakeAll()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			fields := entries[0].ContextMap()
			assert.EqualValues(t, tt.status, fields["status"])
			_, ok := fields["error"]
			assert.Equal(t, tt.hasError, ok)
		})
	}
}
