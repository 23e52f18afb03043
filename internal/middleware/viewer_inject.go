package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"leave-backend/internal/apperror"
	"leave-backend/internal/repository"
)

// InjectViewer loads the authenticated user. Tokens for deleted users are rejected.
func InjectViewer(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := UIDObjectID(c)
		if err != nil {
			return err
		}

		v, err := users.FindByID(c.UserContext(), uid)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.ErrUnauthorized
			}
			zap.L().Named("middleware").Error("load viewer failed",
				zap.String("user_id", uid.Hex()),
				zap.Error(err),
			)
			return apperror.StoreFailure(err)
		}
		c.Locals(LocalViewer, v)
		return c.Next()
	}
}

// RequireRoles lets the request through only when the viewer holds one of roles.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := ViewerFromLocals(c)
		if err != nil {
			return err
		}
		if !v.HasRole(roles...) {
			return apperror.ErrForbidden
		}
		return c.Next()
	}
}
