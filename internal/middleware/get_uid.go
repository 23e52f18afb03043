package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/internal/apperror"
	"leave-backend/internal/models"
)

// UIDFromLocals returns the user id set by JWTUidOnly.
func UIDFromLocals(c *fiber.Ctx) (string, error) {
	uid, _ := c.Locals(LocalUserID).(string)
	if uid == "" {
		return "", apperror.ErrUnauthorized
	}
	return uid, nil
}

func UIDObjectID(c *fiber.Ctx) (bson.ObjectID, error) {
	uid, err := UIDFromLocals(c)
	if err != nil {
		return bson.NilObjectID, err
	}
	oid, err := bson.ObjectIDFromHex(uid)
	if err != nil {
		return bson.NilObjectID, apperror.ErrUnauthorized
	}
	return oid, nil
}

// ViewerFromLocals returns the caller loaded by InjectViewer.
func ViewerFromLocals(c *fiber.Ctx) (*models.User, error) {
	v, ok := c.Locals(LocalViewer).(*models.User)
	if !ok || v == nil {
		return nil, apperror.ErrUnauthorized
	}
	return v, nil
}
