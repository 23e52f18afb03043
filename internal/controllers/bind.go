package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/internal/apperror"
	"leave-backend/internal/middleware"
	"leave-backend/internal/utils"
)

var errInvalidBody = apperror.InvalidInput("invalid request body")

// bind decodes the body into v and runs the validate tags.
func bind(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return errInvalidBody
	}
	return apperror.ValidateStruct(v)
}

// bindOptional is bind for endpoints whose body may be empty.
func bindOptional(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return bind(c, v)
}

// actorID prefers an explicit id from the body and falls back to the caller.
func actorID(c *fiber.Ctx, explicit, field string) (bson.ObjectID, error) {
	if explicit != "" {
		oid, ok := utils.ParseObjectID(explicit)
		if !ok {
			return bson.NilObjectID, apperror.InvalidField(field)
		}
		return oid, nil
	}
	return middleware.UIDObjectID(c)
}
