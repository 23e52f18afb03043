package controllers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"leave-backend/dto"
	"leave-backend/internal/apperror"
)

// ErrorHandler renders every error as dto.ErrorResponse. fiber errors keep their status.
// Logging is left to middleware.RequestLogger so each failed request yields one line.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := render(err)
		return c.Status(status).JSON(body)
	}
}

func render(err error) (int, dto.ErrorResponse) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Error: fe.Message, Code: codeForStatus(fe.Code)}
	}
	appErr := apperror.From(err)
	return appErr.HTTPStatus, dto.ErrorResponse{Error: appErr.Message, Code: appErr.Code}
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return apperror.CodeUnauthorized
	case status == http.StatusForbidden:
		return apperror.CodeForbidden
	case status == http.StatusNotFound:
		return apperror.CodeNotFound
	case status >= http.StatusInternalServerError:
		return apperror.CodeInternalError
	default:
		return apperror.CodeInvalidInput
	}
}
