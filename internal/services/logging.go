package services

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"leave-backend/internal/apperror"
)

func named(name string, logger []*zap.Logger) *zap.Logger {
	if len(logger) > 0 && logger[0] != nil {
		return logger[0].Named(name)
	}
	return zap.L().Named(name)
}

func asAppError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// logFailure logs client errors at warn and everything else at error.
func logFailure(l *zap.Logger, msg string, cause, mapped error, fields ...zap.Field) {
	fields = append(fields, zap.Error(cause))
	if appErr := asAppError(mapped); appErr != nil && appErr.HTTPStatus < http.StatusInternalServerError {
		l.Warn(msg+" failed", fields...)
		return
	}
	l.Error(msg+" failed", fields...)
}
