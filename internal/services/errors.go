package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/internal/apperror"
	"leave-backend/internal/repository"
	"leave-backend/internal/utils"
)

var (
	ErrUserNotFound         = apperror.NotFound("User not found")
	ErrSupervisorNotFound   = apperror.NotFound("Supervisor not found")
	ErrLeaveNotFound        = apperror.NotFound("Leave request not found")
	ErrOrganizationNotFound = apperror.NotFound("Organization not found")
	ErrLeaveTypesNotFound   = apperror.NotFound("Leave types not found for the organization")
	ErrUserExists           = apperror.InvalidInput("User already exists")
	ErrOrganizationExists   = apperror.InvalidInput("Organization already exists")
	ErrInvalidCredentials   = apperror.InvalidInput("Invalid Credentials")
)

// storeErr maps repository errors onto the application taxonomy.
// ErrNotFound becomes notFound when given; anything unrecognised is a store failure.
func storeErr(err error, notFound *apperror.AppError) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrUserExists
	case errors.Is(err, repository.ErrDuplicateOrganization):
		return ErrOrganizationExists
	default:
		return apperror.StoreFailure(err)
	}
}

func parseID(hex, field string) (bson.ObjectID, error) {
	oid, ok := utils.ParseObjectID(hex)
	if !ok {
		return bson.NilObjectID, apperror.InvalidField(field)
	}
	return oid, nil
}
