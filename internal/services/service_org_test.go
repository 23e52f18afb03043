package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/dto"
	"leave-backend/internal/apperror"
	"leave-backend/internal/services"
)

func TestOrganizationService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	svc := services.NewOrganizationService(f.store, f.log)

	created, err := svc.Create(f.ctx, dto.CreateOrganizationsReq{
		{OrganizationID: "ORG1", LeaveTypes: []dto.LeaveTypeReq{{LeaveTypeName: "Annual", NumberOfDaysAllowed: 10}}},
		{},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotEmpty(t, created[0].LeaveTypes[0].LeaveTypeID)
	assert.NotEmpty(t, created[1].OrganizationID)

	_, err = svc.Create(f.ctx, dto.CreateOrganizationsReq{{OrganizationID: "ORG1"}})
	assert.ErrorIs(t, err, services.ErrOrganizationExists)

	updated, err := svc.AddLeaveType(f.ctx, created[0].ID.Hex(), dto.LeaveTypeReq{LeaveTypeID: "sick", LeaveTypeName: "Sick", NumberOfDaysAllowed: 5})
	require.NoError(t, err)
	assert.Len(t, updated.LeaveTypes, 2)
	assert.Equal(t, "sick", updated.LeaveTypes[1].LeaveTypeID)

	names, err := svc.LeaveTypeNames(f.ctx, "ORG1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Annual", "Sick"}, names)

	all, err := svc.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Delete(f.ctx, created[0].ID.Hex()))
	_, err = svc.LeaveTypeNames(f.ctx, "ORG1")
	assert.ErrorIs(t, err, services.ErrOrganizationNotFound)
}

func TestOrganizationService_CreateDuplicateInBatch(t *testing.T) {
	f := newFixture(t)
	svc := services.NewOrganizationService(f.store, f.log)

	_, err := svc.Create(f.ctx, dto.CreateOrganizationsReq{{OrganizationID: "ORG1"}, {OrganizationID: "ORG1"}})
	assert.ErrorIs(t, err, services.ErrOrganizationExists)

	_, err = svc.LeaveTypeNames(f.ctx, "ORG1")
	assert.ErrorIs(t, err, services.ErrOrganizationNotFound)
}

func TestOrganizationService_Errors(t *testing.T) {
	f := newFixture(t)
	svc := services.NewOrganizationService(f.store, f.log)

	_, err := svc.Create(f.ctx, nil)
	assert.Equal(t, apperror.CodeInvalidInput, code(err))

	_, err = svc.AddLeaveType(f.ctx, bson.NewObjectID().Hex(), dto.LeaveTypeReq{LeaveTypeName: "X"})
	assert.ErrorIs(t, err, services.ErrOrganizationNotFound)

	assert.ErrorIs(t, svc.Delete(f.ctx, bson.NewObjectID().Hex()), services.ErrOrganizationNotFound)
	assert.Equal(t, apperror.CodeValidationError, code(svc.Delete(f.ctx, "zzz")))
}
