package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/dto"
	"leave-backend/internal/apperror"
	"leave-backend/internal/models"
	"leave-backend/internal/services"
)

func TestComputeRemaining_OnlyApprovedCount(t *testing.T) {
	types := []models.LeaveType{
		{LeaveTypeName: "Annual", NumberOfDaysAllowed: 10},
		{LeaveTypeName: "Sick", NumberOfDaysAllowed: 3},
	}
	leaves := []models.LeaveRequest{
		{LeaveType: "Annual", Status: models.StatusApproved, StartDate: day(1), EndDate: day(4)},
		{LeaveType: "Annual", Status: models.StatusPending, StartDate: day(5), EndDate: day(9)},
		{LeaveType: "Annual", Status: models.StatusRejected, StartDate: day(10), EndDate: day(20)},
		{LeaveType: "annual", Status: models.StatusApproved, StartDate: day(1), EndDate: day(3)},
		{LeaveType: "Sick", Status: models.StatusApproved, StartDate: day(1), EndDate: day(6)},
		{LeaveType: "Sick", Status: models.StatusApproved, StartDate: day(8), EndDate: day(8)},
	}

	got := services.ComputeRemaining(types, leaves)

	assert.Equal(t, []dto.RemainingLeave{
		{LeaveTypeName: "Annual", RemainingDays: 7},
		{LeaveTypeName: "Sick", RemainingDays: -2},
	}, got)
}

func TestComputeRemaining_NoLeaveTypes(t *testing.T) {
	got := services.ComputeRemaining(nil, []models.LeaveRequest{
		{LeaveType: "Annual", Status: models.StatusApproved, StartDate: day(1), EndDate: day(2)},
	})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBalanceService_Org1AnnualScenario(t *testing.T) {
	f := newFixture(t)
	f.org("ORG1", models.LeaveType{LeaveTypeID: "a", LeaveTypeName: "Annual", NumberOfDaysAllowed: 10})
	u1 := f.user("u1", models.RoleNormal, "ORG1", nil)
	f.leave(u1.ID, "Annual", models.StatusApproved, day(1), day(6))
	f.leave(u1.ID, "Annual", models.StatusPending, day(10), day(12))

	svc := services.NewBalanceService(f.store, f.log)
	got, err := svc.Remaining(f.ctx, u1.ID.Hex())

	require.NoError(t, err)
	assert.Equal(t, []dto.RemainingLeave{{LeaveTypeName: "Annual", RemainingDays: 5}}, got)
}

func TestBalanceService_UsesTargetUsersOrganization(t *testing.T) {
	f := newFixture(t)
	f.org("A", models.LeaveType{LeaveTypeName: "Annual", NumberOfDaysAllowed: 10})
	f.org("B", models.LeaveType{LeaveTypeName: "Annual", NumberOfDaysAllowed: 20})
	target := f.user("target", models.RoleNormal, "B", nil)

	got, err := services.NewBalanceService(f.store, f.log).Remaining(f.ctx, target.ID.Hex())

	require.NoError(t, err)
	assert.Equal(t, []dto.RemainingLeave{{LeaveTypeName: "Annual", RemainingDays: 20}}, got)
}

func TestBalanceService_Errors(t *testing.T) {
	f := newFixture(t)
	svc := services.NewBalanceService(f.store, f.log)

	t.Run("invalid id", func(t *testing.T) {
		_, err := svc.Remaining(f.ctx, "abc")
		assert.Equal(t, apperror.CodeValidationError, code(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Remaining(f.ctx, bson.NewObjectID().Hex())
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})

	t.Run("missing organization", func(t *testing.T) {
		u := f.user("orphan", models.RoleNormal, "NOPE", nil)
		_, err := svc.Remaining(f.ctx, u.ID.Hex())
		assert.ErrorIs(t, err, services.ErrLeaveTypesNotFound)
	})

	t.Run("organization without leave types", func(t *testing.T) {
		f.org("EMPTY")
		u := f.user("empty", models.RoleNormal, "EMPTY", nil)
		got, err := svc.Remaining(f.ctx, u.ID.Hex())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("store failure", func(t *testing.T) {
		f.org("ORG")
		u := f.user("store", models.RoleNormal, "ORG", nil)
		store := f.store
		store.Leaves = failingLeaves{err: errors.New("socket closed")}

		_, err := services.NewBalanceService(store, f.log).Remaining(f.ctx, u.ID.Hex())
		assert.Equal(t, apperror.CodeStoreFailure, code(err))
	})
}
