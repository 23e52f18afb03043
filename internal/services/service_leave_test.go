package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/dto"
	"leave-backend/internal/apperror"
	"leave-backend/internal/models"
	"leave-backend/internal/services"
)

func TestLeaveService_Create(t *testing.T) {
	f := newFixture(t)
	u := f.user("u", models.RoleNormal, "ORG", nil)
	other := f.user("other", models.RoleNormal, "ORG", nil)
	svc := services.NewLeaveService(f.store, f.log)

	t.Run("defaults to the caller", func(t *testing.T) {
		l, err := svc.Create(f.ctx, u.ID, dto.CreateLeaveReq{
			StartDate: "2024-03-10",
			EndDate:   "2024-03-12",
			LeaveType: "Annual",
			Reason:    "trip",
		})
		require.NoError(t, err)
		assert.False(t, l.ID.IsZero())
		assert.Equal(t, u.ID, l.UserID)
		assert.Equal(t, models.StatusPending, l.Status)
		assert.Equal(t, day(10), l.StartDate)
		assert.WithinDuration(t, time.Now(), l.DateOfRequest, time.Minute)

		stored, err := f.store.Leaves.FindByID(f.ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, "trip", stored.Reason)
	})

	t.Run("explicit user", func(t *testing.T) {
		l, err := svc.Create(f.ctx, u.ID, dto.CreateLeaveReq{
			UserID:    other.ID.Hex(),
			StartDate: "2024-03-10T00:00:00Z",
			EndDate:   "2024-03-10T00:00:00Z",
			LeaveType: "Sick",
		})
		require.NoError(t, err)
		assert.Equal(t, other.ID, l.UserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Create(f.ctx, bson.NewObjectID(), dto.CreateLeaveReq{
			StartDate: "2024-03-10", EndDate: "2024-03-11", LeaveType: "Annual",
		})
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})

	t.Run("bad dates", func(t *testing.T) {
		_, err := svc.Create(f.ctx, u.ID, dto.CreateLeaveReq{
			StartDate: "10/03/2024", EndDate: "2024-03-11", LeaveType: "Annual",
		})
		assert.Equal(t, apperror.CodeValidationError, code(err))

		_, err = svc.Create(f.ctx, u.ID, dto.CreateLeaveReq{
			StartDate: "2024-03-11", EndDate: "2024-03-10", LeaveType: "Annual",
		})
		assert.Equal(t, apperror.CodeInvalidInput, code(err))
	})
}

func assertCleanApproval(t *testing.T, l *models.LeaveRequest, by bson.ObjectID) {
	t.Helper()
	assert.Equal(t, models.StatusApproved, l.Status)
	require.NotNil(t, l.ApprovedBy)
	assert.Equal(t, by, *l.ApprovedBy)
	assert.NotNil(t, l.ApprovedDate)
	assert.Nil(t, l.RejectedBy)
	assert.Nil(t, l.RejectedDate)
	assert.Nil(t, l.RejectedReason)
}

func TestLeaveService_ApproveRejectRoundTrip(t *testing.T) {
	f := newFixture(t)
	boss := f.user("boss", models.RoleSupervisor, "ORG", nil)
	u := f.user("u", models.RoleNormal, "ORG", &boss.ID)
	l := f.leave(u.ID, "Annual", models.StatusPending, day(1), day(2))
	svc := services.NewLeaveService(f.store, f.log)

	got, err := svc.Approve(f.ctx, l.ID.Hex(), boss.ID)
	require.NoError(t, err)
	assertCleanApproval(t, got, boss.ID)

	got, err = svc.Reject(f.ctx, l.ID.Hex(), boss.ID, "staffing")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	assert.Nil(t, got.ApprovedBy)
	assert.Nil(t, got.ApprovedDate)
	require.NotNil(t, got.RejectedReason)
	assert.Equal(t, "staffing", *got.RejectedReason)

	got, err = svc.Approve(f.ctx, l.ID.Hex(), boss.ID)
	require.NoError(t, err)
	assertCleanApproval(t, got, boss.ID)

	stored, err := f.store.Leaves.FindByID(f.ctx, l.ID)
	require.NoError(t, err)
	assertCleanApproval(t, stored, boss.ID)
}

func TestLeaveService_Transitions(t *testing.T) {
	by := bson.NewObjectID()

	cases := []struct {
		name    string
		from    string
		op      func(svc services.LeaveService, id string) (*models.LeaveRequest, error)
		wantErr bool
		want    string
	}{
		{"approve pending", models.StatusPending, approveOp(by), false, models.StatusApproved},
		{"approve rejected", models.StatusRejected, approveOp(by), false, models.StatusApproved},
		{"approve approved", models.StatusApproved, approveOp(by), true, ""},
		{"reject pending", models.StatusPending, rejectOp(by), false, models.StatusRejected},
		{"reject approved", models.StatusApproved, rejectOp(by), false, models.StatusRejected},
		{"reject rejected", models.StatusRejected, rejectOp(by), true, ""},
		{"reverse approve rejected", models.StatusRejected, reverseApproveOp(by), false, models.StatusApproved},
		{"reverse approve pending", models.StatusPending, reverseApproveOp(by), true, ""},
		{"reverse reject approved", models.StatusApproved, reverseRejectOp(by), false, models.StatusRejected},
		{"reverse reject pending", models.StatusPending, reverseRejectOp(by), true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			l := f.leave(bson.NewObjectID(), "Annual", tc.from, day(1), day(2))
			svc := services.NewLeaveService(f.store, f.log)

			got, err := tc.op(svc, l.ID.Hex())
			if tc.wantErr {
				assert.Equal(t, apperror.CodeInvalidState, code(err))
				stored, ferr := f.store.Leaves.FindByID(f.ctx, l.ID)
				require.NoError(t, ferr)
				assert.Equal(t, tc.from, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Status)
		})
	}
}

func approveOp(by bson.ObjectID) func(services.LeaveService, string) (*models.LeaveRequest, error) {
	return func(svc services.LeaveService, id string) (*models.LeaveRequest, error) {
		return svc.Approve(ctxBackground(), id, by)
	}
}

func rejectOp(by bson.ObjectID) func(services.LeaveService, string) (*models.LeaveRequest, error) {
	return func(svc services.LeaveService, id string) (*models.LeaveRequest, error) {
		return svc.Reject(ctxBackground(), id, by, "no")
	}
}

func reverseApproveOp(by bson.ObjectID) func(services.LeaveService, string) (*models.LeaveRequest, error) {
	return func(svc services.LeaveService, id string) (*models.LeaveRequest, error) {
		return svc.ReverseApprove(ctxBackground(), id, by)
	}
}

func reverseRejectOp(by bson.ObjectID) func(services.LeaveService, string) (*models.LeaveRequest, error) {
	return func(svc services.LeaveService, id string) (*models.LeaveRequest, error) {
		return svc.ReverseReject(ctxBackground(), id, by, "no")
	}
}

func TestLeaveService_SetStatusKeepsMetadata(t *testing.T) {
	f := newFixture(t)
	boss := bson.NewObjectID()
	l := f.leave(bson.NewObjectID(), "Annual", models.StatusPending, day(1), day(2))
	svc := services.NewLeaveService(f.store, f.log)

	_, err := svc.Approve(f.ctx, l.ID.Hex(), boss)
	require.NoError(t, err)

	got, err := svc.SetStatus(f.ctx, l.ID.Hex(), models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, boss, *got.ApprovedBy)
	assert.Nil(t, got.RejectedBy)

	_, err = svc.SetStatus(f.ctx, l.ID.Hex(), "Cancelled")
	assert.Equal(t, apperror.CodeValidationError, code(err))
}

func TestLeaveService_NotFoundAndStoreFailure(t *testing.T) {
	f := newFixture(t)
	svc := services.NewLeaveService(f.store, f.log)

	_, err := svc.Approve(f.ctx, bson.NewObjectID().Hex(), bson.NewObjectID())
	assert.ErrorIs(t, err, services.ErrLeaveNotFound)

	_, err = svc.Reject(f.ctx, "not-an-id", bson.NewObjectID(), "")
	assert.Equal(t, apperror.CodeValidationError, code(err))

	store := f.store
	cause := errors.New("connection refused")
	store.Leaves = failingLeaves{err: cause}
	_, err = services.NewLeaveService(store, f.log).ReverseReject(f.ctx, bson.NewObjectID().Hex(), bson.NewObjectID(), "")
	assert.Equal(t, apperror.CodeStoreFailure, code(err))
	assert.ErrorIs(t, err, cause)
}

func TestLeaveService_ListAll(t *testing.T) {
	f := newFixture(t)
	f.leave(bson.NewObjectID(), "Annual", models.StatusPending, day(1), day(2))
	f.leave(bson.NewObjectID(), "Sick", models.StatusApproved, day(3), day(4))

	got, err := services.NewLeaveService(f.store, f.log).ListAll(f.ctx)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}
