package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"leave-backend/internal/apperror"
	"leave-backend/internal/models"
	"leave-backend/internal/repository"
	"leave-backend/internal/repository/memory"
)

// day returns midnight UTC of the given day in March 2024.
func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store repository.Store
	log   *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		t:     t,
		ctx:   context.Background(),
		store: memory.NewStore(),
		log:   zap.NewNop(),
	}
}

func (f *fixture) user(name, role, org string, supervisor *bson.ObjectID) *models.User {
	f.t.Helper()
	u := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		Role:         role,
		Organization: org,
		Supervisor:   supervisor,
		Gender:       "Other",
	}
	require.NoError(f.t, f.store.Users.Register(f.ctx, u))
	return u
}

func (f *fixture) org(id string, types ...models.LeaveType) models.Organization {
	f.t.Helper()
	orgs, err := f.store.Organizations.InsertMany(f.ctx, []models.Organization{{OrganizationID: id, LeaveTypes: types}})
	require.NoError(f.t, err)
	return orgs[0]
}

func (f *fixture) leave(userID bson.ObjectID, leaveType, status string, start, end time.Time) *models.LeaveRequest {
	f.t.Helper()
	l := &models.LeaveRequest{
		UserID:        userID,
		StartDate:     start,
		EndDate:       end,
		LeaveType:     leaveType,
		Status:        status,
		DateOfRequest: day(1),
	}
	require.NoError(f.t, f.store.Leaves.Create(f.ctx, l))
	return l
}

func code(err error) string {
	if err == nil {
		return ""
	}
	return apperror.From(err).Code
}

// failingLeaves fails every call with err.
type failingLeaves struct {
	repository.LeaveRepository
	err error
}

func (f failingLeaves) FindByID(context.Context, bson.ObjectID) (*models.LeaveRequest, error) {
	return nil, f.err
}

func (f failingLeaves) FindByUserAndStatus(context.Context, bson.ObjectID, string) ([]models.LeaveRequest, error) {
	return nil, f.err
}

func (f failingLeaves) FindWithUsers(context.Context, repository.LeaveFilter) ([]models.LeaveWithUsers, error) {
	return nil, f.err
}

func ctxBackground() context.Context {
	return context.Background()
}
