package services

import (
	"context"

	"go.uber.org/zap"

	"leave-backend/dto"
	"leave-backend/internal/apperror"
	"leave-backend/internal/models"
	"leave-backend/internal/repository"
)

type BalanceService interface {
	Remaining(ctx context.Context, userID string) ([]dto.RemainingLeave, error)
}

type balanceService struct {
	users  repository.UserRepository
	orgs   repository.OrganizationRepository
	leaves repository.LeaveRepository
	logger *zap.Logger
}

func NewBalanceService(store repository.Store, logger ...*zap.Logger) BalanceService {
	return &balanceService{
		users:  store.Users,
		orgs:   store.Organizations,
		leaves: store.Leaves,
		logger: named("balance.service", logger),
	}
}

// Remaining reports, per leave type of the user's organization, the allowance left
// after the user's approved requests.
func (s *balanceService) Remaining(ctx context.Context, userID string) ([]dto.RemainingLeave, error) {
	uid, err := parseID(userID, "User Id")
	if err != nil {
		return nil, err
	}
	s.logger.Debug("remaining balance requested", zap.String("user_id", userID))

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, s.fail("load user", err, ErrUserNotFound)
	}

	org, err := s.orgs.FindByOrganizationID(ctx, user.Organization)
	if err != nil {
		return nil, s.fail("load organization", err, ErrLeaveTypesNotFound)
	}

	approved, err := s.leaves.FindByUserAndStatus(ctx, uid, models.StatusApproved)
	if err != nil {
		return nil, s.fail("load approved leaves", err, nil)
	}

	return ComputeRemaining(org.LeaveTypes, approved), nil
}

func (s *balanceService) fail(step string, err error, notFound *apperror.AppError) error {
	mapped := storeErr(err, notFound)
	logFailure(s.logger, "remaining balance "+step, err, mapped)
	return mapped
}

// ComputeRemaining subtracts the floor durations of approved requests from each leave
// type's allowance. Requests are matched to types by exact name; other statuses are ignored.
func ComputeRemaining(types []models.LeaveType, leaves []models.LeaveRequest) []dto.RemainingLeave {
	used := make(map[string]int, len(types))
	for _, l := range leaves {
		if l.Status != models.StatusApproved {
			continue
		}
		used[l.LeaveType] += LeaveDuration(l)
	}

	out := make([]dto.RemainingLeave, 0, len(types))
	for _, t := range types {
		out = append(out, dto.RemainingLeave{
			LeaveTypeName: t.LeaveTypeName,
			RemainingDays: t.NumberOfDaysAllowed - used[t.LeaveTypeName],
		})
	}
	return out
}
