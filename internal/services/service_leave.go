package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"leave-backend/dto"
	"leave-backend/internal/apperror"
	"leave-backend/internal/models"
	"leave-backend/internal/repository"
	"leave-backend/internal/utils"
)

type LeaveService interface {
	Create(ctx context.Context, actorID bson.ObjectID, req dto.CreateLeaveReq) (*models.LeaveRequest, error)
	ListAll(ctx context.Context) ([]models.LeaveRequest, error)
	// SetStatus overwrites the status label only; decision metadata is left untouched.
	SetStatus(ctx context.Context, leaveID, status string) (*models.LeaveRequest, error)
	Approve(ctx context.Context, leaveID string, approverID bson.ObjectID) (*models.LeaveRequest, error)
	Reject(ctx context.Context, leaveID string, rejecterID bson.ObjectID, reason string) (*models.LeaveRequest, error)
	ReverseApprove(ctx context.Context, leaveID string, approverID bson.ObjectID) (*models.LeaveRequest, error)
	ReverseReject(ctx context.Context, leaveID string, rejecterID bson.ObjectID, reason string) (*models.LeaveRequest, error)
}

// Source states accepted by each decision.
var (
	approveFrom        = []string{models.StatusPending, models.StatusRejected}
	rejectFrom         = []string{models.StatusPending, models.StatusApproved}
	reverseApproveFrom = []string{models.StatusRejected}
	reverseRejectFrom  = []string{models.StatusApproved}
)

type leaveService struct {
	users  repository.UserRepository
	leaves repository.LeaveRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewLeaveService(store repository.Store, logger ...*zap.Logger) LeaveService {
	return &leaveService{
		users:  store.Users,
		leaves: store.Leaves,
		now:    time.Now,
		logger: named("leave.service", logger),
	}
}

func (s *leaveService) Create(ctx context.Context, actorID bson.ObjectID, req dto.CreateLeaveReq) (*models.LeaveRequest, error) {
	s.logger.Debug("create leave requested",
		zap.String("actor_id", actorID.Hex()),
		zap.String("user_id", req.UserID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	userID := actorID
	if req.UserID != "" {
		id, err := parseID(req.UserID, "User Id")
		if err != nil {
			return nil, err
		}
		userID = id
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperror.InvalidField("Start Date")
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperror.InvalidField("End Date")
	}
	if end.Before(start) {
		s.logger.Warn("create leave validation failed",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return nil, apperror.InvalidInput("end_date must not be before start_date")
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, s.fail("create leave user lookup", err, ErrUserNotFound)
	}

	l := &models.LeaveRequest{
		UserID:        userID,
		StartDate:     start,
		EndDate:       end,
		LeaveType:     strings.TrimSpace(req.LeaveType),
		Status:        models.StatusPending,
		Reason:        req.Reason,
		DateOfRequest: s.now().UTC(),
	}
	if err := s.leaves.Create(ctx, l); err != nil {
		return nil, s.fail("create leave persist", err, nil)
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.Hex()),
		zap.String("user_id", userID.Hex()),
	)
	return l, nil
}

func (s *leaveService) ListAll(ctx context.Context) ([]models.LeaveRequest, error) {
	leaves, err := s.leaves.FindAll(ctx)
	if err != nil {
		return nil, s.fail("list leaves", err, nil)
	}
	return leaves, nil
}

func (s *leaveService) SetStatus(ctx context.Context, leaveID, status string) (*models.LeaveRequest, error) {
	if !models.ValidStatus(status) {
		return nil, apperror.InvalidField("Status")
	}
	return s.mutate(ctx, "set status", leaveID, nil, func(l *models.LeaveRequest) {
		l.Status = status
	})
}

func (s *leaveService) Approve(ctx context.Context, leaveID string, approverID bson.ObjectID) (*models.LeaveRequest, error) {
	return s.mutate(ctx, "approve", leaveID, approveFrom, s.approval(approverID))
}

func (s *leaveService) Reject(ctx context.Context, leaveID string, rejecterID bson.ObjectID, reason string) (*models.LeaveRequest, error) {
	return s.mutate(ctx, "reject", leaveID, rejectFrom, s.rejection(rejecterID, reason))
}

func (s *leaveService) ReverseApprove(ctx context.Context, leaveID string, approverID bson.ObjectID) (*models.LeaveRequest, error) {
	return s.mutate(ctx, "reverse approve", leaveID, reverseApproveFrom, s.approval(approverID))
}

func (s *leaveService) ReverseReject(ctx context.Context, leaveID string, rejecterID bson.ObjectID, reason string) (*models.LeaveRequest, error) {
	return s.mutate(ctx, "reverse reject", leaveID, reverseRejectFrom, s.rejection(rejecterID, reason))
}

func (s *leaveService) approval(by bson.ObjectID) func(*models.LeaveRequest) {
	return func(l *models.LeaveRequest) {
		now := s.now().UTC()
		l.Status = models.StatusApproved
		l.ApprovedDate = &now
		l.ApprovedBy = &by
		l.RejectedDate = nil
		l.RejectedBy = nil
		l.RejectedReason = nil
	}
}

func (s *leaveService) rejection(by bson.ObjectID, reason string) func(*models.LeaveRequest) {
	return func(l *models.LeaveRequest) {
		now := s.now().UTC()
		l.Status = models.StatusRejected
		l.RejectedDate = &now
		l.RejectedBy = &by
		l.RejectedReason = nil
		if reason = strings.TrimSpace(reason); reason != "" {
			l.RejectedReason = &reason
		}
		l.ApprovedDate = nil
		l.ApprovedBy = nil
	}
}

// mutate loads the request, checks the source state when from is non-nil, applies the
// change and replaces the stored document.
func (s *leaveService) mutate(ctx context.Context, op, leaveID string, from []string, apply func(*models.LeaveRequest)) (*models.LeaveRequest, error) {
	id, err := parseID(leaveID, "Leave Id")
	if err != nil {
		return nil, err
	}
	s.logger.Debug(op+" leave requested", zap.String("leave_id", leaveID))

	l, err := s.leaves.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(op+" leave lookup", err, ErrLeaveNotFound, zap.String("leave_id", leaveID))
	}

	if from != nil && !slices.Contains(from, l.Status) {
		s.logger.Warn(op+" leave rejected",
			zap.String("leave_id", leaveID),
			zap.String("status", l.Status),
		)
		return nil, apperror.InvalidState("Cannot " + op + " a leave request that is " + l.Status)
	}

	prev := l.Status
	apply(l)
	if err := s.leaves.Save(ctx, l); err != nil {
		return nil, s.fail(op+" leave persist", err, ErrLeaveNotFound, zap.String("leave_id", leaveID))
	}

	s.logger.Info(op+" leave success",
		zap.String("leave_id", leaveID),
		zap.String("from", prev),
		zap.String("to", l.Status),
	)
	return l, nil
}

func (s *leaveService) fail(msg string, err error, notFound *apperror.AppError, fields ...zap.Field) error {
	mapped := storeErr(err, notFound)
	logFailure(s.logger, msg, err, mapped, fields...)
	return mapped
}
