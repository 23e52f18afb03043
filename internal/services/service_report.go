package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"leave-backend/dto"
	"leave-backend/internal/apperror"
	"leave-backend/internal/models"
	"leave-backend/internal/repository"
	"leave-backend/internal/utils"
)

type ReportService interface {
	PendingBySupervisor(ctx context.Context, supervisorID string) ([]dto.PendingLeaveView, error)
	HistoryBySupervisor(ctx context.Context, supervisorID string) ([]dto.EvaluatedLeaveView, error)
	ByDateRange(ctx context.Context, startDate, endDate string) ([]dto.DateRangeLeaveView, error)
	ListByUser(ctx context.Context, userID string) ([]dto.UserLeaveView, error)
}

type reportService struct {
	users  repository.UserRepository
	leaves repository.LeaveRepository
	logger *zap.Logger
}

func NewReportService(store repository.Store, logger ...*zap.Logger) ReportService {
	return &reportService{
		users:  store.Users,
		leaves: store.Leaves,
		logger: named("report.service", logger),
	}
}

// PendingBySupervisor lists pending requests of the supervisor's direct reports.
// A SuperUser id lifts the scoping and sees every pending request.
func (s *reportService) PendingBySupervisor(ctx context.Context, supervisorID string) ([]dto.PendingLeaveView, error) {
	sid, err := parseID(supervisorID, "Supervisor Id")
	if err != nil {
		return nil, err
	}

	filter := repository.LeaveFilter{
		Statuses:     []string{models.StatusPending},
		SupervisorID: &sid,
	}

	sup, err := s.users.FindByID(ctx, sid)
	switch {
	case err == nil && sup.IsSuperUser():
		filter.SupervisorID = nil
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, s.fail("pending report supervisor lookup", err)
	}
	s.logger.Debug("pending report",
		zap.String("supervisor_id", supervisorID),
		zap.Bool("unscoped", filter.SupervisorID == nil),
	)

	rows, err := s.leaves.FindWithUsers(ctx, filter)
	if err != nil {
		return nil, s.fail("pending report", err)
	}

	out := make([]dto.PendingLeaveView, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PendingLeaveView{
			ID:             r.ID,
			LeaveStartDate: utils.FormatDate(r.StartDate),
			LeaveType:      r.LeaveType,
			Reason:         r.Reason,
			DateOfRequest:  utils.FormatDate(r.DateOfRequest),
			UserID:         r.User.ID,
			UserName:       r.User.Name,
			UserRole:       r.User.Role,
			UserPhotoURL:   r.User.PhotoURL,
			Organization:   r.User.Organization,
			NoOfDays:       RoundedDays(r.LeaveRequest),
		})
	}
	return out, nil
}

// HistoryBySupervisor lists approved and rejected requests of the supervisor's direct reports.
// No SuperUser bypass applies here.
func (s *reportService) HistoryBySupervisor(ctx context.Context, supervisorID string) ([]dto.EvaluatedLeaveView, error) {
	sid, err := parseID(supervisorID, "Supervisor Id")
	if err != nil {
		return nil, err
	}
	s.logger.Debug("history report", zap.String("supervisor_id", supervisorID))

	rows, err := s.leaves.FindWithUsers(ctx, repository.LeaveFilter{
		Statuses:     []string{models.StatusApproved, models.StatusRejected},
		SupervisorID: &sid,
		WithDeciders: true,
	})
	if err != nil {
		return nil, s.fail("history report", err)
	}

	out := make([]dto.EvaluatedLeaveView, 0, len(rows))
	for _, r := range rows {
		out = append(out, evaluatedView(r))
	}
	return out, nil
}

// evaluatedView fills only the decision block that matches the status.
func evaluatedView(r models.LeaveWithUsers) dto.EvaluatedLeaveView {
	v := dto.EvaluatedLeaveView{
		ID:             r.ID,
		LeaveStartDate: utils.FormatDate(r.StartDate),
		LeaveType:      r.LeaveType,
		Reason:         r.Reason,
		DateOfRequest:  utils.FormatDate(r.DateOfRequest),
		Status:         r.Status,
		UserID:         r.User.ID,
		UserName:       r.User.Name,
		UserRole:       r.User.Role,
		UserPhotoURL:   r.User.PhotoURL,
		Organization:   r.User.Organization,
		NoOfDays:       ElapsedDays(r.LeaveRequest),
	}

	switch r.Status {
	case models.StatusApproved:
		v.ApprovedDate = utils.FormatDatePtr(r.ApprovedDate)
		v.ApprovedBy = decider(r.Approver)
	case models.StatusRejected:
		v.RejectedDate = utils.FormatDatePtr(r.RejectedDate)
		v.RejectedBy = decider(r.Rejecter)
		v.RejectedReason = r.RejectedReason
	}
	return v
}

func decider(u *models.User) *dto.Decider {
	if u == nil {
		return nil
	}
	return &dto.Decider{
		ID:           u.ID,
		Name:         u.Name,
		Role:         u.Role,
		PhotoURL:     u.PhotoURL,
		Organization: u.Organization,
	}
}

// ByDateRange returns every request whose [start_date, end_date] overlaps the query days,
// whatever its status.
func (s *reportService) ByDateRange(ctx context.Context, startDate, endDate string) ([]dto.DateRangeLeaveView, error) {
	if strings.TrimSpace(startDate) == "" || strings.TrimSpace(endDate) == "" {
		return nil, apperror.InvalidInput("Both start_date and end_date are required.")
	}
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, apperror.InvalidField("Start Date")
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, apperror.InvalidField("End Date")
	}

	rng := repository.DateRange{Start: utils.TruncateDay(start), End: utils.TruncateDay(end)}
	if rng.Start.After(rng.End) {
		s.logger.Warn("date range rejected",
			zap.String("start_date", startDate),
			zap.String("end_date", endDate),
		)
		return nil, apperror.InvalidInput("start_date must not be after end_date")
	}

	rows, err := s.leaves.FindWithUsers(ctx, repository.LeaveFilter{Overlapping: &rng})
	if err != nil {
		return nil, s.fail("date range report", err)
	}

	out := make([]dto.DateRangeLeaveView, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DateRangeLeaveView{
			ID:               r.ID,
			UserID:           r.UserID,
			StartDate:        rfc3339(r.StartDate),
			EndDate:          rfc3339(r.EndDate),
			LeaveType:        r.LeaveType,
			Status:           r.Status,
			Reason:           r.Reason,
			DateOfRequest:    rfc3339(r.DateOfRequest),
			RejectedDate:     utils.TimeToRFC3339(r.RejectedDate),
			ApprovedDate:     utils.TimeToRFC3339(r.ApprovedDate),
			UserName:         r.User.Name,
			UserEmail:        r.User.Email,
			UserRole:         r.User.Role,
			UserPhotoURL:     r.User.PhotoURL,
			UserOrganization: r.User.Organization,
		})
	}
	return out, nil
}

// ListByUser returns the user's requests with a floor day count in place of the dates.
func (s *reportService) ListByUser(ctx context.Context, userID string) ([]dto.UserLeaveView, error) {
	uid, err := parseID(userID, "User Id")
	if err != nil {
		return nil, err
	}

	leaves, err := s.leaves.FindByUser(ctx, uid)
	if err != nil {
		return nil, s.fail("list by user", err)
	}

	out := make([]dto.UserLeaveView, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, dto.UserLeaveView{
			ID:             l.ID,
			LeaveType:      l.LeaveType,
			Status:         l.Status,
			Reason:         l.Reason,
			DateOfRequest:  rfc3339(l.DateOfRequest),
			ApprovedDate:   utils.TimeToRFC3339(l.ApprovedDate),
			ApprovedBy:     l.ApprovedBy,
			RejectedDate:   utils.TimeToRFC3339(l.RejectedDate),
			RejectedBy:     l.RejectedBy,
			RejectedReason: l.RejectedReason,
			NoOfDays:       LeaveDuration(l),
		})
	}
	return out, nil
}

func (s *reportService) fail(msg string, err error) error {
	mapped := storeErr(err, nil)
	logFailure(s.logger, msg, err, mapped)
	return mapped
}

func rfc3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
