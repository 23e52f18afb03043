package memory

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/internal/models"
	"leave-backend/internal/repository"
)

type leaveRepo struct {
	db *DB
}

func (r *leaveRepo) Create(_ context.Context, l *models.LeaveRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if l.ID.IsZero() {
		l.ID = bson.NewObjectID()
	}
	r.db.requests = append(r.db.requests, *l)
	return nil
}

func (r *leaveRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.LeaveRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, l := range r.db.requests {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *leaveRepo) FindAll(_ context.Context) ([]models.LeaveRequest, error) {
	return r.filter(func(models.LeaveRequest) bool { return true }), nil
}

func (r *leaveRepo) FindByUser(_ context.Context, userID bson.ObjectID) ([]models.LeaveRequest, error) {
	return r.filter(func(l models.LeaveRequest) bool { return l.UserID == userID }), nil
}

func (r *leaveRepo) FindByUserAndStatus(_ context.Context, userID bson.ObjectID, status string) ([]models.LeaveRequest, error) {
	return r.filter(func(l models.LeaveRequest) bool {
		return l.UserID == userID && l.Status == status
	}), nil
}

func (r *leaveRepo) filter(keep func(models.LeaveRequest) bool) []models.LeaveRequest {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []models.LeaveRequest{}
	for _, l := range r.db.requests {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

func (r *leaveRepo) Save(_ context.Context, l *models.LeaveRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.requests {
		if r.db.requests[i].ID == l.ID {
			r.db.requests[i] = *l
			return nil
		}
	}
	return repository.ErrNotFound
}

// FindWithUsers mirrors repository.BuildLeavePipeline: leave filters, inner join on the
// requester, supervisor scoping, then optional joins on the deciding users.
func (r *leaveRepo) FindWithUsers(_ context.Context, f repository.LeaveFilter) ([]models.LeaveWithUsers, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := []models.LeaveWithUsers{}
	for _, l := range r.db.requests {
		if l.UserID.IsZero() || !matchLeave(l, f) {
			continue
		}
		requester, ok := r.db.userByID(l.UserID)
		if !ok {
			continue
		}
		if f.SupervisorID != nil && !requester.ReportsTo(*f.SupervisorID) {
			continue
		}

		row := models.LeaveWithUsers{LeaveRequest: l, User: hidePassword(requester)}
		if f.WithDeciders {
			row.Approver = r.db.decider(l.ApprovedBy)
			row.Rejecter = r.db.decider(l.RejectedBy)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func matchLeave(l models.LeaveRequest, f repository.LeaveFilter) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, l.Status) {
		return false
	}
	if f.Overlapping != nil {
		if l.StartDate.After(f.Overlapping.End) || l.EndDate.Before(f.Overlapping.Start) {
			return false
		}
	}
	return true
}

func (db *DB) decider(id *bson.ObjectID) *models.User {
	if id == nil {
		return nil
	}
	u, ok := db.userByID(*id)
	if !ok {
		return nil
	}
	u = hidePassword(u)
	return &u
}

func hidePassword(u models.User) models.User {
	u.PasswordHash = ""
	return u
}
