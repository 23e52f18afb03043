package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/internal/models"
)

const (
	UsersCollection         = "users"
	OrganizationsCollection = "organizations"
	LeavesCollection        = "leaverequests"
)

var (
	ErrNotFound              = errors.New("document not found")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrDuplicateOrganization = errors.New("organization id already exists")
)

type UserRepository interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	SearchByName(ctx context.Context, fragment string) ([]models.User, error)
	// Register inserts u unless a user with the same email exists; check and insert are one unit.
	Register(ctx context.Context, u *models.User) error
	Save(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type OrganizationRepository interface {
	InsertMany(ctx context.Context, orgs []models.Organization) ([]models.Organization, error)
	FindAll(ctx context.Context) ([]models.Organization, error)
	FindByOrganizationID(ctx context.Context, organizationID string) (*models.Organization, error)
	AddLeaveType(ctx context.Context, id bson.ObjectID, lt models.LeaveType) (*models.Organization, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// DateRange is an inclusive interval used for overlap queries.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// LeaveFilter selects leave requests for the joined report queries.
type LeaveFilter struct {
	Statuses     []string
	SupervisorID *bson.ObjectID
	Overlapping  *DateRange
	// WithDeciders also joins the users referenced by approved_by and rejected_by.
	WithDeciders bool
}

type LeaveRepository interface {
	Create(ctx context.Context, l *models.LeaveRequest) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.LeaveRequest, error)
	FindAll(ctx context.Context) ([]models.LeaveRequest, error)
	FindByUser(ctx context.Context, userID bson.ObjectID) ([]models.LeaveRequest, error)
	FindByUserAndStatus(ctx context.Context, userID bson.ObjectID, status string) ([]models.LeaveRequest, error)
	// Save replaces the whole document; unset optional fields are removed.
	Save(ctx context.Context, l *models.LeaveRequest) error
	FindWithUsers(ctx context.Context, f LeaveFilter) ([]models.LeaveWithUsers, error)
}

// Store bundles the repositories handed to services.
type Store struct {
	Users         UserRepository
	Organizations OrganizationRepository
	Leaves        LeaveRepository
}
