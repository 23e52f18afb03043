// Package memory keeps users, organizations and leave requests in process memory.
// It serves the same repository interfaces as the Mongo store and is used by tests
// and by STORE_DRIVER=memory.
package memory

import (
	"context"
	"regexp"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/internal/models"
	"leave-backend/internal/repository"
)

// DB holds every collection behind one lock so joins see a consistent snapshot.
type DB struct {
	mu sync.RWMutex

	users    []models.User
	orgs     []models.Organization
	requests []models.LeaveRequest
}

func NewDB() *DB {
	return &DB{}
}

// NewStore returns a repository.Store backed by a fresh DB.
func NewStore() repository.Store {
	return NewDB().Store()
}

func (db *DB) Store() repository.Store {
	return repository.Store{
		Users:         &userRepo{db: db},
		Organizations: &orgRepo{db: db},
		Leaves:        &leaveRepo{db: db},
	}
}

func (db *DB) userIndex(id bson.ObjectID) int {
	for i := range db.users {
		if db.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (db *DB) userByID(id bson.ObjectID) (models.User, bool) {
	if i := db.userIndex(id); i >= 0 {
		return db.users[i], true
	}
	return models.User{}, false
}

type userRepo struct {
	db *DB
}

func (r *userRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.userByID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) FindAll(_ context.Context) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]models.User, len(r.db.users))
	copy(out, r.db.users)
	return out, nil
}

func (r *userRepo) SearchByName(_ context.Context, fragment string) ([]models.User, error) {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(fragment))
	if err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []models.User{}
	for _, u := range r.db.users {
		if re.MatchString(u.Name) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *userRepo) Register(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	r.db.users = append(r.db.users, *u)
	return nil
}

func (r *userRepo) Save(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.db.userIndex(u.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	for j, other := range r.db.users {
		if j != i && other.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.db.users[i] = *u
	return nil
}

func (r *userRepo) Delete(_ context.Context, id bson.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.db.userIndex(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.db.users = append(r.db.users[:i], r.db.users[i+1:]...)
	return nil
}

type orgRepo struct {
	db *DB
}

func (r *orgRepo) InsertMany(_ context.Context, orgs []models.Organization) ([]models.Organization, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]models.Organization, 0, len(orgs))
	for _, o := range orgs {
		repository.PrepareOrganization(&o)
		for _, existing := range r.db.orgs {
			if existing.OrganizationID == o.OrganizationID {
				return nil, repository.ErrDuplicateOrganization
			}
		}
		out = append(out, o)
	}
	if repository.HasDuplicateOrganizationID(out) {
		return nil, repository.ErrDuplicateOrganization
	}
	r.db.orgs = append(r.db.orgs, out...)
	return out, nil
}

func (r *orgRepo) FindAll(_ context.Context) ([]models.Organization, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]models.Organization, len(r.db.orgs))
	copy(out, r.db.orgs)
	return out, nil
}

func (r *orgRepo) FindByOrganizationID(_ context.Context, organizationID string) (*models.Organization, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, o := range r.db.orgs {
		if o.OrganizationID == organizationID {
			return cloneOrg(o), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *orgRepo) AddLeaveType(_ context.Context, id bson.ObjectID, lt models.LeaveType) (*models.Organization, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.orgs {
		if r.db.orgs[i].ID == id {
			r.db.orgs[i].LeaveTypes = append(r.db.orgs[i].LeaveTypes, lt)
			return cloneOrg(r.db.orgs[i]), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *orgRepo) Delete(_ context.Context, id bson.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.orgs {
		if r.db.orgs[i].ID == id {
			r.db.orgs = append(r.db.orgs[:i], r.db.orgs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func cloneOrg(o models.Organization) *models.Organization {
	lts := make([]models.LeaveType, len(o.LeaveTypes))
	copy(lts, o.LeaveTypes)
	o.LeaveTypes = lts
	return &o
}
