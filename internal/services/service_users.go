package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"leave-backend/dto"
	"leave-backend/internal/apperror"
	"leave-backend/internal/models"
	"leave-backend/internal/repository"
)

type UserService interface {
	// Register creates a user without credentials; the first login sets them.
	Register(ctx context.Context, req dto.RegisterUserReq) (*models.User, error)
	Login(ctx context.Context, req dto.LoginReq) (*dto.LoginResponse, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Search(ctx context.Context, name string) ([]models.User, error)
	Delete(ctx context.Context, userID string) error
	UpdateRoleSupervisor(ctx context.Context, userID string, req dto.UpdateRoleSupervisorReq) (*models.User, error)
	AssignSupervisor(ctx context.Context, userID string, req dto.AssignSupervisorReq) (*models.User, error)
	UpdateOrganization(ctx context.Context, userID string, req dto.UpdateOrganizationReq) (*models.User, error)
	UpdateDetails(ctx context.Context, userID string, req dto.UpdateUserReq) (*models.User, error)
	// EnsureBootstrapAdmin creates a SuperUser with the given email unless one exists.
	EnsureBootstrapAdmin(ctx context.Context, email, name, organization string) error
}

type userService struct {
	users  repository.UserRepository
	tokens *TokenIssuer
	now    func() time.Time
	logger *zap.Logger
}

func NewUserService(store repository.Store, tokens *TokenIssuer, logger ...*zap.Logger) UserService {
	return &userService{
		users:  store.Users,
		tokens: tokens,
		now:    time.Now,
		logger: named("user.service", logger),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req dto.RegisterUserReq) (*models.User, error) {
	email := normalizeEmail(req.Email)
	s.logger.Debug("register user requested", zap.String("email", email))

	role := req.Role
	if role == "" {
		role = models.RoleNormal
	}

	now := s.now().UTC()
	u := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Role:         role,
		PhotoURL:     req.PhotoURL,
		Organization: strings.TrimSpace(req.Organization),
		Gender:       req.Gender,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if req.Supervisor != "" {
		sid, err := s.supervisor(ctx, req.Supervisor)
		if err != nil {
			logFailure(s.logger, "register supervisor lookup", err, err, zap.String("email", email))
			return nil, err
		}
		u.Supervisor = &sid
	}

	if err := s.users.Register(ctx, u); err != nil {
		return nil, s.fail("register user", err, nil, zap.String("email", email))
	}

	s.logger.Info("register user success",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", u.Role),
	)
	return u, nil
}

// Login checks uid against the stored bcrypt hash. Accounts without a hash take the
// presented uid as their credential.
func (s *userService) Login(ctx context.Context, req dto.LoginReq) (*dto.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("login unknown email", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, s.fail("login lookup", err, nil)
	}

	if u.PasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.UID), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("login hash failed", zap.Error(err))
			return nil, apperror.ErrInternal
		}
		u.PasswordHash = string(hash)
		s.logger.Info("first login credential stored", zap.String("user_id", u.ID.Hex()))
	} else if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.UID)) != nil {
		s.logger.Warn("login credential mismatch", zap.String("user_id", u.ID.Hex()))
		return nil, ErrInvalidCredentials
	}

	u.LastLogin = s.now().UTC()
	if err := s.users.Save(ctx, u); err != nil {
		return nil, s.fail("login persist", err, ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(u.ID.Hex())
	if err != nil {
		s.logger.Error("login sign failed", zap.Error(err))
		return nil, apperror.ErrInternal
	}

	return &dto.LoginResponse{
		Token:        token,
		UserID:       u.ID.Hex(),
		Role:         u.Role,
		Name:         u.Name,
		Email:        u.Email,
		PhotoURL:     u.PhotoURL,
		Organization: u.Organization,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	id, err := parseID(userID, "User Id")
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail("get user", err, ErrUserNotFound)
	}
	return u, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, s.fail("list users", err, nil)
	}
	return users, nil
}

func (s *userService) Search(ctx context.Context, name string) ([]models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.RequiredField("Name")
	}
	users, err := s.users.SearchByName(ctx, name)
	if err != nil {
		return nil, s.fail("search users", err, nil)
	}
	return users, nil
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	id, err := parseID(userID, "User Id")
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return s.fail("delete user", err, ErrUserNotFound)
	}
	s.logger.Info("delete user success", zap.String("user_id", userID))
	return nil
}

func (s *userService) UpdateRoleSupervisor(ctx context.Context, userID string, req dto.UpdateRoleSupervisorReq) (*models.User, error) {
	return s.update(ctx, "update role", userID, func(u *models.User) error {
		if req.Role != "" {
			u.Role = req.Role
		}
		if req.SupervisorID != "" {
			sid, err := s.supervisor(ctx, req.SupervisorID)
			if err != nil {
				return err
			}
			u.Supervisor = &sid
		}
		return nil
	})
}

func (s *userService) AssignSupervisor(ctx context.Context, userID string, req dto.AssignSupervisorReq) (*models.User, error) {
	return s.update(ctx, "assign supervisor", userID, func(u *models.User) error {
		sid, err := s.supervisor(ctx, req.SupervisorID)
		if err != nil {
			return err
		}
		u.Supervisor = &sid
		return nil
	})
}

// supervisor resolves a supervisor id to an existing user.
func (s *userService) supervisor(ctx context.Context, hex string) (bson.ObjectID, error) {
	sid, err := parseID(hex, "Supervisor Id")
	if err != nil {
		return bson.NilObjectID, err
	}
	if _, err := s.users.FindByID(ctx, sid); err != nil {
		return bson.NilObjectID, storeErr(err, ErrSupervisorNotFound)
	}
	return sid, nil
}

func (s *userService) UpdateOrganization(ctx context.Context, userID string, req dto.UpdateOrganizationReq) (*models.User, error) {
	return s.update(ctx, "update organization", userID, func(u *models.User) error {
		u.Organization = strings.TrimSpace(req.Organization)
		return nil
	})
}

func (s *userService) UpdateDetails(ctx context.Context, userID string, req dto.UpdateUserReq) (*models.User, error) {
	return s.update(ctx, "update details", userID, func(u *models.User) error {
		if req.Name != nil {
			u.Name = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			u.Email = normalizeEmail(*req.Email)
		}
		if req.Role != nil {
			u.Role = *req.Role
		}
		if req.PhotoURL != nil {
			u.PhotoURL = *req.PhotoURL
		}
		if req.Organization != nil {
			u.Organization = strings.TrimSpace(*req.Organization)
		}
		if req.Gender != nil {
			u.Gender = *req.Gender
		}
		return nil
	})
}

// update is load, modify, replace. The last writer wins.
func (s *userService) update(ctx context.Context, op, userID string, apply func(*models.User) error) (*models.User, error) {
	id, err := parseID(userID, "User Id")
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(op+" lookup", err, ErrUserNotFound, zap.String("user_id", userID))
	}
	if err := apply(u); err != nil {
		logFailure(s.logger, op, err, err, zap.String("user_id", userID))
		return nil, err
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.users.Save(ctx, u); err != nil {
		return nil, s.fail(op+" persist", err, ErrUserNotFound, zap.String("user_id", userID))
	}
	s.logger.Info(op+" success", zap.String("user_id", userID))
	return u, nil
}

func (s *userService) EnsureBootstrapAdmin(ctx context.Context, email, name, organization string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return s.fail("bootstrap admin lookup", err, nil)
	}

	now := s.now().UTC()
	admin := &models.User{
		ID:           bson.NewObjectID(),
		Name:         name,
		Email:        email,
		Role:         models.RoleSuperUser,
		Organization: organization,
		Gender:       "Other",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.users.Register(ctx, admin)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil
	}
	if err != nil {
		return s.fail("bootstrap admin", err, nil)
	}
	s.logger.Info("bootstrap admin created", zap.String("user_id", admin.ID.Hex()))
	return nil
}

func (s *userService) fail(msg string, err error, notFound *apperror.AppError, fields ...zap.Field) error {
	mapped := storeErr(err, notFound)
	logFailure(s.logger, msg, err, mapped, fields...)
	return mapped
}
