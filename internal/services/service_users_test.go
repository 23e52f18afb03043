package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"leave-backend/dto"
	"leave-backend/internal/apperror"
	"leave-backend/internal/models"
	"leave-backend/internal/services"
)

const testSecret = "test-secret"

func newUserService(f *fixture) services.UserService {
	return services.NewUserService(f.store, services.NewTokenIssuer(testSecret, time.Hour), f.log)
}

func registerReq(email string) dto.RegisterUserReq {
	return dto.RegisterUserReq{
		Name:         "New Hire",
		Email:        email,
		Organization: "ORG1",
		Gender:       "Female",
	}
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)

	u, err := svc.Register(f.ctx, registerReq(" Hire@Example.com "))
	require.NoError(t, err)
	assert.Equal(t, "hire@example.com", u.Email)
	assert.Equal(t, models.RoleNormal, u.Role)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.Register(f.ctx, registerReq("hire@example.com"))
	assert.ErrorIs(t, err, services.ErrUserExists)

	all, err := f.store.Users.FindAll(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserService_ConcurrentRegistrationIsAtomic(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)

	const n = 20
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(f.ctx, registerReq("race@example.com"))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, services.ErrUserExists)
	}
	assert.Equal(t, 1, ok)

	all, err := f.store.Users.FindAll(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserService_RegisterUnknownSupervisor(t *testing.T) {
	f := newFixture(t)
	req := registerReq("x@example.com")
	req.Supervisor = bson.NewObjectID().Hex()

	_, err := newUserService(f).Register(f.ctx, req)

	assert.ErrorIs(t, err, services.ErrSupervisorNotFound)
	all, _ := f.store.Users.FindAll(f.ctx)
	assert.Empty(t, all)
}

func TestUserService_Login(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	u, err := svc.Register(f.ctx, registerReq("login@example.com"))
	require.NoError(t, err)

	first, err := svc.Login(f.ctx, dto.LoginReq{Email: "LOGIN@example.com", UID: "firebase-uid"})
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), first.UserID)
	assert.Equal(t, "ORG1", first.Organization)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(first.Token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims["uid"])
	assert.Equal(t, u.ID.Hex(), claims["sub"])

	stored, err := f.store.Users.FindByID(f.ctx, u.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "firebase-uid", stored.PasswordHash)
	assert.False(t, stored.LastLogin.IsZero())

	_, err = svc.Login(f.ctx, dto.LoginReq{Email: "login@example.com", UID: "firebase-uid"})
	assert.NoError(t, err)

	_, err = svc.Login(f.ctx, dto.LoginReq{Email: "login@example.com", UID: "someone-else"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(f.ctx, dto.LoginReq{Email: "ghost@example.com", UID: "x"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserService_Updates(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	boss := f.user("boss", models.RoleSupervisor, "ORG", nil)
	u := f.user("u", models.RoleNormal, "ORG", nil)

	got, err := svc.AssignSupervisor(f.ctx, u.ID.Hex(), dto.AssignSupervisorReq{SupervisorID: boss.ID.Hex()})
	require.NoError(t, err)
	assert.True(t, got.ReportsTo(boss.ID))

	_, err = svc.AssignSupervisor(f.ctx, u.ID.Hex(), dto.AssignSupervisorReq{SupervisorID: bson.NewObjectID().Hex()})
	assert.ErrorIs(t, err, services.ErrSupervisorNotFound)

	got, err = svc.UpdateRoleSupervisor(f.ctx, u.ID.Hex(), dto.UpdateRoleSupervisorReq{Role: models.RoleSupervisor})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSupervisor, got.Role)
	assert.True(t, got.ReportsTo(boss.ID))

	got, err = svc.UpdateOrganization(f.ctx, u.ID.Hex(), dto.UpdateOrganizationReq{Organization: "ORG2"})
	require.NoError(t, err)
	assert.Equal(t, "ORG2", got.Organization)

	name := "Renamed"
	got, err = svc.UpdateDetails(f.ctx, u.ID.Hex(), dto.UpdateUserReq{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "ORG2", got.Organization)

	taken := "boss@example.com"
	_, err = svc.UpdateDetails(f.ctx, u.ID.Hex(), dto.UpdateUserReq{Email: &taken})
	assert.ErrorIs(t, err, services.ErrUserExists)

	_, err = svc.UpdateOrganization(f.ctx, bson.NewObjectID().Hex(), dto.UpdateOrganizationReq{Organization: "X"})
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUserService_UpdateRoleSupervisorRequiresExistingSupervisor(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	boss := f.user("boss", models.RoleSupervisor, "ORG", nil)
	u := f.user("u", models.RoleNormal, "ORG", &boss.ID)

	_, err := svc.UpdateRoleSupervisor(f.ctx, u.ID.Hex(), dto.UpdateRoleSupervisorReq{
		Role:         models.RoleSupervisor,
		SupervisorID: bson.NewObjectID().Hex(),
	})
	assert.ErrorIs(t, err, services.ErrSupervisorNotFound)

	_, err = svc.UpdateRoleSupervisor(f.ctx, u.ID.Hex(), dto.UpdateRoleSupervisorReq{SupervisorID: "nope"})
	assert.Equal(t, apperror.CodeValidationError, code(err))

	stored, err := f.store.Users.FindByID(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleNormal, stored.Role)
	assert.True(t, stored.ReportsTo(boss.ID))

	other := f.user("other", models.RoleSupervisor, "ORG", nil)
	got, err := svc.UpdateRoleSupervisor(f.ctx, u.ID.Hex(), dto.UpdateRoleSupervisorReq{SupervisorID: other.ID.Hex()})
	require.NoError(t, err)
	assert.True(t, got.ReportsTo(other.ID))
}

func TestUserService_SearchAndDelete(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	u := f.user("alice", models.RoleNormal, "ORG", nil)
	f.user("bob", models.RoleNormal, "ORG", nil)

	got, err := svc.Search(f.ctx, "ALI")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, u.ID, got[0].ID)

	_, err = svc.Search(f.ctx, "  ")
	assert.Equal(t, apperror.CodeValidationError, code(err))

	require.NoError(t, svc.Delete(f.ctx, u.ID.Hex()))
	assert.ErrorIs(t, svc.Delete(f.ctx, u.ID.Hex()), services.ErrUserNotFound)

	_, err = svc.GetByID(f.ctx, u.ID.Hex())
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUserService_EnsureBootstrapAdmin(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)

	require.NoError(t, svc.EnsureBootstrapAdmin(f.ctx, "", "nobody", "ORG"))
	require.NoError(t, svc.EnsureBootstrapAdmin(f.ctx, "Admin@Example.com", "Admin", "ORG"))
	require.NoError(t, svc.EnsureBootstrapAdmin(f.ctx, "admin@example.com", "Admin", "ORG"))

	all, err := f.store.Users.FindAll(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsSuperUser())
	assert.Equal(t, "admin@example.com", all[0].Email)
}
