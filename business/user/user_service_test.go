package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"agenticWallet/domain"
	redisrepo "agenticWallet/internal/repository/redis"
	"agenticWallet/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, errors.New("user not found")
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]uint
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]uint{}}
}

func (f *fakeSessionRepo) StoreSession(_ context.Context, data redisrepo.SessionData, _ time.Duration) error {
	f.sessions[data.Token] = data.UserID
	return nil
}

func (f *fakeSessionRepo) ValidateToken(_ context.Context, token string) (uint, error) {
	userID, ok := f.sessions[token]
	if !ok {
		return 0, errors.New("session not found or expired")
	}
	return userID, nil
}

func (f *fakeSessionRepo) DeleteSession(_ context.Context, _ uint, token string) error {
	delete(f.sessions, token)
	return nil
}

func newTestService() (*userService, *fakeUserRepo, *fakeSessionRepo) {
	utils.InitJWT("test-secret")
	repo := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	return NewUserService(repo, sessions, validator.New()), repo, sessions
}

func TestSignupHashesPassword(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.Signup(context.Background(), &domain.User{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	stored := repo.users[created.ID]
	assert.NotEqual(t, "secret123", stored.Password)
	require.NoError(t, utils.CheckPassword(stored.Password, "secret123"))
	assert.Equal(t, RoleCustomer, stored.Role)
	assert.Equal(t, domain.GoalBalanced, stored.DefaultGoal)
}

func TestSignupValidation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), &domain.User{
		Email:    "not-an-email",
		Password: "secret123",
	})
	require.Error(t, err)

	_, err = svc.Signup(context.Background(), &domain.User{
		Email:    "ada@example.com",
		Password: "short",
	})
	require.Error(t, err)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), &domain.User{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), &domain.User{
		Email:    "ada@example.com",
		Password: "different456",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestSigninStoresSession(t *testing.T) {
	svc, _, sessions := newTestService()

	created, err := svc.Signup(context.Background(), &domain.User{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	token, user, err := svc.Signin(context.Background(), "ada@example.com", "secret123", "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, created.ID, user.ID)

	userID, err := svc.ValidateTokenFromRedis(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Len(t, sessions.sessions, 1)
}

func TestSigninWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), &domain.User{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Signin(context.Background(), "ada@example.com", "wrong-pass", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Signup(context.Background(), &domain.User{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	token, _, err := svc.Signin(context.Background(), "ada@example.com", "secret123", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), created.ID, token))

	_, err = svc.ValidateTokenFromRedis(context.Background(), token)
	require.Error(t, err)
}

func TestDeleteUser(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.Signup(context.Background(), &domain.User{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), created.ID))
	assert.Empty(t, repo.users)

	require.Error(t, svc.DeleteUser(context.Background(), created.ID))
}

func TestUpdateUserGoal(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Signup(context.Background(), &domain.User{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(context.Background(), created.ID, &domain.User{
		DefaultGoal: domain.GoalTravelPoints,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalTravelPoints, updated.DefaultGoal)

	_, err = svc.UpdateUser(context.Background(), created.ID, &domain.User{
		DefaultGoal: "hoard_points",
	})
	require.Error(t, err)
}
