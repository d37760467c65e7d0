package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/edusync/academia-api/internal/models"
	appErrors "github.com/edusync/academia-api/pkg/errors"
)

type mockUserRepo struct {
	users         []models.User
	byID          *models.User
	byEmail       *models.User
	byUsername    *models.User
	findErr       error
	createErr     error
	created       *models.User
	updated       *models.User
	deactivatedID string
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	return m.users, len(m.users), nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.byID == nil {
		return nil, sql.ErrNoRows
	}
	return m.byID, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.byEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmail, nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.byUsername == nil {
		return nil, sql.ErrNoRows
	}
	return m.byUsername, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = user
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.updated = user
	return nil
}

func (m *mockUserRepo) Deactivate(ctx context.Context, id string) error {
	m.deactivatedID = id
	return nil
}

func newUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, PageDefaults{Limit: 10}, validator.New(), zap.NewNop())
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newUserService(repo)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
	require.NotNil(t, repo.created)
}

func TestUserServiceCreateEmailConflict(t *testing.T) {
	repo := &mockUserRepo{byEmail: &models.User{ID: "u1", Email: "ada@example.com"}}
	svc := newUserService(repo)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "supersecret",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "Email already in use", appErr.Message)
	assert.Nil(t, repo.created)
}

func TestUserServiceCreateUsernameConflict(t *testing.T) {
	repo := &mockUserRepo{byUsername: &models.User{ID: "u1", Username: "ada"}}
	svc := newUserService(repo)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "supersecret",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "Username already in use", appErr.Message)
}

func TestUserServiceCreateShortPassword(t *testing.T) {
	svc := newUserService(&mockUserRepo{})

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "short",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceUpdateIgnoresImmutableFields(t *testing.T) {
	repo := &mockUserRepo{byID: &models.User{ID: "u1", Email: "ada@example.com", Username: "ada", PasswordHash: "hash"}}
	svc := newUserService(repo)

	newEmail := "new@example.com"
	newPassword := "newpassword"
	firstName := "Ada"
	user, err := svc.Update(context.Background(), "u1", UpdateUserRequest{
		Email:     &newEmail,
		Password:  &newPassword,
		FirstName: &firstName,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "hash", user.PasswordHash)
	require.NotNil(t, user.FirstName)
	assert.Equal(t, "Ada", *user.FirstName)
	require.NotNil(t, repo.updated)
}

func TestUserServiceUpdateNoFields(t *testing.T) {
	repo := &mockUserRepo{byID: &models.User{ID: "u1"}}
	svc := newUserService(repo)

	_, err := svc.Update(context.Background(), "u1", UpdateUserRequest{})
	require.Error(t, err)
	assert.Equal(t, "no fields provided for update", appErrors.FromError(err).Message)
	assert.Nil(t, repo.updated)
}

func TestUserServiceDeactivate(t *testing.T) {
	repo := &mockUserRepo{byID: &models.User{ID: "u1"}}
	svc := newUserService(repo)

	require.NoError(t, svc.Deactivate(context.Background(), "u1"))
	assert.Equal(t, "u1", repo.deactivatedID)
}

func TestUserServiceDeactivateMissing(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newUserService(repo)

	err := svc.Deactivate(context.Background(), "u-missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deactivatedID)
}

func TestUserServiceValidatePassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	svc := newUserService(&mockUserRepo{})
	user := &models.User{PasswordHash: string(hash)}

	assert.True(t, svc.ValidatePassword(user, "password"))
	assert.False(t, svc.ValidatePassword(user, "wrong"))
}
