package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/edusync/academia-api/internal/models"
	"github.com/edusync/academia-api/pkg/config"
	appErrors "github.com/edusync/academia-api/pkg/errors"
)

func newAuthService(repo *mockUserRepo) *AuthService {
	users := NewUserService(repo, PageDefaults{Limit: 10}, validator.New(), zap.NewNop())
	return NewAuthService(users, config.JWTConfig{
		Secret:     "secret",
		Expiration: time.Hour,
		Issuer:     "academia-api",
	}, zap.NewNop())
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockUserRepo{byEmail: &models.User{
		ID:           "u1",
		Email:        "ada@example.com",
		Username:     "ada",
		PasswordHash: string(hash),
		IsActive:     true,
	}}
	svc := newAuthService(repo)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "ada@example.com", res.Email)
	assert.Equal(t, "ada", res.Username)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "password"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	assert.Equal(t, 401, appErr.Status)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockUserRepo{byEmail: &models.User{ID: "u1", Email: "ada@example.com", PasswordHash: string(hash), IsActive: true}}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRegisterIssuesToken(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newAuthService(repo)

	res, err := svc.Register(context.Background(), CreateUserRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.True(t, res.IsActive)
	require.NotNil(t, repo.created)
}

func TestAuthServiceRegisterConflictPassesThrough(t *testing.T) {
	repo := &mockUserRepo{byEmail: &models.User{ID: "u1", Email: "ada@example.com"}}
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), CreateUserRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "supersecret",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestAuthServiceRegisterMasksStorageFailure(t *testing.T) {
	repo := &mockUserRepo{createErr: errors.New("connection reset by peer")}
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), CreateUserRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "supersecret",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, "registration failed", appErr.Message)
}

func TestAuthServiceRegisterValidationPassesThrough(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	_, err := svc.Register(context.Background(), CreateUserRequest{
		Email:    "not-an-email",
		Username: "ada",
		Password: "supersecret",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRoundTrip(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})
	user := &models.User{ID: "u1", Email: "ada@example.com"}

	token, err := svc.sign(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "academia-api", claims.Issuer)
}

func TestAuthServiceValidateTokenGarbage(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	users := NewUserService(&mockUserRepo{}, PageDefaults{Limit: 10}, validator.New(), zap.NewNop())
	svc := NewAuthService(users, config.JWTConfig{Secret: "secret", Expiration: -time.Hour, Issuer: "academia-api"}, zap.NewNop())

	token, err := svc.sign(&models.User{ID: "u1", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
