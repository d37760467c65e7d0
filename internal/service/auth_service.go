package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/edusync/academia-api/internal/models"
	"github.com/edusync/academia-api/pkg/config"
	appErrors "github.com/edusync/academia-api/pkg/errors"
)

// AuthService issues and verifies access tokens on top of the user
// identity layer.
type AuthService struct {
	users  *UserService
	cfg    config.JWTConfig
	logger *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users *UserService, cfg config.JWTConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, cfg: cfg, logger: logger}
}

// Login authenticates by email and password. An unknown email and a
// wrong password both surface as invalid credentials; the caller
// cannot tell which accounts exist.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, err
	}
	if !s.users.ValidatePassword(user, req.Password) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}
	return s.respond(user)
}

// Register creates an account and signs it in. Conflicts on email or
// username and validation failures pass through untouched; any other
// creation failure is reported as a registration conflict so the
// caller cannot probe infrastructure state.
func (s *AuthService) Register(ctx context.Context, req CreateUserRequest) (*models.AuthResponse, error) {
	user, err := s.users.Create(ctx, req)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrConflict) || appErrors.HasCode(err, appErrors.ErrValidation) {
			return nil, err
		}
		s.logger.Error("user creation failed during registration", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrConflict, "registration failed")
	}
	return s.respond(user)
}

// ValidateToken parses and verifies a signed access token, returning
// its claims. Tokens signed with any method other than HMAC are
// rejected.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.sign(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	return &models.AuthResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		AccessToken: token,
	}, nil
}

func (s *AuthService) sign(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := models.JWTClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}
