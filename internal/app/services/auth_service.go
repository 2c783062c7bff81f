package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/auth"
	"github.com/profrate/profrate/internal/pkg/logger"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,64}$`)
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// userStore is the persistence surface the auth service needs for accounts
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// tokenStore persists and revokes refresh tokens
type tokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	RevokeAllUserTokens(ctx context.Context, userID int64) (int64, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64) error
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo   userStore
	tokenRepo  tokenStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo userStore, tokenRepo tokenStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// validateRegistration validates registration data beyond request binding
func validateRegistration(req *dto.RegisterRequest) error {
	if req == nil {
		return apperrors.NewValidationError("registration request is nil")
	}
	if !usernameRegex.MatchString(req.Username) {
		return apperrors.NewValidationError("username must be 3-64 characters of letters, digits, underscore, dot or dash")
	}
	if !emailRegex.MatchString(req.Email) {
		return apperrors.NewValidationError("invalid email format")
	}
	if len(req.Password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters long")
	}
	return nil
}

// Register creates a new account with a bcrypt-hashed password. A taken
// username is a conflict and leaves the existing account untouched. The
// existence check runs before hashing; the unique constraint on the username
// column catches the race with a concurrent registration.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.UsernameExists(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("username", user.Username).Int64("userID", user.ID).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues a token pair. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		RefreshToken: refreshToken,
	}, nil
}

// Logout revokes all of the caller's refresh tokens. Logging out with none
// active succeeds as a no-op.
func (s *authServiceImpl) Logout(ctx context.Context, userID int64) error {
	revoked, err := s.tokenRepo.RevokeAllUserTokens(ctx, userID)
	if err != nil {
		return err
	}

	if revoked == 0 {
		logger.Debug().Int64("userID", userID).Msg("Logout with no active tokens")
	}
	return nil
}
