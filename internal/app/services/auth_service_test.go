package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/auth"
)

type fakeUserStore struct {
	nextID      int64
	createCalls int
	users       map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.createCalls++
	if _, exists := f.users[user.Username]; exists {
		return apperrors.ErrUsernameAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, exists := f.users[username]
	return exists, nil
}

type fakeTokenStore struct {
	tokens  map[string]int64
	revoked int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]int64)}
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for token, owner := range f.tokens {
		if owner == userID {
			delete(f.tokens, token)
			count++
		}
	}
	f.revoked += count
	return count, nil
}

func newAuthFixture() (*fakeUserStore, *fakeTokenStore, AuthService) {
	userStore := newFakeUserStore()
	tokenStore := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	return userStore, tokenStore, NewAuthService(userStore, tokenStore, jwtService)
}

func TestRegisterAndLogin(t *testing.T) {
	_, tokenStore, service := newAuthFixture()
	ctx := context.Background()

	user, err := service.Register(ctx, &dto.RegisterRequest{
		Username: "jdoe",
		Email:    "jdoe@example.edu",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Error("registered user has no ID")
	}
	if user.Password == "secret-password" {
		t.Error("password stored in plaintext")
	}

	tokens, err := service.Login(ctx, &dto.TokenRequest{Username: "jdoe", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("login did not issue a token pair")
	}
	if tokens.TokenType != "Bearer" {
		t.Errorf("token type = %q, want Bearer", tokens.TokenType)
	}
	if len(tokenStore.tokens) != 1 {
		t.Errorf("expected one persisted refresh token, got %d", len(tokenStore.tokens))
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	userStore, _, service := newAuthFixture()
	ctx := context.Background()

	req := &dto.RegisterRequest{Username: "jdoe", Email: "jdoe@example.edu", Password: "secret-password"}
	if _, err := service.Register(ctx, req); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := service.Register(ctx, &dto.RegisterRequest{
		Username: "jdoe",
		Email:    "other@example.edu",
		Password: "another-password",
	})
	if !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
	// The existence pre-check rejects the duplicate before a second insert.
	if userStore.createCalls != 1 {
		t.Errorf("store Create called %d times, want 1", userStore.createCalls)
	}
}

func TestRegisterValidation(t *testing.T) {
	_, _, service := newAuthFixture()
	ctx := context.Background()

	cases := []dto.RegisterRequest{
		{Username: "x", Email: "jdoe@example.edu", Password: "secret-password"},
		{Username: "jdoe", Email: "not-an-email", Password: "secret-password"},
		{Username: "jdoe", Email: "jdoe@example.edu", Password: "short"},
	}
	for i, req := range cases {
		if _, err := service.Register(ctx, &req); !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("case %d: expected validation failure, got %v", i, err)
		}
	}
}

func TestLoginBadCredentials(t *testing.T) {
	_, _, service := newAuthFixture()
	ctx := context.Background()

	if _, err := service.Register(ctx, &dto.RegisterRequest{
		Username: "jdoe", Email: "jdoe@example.edu", Password: "secret-password",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := service.Login(ctx, &dto.TokenRequest{Username: "jdoe", Password: "wrong"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}

	_, err = service.Login(ctx, &dto.TokenRequest{Username: "nobody", Password: "whatever"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutWithoutTokensIsNoOp(t *testing.T) {
	_, tokenStore, service := newAuthFixture()

	if err := service.Logout(context.Background(), 99); err != nil {
		t.Fatalf("Logout with no active tokens must succeed, got %v", err)
	}
	if tokenStore.revoked != 0 {
		t.Errorf("expected no revocations, got %d", tokenStore.revoked)
	}
}

func TestLogoutRevokesTokens(t *testing.T) {
	_, tokenStore, service := newAuthFixture()
	ctx := context.Background()

	if _, err := service.Register(ctx, &dto.RegisterRequest{
		Username: "jdoe", Email: "jdoe@example.edu", Password: "secret-password",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := service.Login(ctx, &dto.TokenRequest{Username: "jdoe", Password: "secret-password"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := service.Logout(ctx, 1); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(tokenStore.tokens) != 0 {
		t.Errorf("expected all tokens revoked, %d remain", len(tokenStore.tokens))
	}
}
