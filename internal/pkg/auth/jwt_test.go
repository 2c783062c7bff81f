package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/profrate/profrate/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService(time.Hour)
	user := &models.User{ID: 7, Username: "jdoe"}

	accessToken, refreshToken, expiresIn, err := service.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if refreshToken == "" {
		t.Error("no refresh token issued")
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := service.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "jdoe" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	service := newTestService(-time.Minute)
	accessToken, _, _, err := service.GenerateTokenPair(&models.User{ID: 7, Username: "jdoe"})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	_, err = service.ValidateToken(accessToken)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTamperedToken(t *testing.T) {
	service := newTestService(time.Hour)
	other := newTestService(time.Hour)
	other.config.SecretKey = "different-secret"

	accessToken, _, _, err := other.GenerateTokenPair(&models.User{ID: 7, Username: "jdoe"})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := service.ValidateToken(accessToken); err == nil {
		t.Fatal("a token signed with another key must not validate")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("ExtractBearerToken: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("token = %q", token)
	}

	if _, err := ExtractBearerToken(""); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("empty header: expected ErrInvalidFormat, got %v", err)
	}
}
