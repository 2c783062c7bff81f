package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/auth"
)

func newProtectedRouter(t *testing.T, accessExp time.Duration) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})

	router := gin.New()
	router.Use(NewAuthMiddleware(jwtService).JWTAuth())
	router.GET("/protected", func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user on context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router, jwtService
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	router, _ := newProtectedRouter(t, time.Hour)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), apperrors.ErrTokenNotFound.Error()) {
		t.Errorf("body = %s, want the token-not-found message", rec.Body.String())
	}
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	router, _ := newProtectedRouter(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	router, jwtService := newProtectedRouter(t, -time.Minute)

	token, _, _, err := jwtService.GenerateTokenPair(&models.User{ID: 7, Username: "jdoe"})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), apperrors.ErrTokenExpired.Error()) {
		t.Errorf("body = %s, want the token-expired message", rec.Body.String())
	}
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	router, jwtService := newProtectedRouter(t, time.Hour)

	token, _, _, err := jwtService.GenerateTokenPair(&models.User{ID: 7, Username: "jdoe"})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
}
