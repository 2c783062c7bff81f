package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/app/services"
	"github.com/profrate/profrate/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register creates a new user account
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration information"
// @Success 201 {object} dto.Response{data=dto.UserResponse}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response "Username already exists"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid registration data: "+err.Error()))
		return
	}

	user, err := c.authService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage("Account created", dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}))
}

// Token exchanges credentials for a token pair
// @Summary Obtain an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Login credentials"
// @Success 200 {object} dto.Response{data=dto.TokenResponse}
// @Failure 401 {object} dto.Response "Invalid credentials"
// @Router /token [post]
func (c *AuthController) Token(ctx *gin.Context) {
	var req dto.TokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid login data: "+err.Error()))
		return
	}

	tokens, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(tokens))
}

// Logout revokes the caller's refresh tokens. Calling it with none active
// still succeeds.
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response
// @Router /logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Error("authentication required"))
		return
	}

	if err := c.authService.Logout(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessMessage("Logged out"))
}
