package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/logger"
)

// HandleAPIError maps domain errors onto one consistent status-code scheme:
// 400 validation, 401 authentication, 404 missing entity, 409 conflict,
// 500 for everything unexpected. Internal errors are logged but never leak
// their cause to the client.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrProfessorNotFound),
		errors.Is(err, apperrors.ErrModuleNotFound),
		errors.Is(err, apperrors.ErrModuleInstanceNotFound),
		errors.Is(err, apperrors.ErrRatingNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.Error(err.Error()))

	case errors.Is(err, apperrors.ErrUsernameAlreadyExists),
		errors.Is(err, apperrors.ErrModuleAlreadyExists),
		errors.Is(err, apperrors.ErrProfessorAlreadyExists),
		errors.Is(err, apperrors.ErrModuleInstanceAlreadyExists),
		errors.Is(err, apperrors.ErrRatingAlreadyExists):
		c.JSON(http.StatusConflict, dto.Error(err.Error()))

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrProfessorNotTeaching):
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))

	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(http.StatusUnauthorized, dto.Error(err.Error()))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error in request")
		c.JSON(http.StatusInternalServerError, dto.Error("internal server error"))
	}
}
