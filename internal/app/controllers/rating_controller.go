package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/app/services"
	"github.com/profrate/profrate/internal/middleware"
)

// RatingController handles rating-related operations
type RatingController struct {
	ratingService services.RatingService
}

// NewRatingController creates a new RatingController
func NewRatingController(ratingService services.RatingService) *RatingController {
	return &RatingController{
		ratingService: ratingService,
	}
}

func parseRatingID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("rating ID must be a valid number"))
		return 0, false
	}
	return id, true
}

// Rate submits or updates a rating for a professor on a module offering.
// When user_name is omitted the authenticated caller is the rating user. The
// response carries Last-Modified from the written rating's timestamp.
// @Summary Rate a professor
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RateRequest true "Rating submission"
// @Success 200 {object} dto.Response "Existing rating updated"
// @Success 201 {object} dto.Response "New rating added"
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /rate [post]
func (c *RatingController) Rate(ctx *gin.Context) {
	var req dto.RateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid rating data: "+err.Error()))
		return
	}

	if req.UserName == "" {
		username, ok := middleware.CurrentUsername(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, dto.Error("authentication required"))
			return
		}
		req.UserName = username
	}

	rating, created, err := c.ratingService.RateProfessor(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Last-Modified", rating.LastUpdated.UTC().Format(http.TimeFormat))
	if created {
		ctx.JSON(http.StatusCreated, dto.SuccessMessage("Rating added"))
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("Rating updated"))
}

// AverageRating computes a professor's average scoped to one module
// @Summary Get a professor's average rating for a module
// @Tags ratings
// @Accept json
// @Produce json
// @Param request body dto.AverageRatingRequest true "Professor and module"
// @Success 200 {object} dto.Response{data=dto.AverageRatingResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /average-rating [post]
func (c *RatingController) AverageRating(ctx *gin.Context) {
	var req dto.AverageRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid request data: "+err.Error()))
		return
	}

	result, err := c.ratingService.ModuleAverage(ctx, req.ProfessorID, req.ModuleCode)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(result))
}

// GetAllRatings retrieves all ratings
// @Summary Get all ratings
// @Tags ratings
// @Produce json
// @Success 200 {object} dto.Response{data=[]models.Rating}
// @Router /ratings [get]
func (c *RatingController) GetAllRatings(ctx *gin.Context) {
	ratings, err := c.ratingService.GetAllRatings(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(ratings))
}

// GetRatingByID retrieves a rating by ID
// @Summary Get rating details
// @Tags ratings
// @Produce json
// @Param id path int true "Rating ID"
// @Success 200 {object} dto.Response{data=models.Rating}
// @Failure 404 {object} dto.Response
// @Router /ratings/{id} [get]
func (c *RatingController) GetRatingByID(ctx *gin.Context) {
	id, ok := parseRatingID(ctx)
	if !ok {
		return
	}

	rating, err := c.ratingService.GetRatingByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(rating))
}

// CreateRating creates a rating through the generic CRUD surface. The
// authenticated caller is recorded as the rating user; duplicates are a
// conflict rather than an update.
// @Summary Create a rating
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RatingRequest true "Rating information"
// @Success 201 {object} dto.Response{data=models.Rating}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Router /ratings [post]
func (c *RatingController) CreateRating(ctx *gin.Context) {
	var req dto.RatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid rating data: "+err.Error()))
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Error("authentication required"))
		return
	}

	rating := &models.Rating{
		ModuleInstanceID: req.ModuleInstanceID,
		ProfessorID:      req.ProfessorID,
		UserID:           userID,
		Rating:           req.Rating,
	}
	if err := c.ratingService.CreateRating(ctx, rating); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success(rating))
}

// UpdateRating changes the value of an existing rating
// @Summary Update a rating
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Param request body dto.RatingUpdateRequest true "New rating value"
// @Success 200 {object} dto.Response{data=models.Rating}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /ratings/{id} [put]
func (c *RatingController) UpdateRating(ctx *gin.Context) {
	id, ok := parseRatingID(ctx)
	if !ok {
		return
	}

	var req dto.RatingUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid rating data: "+err.Error()))
		return
	}

	rating, err := c.ratingService.UpdateRatingValue(ctx, id, req.Rating)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(rating))
}

// DeleteRating deletes a rating
// @Summary Delete a rating
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /ratings/{id} [delete]
func (c *RatingController) DeleteRating(ctx *gin.Context) {
	id, ok := parseRatingID(ctx)
	if !ok {
		return
	}

	if err := c.ratingService.DeleteRating(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessMessage("Rating deleted"))
}
