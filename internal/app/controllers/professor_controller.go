package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/app/services"
	"github.com/profrate/profrate/internal/middleware"
)

// ProfessorController handles professor-related operations
type ProfessorController struct {
	professorService services.ProfessorService
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(professorService services.ProfessorService) *ProfessorController {
	return &ProfessorController{
		professorService: professorService,
	}
}

// CreateProfessor handles professor creation
// @Summary Create a new professor
// @Tags professors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfessorRequest true "Professor information"
// @Success 201 {object} dto.Response{data=models.Professor}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Router /professors [post]
func (c *ProfessorController) CreateProfessor(ctx *gin.Context) {
	var req dto.ProfessorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid professor data: "+err.Error()))
		return
	}

	professor := &models.Professor{ID: req.ID, Name: req.Name}
	if err := c.professorService.CreateProfessor(ctx, professor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success(professor))
}

// GetProfessorByID retrieves a professor by ID
// @Summary Get professor details
// @Tags professors
// @Produce json
// @Param id path string true "Professor ID"
// @Success 200 {object} dto.Response{data=models.Professor}
// @Failure 404 {object} dto.Response
// @Router /professors/{id} [get]
func (c *ProfessorController) GetProfessorByID(ctx *gin.Context) {
	professor, err := c.professorService.GetProfessorByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(professor))
}

// GetAllProfessors retrieves all professors
// @Summary Get all professors
// @Tags professors
// @Produce json
// @Success 200 {object} dto.Response{data=[]models.Professor}
// @Router /professors [get]
func (c *ProfessorController) GetAllProfessors(ctx *gin.Context) {
	professors, err := c.professorService.GetAllProfessors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(professors))
}

// UpdateProfessor updates a professor's name
// @Summary Update a professor
// @Tags professors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professor ID"
// @Param request body dto.ProfessorUpdateRequest true "Professor information"
// @Success 200 {object} dto.Response{data=models.Professor}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /professors/{id} [put]
func (c *ProfessorController) UpdateProfessor(ctx *gin.Context) {
	var req dto.ProfessorUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid professor data: "+err.Error()))
		return
	}

	professor := &models.Professor{ID: ctx.Param("id"), Name: req.Name}
	if err := c.professorService.UpdateProfessor(ctx, professor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(professor))
}

// DeleteProfessor deletes a professor
// @Summary Delete a professor
// @Tags professors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professor ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /professors/{id} [delete]
func (c *ProfessorController) DeleteProfessor(ctx *gin.Context) {
	if err := c.professorService.DeleteProfessor(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessMessage("Professor deleted"))
}

// RatingsList renders the star digest for every professor. Ratings change
// often, so the response is marked no-store.
// @Summary List professors with star ratings
// @Tags ratings
// @Produce json
// @Success 200 {object} dto.Response{data=[]string}
// @Router /ratings-list [get]
func (c *ProfessorController) RatingsList(ctx *gin.Context) {
	digest, err := c.professorService.RatingsDigest(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Cache-Control", "no-store")
	ctx.JSON(http.StatusOK, dto.Success(digest))
}
