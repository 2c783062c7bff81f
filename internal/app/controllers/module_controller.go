package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/app/services"
	"github.com/profrate/profrate/internal/middleware"
)

// ModuleController handles module-related operations
type ModuleController struct {
	moduleService services.ModuleService
}

// NewModuleController creates a new ModuleController
func NewModuleController(moduleService services.ModuleService) *ModuleController {
	return &ModuleController{
		moduleService: moduleService,
	}
}

// CreateModule handles module creation
// @Summary Create a new module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ModuleRequest true "Module information"
// @Success 201 {object} dto.Response{data=models.Module}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Router /modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	var req dto.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid module data: "+err.Error()))
		return
	}

	module := &models.Module{Code: req.Code, Name: req.Name}
	if err := c.moduleService.CreateModule(ctx, module); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success(module))
}

// GetModuleByCode retrieves a module by code
// @Summary Get module details
// @Tags modules
// @Produce json
// @Param code path string true "Module code"
// @Success 200 {object} dto.Response{data=models.Module}
// @Failure 404 {object} dto.Response
// @Router /modules/{code} [get]
func (c *ModuleController) GetModuleByCode(ctx *gin.Context) {
	module, err := c.moduleService.GetModuleByCode(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(module))
}

// GetAllModules retrieves all modules
// @Summary Get all modules
// @Tags modules
// @Produce json
// @Success 200 {object} dto.Response{data=[]models.Module}
// @Router /modules [get]
func (c *ModuleController) GetAllModules(ctx *gin.Context) {
	modules, err := c.moduleService.GetAllModules(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(modules))
}

// UpdateModule updates a module's name
// @Summary Update a module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Module code"
// @Param request body dto.ModuleUpdateRequest true "Module information"
// @Success 200 {object} dto.Response{data=models.Module}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /modules/{code} [put]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	var req dto.ModuleUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid module data: "+err.Error()))
		return
	}

	module := &models.Module{Code: ctx.Param("code"), Name: req.Name}
	if err := c.moduleService.UpdateModule(ctx, module); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(module))
}

// DeleteModule deletes a module and its offerings
// @Summary Delete a module
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param code path string true "Module code"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /modules/{code} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	if err := c.moduleService.DeleteModule(ctx, ctx.Param("code")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessMessage("Module deleted"))
}
