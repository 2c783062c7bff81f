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

// ModuleInstanceController handles module instance operations
type ModuleInstanceController struct {
	instanceService services.ModuleInstanceService
}

// NewModuleInstanceController creates a new ModuleInstanceController
func NewModuleInstanceController(instanceService services.ModuleInstanceService) *ModuleInstanceController {
	return &ModuleInstanceController{
		instanceService: instanceService,
	}
}

func parseInstanceID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("module instance ID must be a valid number"))
		return 0, false
	}
	return id, true
}

// CreateModuleInstance handles instance creation
// @Summary Create a module instance
// @Tags module-instances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ModuleInstanceRequest true "Instance information"
// @Success 201 {object} dto.Response{data=models.ModuleInstance}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Router /module-instances [post]
func (c *ModuleInstanceController) CreateModuleInstance(ctx *gin.Context) {
	var req dto.ModuleInstanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid module instance data: "+err.Error()))
		return
	}

	instance := &models.ModuleInstance{
		ModuleCode: req.ModuleCode,
		Year:       req.Year,
		Semester:   req.Semester,
	}
	if err := c.instanceService.CreateModuleInstance(ctx, instance, req.ProfessorIDs); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success(instance))
}

// GetModuleInstanceByID retrieves an instance with module and professors
// @Summary Get module instance details
// @Tags module-instances
// @Produce json
// @Param id path int true "Instance ID"
// @Success 200 {object} dto.Response{data=models.ModuleInstance}
// @Failure 404 {object} dto.Response
// @Router /module-instances/{id} [get]
func (c *ModuleInstanceController) GetModuleInstanceByID(ctx *gin.Context) {
	id, ok := parseInstanceID(ctx)
	if !ok {
		return
	}

	instance, err := c.instanceService.GetModuleInstanceByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(instance))
}

// GetAllModuleInstances retrieves all instances
// @Summary Get all module instances
// @Tags module-instances
// @Produce json
// @Success 200 {object} dto.Response{data=[]models.ModuleInstance}
// @Router /module-instances [get]
func (c *ModuleInstanceController) GetAllModuleInstances(ctx *gin.Context) {
	instances, err := c.instanceService.GetAllModuleInstances(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(instances))
}

// UpdateModuleInstance updates an instance and its teaching set
// @Summary Update a module instance
// @Tags module-instances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instance ID"
// @Param request body dto.ModuleInstanceRequest true "Instance information"
// @Success 200 {object} dto.Response{data=models.ModuleInstance}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Router /module-instances/{id} [put]
func (c *ModuleInstanceController) UpdateModuleInstance(ctx *gin.Context) {
	id, ok := parseInstanceID(ctx)
	if !ok {
		return
	}

	var req dto.ModuleInstanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("invalid module instance data: "+err.Error()))
		return
	}

	instance := &models.ModuleInstance{
		ID:         id,
		ModuleCode: req.ModuleCode,
		Year:       req.Year,
		Semester:   req.Semester,
	}
	if err := c.instanceService.UpdateModuleInstance(ctx, instance, req.ProfessorIDs); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(instance))
}

// DeleteModuleInstance deletes an instance and its ratings
// @Summary Delete a module instance
// @Tags module-instances
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instance ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /module-instances/{id} [delete]
func (c *ModuleInstanceController) DeleteModuleInstance(ctx *gin.Context) {
	id, ok := parseInstanceID(ctx)
	if !ok {
		return
	}

	if err := c.instanceService.DeleteModuleInstance(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessMessage("Module instance deleted"))
}

// ListModules lists every module offering with its instructors. Offerings
// change rarely, so the response carries a Last-Modified header and a
// one-hour public cache policy.
// @Summary List module offerings with instructors
// @Tags modules
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.ModuleInstanceEntry}
// @Router /list-modules [get]
func (c *ModuleInstanceController) ListModules(ctx *gin.Context) {
	entries, lastModified, ok, err := c.instanceService.ListWithInstructors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if ok {
		ctx.Header("Last-Modified", lastModified.UTC().Format(http.TimeFormat))
	}
	ctx.Header("Cache-Control", "public, max-age=3600")
	ctx.JSON(http.StatusOK, dto.Success(entries))
}
