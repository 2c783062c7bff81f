package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/profrate/profrate/internal/app/controllers"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/middleware"
)

// SetupRouter configures all application routes. Reads are public; every
// write goes through token authentication.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	professorController *controllers.ProfessorController,
	moduleController *controllers.ModuleController,
	instanceController *controllers.ModuleInstanceController,
	ratingController *controllers.RatingController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.SuccessMessage("ok"))
	})

	api := router.Group("/api")

	// --- Public auth routes ---
	api.POST("/register", authController.Register)
	api.POST("/token", authController.Token)

	// --- Public read routes ---
	api.GET("/professors", professorController.GetAllProfessors)
	api.GET("/professors/:id", professorController.GetProfessorByID)
	api.GET("/modules", moduleController.GetAllModules)
	api.GET("/modules/:code", moduleController.GetModuleByCode)
	api.GET("/module-instances", instanceController.GetAllModuleInstances)
	api.GET("/module-instances/:id", instanceController.GetModuleInstanceByID)
	api.GET("/ratings", ratingController.GetAllRatings)
	api.GET("/ratings/:id", ratingController.GetRatingByID)
	api.GET("/list-modules", instanceController.ListModules)
	api.GET("/ratings-list", professorController.RatingsList)
	api.POST("/average-rating", ratingController.AverageRating)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/logout", authController.Logout)
		authenticated.POST("/rate", ratingController.Rate)

		authenticated.POST("/professors", professorController.CreateProfessor)
		authenticated.PUT("/professors/:id", professorController.UpdateProfessor)
		authenticated.DELETE("/professors/:id", professorController.DeleteProfessor)

		authenticated.POST("/modules", moduleController.CreateModule)
		authenticated.PUT("/modules/:code", moduleController.UpdateModule)
		authenticated.DELETE("/modules/:code", moduleController.DeleteModule)

		authenticated.POST("/module-instances", instanceController.CreateModuleInstance)
		authenticated.PUT("/module-instances/:id", instanceController.UpdateModuleInstance)
		authenticated.DELETE("/module-instances/:id", instanceController.DeleteModuleInstance)

		authenticated.POST("/ratings", ratingController.CreateRating)
		authenticated.PUT("/ratings/:id", ratingController.UpdateRating)
		authenticated.DELETE("/ratings/:id", ratingController.DeleteRating)
	}
}
