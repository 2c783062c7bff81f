package services

import (
	"github.com/profrate/profrate/internal/app/repositories"
	"github.com/profrate/profrate/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService           AuthService
	ProfessorService      ProfessorService
	ModuleService         ModuleService
	ModuleInstanceService ModuleInstanceService
	RatingService         RatingService
}

// NewServices initializes all services on top of the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	return &Services{
		AuthService:           NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		ProfessorService:      NewProfessorService(repos.ProfessorRepository),
		ModuleService:         NewModuleService(repos.ModuleRepository),
		ModuleInstanceService: NewModuleInstanceService(repos.ModuleInstanceRepository),
		RatingService: NewRatingService(
			repos.RatingRepository,
			repos.ProfessorRepository,
			repos.UserRepository,
			repos.ModuleRepository,
			repos.ModuleInstanceRepository,
		),
	}
}
