package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	ProfessorRepository      *ProfessorRepository
	ModuleRepository         *ModuleRepository
	ModuleInstanceRepository *ModuleInstanceRepository
	RatingRepository         *RatingRepository
	UserRepository           *UserRepository
	TokenRepository          *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ProfessorRepository:      NewProfessorRepository(db),
		ModuleRepository:         NewModuleRepository(db),
		ModuleInstanceRepository: NewModuleInstanceRepository(db),
		RatingRepository:         NewRatingRepository(db),
		UserRepository:           NewUserRepository(db),
		TokenRepository:          NewTokenRepository(db),
	}
}
