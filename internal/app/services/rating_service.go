package services

import (
	"context"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/logger"
)

// ratingStore is the persistence surface the rating service needs
type ratingStore interface {
	GetAll(ctx context.Context) ([]*models.Rating, error)
	GetByID(ctx context.Context, id int64) (*models.Rating, error)
	Upsert(ctx context.Context, rating *models.Rating) (bool, error)
	Create(ctx context.Context, rating *models.Rating) error
	UpdateValue(ctx context.Context, id int64, value int) (*models.Rating, error)
	Delete(ctx context.Context, id int64) error
	ModuleAverage(ctx context.Context, professorID, moduleCode string) (*float64, error)
}

// professorFinder resolves professors for rating validation
type professorFinder interface {
	GetByID(ctx context.Context, id string) (*models.Professor, error)
}

// userFinder resolves the submitting user by username
type userFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// moduleFinder resolves modules by code
type moduleFinder interface {
	GetByCode(ctx context.Context, code string) (*models.Module, error)
}

// instanceResolver resolves instances and checks teaching membership
type instanceResolver interface {
	GetByModuleAndSemester(ctx context.Context, moduleCode string, semester, year int) (*models.ModuleInstance, error)
	IsProfessorTeaching(ctx context.Context, instanceID int64, professorID string) (bool, error)
}

// RatingService defines the interface for rating-related operations
type RatingService interface {
	RateProfessor(ctx context.Context, req *dto.RateRequest) (rating *models.Rating, created bool, err error)
	ModuleAverage(ctx context.Context, professorID, moduleCode string) (*dto.AverageRatingResponse, error)
	GetAllRatings(ctx context.Context) ([]*models.Rating, error)
	GetRatingByID(ctx context.Context, id int64) (*models.Rating, error)
	CreateRating(ctx context.Context, rating *models.Rating) error
	UpdateRatingValue(ctx context.Context, id int64, value int) (*models.Rating, error)
	DeleteRating(ctx context.Context, id int64) error
}

// ratingServiceImpl implements the RatingService interface
type ratingServiceImpl struct {
	ratingRepo    ratingStore
	professorRepo professorFinder
	userRepo      userFinder
	moduleRepo    moduleFinder
	instanceRepo  instanceResolver
}

// NewRatingService creates a new rating service instance
func NewRatingService(
	ratingRepo ratingStore,
	professorRepo professorFinder,
	userRepo userFinder,
	moduleRepo moduleFinder,
	instanceRepo instanceResolver,
) RatingService {
	return &ratingServiceImpl{
		ratingRepo:    ratingRepo,
		professorRepo: professorRepo,
		userRepo:      userRepo,
		moduleRepo:    moduleRepo,
		instanceRepo:  instanceRepo,
	}
}

// validateRatingValue checks the 1..5 rating scale
func validateRatingValue(value int) error {
	if value < 1 || value > 5 {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}
	return nil
}

// RateProfessor submits a rating for a professor on a module offering.
// Professor, user, module and instance are resolved in turn; a missing one
// fails the whole submission as not found. The professor must be in the
// instance's teaching set. An existing rating by the same user for the same
// (instance, professor) is updated in place, so repeated submissions are
// idempotent; the returned rating carries the stamped last_updated and
// created reports whether a new row was written.
func (s *ratingServiceImpl) RateProfessor(ctx context.Context, req *dto.RateRequest) (*models.Rating, bool, error) {
	if err := validateRatingValue(req.Rating); err != nil {
		return nil, false, err
	}

	professor, err := s.professorRepo.GetByID(ctx, req.ProfessorID)
	if err != nil {
		return nil, false, err
	}

	user, err := s.userRepo.GetByUsername(ctx, req.UserName)
	if err != nil {
		return nil, false, err
	}

	module, err := s.moduleRepo.GetByCode(ctx, req.ModuleCode)
	if err != nil {
		return nil, false, err
	}

	instance, err := s.instanceRepo.GetByModuleAndSemester(ctx, module.Code, req.Semester, req.Year)
	if err != nil {
		return nil, false, err
	}

	teaching, err := s.instanceRepo.IsProfessorTeaching(ctx, instance.ID, professor.ID)
	if err != nil {
		return nil, false, err
	}
	if !teaching {
		return nil, false, apperrors.ErrProfessorNotTeaching
	}

	rating := &models.Rating{
		ModuleInstanceID: instance.ID,
		ProfessorID:      professor.ID,
		UserID:           user.ID,
		Rating:           req.Rating,
	}

	created, err := s.ratingRepo.Upsert(ctx, rating)
	if err != nil {
		return nil, false, err
	}

	logger.Info().
		Str("professorID", professor.ID).
		Str("username", user.Username).
		Int64("instanceID", instance.ID).
		Bool("created", created).
		Msg("Rating recorded")

	return rating, created, nil
}

// ModuleAverage computes a fresh average of one professor's ratings across
// all instances of one module. Both the professor and the module must exist;
// the cached global average is never consulted. Returns nil when the
// professor has no ratings in scope.
func (s *ratingServiceImpl) ModuleAverage(ctx context.Context, professorID, moduleCode string) (*dto.AverageRatingResponse, error) {
	professor, err := s.professorRepo.GetByID(ctx, professorID)
	if err != nil {
		return nil, err
	}
	module, err := s.moduleRepo.GetByCode(ctx, moduleCode)
	if err != nil {
		return nil, err
	}

	average, err := s.ratingRepo.ModuleAverage(ctx, professor.ID, module.Code)
	if err != nil {
		return nil, err
	}

	return &dto.AverageRatingResponse{
		ProfessorID:   professor.ID,
		ProfessorName: professor.Name,
		ModuleCode:    module.Code,
		ModuleName:    module.Name,
		AverageRating: average,
	}, nil
}

// GetAllRatings retrieves all ratings
func (s *ratingServiceImpl) GetAllRatings(ctx context.Context) ([]*models.Rating, error) {
	return s.ratingRepo.GetAll(ctx)
}

// GetRatingByID retrieves a rating by ID
func (s *ratingServiceImpl) GetRatingByID(ctx context.Context, id int64) (*models.Rating, error) {
	return s.ratingRepo.GetByID(ctx, id)
}

// CreateRating creates a rating through the generic CRUD surface. Unlike
// RateProfessor it never updates an existing row; a duplicate triple is a
// conflict. The teaching-membership rule still applies.
func (s *ratingServiceImpl) CreateRating(ctx context.Context, rating *models.Rating) error {
	if err := validateRatingValue(rating.Rating); err != nil {
		return err
	}

	teaching, err := s.instanceRepo.IsProfessorTeaching(ctx, rating.ModuleInstanceID, rating.ProfessorID)
	if err != nil {
		return err
	}
	if !teaching {
		return apperrors.ErrProfessorNotTeaching
	}

	return s.ratingRepo.Create(ctx, rating)
}

// UpdateRatingValue changes the value of an existing rating
func (s *ratingServiceImpl) UpdateRatingValue(ctx context.Context, id int64, value int) (*models.Rating, error) {
	if err := validateRatingValue(value); err != nil {
		return nil, err
	}
	return s.ratingRepo.UpdateValue(ctx, id, value)
}

// DeleteRating deletes a rating
func (s *ratingServiceImpl) DeleteRating(ctx context.Context, id int64) error {
	return s.ratingRepo.Delete(ctx, id)
}
