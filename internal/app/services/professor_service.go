package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/pkg/apperrors"
)

// professorStore is the persistence surface the professor service needs
type professorStore interface {
	Create(ctx context.Context, professor *models.Professor) error
	GetByID(ctx context.Context, id string) (*models.Professor, error)
	GetAll(ctx context.Context) ([]*models.Professor, error)
	Update(ctx context.Context, professor *models.Professor) error
	Delete(ctx context.Context, id string) error
}

// ProfessorService defines the interface for professor-related operations
type ProfessorService interface {
	CreateProfessor(ctx context.Context, professor *models.Professor) error
	GetProfessorByID(ctx context.Context, id string) (*models.Professor, error)
	GetAllProfessors(ctx context.Context) ([]*models.Professor, error)
	UpdateProfessor(ctx context.Context, professor *models.Professor) error
	DeleteProfessor(ctx context.Context, id string) error
	RatingsDigest(ctx context.Context) ([]string, error)
}

// professorServiceImpl implements the ProfessorService interface
type professorServiceImpl struct {
	professorRepo professorStore
}

// NewProfessorService creates a new professor service instance
func NewProfessorService(professorRepo professorStore) ProfessorService {
	return &professorServiceImpl{
		professorRepo: professorRepo,
	}
}

// validateProfessor validates professor data before database operations
func validateProfessor(professor *models.Professor) error {
	if professor == nil {
		return apperrors.NewValidationError("professor is nil")
	}
	if strings.TrimSpace(professor.ID) == "" {
		return apperrors.NewValidationError("professor id cannot be empty")
	}
	if strings.TrimSpace(professor.Name) == "" {
		return apperrors.NewValidationError("professor name cannot be empty")
	}
	return nil
}

// CreateProfessor creates a new professor. The cached average starts
// undefined and is only ever set by rating writes.
func (s *professorServiceImpl) CreateProfessor(ctx context.Context, professor *models.Professor) error {
	if err := validateProfessor(professor); err != nil {
		return err
	}
	professor.AverageRating = nil
	return s.professorRepo.Create(ctx, professor)
}

// GetProfessorByID retrieves a professor by ID
func (s *professorServiceImpl) GetProfessorByID(ctx context.Context, id string) (*models.Professor, error) {
	return s.professorRepo.GetByID(ctx, id)
}

// GetAllProfessors retrieves all professors
func (s *professorServiceImpl) GetAllProfessors(ctx context.Context) ([]*models.Professor, error) {
	return s.professorRepo.GetAll(ctx)
}

// UpdateProfessor updates a professor's name. The cached average is never
// written through this path.
func (s *professorServiceImpl) UpdateProfessor(ctx context.Context, professor *models.Professor) error {
	if err := validateProfessor(professor); err != nil {
		return err
	}
	return s.professorRepo.Update(ctx, professor)
}

// DeleteProfessor deletes a professor; their ratings cascade away with them
func (s *professorServiceImpl) DeleteProfessor(ctx context.Context, id string) error {
	return s.professorRepo.Delete(ctx, id)
}

// RatingsDigest renders one display line per professor: the rounded cached
// average as repeated stars, or a "no ratings" marker when the average is
// undefined. Rounding is half-up, so 3.5 renders as four stars.
func (s *professorServiceImpl) RatingsDigest(ctx context.Context) ([]string, error) {
	professors, err := s.professorRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	digest := make([]string, 0, len(professors))
	for _, professor := range professors {
		stars := "no ratings"
		if professor.AverageRating != nil {
			stars = strings.Repeat("★", int(math.Floor(*professor.AverageRating+0.5)))
		}
		digest = append(digest, fmt.Sprintf("The rating of Professor %s (%s) is %s", professor.Name, professor.ID, stars))
	}

	return digest, nil
}
