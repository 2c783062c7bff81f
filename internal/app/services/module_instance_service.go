package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
)

// moduleInstanceStore is the persistence surface the instance service needs
type moduleInstanceStore interface {
	Create(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error
	GetByID(ctx context.Context, id int64) (*models.ModuleInstance, error)
	GetAll(ctx context.Context) ([]*models.ModuleInstance, error)
	LatestUpdate(ctx context.Context) (time.Time, bool, error)
	Update(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error
	Delete(ctx context.Context, id int64) error
}

// ModuleInstanceService defines the interface for module instance operations
type ModuleInstanceService interface {
	CreateModuleInstance(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error
	GetModuleInstanceByID(ctx context.Context, id int64) (*models.ModuleInstance, error)
	GetAllModuleInstances(ctx context.Context) ([]*models.ModuleInstance, error)
	UpdateModuleInstance(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error
	DeleteModuleInstance(ctx context.Context, id int64) error
	ListWithInstructors(ctx context.Context) ([]dto.ModuleInstanceEntry, time.Time, bool, error)
}

// moduleInstanceServiceImpl implements the ModuleInstanceService interface
type moduleInstanceServiceImpl struct {
	instanceRepo moduleInstanceStore
}

// NewModuleInstanceService creates a new module instance service instance
func NewModuleInstanceService(instanceRepo moduleInstanceStore) ModuleInstanceService {
	return &moduleInstanceServiceImpl{
		instanceRepo: instanceRepo,
	}
}

// validateModuleInstance validates instance data before database operations
func validateModuleInstance(instance *models.ModuleInstance) error {
	if instance == nil {
		return apperrors.NewValidationError("module instance is nil")
	}
	if strings.TrimSpace(instance.ModuleCode) == "" {
		return apperrors.NewValidationError("module code cannot be empty")
	}
	if instance.Year <= 0 {
		return apperrors.NewValidationError("year must be positive")
	}
	if instance.Semester <= 0 {
		return apperrors.NewValidationError("semester must be positive")
	}
	return nil
}

// CreateModuleInstance creates an instance with its teaching set. The
// teaching set may be empty.
func (s *moduleInstanceServiceImpl) CreateModuleInstance(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error {
	if err := validateModuleInstance(instance); err != nil {
		return err
	}
	return s.instanceRepo.Create(ctx, instance, professorIDs)
}

// GetModuleInstanceByID retrieves an instance with module and professors
func (s *moduleInstanceServiceImpl) GetModuleInstanceByID(ctx context.Context, id int64) (*models.ModuleInstance, error) {
	return s.instanceRepo.GetByID(ctx, id)
}

// GetAllModuleInstances retrieves all instances
func (s *moduleInstanceServiceImpl) GetAllModuleInstances(ctx context.Context) ([]*models.ModuleInstance, error) {
	return s.instanceRepo.GetAll(ctx)
}

// UpdateModuleInstance updates an instance and replaces its teaching set
func (s *moduleInstanceServiceImpl) UpdateModuleInstance(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error {
	if err := validateModuleInstance(instance); err != nil {
		return err
	}
	return s.instanceRepo.Update(ctx, instance, professorIDs)
}

// DeleteModuleInstance deletes an instance
func (s *moduleInstanceServiceImpl) DeleteModuleInstance(ctx context.Context, id int64) error {
	return s.instanceRepo.Delete(ctx, id)
}

// ListWithInstructors produces one entry per module instance with a
// human-readable instructor list. The returned time is the most recent
// instance update, for the Last-Modified header; the bool reports whether any
// instance exists.
func (s *moduleInstanceServiceImpl) ListWithInstructors(ctx context.Context) ([]dto.ModuleInstanceEntry, time.Time, bool, error) {
	instances, err := s.instanceRepo.GetAll(ctx)
	if err != nil {
		return nil, time.Time{}, false, err
	}

	entries := make([]dto.ModuleInstanceEntry, 0, len(instances))
	for _, instance := range instances {
		entries = append(entries, dto.ModuleInstanceEntry{
			Code:     instance.Module.Code,
			Name:     instance.Module.Name,
			Year:     instance.Year,
			Semester: instance.Semester,
			TaughtBy: formatInstructors(instance.Professors),
		})
	}

	lastModified, ok, err := s.instanceRepo.LatestUpdate(ctx)
	if err != nil {
		return nil, time.Time{}, false, err
	}

	return entries, lastModified, ok, nil
}

// formatInstructors renders a teaching set as "Professor Name (ID), ..."
func formatInstructors(professors []*models.Professor) string {
	parts := make([]string, 0, len(professors))
	for _, professor := range professors {
		parts = append(parts, fmt.Sprintf("Professor %s (%s)", professor.Name, professor.ID))
	}
	return strings.Join(parts, ", ")
}
