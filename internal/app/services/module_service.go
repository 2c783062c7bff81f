package services

import (
	"context"
	"strings"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/pkg/apperrors"
)

// moduleStore is the persistence surface the module service needs
type moduleStore interface {
	Create(ctx context.Context, module *models.Module) error
	GetByCode(ctx context.Context, code string) (*models.Module, error)
	GetAll(ctx context.Context) ([]*models.Module, error)
	Update(ctx context.Context, module *models.Module) error
	Delete(ctx context.Context, code string) error
}

// ModuleService defines the interface for module-related operations
type ModuleService interface {
	CreateModule(ctx context.Context, module *models.Module) error
	GetModuleByCode(ctx context.Context, code string) (*models.Module, error)
	GetAllModules(ctx context.Context) ([]*models.Module, error)
	UpdateModule(ctx context.Context, module *models.Module) error
	DeleteModule(ctx context.Context, code string) error
}

// moduleServiceImpl implements the ModuleService interface
type moduleServiceImpl struct {
	moduleRepo moduleStore
}

// NewModuleService creates a new module service instance
func NewModuleService(moduleRepo moduleStore) ModuleService {
	return &moduleServiceImpl{
		moduleRepo: moduleRepo,
	}
}

// validateModule validates module data before database operations
func validateModule(module *models.Module) error {
	if module == nil {
		return apperrors.NewValidationError("module is nil")
	}
	if strings.TrimSpace(module.Code) == "" {
		return apperrors.NewValidationError("module code cannot be empty")
	}
	if strings.TrimSpace(module.Name) == "" {
		return apperrors.NewValidationError("module name cannot be empty")
	}
	return nil
}

// CreateModule creates a new module
func (s *moduleServiceImpl) CreateModule(ctx context.Context, module *models.Module) error {
	if err := validateModule(module); err != nil {
		return err
	}
	return s.moduleRepo.Create(ctx, module)
}

// GetModuleByCode retrieves a module by code
func (s *moduleServiceImpl) GetModuleByCode(ctx context.Context, code string) (*models.Module, error) {
	return s.moduleRepo.GetByCode(ctx, code)
}

// GetAllModules retrieves all modules
func (s *moduleServiceImpl) GetAllModules(ctx context.Context) ([]*models.Module, error) {
	return s.moduleRepo.GetAll(ctx)
}

// UpdateModule updates a module's name
func (s *moduleServiceImpl) UpdateModule(ctx context.Context, module *models.Module) error {
	if err := validateModule(module); err != nil {
		return err
	}
	return s.moduleRepo.Update(ctx, module)
}

// DeleteModule deletes a module; its instances and their ratings cascade
func (s *moduleServiceImpl) DeleteModule(ctx context.Context, code string) error {
	return s.moduleRepo.Delete(ctx, code)
}
