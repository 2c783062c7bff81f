package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/profrate/profrate/internal/app/models"
	appRepos "github.com/profrate/profrate/internal/app/repositories"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/logger"
)

// CreateDefaultData creates a small set of reference data so a fresh
// deployment has something to rate. Existing rows are left untouched, so
// seeding is idempotent.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	professorRepo := appRepos.NewProfessorRepository(dbPool)
	moduleRepo := appRepos.NewModuleRepository(dbPool)
	instanceRepo := appRepos.NewModuleInstanceRepository(dbPool)

	logger.Info().Msg("Checking/Creating default data (professors, modules, instances)...")
	var finalErr error

	professors := []*appModels.Professor{
		{ID: "P001", Name: "Smith"},
		{ID: "P002", Name: "Jones"},
	}
	for _, professor := range professors {
		err := professorRepo.Create(ctx, professor)
		if err != nil && !errors.Is(err, apperrors.ErrProfessorAlreadyExists) {
			logger.Error().Err(err).Str("professorID", professor.ID).Msg("Error creating default professor")
			finalErr = errors.Join(finalErr, err)
		}
	}

	module := &appModels.Module{Code: "CS101", Name: "Introduction to Computing"}
	err := moduleRepo.Create(ctx, module)
	if err != nil && !errors.Is(err, apperrors.ErrModuleAlreadyExists) {
		logger.Error().Err(err).Str("moduleCode", module.Code).Msg("Error creating default module")
		finalErr = errors.Join(finalErr, err)
	}

	instance := &appModels.ModuleInstance{ModuleCode: "CS101", Year: 2024, Semester: 1}
	err = instanceRepo.Create(ctx, instance, []string{"P001", "P002"})
	if err != nil && !errors.Is(err, apperrors.ErrModuleInstanceAlreadyExists) {
		logger.Error().Err(err).Str("moduleCode", instance.ModuleCode).Msg("Error creating default module instance")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}
