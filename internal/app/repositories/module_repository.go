package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/db"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/dberrors"
	"github.com/profrate/profrate/internal/pkg/logger"
)

// ModuleRepository handles module database operations
type ModuleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewModuleRepository creates a new ModuleRepository
func NewModuleRepository(db *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new module
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	sql, args, err := r.sb.Insert("modules").
		Columns("code", "name").
		Values(module.Code, module.Name).
		Suffix("RETURNING last_updated").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create module SQL")
		return fmt.Errorf("failed to build create module query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&module.LastUpdated)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrModuleAlreadyExists
		}
		logger.Error().Err(err).Str("moduleCode", module.Code).Msg("Error executing create module query")
		return fmt.Errorf("error creating module: %w", err)
	}

	return nil
}

// GetByCode retrieves a module by code
func (r *ModuleRepository) GetByCode(ctx context.Context, code string) (*models.Module, error) {
	sql, args, err := r.sb.Select("code", "name", "last_updated").
		From("modules").
		Where(squirrel.Eq{"code": code}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get module by code SQL")
		return nil, fmt.Errorf("failed to build get module query: %w", err)
	}

	module := &models.Module{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&module.Code, &module.Name, &module.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleNotFound
		}
		logger.Error().Err(err).Str("moduleCode", code).Msg("Error scanning module row")
		return nil, fmt.Errorf("error getting module by code: %w", err)
	}

	return module, nil
}

// GetAll retrieves all modules ordered by code
func (r *ModuleRepository) GetAll(ctx context.Context) ([]*models.Module, error) {
	sql, args, err := r.sb.Select("code", "name", "last_updated").
		From("modules").
		OrderBy("code").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all modules SQL")
		return nil, fmt.Errorf("failed to build get all modules query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving modules: %w", err)
	}
	defer rows.Close()

	var modules []*models.Module
	for rows.Next() {
		module := &models.Module{}
		if err := rows.Scan(&module.Code, &module.Name, &module.LastUpdated); err != nil {
			return nil, fmt.Errorf("error scanning module row: %w", err)
		}
		modules = append(modules, module)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return modules, nil
}

// Update updates a module's name
func (r *ModuleRepository) Update(ctx context.Context, module *models.Module) error {
	sql, args, err := r.sb.Update("modules").
		Set("name", module.Name).
		Set("last_updated", squirrel.Expr("now()")).
		Where(squirrel.Eq{"code": module.Code}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update module SQL")
		return fmt.Errorf("failed to build update module query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("moduleCode", module.Code).Msg("Error executing update module query")
		return fmt.Errorf("error updating module: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}

	return nil
}

// Delete deletes a module by code. Instances and their ratings cascade, so
// affected professors' cached averages are recomputed in the same transaction.
func (r *ModuleRepository) Delete(ctx context.Context, code string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		affected, err := affectedProfessors(ctx, tx, `
			SELECT DISTINCT r.professor_id
			FROM ratings r
			JOIN module_instances mi ON mi.id = r.module_instance_id
			WHERE mi.module_code = $1
		`, code)
		if err != nil {
			return err
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM modules WHERE code = $1`, code)
		if err != nil {
			logger.Error().Err(err).Str("moduleCode", code).Msg("Error executing delete module query")
			return fmt.Errorf("error deleting module: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrModuleNotFound
		}

		return recomputeAverages(ctx, tx, affected)
	})
}
