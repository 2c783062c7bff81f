package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/db"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/dberrors"
	"github.com/profrate/profrate/internal/pkg/logger"
)

// ModuleInstanceRepository handles module instance database operations,
// including the many-to-many teaching relation to professors.
type ModuleInstanceRepository struct {
	db *pgxpool.Pool
}

// NewModuleInstanceRepository creates a new ModuleInstanceRepository
func NewModuleInstanceRepository(pool *pgxpool.Pool) *ModuleInstanceRepository {
	return &ModuleInstanceRepository{
		db: pool,
	}
}

// Create creates a module instance and its teaching-professor join rows in one
// transaction.
func (r *ModuleInstanceRepository) Create(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO module_instances (module_code, year, semester)
			VALUES ($1, $2, $3)
			RETURNING id, last_updated
		`, instance.ModuleCode, instance.Year, instance.Semester).Scan(&instance.ID, &instance.LastUpdated)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrModuleInstanceAlreadyExists
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrModuleNotFound
			}
			logger.Error().Err(err).Str("moduleCode", instance.ModuleCode).Msg("Error executing create module instance query")
			return fmt.Errorf("error creating module instance: %w", err)
		}

		return setProfessors(ctx, tx, instance.ID, professorIDs)
	})
}

// setProfessors replaces the teaching set of an instance.
func setProfessors(ctx context.Context, tx pgx.Tx, instanceID int64, professorIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM module_instance_professors WHERE module_instance_id = $1`, instanceID); err != nil {
		return fmt.Errorf("error clearing teaching professors: %w", err)
	}

	for _, professorID := range professorIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO module_instance_professors (module_instance_id, professor_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, instanceID, professorID)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrProfessorNotFound
			}
			return fmt.Errorf("error adding teaching professor %s: %w", professorID, err)
		}
	}

	return nil
}

// GetByID retrieves a module instance with its module and professors
func (r *ModuleInstanceRepository) GetByID(ctx context.Context, id int64) (*models.ModuleInstance, error) {
	instance := &models.ModuleInstance{Module: &models.Module{}}
	err := r.db.QueryRow(ctx, `
		SELECT mi.id, mi.module_code, mi.year, mi.semester, mi.last_updated,
		       m.code, m.name, m.last_updated
		FROM module_instances mi
		JOIN modules m ON m.code = mi.module_code
		WHERE mi.id = $1
	`, id).Scan(
		&instance.ID, &instance.ModuleCode, &instance.Year, &instance.Semester, &instance.LastUpdated,
		&instance.Module.Code, &instance.Module.Name, &instance.Module.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleInstanceNotFound
		}
		logger.Error().Err(err).Int64("instanceID", id).Msg("Error scanning module instance row")
		return nil, fmt.Errorf("error getting module instance by ID: %w", err)
	}

	professors, err := r.getProfessors(ctx, id)
	if err != nil {
		return nil, err
	}
	instance.Professors = professors

	return instance, nil
}

// getProfessors retrieves the teaching set of one instance
func (r *ModuleInstanceRepository) getProfessors(ctx context.Context, instanceID int64) ([]*models.Professor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.average_rating, p.last_updated
		FROM module_instance_professors mip
		JOIN professors p ON p.id = mip.professor_id
		WHERE mip.module_instance_id = $1
		ORDER BY p.id
	`, instanceID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teaching professors: %w", err)
	}
	defer rows.Close()

	var professors []*models.Professor
	for rows.Next() {
		professor := &models.Professor{}
		if err := rows.Scan(&professor.ID, &professor.Name, &professor.AverageRating, &professor.LastUpdated); err != nil {
			return nil, fmt.Errorf("error scanning professor row: %w", err)
		}
		professors = append(professors, professor)
	}

	return professors, rows.Err()
}

// GetAll retrieves all module instances with modules and teaching professors.
// The join table is read once and grouped in memory.
func (r *ModuleInstanceRepository) GetAll(ctx context.Context) ([]*models.ModuleInstance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT mi.id, mi.module_code, mi.year, mi.semester, mi.last_updated,
		       m.code, m.name, m.last_updated
		FROM module_instances mi
		JOIN modules m ON m.code = mi.module_code
		ORDER BY mi.module_code, mi.year, mi.semester
	`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving module instances: %w", err)
	}
	defer rows.Close()

	var instances []*models.ModuleInstance
	byID := make(map[int64]*models.ModuleInstance)
	for rows.Next() {
		instance := &models.ModuleInstance{Module: &models.Module{}}
		if err := rows.Scan(
			&instance.ID, &instance.ModuleCode, &instance.Year, &instance.Semester, &instance.LastUpdated,
			&instance.Module.Code, &instance.Module.Name, &instance.Module.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("error scanning module instance row: %w", err)
		}
		instances = append(instances, instance)
		byID[instance.ID] = instance
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	profRows, err := r.db.Query(ctx, `
		SELECT mip.module_instance_id, p.id, p.name, p.average_rating, p.last_updated
		FROM module_instance_professors mip
		JOIN professors p ON p.id = mip.professor_id
		ORDER BY mip.module_instance_id, p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teaching professors: %w", err)
	}
	defer profRows.Close()

	for profRows.Next() {
		var instanceID int64
		professor := &models.Professor{}
		if err := profRows.Scan(&instanceID, &professor.ID, &professor.Name, &professor.AverageRating, &professor.LastUpdated); err != nil {
			return nil, fmt.Errorf("error scanning teaching professor row: %w", err)
		}
		if instance, ok := byID[instanceID]; ok {
			instance.Professors = append(instance.Professors, professor)
		}
	}

	return instances, profRows.Err()
}

// GetByModuleAndSemester resolves an instance by module code and semester,
// the lookup the rate-professor flow uses. Year narrows the lookup when
// positive.
func (r *ModuleInstanceRepository) GetByModuleAndSemester(ctx context.Context, moduleCode string, semester, year int) (*models.ModuleInstance, error) {
	query := `
		SELECT id, module_code, year, semester, last_updated
		FROM module_instances
		WHERE module_code = $1 AND semester = $2
	`
	args := []interface{}{moduleCode, semester}
	if year > 0 {
		query += ` AND year = $3`
		args = append(args, year)
	}
	query += ` ORDER BY year DESC LIMIT 1`

	instance := &models.ModuleInstance{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&instance.ID, &instance.ModuleCode, &instance.Year, &instance.Semester, &instance.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleInstanceNotFound
		}
		logger.Error().Err(err).Str("moduleCode", moduleCode).Int("semester", semester).Msg("Error resolving module instance")
		return nil, fmt.Errorf("error resolving module instance: %w", err)
	}

	return instance, nil
}

// IsProfessorTeaching reports whether the professor is in the instance's
// teaching set.
func (r *ModuleInstanceRepository) IsProfessorTeaching(ctx context.Context, instanceID int64, professorID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM module_instance_professors
			WHERE module_instance_id = $1 AND professor_id = $2
		)
	`, instanceID, professorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking teaching professor: %w", err)
	}
	return exists, nil
}

// LatestUpdate returns the most recent last_updated across all instances.
// ok is false when no instances exist.
func (r *ModuleInstanceRepository) LatestUpdate(ctx context.Context) (time.Time, bool, error) {
	var latest *time.Time
	err := r.db.QueryRow(ctx, `SELECT MAX(last_updated) FROM module_instances`).Scan(&latest)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("error retrieving latest instance update: %w", err)
	}
	if latest == nil {
		return time.Time{}, false, nil
	}
	return *latest, true, nil
}

// Update updates an instance and replaces its teaching set in one transaction.
func (r *ModuleInstanceRepository) Update(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE module_instances
			SET module_code = $1, year = $2, semester = $3, last_updated = now()
			WHERE id = $4
		`, instance.ModuleCode, instance.Year, instance.Semester, instance.ID)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrModuleInstanceAlreadyExists
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrModuleNotFound
			}
			logger.Error().Err(err).Int64("instanceID", instance.ID).Msg("Error executing update module instance query")
			return fmt.Errorf("error updating module instance: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrModuleInstanceNotFound
		}

		return setProfessors(ctx, tx, instance.ID, professorIDs)
	})
}

// Delete deletes an instance. Its ratings cascade, so the affected
// professors' cached averages are recomputed in the same transaction.
func (r *ModuleInstanceRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		affected, err := affectedProfessors(ctx, tx, `
			SELECT DISTINCT professor_id FROM ratings WHERE module_instance_id = $1
		`, id)
		if err != nil {
			return err
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM module_instances WHERE id = $1`, id)
		if err != nil {
			logger.Error().Err(err).Int64("instanceID", id).Msg("Error executing delete module instance query")
			return fmt.Errorf("error deleting module instance: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrModuleInstanceNotFound
		}

		return recomputeAverages(ctx, tx, affected)
	})
}

// affectedProfessors collects professor IDs whose ratings a cascade delete is
// about to remove.
func affectedProfessors(ctx context.Context, tx pgx.Tx, query string, args ...interface{}) ([]string, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error collecting affected professors: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning affected professor: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
