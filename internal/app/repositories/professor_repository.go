package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/dberrors"
	"github.com/profrate/profrate/internal/pkg/logger"
)

// ProfessorRepository handles professor database operations.
// The average_rating column is derived; it is only ever written by the
// rating write path, never by professor CRUD.
type ProfessorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfessorRepository creates a new ProfessorRepository
func NewProfessorRepository(db *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new professor
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	sql, args, err := r.sb.Insert("professors").
		Columns("id", "name").
		Values(professor.ID, professor.Name).
		Suffix("RETURNING last_updated").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create professor SQL")
		return fmt.Errorf("failed to build create professor query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&professor.LastUpdated)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProfessorAlreadyExists
		}
		logger.Error().Err(err).Str("professorID", professor.ID).Msg("Error executing create professor query")
		return fmt.Errorf("error creating professor: %w", err)
	}

	return nil
}

// GetByID retrieves a professor by ID
func (r *ProfessorRepository) GetByID(ctx context.Context, id string) (*models.Professor, error) {
	sql, args, err := r.sb.Select("id", "name", "average_rating", "last_updated").
		From("professors").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get professor by ID SQL")
		return nil, fmt.Errorf("failed to build get professor query: %w", err)
	}

	professor := &models.Professor{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&professor.ID,
		&professor.Name,
		&professor.AverageRating,
		&professor.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		logger.Error().Err(err).Str("professorID", id).Msg("Error scanning professor row")
		return nil, fmt.Errorf("error getting professor by ID: %w", err)
	}

	return professor, nil
}

// GetAll retrieves all professors ordered by ID
func (r *ProfessorRepository) GetAll(ctx context.Context) ([]*models.Professor, error) {
	sql, args, err := r.sb.Select("id", "name", "average_rating", "last_updated").
		From("professors").
		OrderBy("id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all professors SQL")
		return nil, fmt.Errorf("failed to build get all professors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving professors: %w", err)
	}
	defer rows.Close()

	var professors []*models.Professor
	for rows.Next() {
		professor := &models.Professor{}
		if err := rows.Scan(
			&professor.ID,
			&professor.Name,
			&professor.AverageRating,
			&professor.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("error scanning professor row: %w", err)
		}
		professors = append(professors, professor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return professors, nil
}

// Update updates a professor's name. The derived average is untouched.
func (r *ProfessorRepository) Update(ctx context.Context, professor *models.Professor) error {
	sql, args, err := r.sb.Update("professors").
		Set("name", professor.Name).
		Set("last_updated", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": professor.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update professor SQL")
		return fmt.Errorf("failed to build update professor query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("professorID", professor.ID).Msg("Error executing update professor query")
		return fmt.Errorf("error updating professor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfessorNotFound
	}

	return nil
}

// Delete deletes a professor by ID. Dependent ratings cascade.
func (r *ProfessorRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("professors").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete professor SQL")
		return fmt.Errorf("failed to build delete professor query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("professorID", id).Msg("Error executing delete professor query")
		return fmt.Errorf("error deleting professor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfessorNotFound
	}

	return nil
}
