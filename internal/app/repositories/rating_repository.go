package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/db"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/dberrors"
	"github.com/profrate/profrate/internal/pkg/logger"
)

// RatingRepository handles rating database operations. Every mutation runs in
// a transaction together with the recomputation of the rated professor's
// cached average, so readers never observe a stale average.
type RatingRepository struct {
	db *pgxpool.Pool
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{
		db: pool,
	}
}

// GetAll retrieves all ratings
func (r *RatingRepository) GetAll(ctx context.Context) ([]*models.Rating, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, module_instance_id, professor_id, user_id, rating, last_updated
		FROM ratings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*models.Rating
	for rows.Next() {
		rating := &models.Rating{}
		if err := rows.Scan(
			&rating.ID, &rating.ModuleInstanceID, &rating.ProfessorID,
			&rating.UserID, &rating.Rating, &rating.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("error scanning rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}

	return ratings, rows.Err()
}

// GetByID retrieves a rating by ID
func (r *RatingRepository) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	rating := &models.Rating{}
	err := r.db.QueryRow(ctx, `
		SELECT id, module_instance_id, professor_id, user_id, rating, last_updated
		FROM ratings
		WHERE id = $1
	`, id).Scan(
		&rating.ID, &rating.ModuleInstanceID, &rating.ProfessorID,
		&rating.UserID, &rating.Rating, &rating.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRatingNotFound
		}
		logger.Error().Err(err).Int64("ratingID", id).Msg("Error scanning rating row")
		return nil, fmt.Errorf("error getting rating by ID: %w", err)
	}

	return rating, nil
}

// Upsert creates the rating, or updates its value when the
// (module instance, professor, user) triple already has one. Reports whether
// a new row was created. A concurrent insert of the same triple surfaces as
// ErrRatingAlreadyExists via the unique constraint.
func (r *RatingRepository) Upsert(ctx context.Context, rating *models.Rating) (created bool, err error) {
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE ratings
			SET rating = $1, last_updated = now()
			WHERE module_instance_id = $2 AND professor_id = $3 AND user_id = $4
			RETURNING id, last_updated
		`, rating.Rating, rating.ModuleInstanceID, rating.ProfessorID, rating.UserID).
			Scan(&rating.ID, &rating.LastUpdated)
		if err == nil {
			return recomputeAverage(ctx, tx, rating.ProfessorID)
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			logger.Error().Err(err).Str("professorID", rating.ProfessorID).Msg("Error updating existing rating")
			return fmt.Errorf("error updating rating: %w", err)
		}

		if err := insertRating(ctx, tx, rating); err != nil {
			return err
		}
		created = true

		return recomputeAverage(ctx, tx, rating.ProfessorID)
	})
	return created, err
}

// Create inserts a rating and fails with ErrRatingAlreadyExists when the
// triple already has one. Used by the generic CRUD surface.
func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := insertRating(ctx, tx, rating); err != nil {
			return err
		}
		return recomputeAverage(ctx, tx, rating.ProfessorID)
	})
}

func insertRating(ctx context.Context, tx pgx.Tx, rating *models.Rating) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO ratings (module_instance_id, professor_id, user_id, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, last_updated
	`, rating.ModuleInstanceID, rating.ProfessorID, rating.UserID, rating.Rating).
		Scan(&rating.ID, &rating.LastUpdated)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "ratings_instance_professor_user_key") {
			return apperrors.ErrRatingAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrModuleInstanceNotFound
		}
		logger.Error().Err(err).Str("professorID", rating.ProfessorID).Msg("Error executing insert rating query")
		return fmt.Errorf("error creating rating: %w", err)
	}
	return nil
}

// UpdateValue changes the value of an existing rating by ID
func (r *RatingRepository) UpdateValue(ctx context.Context, id int64, value int) (*models.Rating, error) {
	rating := &models.Rating{}
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE ratings
			SET rating = $1, last_updated = now()
			WHERE id = $2
			RETURNING id, module_instance_id, professor_id, user_id, rating, last_updated
		`, value, id).Scan(
			&rating.ID, &rating.ModuleInstanceID, &rating.ProfessorID,
			&rating.UserID, &rating.Rating, &rating.LastUpdated,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrRatingNotFound
			}
			logger.Error().Err(err).Int64("ratingID", id).Msg("Error executing update rating query")
			return fmt.Errorf("error updating rating: %w", err)
		}

		return recomputeAverage(ctx, tx, rating.ProfessorID)
	})
	if err != nil {
		return nil, err
	}
	return rating, nil
}

// Delete removes a rating and recomputes the professor's average. Deleting
// the professor's last rating leaves the average NULL, never zero.
func (r *RatingRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var professorID string
		err := tx.QueryRow(ctx, `
			DELETE FROM ratings WHERE id = $1 RETURNING professor_id
		`, id).Scan(&professorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrRatingNotFound
			}
			logger.Error().Err(err).Int64("ratingID", id).Msg("Error executing delete rating query")
			return fmt.Errorf("error deleting rating: %w", err)
		}

		return recomputeAverage(ctx, tx, professorID)
	})
}

// ModuleAverage computes a fresh, request-scoped average of one professor's
// ratings across all instances of one module. This never reads or writes the
// cached professors.average_rating. Returns nil when no ratings are in scope.
func (r *RatingRepository) ModuleAverage(ctx context.Context, professorID, moduleCode string) (*float64, error) {
	var average *float64
	err := r.db.QueryRow(ctx, `
		SELECT AVG(r.rating)::float8
		FROM ratings r
		JOIN module_instances mi ON mi.id = r.module_instance_id
		WHERE r.professor_id = $1 AND mi.module_code = $2
	`, professorID, moduleCode).Scan(&average)
	if err != nil {
		logger.Error().Err(err).Str("professorID", professorID).Str("moduleCode", moduleCode).Msg("Error computing module-scoped average")
		return nil, fmt.Errorf("error computing module-scoped average: %w", err)
	}
	return average, nil
}
