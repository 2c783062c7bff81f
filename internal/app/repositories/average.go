package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// recomputeAverage rewrites a professor's cached average from the ratings
// table. AVG over zero rows yields NULL, which is exactly the "no ratings"
// representation the schema wants. Callers must run this in the same
// transaction as the rating mutation that made the average stale.
func recomputeAverage(ctx context.Context, tx pgx.Tx, professorID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE professors
		SET average_rating = (SELECT AVG(rating)::float8 FROM ratings WHERE professor_id = $1),
		    last_updated = now()
		WHERE id = $1
	`, professorID)
	if err != nil {
		return fmt.Errorf("error recomputing average rating for professor %s: %w", professorID, err)
	}
	return nil
}

// recomputeAverages recomputes the cached average for several professors,
// used after cascade deletes that remove ratings for more than one professor.
func recomputeAverages(ctx context.Context, tx pgx.Tx, professorIDs []string) error {
	for _, id := range professorIDs {
		if err := recomputeAverage(ctx, tx, id); err != nil {
			return err
		}
	}
	return nil
}
