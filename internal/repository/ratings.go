package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FlorekPawel/movie-db/internal/domain"
)

// RatingsRepository provides helpers for movie ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// RatingSubmitParams captures the payload required to submit a rating.
type RatingSubmitParams struct {
	MovieID string
	UserID  string
	Value   float64
}

// RatingSubmitResult reports the stored rating, whether it was newly created,
// and the movie's recomputed cached average.
type RatingSubmitResult struct {
	Rating     domain.Rating
	Inserted   bool
	NewAverage float64
}

// Submit upserts the (movie, user) rating and recomputes the owning movie's
// cached average in the same transaction. The recompute is an explicit call
// into the movie aggregation query, not a side effect of the insert.
func (r *RatingsRepository) Submit(ctx context.Context, params RatingSubmitParams) (RatingSubmitResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return RatingSubmitResult{}, fmt.Errorf("begin rating submit: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = ($1::text)::uuid)`, params.MovieID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return RatingSubmitResult{}, ErrNotFound
		}
		return RatingSubmitResult{}, err
	}
	if !exists {
		return RatingSubmitResult{}, ErrNotFound
	}

	if err := ensureUserTx(ctx, tx, params.UserID); err != nil {
		return RatingSubmitResult{}, err
	}

	const upsert = `
        INSERT INTO ratings (movie_id, user_id, rating)
        VALUES ($1,$2,$3)
        ON CONFLICT (movie_id, user_id)
        DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()
        RETURNING movie_id, user_id, rating, created_at, updated_at, (xmax = 0) AS inserted
    `

	var result RatingSubmitResult
	err = tx.QueryRow(ctx, upsert, params.MovieID, params.UserID, params.Value).Scan(
		&result.Rating.MovieID,
		&result.Rating.UserID,
		&result.Rating.Value,
		&result.Rating.CreatedAt,
		&result.Rating.UpdatedAt,
		&result.Inserted,
	)
	if err != nil {
		return RatingSubmitResult{}, err
	}

	result.NewAverage, err = recomputeAverageRating(ctx, tx, params.MovieID)
	if err != nil {
		return RatingSubmitResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return RatingSubmitResult{}, fmt.Errorf("commit rating submit: %w", err)
	}
	return result, nil
}

// Aggregate returns the live rating average and count for a movie, computed
// from current rating rows independently of the cached column.
func (r *RatingsRepository) Aggregate(ctx context.Context, movieID string) (domain.RatingAggregate, error) {
	const query = `
        SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0)::double precision AS average,
               COUNT(*)::int8 AS count
        FROM ratings
        WHERE movie_id = $1
    `

	var agg domain.RatingAggregate
	if err := r.pool.QueryRow(ctx, query, movieID).Scan(&agg.Average, &agg.Count); err != nil {
		return domain.RatingAggregate{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	return agg, nil
}

// Get retrieves a rating for a specific user/movie combination.
func (r *RatingsRepository) Get(ctx context.Context, movieID, userID string) (domain.Rating, error) {
	const query = `
        SELECT movie_id, user_id, rating, created_at, updated_at
        FROM ratings
        WHERE movie_id = $1 AND user_id = $2
    `
	var rating domain.Rating
	err := r.pool.QueryRow(ctx, query, movieID, userID).Scan(
		&rating.MovieID,
		&rating.UserID,
		&rating.Value,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Rating{}, ErrNotFound
		}
		return domain.Rating{}, err
	}
	return rating, nil
}
