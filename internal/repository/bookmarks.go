package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BookmarksRepository provides helpers for bookmark toggling.
type BookmarksRepository struct {
	pool *pgxpool.Pool
}

// Add ensures a bookmark exists for the (user, movie) pair. It reports whether
// a row was newly created; an existing bookmark is not an error. The conflict
// on the primary key absorbs concurrent duplicate creates.
func (r *BookmarksRepository) Add(ctx context.Context, userID, movieID string) (bool, error) {
	if err := ensureUser(ctx, r.pool, userID); err != nil {
		return false, err
	}

	const query = `
        INSERT INTO bookmarks (movie_id, user_id)
        VALUES ($1,$2)
        ON CONFLICT (movie_id, user_id) DO NOTHING
    `
	tag, err := r.pool.Exec(ctx, query, movieID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Remove deletes the bookmark if present. Removing an absent bookmark is not
// an error; the return value reports whether a row existed.
func (r *BookmarksRepository) Remove(ctx context.Context, userID, movieID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookmarks WHERE movie_id = $1 AND user_id = $2`, movieID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Exists reports whether the user has bookmarked the movie.
func (r *BookmarksRepository) Exists(ctx context.Context, userID, movieID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookmarks WHERE movie_id = $1 AND user_id = $2)`, movieID, userID).Scan(&exists)
	return exists, err
}

// MovieIDsForUser returns which of the given movie ids the user has
// bookmarked, for decorating listing pages.
func (r *BookmarksRepository) MovieIDsForUser(ctx context.Context, userID string, movieIDs []string) (map[string]bool, error) {
	marked := make(map[string]bool, len(movieIDs))
	if len(movieIDs) == 0 {
		return marked, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT movie_id FROM bookmarks WHERE user_id = $1 AND movie_id = ANY($2::uuid[])`, userID, movieIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var movieID string
		if err := rows.Scan(&movieID); err != nil {
			return nil, err
		}
		marked[movieID] = true
	}
	return marked, rows.Err()
}
